package tables

import (
	"strings"
	"testing"
)

func TestResolveKey(t *testing.T) {
	rec := map[string]string{
		"Vendor Style": "2278",
		"COLOR":        "NAVY",
		"StyleName":    "Classic Tee",
		"Unit Price":   "10.00",
	}
	cases := []struct {
		want, expect string
	}{
		{"Vendor Style", "Vendor Style"},  // exact
		{"Color", "COLOR"},                // case-insensitive
		{"Style Name|StyleName", "StyleName"}, // alternative spelling
		{"Price", "Unit Price"},           // contains
		{"Warehouse", ""},                 // absent
	}
	for _, c := range cases {
		if got := resolveKey(rec, c.want); got != c.expect {
			t.Errorf("resolveKey(%q) = %q, want %q", c.want, got, c.expect)
		}
	}
}

func TestExtractCodes(t *testing.T) {
	maps := []map[string]string{
		{"Item No.": "A-RED-M"},
		{"Item No.": "  "},
		{"Item No.": "B-BLUE-S-1"},
	}
	codes, err := ExtractCodes(maps, "")
	if err != nil {
		t.Fatalf("ExtractCodes: %v", err)
	}
	if len(codes) != 2 || codes[0] != "A-RED-M" || codes[1] != "B-BLUE-S-1" {
		t.Fatalf("got %v", codes)
	}
}

func TestExtractCodesMissingColumn(t *testing.T) {
	_, err := ExtractCodes([]map[string]string{{"Whatever": "x"}}, "")
	if err == nil || !strings.Contains(err.Error(), "Item No.") {
		t.Fatalf("expected missing-column error naming Item No., got %v", err)
	}
}

func TestExtractVendorRows(t *testing.T) {
	maps := []map[string]string{
		{"Vendor Style": "2278", "Color": "NAVY", "Size": "LG", "Variable": "1", "Price": "12.50"},
		{"Vendor Style": "2278", "Color": "NAVY", "Size": "XLG", "Variable": "", "Price": ""},
	}
	rows, err := ExtractVendorRows(maps, VendorColumns{}, true, false)
	if err != nil {
		t.Fatalf("ExtractVendorRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if !rows[0].HasPrice || rows[0].Price != 12.50 || rows[0].Variant != "1" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].HasPrice {
		t.Fatalf("blank price cell must not count as priced: %+v", rows[1])
	}
}

func TestExtractVendorRowsMissingColumns(t *testing.T) {
	maps := []map[string]string{{"Vendor Style": "2278", "Color": "NAVY"}}

	_, err := ExtractVendorRows(maps, VendorColumns{}, true, false)
	if err == nil {
		t.Fatal("expected an error for missing Size and Price")
	}
	for _, col := range []string{"Size", "Price"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error should name %s: %v", col, err)
		}
	}

	// discontinuation mode requires the style-name column instead of price
	_, err = ExtractVendorRows(maps, VendorColumns{}, false, true)
	if err == nil || !strings.Contains(err.Error(), "Style Name") {
		t.Fatalf("expected error naming Style Name, got %v", err)
	}
}

func TestExtractVendorRowsVariantOptional(t *testing.T) {
	maps := []map[string]string{
		{"Vendor Style": "2278", "Color": "NAVY", "Size": "LG", "Style Name": "Tee"},
	}
	rows, err := ExtractVendorRows(maps, VendorColumns{}, false, true)
	if err != nil {
		t.Fatalf("variant column must be optional: %v", err)
	}
	if rows[0].Variant != "" {
		t.Fatalf("got %+v", rows[0])
	}
}

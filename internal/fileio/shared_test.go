package fileio

import (
	"bytes"
	"strings"
	"testing"

	excelize "github.com/xuri/excelize/v2"
)

func TestReadAnyMapsCSV(t *testing.T) {
	csv := "Vendor Style,Color,Size,Price\n2278,NAVY,LG,12.50\n,,,\n2278,NAVY,XLG,13.00\n"
	rows, err := ReadAnyMaps(strings.NewReader(csv), "V105_VPL.csv", 1)
	if err != nil {
		t.Fatalf("ReadAnyMaps: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("blank row must be skipped; got %d rows", len(rows))
	}
	if rows[0]["Vendor Style"] != "2278" || rows[1]["Size"] != "XLG" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestReadAnyMapsEmptyXLSX(t *testing.T) {
	// a freshly created workbook has a sheet but no rows; uploading one
	// must yield an empty result, not a panic
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	rows, err := ReadAnyMaps(bytes.NewReader(buf.Bytes()), "empty.xlsx", 1)
	if err != nil {
		t.Fatalf("ReadAnyMaps: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestReadAnyMapsEmptyCSV(t *testing.T) {
	rows, err := ReadAnyMaps(strings.NewReader(""), "empty.csv", 1)
	if err != nil {
		t.Fatalf("ReadAnyMaps: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestPickHeaderEmptyTable(t *testing.T) {
	if h := pickHeader(nil, 1); len(h) != 0 {
		t.Fatalf("expected empty header for empty table, got %v", h)
	}
}

func TestReadAnyMapsUnsupported(t *testing.T) {
	if _, err := ReadAnyMaps(strings.NewReader(""), "prices.pdf", 1); err == nil {
		t.Fatal("expected unsupported-file error")
	}
}

func TestPickHeaderBlanks(t *testing.T) {
	rows := [][]string{{"A", "", "C"}}
	h := pickHeader(rows, 1)
	if h[1] != "Column 2" {
		t.Fatalf("blank header must be substituted, got %v", h)
	}
}

func TestRowsToMapsHeaderRowOffset(t *testing.T) {
	rows := [][]string{
		{"junk", "junk"},
		{"ItemCode", "U_VendorCost"},
		{"A-RED-M", "10"},
	}
	h := pickHeader(rows, 2)
	out := rowsToMaps(rows, h, 2)
	if len(out) != 1 || out[0]["ItemCode"] != "A-RED-M" {
		t.Fatalf("out = %v", out)
	}
}

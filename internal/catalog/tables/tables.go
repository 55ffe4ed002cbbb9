// Column resolution and row mapping between loaded spreadsheets (map[header]
// value records) and the matcher's domain types. Header matching is
// case-insensitive and tolerant of punctuation and spacing differences, so
// "Vendor Style", "vendor style" and "VENDOR_STYLE" all resolve.
package tables

import (
	"fmt"
	"regexp"
	"strings"

	"catalog-recon/internal/catalog/model"
	"catalog-recon/internal/utils"
)

// default column names; callers may override, with "|"-separated alternatives
const (
	DefaultCodeColumn = "Item No.|ItemCode"

	defStyleCol   = "Vendor Style"
	defColorCol   = "Color"
	defSizeCol    = "Size"
	defVariantCol = "Variable"
	defPriceCol   = "Price"
	defNameCol    = "Style Name|StyleName"
)

var rxHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey normalizes a column name: lower case, NBSP variants to
// space, punctuation stripped, spaces collapsed.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", " ", " ", " ").Replace(s)
	s = rxHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey finds the actual header in the record for a wanted column name.
// Supports alternatives via "|" (e.g. "Style Name|StyleName"); tries exact
// match, then normalized-equal, then contains in either direction, keeping
// the longest overlap. Returns "" when nothing plausible exists.
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	var nWantAll []string
	for _, a := range alts {
		nWantAll = append(nWantAll, normHeaderKey(a))
	}

	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := normHeaderKey(k)
		for _, n := range nWantAll {
			if nk == n {
				return k
			}
		}
		score := 0
		for _, n := range nWantAll {
			if n != "" && nk != "" && (strings.Contains(nk, n) || strings.Contains(n, nk)) {
				if len(n) > score {
					score = len(n)
				}
			}
		}
		if score > bestScore {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

// ExtractCodes pulls the item-code column out of the internal table,
// skipping blank cells.
func ExtractCodes(maps []map[string]string, codeCol string) ([]string, error) {
	if strings.TrimSpace(codeCol) == "" {
		codeCol = DefaultCodeColumn
	}
	if len(maps) == 0 {
		return nil, nil
	}
	col := resolveKey(maps[0], codeCol)
	if col == "" {
		return nil, fmt.Errorf("missing column: %s", strings.Split(codeCol, "|")[0])
	}
	codes := make([]string, 0, len(maps))
	for _, rec := range maps {
		code := strings.TrimSpace(rec[col])
		if code == "" {
			continue
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// VendorColumns names the vendor-table columns; zero values take defaults.
type VendorColumns struct {
	Style   string
	Color   string
	Size    string
	Variant string
	Price   string
	Name    string
}

func (c VendorColumns) withDefaults() VendorColumns {
	pick := func(v, def string) string {
		if strings.TrimSpace(v) != "" {
			return v
		}
		return def
	}
	return VendorColumns{
		Style:   pick(c.Style, defStyleCol),
		Color:   pick(c.Color, defColorCol),
		Size:    pick(c.Size, defSizeCol),
		Variant: pick(c.Variant, defVariantCol),
		Price:   pick(c.Price, defPriceCol),
		Name:    pick(c.Name, defNameCol),
	}
}

// ExtractVendorRows maps the vendor table into domain rows. Style, color and
// size are always required; the price or style-name column is required per
// mode, and the variant column is optional in both. A missing required
// column is reported with the wanted name, not silently tolerated.
func ExtractVendorRows(maps []map[string]string, cols VendorColumns, needPrice, needName bool) ([]model.VendorRow, error) {
	cols = cols.withDefaults()
	if len(maps) == 0 {
		return nil, nil
	}
	first := maps[0]

	styleCol := resolveKey(first, cols.Style)
	colorCol := resolveKey(first, cols.Color)
	sizeCol := resolveKey(first, cols.Size)
	variantCol := resolveKey(first, cols.Variant)
	priceCol := resolveKey(first, cols.Price)
	nameCol := resolveKey(first, cols.Name)

	var missing []string
	require := func(resolved, want string) {
		if resolved == "" {
			missing = append(missing, strings.Split(want, "|")[0])
		}
	}
	require(styleCol, cols.Style)
	require(colorCol, cols.Color)
	require(sizeCol, cols.Size)
	if needPrice {
		require(priceCol, cols.Price)
	}
	if needName {
		require(nameCol, cols.Name)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	rows := make([]model.VendorRow, 0, len(maps))
	for _, rec := range maps {
		r := model.VendorRow{
			Style: strings.TrimSpace(rec[styleCol]),
			Color: strings.TrimSpace(rec[colorCol]),
			Size:  strings.TrimSpace(rec[sizeCol]),
		}
		if variantCol != "" {
			r.Variant = strings.TrimSpace(rec[variantCol])
		}
		if nameCol != "" {
			r.StyleName = strings.TrimSpace(rec[nameCol])
		}
		if priceCol != "" {
			r.Price, r.HasPrice = utils.ParsePrice(rec[priceCol])
		}
		if r.Style == "" && r.Color == "" && r.Size == "" {
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// The matching engine: joins internal item codes onto vendor rows by
// canonical key. Pure functions over their inputs; all file and form
// handling lives with the callers.
package service

import (
	"strings"

	"catalog-recon/internal/catalog/key"
	"catalog-recon/internal/catalog/model"
	"catalog-recon/internal/catalog/sizemap"
)

// priceIndex holds the two lookup tiers built from one vendor table.
type priceIndex struct {
	byKey4     map[string]float64 // STYLE|COLOR|SIZE|VARIANT
	byKey3     map[string]float64 // STYLE|COLOR|SIZE
	duplicates int
}

// buildPriceIndex computes both keys for every priced vendor row. Duplicate
// keys within a tier are last-write-wins — a vendor data-quality condition,
// surfaced via the duplicates count, not an error. Rows without a readable
// price are left out of both tiers so the 3-part fallback still gets a
// chance on the internal side.
func buildPriceIndex(rows []model.VendorRow) priceIndex {
	idx := priceIndex{
		byKey4: make(map[string]float64, len(rows)),
		byKey3: make(map[string]float64, len(rows)),
	}
	for _, r := range rows {
		if !r.HasPrice {
			continue
		}
		k4 := key.Canonical(r.Style, r.Color, r.Size, r.Variant)
		k3 := key.Canonical(r.Style, r.Color, r.Size, "")
		if _, seen := idx.byKey4[k4]; seen {
			idx.duplicates++
		}
		idx.byKey4[k4] = r.Price
		idx.byKey3[k3] = r.Price
	}
	return idx
}

// MatchPrices joins vendor prices onto internal item codes.
//
// Each internal code is parsed, its size is run through the vendor's size
// remap, and the 4-part key is tried before falling back to the 3-part key.
// Every input code ends up in exactly one of Matched / Unmatched; codes with
// fewer than three segments are unmatched as unparseable.
func MatchPrices(codes []string, vendor []model.VendorRow, rules []sizemap.Rule, table sizemap.Table) model.MatchResult {
	idx := buildPriceIndex(vendor)

	res := model.MatchResult{
		Matched:       make([]model.PriceMatch, 0, len(codes)),
		Unmatched:     make([]model.Unmatched, 0),
		DuplicateKeys: idx.duplicates,
	}

	for _, code := range codes {
		p, ok := key.Parse(code)
		if !ok {
			res.Unmatched = append(res.Unmatched, model.Unmatched{ItemCode: code, Reason: model.ReasonUnparseable})
			continue
		}

		mapped := sizemap.Apply(p.Style, p.Color, p.Size, rules, table)

		price, hit := idx.byKey4[key.Canonical(p.Style, p.Color, mapped, p.Variant)]
		if !hit {
			price, hit = idx.byKey3[key.Canonical(p.Style, p.Color, mapped, "")]
		}
		if !hit {
			res.Unmatched = append(res.Unmatched, model.Unmatched{ItemCode: code, Reason: model.ReasonNoPrice})
			continue
		}
		res.Matched = append(res.Matched, model.PriceMatch{
			ItemCode:   code,
			Price:      price,
			SizeMapped: mapped != p.Size,
		})
	}
	return res
}

// FindDiscontinued flags internal items whose canonical key coincides with a
// vendor row marked DISCONTINUED in its descriptive name.
//
// Unlike price matching this is single-tier — the key is built with whatever
// variant state each side carries, no 3-part fallback and no size remap.
// Deactivation is destructive downstream, so a looser join is not wanted
// here. Output preserves the input order of the internal codes.
func FindDiscontinued(codes []string, vendor []model.VendorRow) model.DiscontinuationResult {
	discontinued := make(map[string]struct{})
	count := 0
	for _, r := range vendor {
		if !strings.Contains(strings.ToUpper(r.StyleName), "DISCONTINUED") {
			continue
		}
		count++
		discontinued[key.Canonical(r.Style, r.Color, r.Size, r.Variant)] = struct{}{}
	}

	res := model.DiscontinuationResult{
		DiscontinuedVendor: count,
		TotalInternal:      len(codes),
	}
	if count == 0 {
		return res
	}

	for _, code := range codes {
		k, ok := key.CanonicalCode(code)
		if !ok {
			continue
		}
		if _, hit := discontinued[k]; hit {
			res.Flagged = append(res.Flagged, code)
		}
	}
	return res
}

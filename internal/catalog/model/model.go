package model

// ParsedCode holds the components of an internal item code
// (STYLE-COLOR-SIZE or STYLE-COLOR-SIZE-VARIANT; the color may itself
// contain hyphens).
type ParsedCode struct {
	Style   string
	Color   string
	Size    string
	Variant string // empty when the code has only three segments
}

// VendorRow is one line of a vendor price list / DTW export.
type VendorRow struct {
	Style     string
	Color     string
	Size      string
	Variant   string
	StyleName string  // descriptive name, carries the DISCONTINUED marker
	Price     float64
	HasPrice  bool // false when the price cell was empty or unreadable
}

// PriceMatch is an internal item that received a vendor price.
type PriceMatch struct {
	ItemCode   string  `json:"itemCode"`
	Price      float64 `json:"price"`
	SizeMapped bool    `json:"sizeMapped"` // matched through a remapped size code
}

// Unmatched is an internal item without a vendor price.
type Unmatched struct {
	ItemCode string `json:"itemCode"`
	Reason   string `json:"reason"`
}

const (
	ReasonNoPrice     = "No matching price found"
	ReasonUnparseable = "Item code could not be parsed"
)

// MatchResult is the full partition of one vendor pair's internal items.
type MatchResult struct {
	Matched       []PriceMatch `json:"matched"`
	Unmatched     []Unmatched  `json:"unmatched"`
	DuplicateKeys int          `json:"duplicateKeys"` // vendor rows collapsed by last-write-wins
}

// DiscontinuationResult lists internal items flagged for deactivation.
type DiscontinuationResult struct {
	Flagged            []string `json:"flagged"` // item codes, in input order
	DiscontinuedVendor int      `json:"discontinuedVendor"`
	TotalInternal      int      `json:"totalInternal"`
}

// VendorPriceSummary is one row of the price-run summary report.
type VendorPriceSummary struct {
	Vendor       string   `json:"vendor"`
	TotalSKUs    int      `json:"totalSkus"`
	MatchedSKUs  int      `json:"matchedSkus"`
	RemovedSKUs  int      `json:"removedSkus"`
	SizeMapped   int      `json:"sizeMapped"`
	MatchRate    float64     `json:"matchRate"` // percent
	OutputFile   string      `json:"outputFile"`
	RemovedItems []Unmatched `json:"removedItems"`
}

// VendorDeactivationSummary is one row of the deactivation-run summary.
type VendorDeactivationSummary struct {
	Vendor        string `json:"vendor"`
	TotalInternal int    `json:"totalInternal"`
	Discontinued  int    `json:"discontinued"`
	ToDeactivate  int    `json:"toDeactivate"`
	OutputFile    string `json:"outputFile"`
}

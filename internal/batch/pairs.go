package batch

import (
	"path/filepath"
	"strings"
)

// Pair is one vendor's internal table plus its vendor price list / DTW file.
type Pair struct {
	Vendor       string
	InternalPath string
	VendorPath   string
}

// vendorCode extracts the vendor prefix from a filename stem:
// V105_OITM.xlsx -> V105.
func vendorCode(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	code, _, _ := strings.Cut(stem, "_")
	return code
}

// DiscoverPairs scans dir for internal-table files (*OITM*.xlsx) and vendor
// files (*VPL*.xlsx, *DTW*.xlsx) and pairs them by the vendor code appearing
// as a case-insensitive substring of the vendor filename. First match wins.
// Internal files with no vendor counterpart come back as warnings.
func DiscoverPairs(dir string) (pairs []Pair, unpaired []string, err error) {
	internalFiles, err := filepath.Glob(filepath.Join(dir, "*OITM*.xlsx"))
	if err != nil {
		return nil, nil, err
	}

	var vendorFiles []string
	for _, pattern := range []string{"*VPL*.xlsx", "*DTW*.xlsx"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, nil, err
		}
		vendorFiles = append(vendorFiles, matches...)
	}

	for _, internal := range internalFiles {
		code := vendorCode(internal)
		found := ""
		for _, vendor := range vendorFiles {
			if strings.Contains(strings.ToLower(filepath.Base(vendor)), strings.ToLower(code)) {
				found = vendor
				break
			}
		}
		if found == "" {
			unpaired = append(unpaired, internal)
			continue
		}
		pairs = append(pairs, Pair{Vendor: code, InternalPath: internal, VendorPath: found})
	}
	return pairs, unpaired, nil
}

// Vendor-specific size-code remapping. Some vendors list garment sizes with
// a "G" suffix (L → LG), but only certain styles follow that convention, so
// the remap is guarded by an ordered rule list.
package sizemap

import "strings"

// Rule selects the styles a size remap applies to. An empty Color matches
// every color of the style; a non-empty Color restricts the rule to that
// exact style+color combination.
type Rule struct {
	Style string
	Color string
}

// Table maps a size code to its vendor form. Sizes absent from the table
// pass through unchanged.
type Table map[string]string

// DefaultTable is the G-suffix size set.
func DefaultTable() Table {
	return Table{
		"XS":  "XSM",
		"S":   "SM",
		"M":   "MD",
		"L":   "LG",
		"XL":  "XLG",
		"2XL": "2XLG",
		"3XL": "3XLG",
		"4XL": "4XLG",
		"5XL": "5XLG",
	}
}

// DefaultRules lists the styles known to use G-suffix sizes.
func DefaultRules() []Rule {
	return []Rule{
		{Style: "2278"},                   // Fabian Group
		{Style: "3483"},                   // Rothco
		{Style: "2795", Color: "SILVER"},  // Vantage Apparel, silver only
	}
}

// Apply returns the remapped size for the first rule matching style (and
// color, for paired rules), or size unchanged when no rule matches. Rule
// order is significant: a style listed twice takes the first occurrence.
func Apply(style, color, size string, rules []Rule, table Table) string {
	for _, r := range rules {
		if r.Style != style {
			continue
		}
		if r.Color != "" && r.Color != color {
			continue
		}
		if mapped, ok := table[size]; ok {
			return mapped
		}
		return size
	}
	return size
}

// ParseRules reads a rule list from its config form: a comma-separated list
// of "style" or "style:color" entries. Blank entries are skipped.
func ParseRules(s string) []Rule {
	var rules []Rule
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		style, color, _ := strings.Cut(entry, ":")
		rules = append(rules, Rule{
			Style: strings.TrimSpace(style),
			Color: strings.TrimSpace(color),
		})
	}
	return rules
}

// Item-code decomposition and canonical lookup keys. Leaf package: no I/O,
// no dependencies on the rest of the service.
package key

import (
	"strings"

	"catalog-recon/internal/catalog/model"
)

// Parse splits an item code on '-' into style/color/size/variant.
//
//	3 segments:  STYLE-COLOR-SIZE
//	4 segments:  STYLE-COLOR-SIZE-VARIANT
//	>4 segments: the middle segments belong to the color
//	             (e.g. 1200-NAVY-HEATHER-XL-2)
//
// Fewer than 3 segments does not parse; ok is false and the caller must
// exclude the item from matching.
func Parse(code string) (model.ParsedCode, bool) {
	parts := strings.Split(code, "-")
	switch {
	case len(parts) == 3:
		return model.ParsedCode{Style: parts[0], Color: parts[1], Size: parts[2]}, true
	case len(parts) == 4:
		return model.ParsedCode{Style: parts[0], Color: parts[1], Size: parts[2], Variant: parts[3]}, true
	case len(parts) > 4:
		return model.ParsedCode{
			Style:   parts[0],
			Color:   strings.Join(parts[1:len(parts)-2], "-"),
			Size:    parts[len(parts)-2],
			Variant: parts[len(parts)-1],
		}, true
	}
	return model.ParsedCode{}, false
}

// norm uppercases and trims one key component.
func norm(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Canonical builds the pipe-delimited lookup key. The variant is dropped
// when it normalizes to nothing ("", "NONE", "NAN" — the strings a missing
// spreadsheet cell tends to arrive as), so a variant-less vendor listing
// lands on the same 3-part key as an internal code without a variant.
func Canonical(style, color, size, variant string) string {
	v := norm(variant)
	if v == "NONE" || v == "NAN" {
		v = ""
	}
	if v != "" {
		return norm(style) + "|" + norm(color) + "|" + norm(size) + "|" + v
	}
	return norm(style) + "|" + norm(color) + "|" + norm(size)
}

// CanonicalCode parses and canonicalizes in one step, without size mapping.
func CanonicalCode(code string) (string, bool) {
	p, ok := Parse(code)
	if !ok {
		return "", false
	}
	return Canonical(p.Style, p.Color, p.Size, p.Variant), true
}

package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d.\-]`)

// ParsePrice parses price cells as they come out of vendor spreadsheets:
// "1,234.50", "12,99", "$ 45", "(3.20)" for negatives, NBSP/NNBSP thousands
// spacing. Returns false for empty or non-numeric cells.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// strip regular and non-breaking spaces
	repl := strings.NewReplacer(" ", "", " ", "", " ", "", " ", "", "\t", "")
	s = repl.Replace(s)

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	// comma handling: thousands separator when a dot is present or more than
	// two digits follow, decimal separator otherwise ("12,99")
	if i := strings.LastIndex(s, ","); i >= 0 {
		if strings.Contains(s, ".") || len(s)-i-1 != 2 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}

	// drop currency symbols and whatever else is left
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

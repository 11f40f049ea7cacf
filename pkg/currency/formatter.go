// Package currency renders fare amounts for display and export.
package currency

import (
	"math"
	"strconv"
)

// FormatTWD renders an amount as New Taiwan dollars with thousands
// separators, e.g. "NT$12,500". Amounts are rounded to whole dollars.
func FormatTWD(amount float64) string {
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	formatted := addThousandsSeparator(strconv.FormatFloat(rounded, 'f', 0, 64))

	result := "NT$" + formatted
	if negative {
		result = "-" + result
	}
	return result
}

func addThousandsSeparator(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var out []byte
	lead := n % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < n; i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

// Package metrics holds the derivation core: pure functions that turn raw
// check-in and diet-plan values into the numbers shown on dashboards and
// reports. Nothing here touches the database or keeps state between calls.
package metrics

import (
	"strconv"
	"strings"
)

// ParseDecimal reads a form-style decimal that may use either "." or "," as
// the separator and may carry trailing unit letters ("1,75m", "82.5kg").
// Empty or unparseable input yields 0; the input layer is expected to have
// filtered anything worse.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	end := len(s)
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			end = i
			break
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseQuantity extracts the leading numeric portion of a free-text quantity
// such as "150g" or "1,5 cup". Everything except digits and a single decimal
// separator is dropped.
func ParseQuantity(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	var b strings.Builder
	seenSep := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case (r == '.' || r == ',') && !seenSep:
			b.WriteByte('.')
			seenSep = true
		default:
			if b.Len() > 0 {
				v, err := strconv.ParseFloat(strings.TrimSuffix(b.String(), "."), 64)
				if err != nil {
					return 0
				}
				return v
			}
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(b.String(), "."), 64)
	if err != nil {
		return 0
	}
	return v
}

package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyNumber is returned for blank numeric strings.
var ErrEmptyNumber = errors.New("empty numeric string")

// ParseLocaleNumber parses feed numbers written with a comma decimal
// separator, e.g. "119,90" or "1.234,56". Plain dot-decimal input is also
// accepted. The error return makes the lenient defaulting at the normalizer
// boundary explicit instead of incidental.
func ParseLocaleNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyNumber
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if strings.Contains(s, ",") {
		// Comma is the decimal separator; dots are thousands grouping.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse locale number %q: %w", s, err)
	}
	return v, nil
}

// ParseLocaleInt parses an integer field, tolerating decimal formatting
// like "5,00" that some exports use for stock counts.
func ParseLocaleInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyNumber
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	v, err := ParseLocaleNumber(s)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

package join

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DecimalConvention selects the decimal separator used by numeric source fields.
type DecimalConvention string

const (
	// DecimalComma parses "10,03" (French and Russian locales). Default.
	DecimalComma DecimalConvention = "comma"
	// DecimalPeriod parses "10.03".
	DecimalPeriod DecimalConvention = "period"
)

var validDecimalConventions = map[DecimalConvention]bool{
	DecimalComma:  true,
	DecimalPeriod: true,
}

// IsValidDecimalConvention returns true if name is a recognized convention.
func IsValidDecimalConvention(name string) bool {
	return validDecimalConventions[DecimalConvention(name)]
}

var errEmptyNumber = errors.New("empty value")

// ParseDecimal parses text as a finite number written with the given convention.
//
// Leading and trailing whitespace is trimmed. Inside the integer part a space,
// U+00A0 or U+202F may separate thousands groups, the way locale formatters
// emit them: the first group has one to three digits and every following group
// exactly three. An optional exponent uses an upper-case E. The convention's
// other separator is always rejected, so under DecimalPeriod a comma-grouped
// "1,000.5" is an error rather than a guess.
func ParseDecimal(text string, conv DecimalConvention) (float64, error) {
	var sep, other rune
	switch conv {
	case DecimalComma:
		sep, other = ',', '.'
	case DecimalPeriod:
		sep, other = '.', ','
	default:
		return 0, fmt.Errorf("unknown decimal convention %q", conv)
	}

	t := strings.TrimFunc(text, unicode.IsSpace)
	if t == "" {
		return 0, errEmptyNumber
	}

	mantissa, exponent, hasExp := strings.Cut(t, "E")
	sign := ""
	if mantissa != "" && (mantissa[0] == '-' || mantissa[0] == '+') {
		sign, mantissa = mantissa[:1], mantissa[1:]
	}
	intPart, frac, _ := strings.Cut(mantissa, string(sep))

	intDigits, err := ungroup(intPart, other)
	if err != nil {
		return 0, err
	}
	if err := checkDigits(frac, other); err != nil {
		return 0, err
	}
	if intDigits == "" && frac == "" {
		return 0, fmt.Errorf("no digits in %q", text)
	}

	normalized := sign + intDigits + "." + frac
	if hasExp {
		expDigits := exponent
		if expDigits != "" && (expDigits[0] == '-' || expDigits[0] == '+') {
			expDigits = expDigits[1:]
		}
		if expDigits == "" {
			return 0, fmt.Errorf("empty exponent in %q", text)
		}
		if err := checkDigits(expDigits, other); err != nil {
			return 0, err
		}
		normalized += "e" + exponent
	}
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func isGroupSeparator(r rune) bool {
	return r == ' ' || r == '\u00a0' || r == '\u202f'
}

// ungroup strips thousands separators from an integer part, enforcing 1-3
// digits in the leading group and exactly 3 in every other group.
func ungroup(s string, other rune) (string, error) {
	if strings.IndexFunc(s, isGroupSeparator) < 0 {
		return s, checkDigits(s, other)
	}
	groups := strings.FieldsFunc(s, isGroupSeparator)
	if !sameGrouping(s, groups) {
		return "", fmt.Errorf("misplaced group separator in %q", s)
	}
	for i, g := range groups {
		if (i == 0 && len(g) > 3) || (i > 0 && len(g) != 3) {
			return "", fmt.Errorf("misplaced group separator in %q", s)
		}
	}
	digits := strings.Join(groups, "")
	return digits, checkDigits(digits, other)
}

// sameGrouping reports whether s is exactly groups joined by single separators,
// with no leading, trailing or doubled separator.
func sameGrouping(s string, groups []string) bool {
	rest := s
	for i, g := range groups {
		if !strings.HasPrefix(rest, g) {
			return false
		}
		rest = rest[len(g):]
		if i == len(groups)-1 {
			return rest == ""
		}
		r, size := utf8.DecodeRuneInString(rest)
		if !isGroupSeparator(r) {
			return false
		}
		rest = rest[size:]
	}
	return false
}

func checkDigits(s string, other rune) error {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == other:
			return fmt.Errorf("unexpected separator %q", r)
		default:
			return fmt.Errorf("unexpected character %q", r)
		}
	}
	return nil
}

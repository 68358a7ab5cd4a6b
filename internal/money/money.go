package money

import (
	"fmt"
	"strings"
)

// Cents is an amount of money in euro cents. All stored and computed amounts
// use this type; decimal strings only appear at parsing and display boundaries.
type Cents int64

// ToCents parses a decimal price string ("1250", "19.99", "19,99") into cents.
// The fractional part is read digit by digit, never via float multiplication,
// so "19.99" is always 1999. At most two fractional digits are accepted.
func ToCents(s string) (Cents, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if raw[0] == '-' {
		negative = true
		raw = raw[1:]
	}

	// Accept both the API decimal point and the Dutch decimal comma.
	raw = strings.ReplaceAll(raw, ",", ".")

	whole := raw
	frac := ""
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		whole, frac = raw[:i], raw[i+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var cents Cents
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid amount %q", s)
			}
			cents = cents*10 + Cents(r-'0')
		}
	}
	if negative {
		cents = -cents
	}
	return cents, nil
}

// FromCents renders the exact decimal form with a point separator ("2118.00").
// Lossless counterpart of ToCents, used for API payloads.
func FromCents(c Cents) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Format renders an amount for the Dutch market ("€ 2.118,00").
// Presentation only; stored amounts always stay integer cents.
func Format(c Cents) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}

	whole := fmt.Sprintf("%d", c/100)
	var grouped strings.Builder
	lead := len(whole) % 3
	if lead == 0 {
		lead = 3
	}
	grouped.WriteString(whole[:lead])
	for i := lead; i < len(whole); i += 3 {
		grouped.WriteByte('.')
		grouped.WriteString(whole[i : i+3])
	}

	return fmt.Sprintf("€ %s%s,%02d", sign, grouped.String(), c%100)
}

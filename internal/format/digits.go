package format

import "strings"

// FormatNumberString inserts thousands separators into an integer string.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(sign) + len(s) + len(s)/3)
	b.WriteString(sign)
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// DecimalString places the decimal point in a digit string whose value is
// 0.<digits> × 10^exp.
func DecimalString(digits string, exp int) string {
	switch {
	case digits == "":
		return "0"
	case exp <= 0:
		return "0." + strings.Repeat("0", -exp) + digits
	case exp >= len(digits):
		return digits + strings.Repeat("0", exp-len(digits))
	}
	return digits[:exp] + "." + digits[exp:]
}

// RenderedDigits is the printable form of a digit string.
type RenderedDigits struct {
	// Text is either the full decimal value or its trailing window.
	Text string
	// Full reports whether Text is the whole value.
	Full bool
}

// RenderDigits returns the whole decimal value when the digit string is at
// most window characters long or all is set, and the last window digits
// otherwise.
func RenderDigits(digits string, exp, window int, all bool) RenderedDigits {
	if all || window <= 0 || len(digits) < window+1 {
		return RenderedDigits{Text: DecimalString(digits, exp), Full: true}
	}
	return RenderedDigits{Text: digits[len(digits)-window:]}
}

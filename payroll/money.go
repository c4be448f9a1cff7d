package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount the way the payroll reports print money:
// "R$ 1.234,56" with dot thousand separators and a comma decimal mark.
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("R$ ")
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// Package format renders on-chain values for display.
package format

import (
	"math/big"
	"strings"
)

const maxFractionDigits = 8

// Wei renders an integer token amount with the given number of decimals.
// The fraction is truncated to 8 digits (never rounded), the integer part is
// grouped by thousands and at least one fraction digit is always present.
// A nil amount renders as "0.0".
func Wei(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0.0"
	}
	if decimals < 0 {
		decimals = 0
	}

	abs := new(big.Int).Abs(amount)
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	intPart, fracPart := new(big.Int).QuoRem(abs, unit, new(big.Int))

	fraction := ""
	if decimals > 0 {
		fraction = fracPart.String()
		fraction = strings.Repeat("0", decimals-len(fraction)) + fraction
		fraction = strings.TrimRight(fraction, "0")
	}
	if len(fraction) > maxFractionDigits {
		fraction = fraction[:maxFractionDigits]
	}
	if fraction == "" {
		fraction = "0"
	}

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}
	return sign + groupThousands(intPart.String()) + "." + fraction
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Address shortens a wallet address to 0x1234...abcd form.
func Address(address string) string {
	if address == "" {
		return "0x...0000"
	}
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

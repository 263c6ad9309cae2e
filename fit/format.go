// SPDX-License-Identifier: MIT
package fit

import (
	"fmt"
	"math"
)

// FormatUncertainty renders value with the compact uncertainty notation
// v(dd), where dd are the two leading digits of unc, keeping only the
// digits of value that unc warrants. Exponents are multiples of three.
//
//	FormatUncertainty(1.23567, 0.766)    == "1.24(77)"
//	FormatUncertainty(1235670, 766000)   == "1.24(77)e6"
//
// A zero, negative or NaN uncertainty falls back to %g; an infinite one
// gives "v(inf)". Infinite and NaN values print as inf, -inf and NaN.
func FormatUncertainty(value, unc float64) string {
	return formatUncertainty(value, unc, true)
}

// FormatUncertaintyPM is FormatUncertainty in the "v +/- dv" form.
//
//	FormatUncertaintyPM(752.3567, 0.01) == "752.357 +/- 0.01"
func FormatUncertaintyPM(value, unc float64) string {
	return formatUncertainty(value, unc, false)
}

func formatUncertainty(value, unc float64, compact bool) string {
	// 1. Marked values
	switch {
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	case math.IsNaN(value):
		return "NaN"
	}
	if math.IsNaN(unc) || unc <= 0 {
		return fmt.Sprintf("%.6g", value)
	}
	if math.IsInf(unc, 1) {
		if compact {
			return fmt.Sprintf("%.6g(inf)", value)
		}
		return fmt.Sprintf("%.6g +/- inf", value)
	}

	// 2. Decimal places of value and uncertainty
	sign := ""
	if value < 0 {
		sign = "-"
	}
	value = math.Abs(value)
	errPlace := int(math.Floor(math.Log10(unc)))
	valPlace := errPlace - 1
	if value != 0 {
		valPlace = int(math.Floor(math.Log10(value)))
	}

	if !compact {
		return fmt.Sprintf("%s%.*g +/- %.2g", sign, valPlace-errPlace+2, value, unc)
	}

	// 3. Compact form; engineering exponent chosen by the relative places
	errStr := fmt.Sprintf("(%2d)", int(unc/math.Pow10(errPlace-1)+0.5))
	var out string
	switch {
	case errPlace > valPlace:
		if errPlace-valPlace > 2 {
			value = 0
		}
		valPlace = floorDiv(errPlace+2, 3) * 3
		out = fmt.Sprintf("%.*f%s", valPlace-errPlace+1, value/math.Pow10(valPlace), errStr)
		if valPlace != 0 {
			out += fmt.Sprintf("e%d", valPlace)
		}
	case errPlace == valPlace:
		valPlace = floorDiv(errPlace+1, 3) * 3
		out = fmt.Sprintf("%.*f%s", valPlace-errPlace+1, value/math.Pow10(valPlace), errStr)
		if valPlace != 0 {
			out += fmt.Sprintf("e%d", valPlace)
		}
	case errPlace <= 1 && valPlace >= -3:
		digits := errPlace - 1
		if digits < 0 {
			digits = -digits
		}
		out = fmt.Sprintf("%.*f%s", digits, value, errStr)
	default:
		total := valPlace - errPlace + 2
		valPlace = floorDiv(valPlace, 3) * 3
		out = fmt.Sprintf("%.*g%se%d", total, value/math.Pow10(valPlace), errStr, valPlace)
	}

	return sign + out
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

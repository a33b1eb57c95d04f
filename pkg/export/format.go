package export

import "strconv"

// Currency and quantity fields carry two decimals; fat, SNF and CLR one.

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func quality(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func count(v int) string {
	return strconv.Itoa(v)
}

// paddedCode zero-pads numeric member codes to four digits; non-numeric
// codes pass through unchanged.
func paddedCode(code string) string {
	if _, err := strconv.Atoi(code); err != nil {
		return code
	}
	for len(code) < 4 {
		code = "0" + code
	}
	return code
}

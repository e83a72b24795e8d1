package domain

import "fmt"

// Amounts are carried as int64 minor units end to end. 1050 means 10.50 in
// the display currency; arithmetic never touches floats.

// FormatAmount renders minor units as a decimal string for human-readable
// messages, e.g. 1050 -> "10.50".
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

package types

import (
	"fmt"
)

// FormatExecutionTime renders a backend execution time (seconds) to four decimal places e.g 0.0021s
func FormatExecutionTime(seconds float64) string {
	return fmt.Sprintf("%.4fs", seconds)
}

// FormatTopN is the badge shown next to the results heading
func FormatTopN(n int) string {
	return fmt.Sprintf("Top %d shown", n)
}

// FormatSpeedup describes how many times faster the indexed query ran.
// Returns an empty string when the indexed time is zero.
func FormatSpeedup(noIndex, withIndex float64) string {
	if withIndex <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1fx", noIndex/withIndex)
}

package rotation

import "fmt"

// FormatSeconds renders a non-negative second count as "m:ss", seconds
// zero-padded to two digits. Behavior for negative input is unspecified;
// callers that can go negative clamp first.
func FormatSeconds(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

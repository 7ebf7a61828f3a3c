package parse

import (
	"regexp"
	"strings"
)

// Roster entries arrive as free-form text pasted from wherever the coach
// keeps the list: one name per line, or comma/semicolon separated.
var separatorRe = regexp.MustCompile(`[\n\r,;]+`)

// Names splits a delimiter-separated block of text into trimmed,
// order-preserving names, dropping empties and duplicates within the batch.
// Duplicate detection is case-insensitive on the trimmed name.
func Names(block string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, field := range separatorRe.Split(block, -1) {
		name := strings.TrimSpace(field)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	return names
}

package usecases

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var notesPolicy = bluemonday.StrictPolicy()

// sanitizeNotes strips markup and truncates to maxLen runes (0 = unlimited).
func sanitizeNotes(s string, maxLen int) string {
	clean := strings.TrimSpace(notesPolicy.Sanitize(s))
	if maxLen > 0 {
		if r := []rune(clean); len(r) > maxLen {
			clean = string(r[:maxLen])
		}
	}
	return clean
}

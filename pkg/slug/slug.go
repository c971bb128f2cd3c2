package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make converts text to a lowercase, dash-separated ASCII slug.
// Accents are folded ("José Núñez" -> "jose-nunez"); other non-ASCII letters are dropped.
func Make(text string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, text)
	if err != nil {
		folded = text
	}

	s := nonAlnum.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(s, "-")
}

// FacultyID generates a stable identifier for a roster entry without one
// Format: {slug(name)}-{seq}
// Example: "Ada Lovelace" + 3 -> "ada-lovelace-3"
func FacultyID(name string, seq int) string {
	base := Make(name)
	if base == "" {
		base = "faculty"
	}
	return fmt.Sprintf("%s-%d", base, seq)
}

package ingest

import "strings"

// Format is the top-level parsing strategy chosen for a document.
type Format int

const (
	// FormatComplex covers unlabeled, malformed, or buried-header documents.
	FormatComplex Format = iota
	// FormatSimple means line 0 is a recognizable header row.
	FormatSimple
)

func (f Format) String() string {
	if f == FormatSimple {
		return "simple"
	}
	return "complex"
}

var simpleCompanionKeywords = []string{"robe", "folder", "name"}

// Classify inspects only the first line: it is simple when it mentions
// "programme" together with one of robe, folder or name.
func Classify(lines []string) Format {
	if len(lines) == 0 {
		return FormatComplex
	}
	first := strings.ToLower(lines[0])
	if strings.Contains(first, "programme") && containsAny(first, simpleCompanionKeywords) {
		return FormatSimple
	}
	return FormatComplex
}

func containsAny(value string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(value, needle) {
			return true
		}
	}
	return false
}

package lang

import (
	"regexp"

	"github.com/pemistahl/lingua-go"
)

// Language is one of the two languages the assistant speaks
type Language string

const (
	English Language = "english"
	Urdu    Language = "urdu"
)

// Urdu is written in Arabic script; the block below covers it entirely.
var urduScript = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

// Detector classifies input as English or Urdu
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector creates a detector restricted to the supported languages
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Urdu).
			Build(),
	}
}

// Detect returns the detected language. When the detector is uncertain it
// falls back to a Unicode-script heuristic; anything that is not Urdu
// script defaults to English.
func (d *Detector) Detect(text string) Language {
	detected, ok := d.detector.DetectLanguageOf(text)
	if ok {
		switch detected {
		case lingua.English:
			return English
		case lingua.Urdu:
			return Urdu
		}
	}
	if urduScript.MatchString(text) {
		return Urdu
	}
	return English
}

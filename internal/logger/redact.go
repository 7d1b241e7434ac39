package logger

import "regexp"

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\-\s().]{7,}\d`)
)

// Redact masks email addresses and phone numbers so customer contact data
// can be attached to log lines.
func Redact(text string) string {
	if text == "" {
		return ""
	}
	text = emailPattern.ReplaceAllString(text, "[email redacted]")
	return phonePattern.ReplaceAllString(text, "[phone redacted]")
}

package utils

import "github.com/microcosm-cc/bluemonday"

var (
	bodyPolicy  = bluemonday.UGCPolicy()
	titlePolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans user generated HTML, keeping safe formatting.
func Sanitize(input string) string {
	return bodyPolicy.Sanitize(input)
}

// SanitizeTitle strips all markup.
func SanitizeTitle(input string) string {
	return titlePolicy.Sanitize(input)
}

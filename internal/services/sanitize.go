package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Product text is rendered into receipt emails, so markup is stripped on write.
var textPolicy = bluemonday.StrictPolicy()

// plainText removes every tag and returns the text unescaped, so
// "Fish &amp; Chips" and "<b>Fish & Chips</b>" both become "Fish & Chips".
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

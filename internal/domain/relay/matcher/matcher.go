// Package matcher recognizes supported short-video links in free-form text
package matcher

import "regexp"

// Share links first: a vm./vt. path may start with digits and must not be
// cut short by the numeric-id alternative.
const pattern = `https?://(?:vm|vt)\.tiktok\.com/\S+` +
	`|https?://(?:www\.|m\.)?tiktok\.com/(?:@[\w.-]+/video/|t/|[\w.-]+/video/|embed/v2/)?\d+(?:[/?]\S*)?`

var linkRe = regexp.MustCompile(pattern)

// Pattern returns the compiled link expression for handler routing
func Pattern() *regexp.Regexp {
	return linkRe
}

// FindAll returns every link in text, in order of appearance
func FindAll(text string) []string {
	return linkRe.FindAllString(text, -1)
}

// First returns the first link in text
func First(text string) (string, bool) {
	link := linkRe.FindString(text)
	return link, link != ""
}

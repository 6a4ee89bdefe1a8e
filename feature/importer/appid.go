package importer

import (
	"regexp"
	"strings"
)

var (
	storeURLPattern = regexp.MustCompile(`store\.[^/\s]+/app/(\d+)`)
	nonDigits       = regexp.MustCompile(`\D`)
)

// ExtractAppID returns the numeric catalog id of a store URL, or the digits of
// any other input.
func ExtractAppID(input string) string {
	input = strings.TrimSpace(input)
	if m := storeURLPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return nonDigits.ReplaceAllString(input, "")
}

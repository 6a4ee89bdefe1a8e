package reconcile

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"game-importer/core/settings"
)

// ReleaseDateLayout is the catalog's release date format, e.g. "21 Mar, 2019".
const ReleaseDateLayout = "2 Jan, 2006"

var (
	imgTagPattern     = regexp.MustCompile(`<img[^>]*>`)
	invisibleSpaces   = regexp.MustCompile(`[\x{200B}-\x{200D}\x{FEFF}\x{00A0}]+`)
	emptyParagraph    = regexp.MustCompile(`<p>\s*</p>`)
	repeatedNewlines  = regexp.MustCompile(`(\r?\n){2,}`)
	nonPriceCharacter = regexp.MustCompile(`[^0-9,.]`)
)

// DecodeDescription decodes HTML entities of a long description and, when
// stripImages is set, removes inline images and the blank markup they leave.
func DecodeDescription(raw string, stripImages bool) string {
	s := html.UnescapeString(raw)
	if !stripImages {
		return s
	}
	s = imgTagPattern.ReplaceAllString(s, "")
	s = invisibleSpaces.ReplaceAllString(s, "")
	s = emptyParagraph.ReplaceAllString(s, "")
	s = repeatedNewlines.ReplaceAllString(s, "\n")
	return s
}

// FormatReleaseDate renders a catalog date in the configured format. The
// second return value is false when nothing should be written.
func FormatReleaseDate(date, format string) (string, bool) {
	date = strings.TrimSpace(date)
	t, err := time.ParseInLocation(ReleaseDateLayout, date, time.UTC)
	if err != nil {
		return "", false
	}
	switch format {
	case settings.DateUnix:
		return t.Format("2006-01-02"), true
	case settings.DateTimestamp:
		return strconv.FormatInt(t.Unix(), 10), true
	default:
		return date, true
	}
}

// StripCurrency keeps only digits, commas and periods.
func StripCurrency(price string) string {
	return nonPriceCharacter.ReplaceAllString(price, "")
}

// SecureURL upgrades an http URL to https.
func SecureURL(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

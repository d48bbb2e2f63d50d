package workflow

import (
	"os"
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// NormalizeURL trims raw and prefixes https:// when no scheme is present.
// An empty input stays empty.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// CompanyName derives a display name from the first label of a website's
// host: https://www.fast-automate.io/about becomes "Fastautomate".
// Unusable input yields "Company".
func CompanyName(websiteURL string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(websiteURL, "https://"), "http://")
	host = strings.TrimPrefix(host, "www.")
	host, _, _ = strings.Cut(host, "/")
	label, _, _ := strings.Cut(host, ".")

	name := nonAlphanumeric.ReplaceAllString(label, "")
	if name == "" {
		return "Company"
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

// ReadURLFile returns the first non-blank line of path, or "" when the
// file is missing or blank.
func ReadURLFile(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for line := range strings.Lines(string(data)) {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

package extractor

import (
	"regexp"
	"strings"
)

var (
	yearPattern      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	yearRangePattern = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*[-–]\s*(?:present|current|(?:19|20)\d{2})\b`)
)

// dateMatch is a year or year range found at byte offset start
type dateMatch struct {
	text    string
	start   int
	end     int
	isRange bool
}

// findRanges returns every year range in text
func findRanges(text string) []dateMatch {
	return collect(yearRangePattern, text, true)
}

// findYears returns every bare year in text, including those that are part
// of a range
func findYears(text string) []dateMatch {
	return collect(yearPattern, text, false)
}

func collect(re *regexp.Regexp, text string, isRange bool) []dateMatch {
	var out []dateMatch
	for _, loc := range re.FindAllStringIndex(text, -1) {
		out = append(out, dateMatch{
			text:    text[loc[0]:loc[1]],
			start:   loc[0],
			end:     loc[1],
			isRange: isRange,
		})
	}
	return out
}

// normalizeDate rewrites an open-ended range such as "2019-present" or
// "2019 – Current" to "2019 - Present". Anything else is returned verbatim.
func normalizeDate(date string) string {
	lower := strings.ToLower(date)
	if !strings.Contains(lower, "present") && !strings.Contains(lower, "current") {
		return date
	}
	start := yearPattern.FindString(date)
	if start == "" {
		return date
	}
	return start + " - Present"
}

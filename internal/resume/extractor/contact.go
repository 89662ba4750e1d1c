// Package extractor turns raw resume text into structured fields. The
// extractors are independent of each other and hold no per-call state.
package extractor

import (
	"regexp"

	"github.com/talentlens/resume-parser/internal/resume/domain"
)

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	linkedInPattern = regexp.MustCompile(`linkedin\.com/in/[\w\-]+`)
	gitHubPattern   = regexp.MustCompile(`github\.com/[\w\-]+`)

	// Any run of ten or more digits, spaces, hyphens or parentheses. This
	// also matches postal codes, ID numbers and line-spanning digit runs.
	phonePattern = regexp.MustCompile(`\+?[\d\s\-()]{10,}`)
)

// ExtractContact returns every email, phone, LinkedIn and GitHub reference
// in the order they appear. Matches are not deduplicated or normalized.
func ExtractContact(text string) domain.ContactInfo {
	return domain.ContactInfo{
		Emails:   findAll(emailPattern, text),
		Phones:   findAll(phonePattern, text),
		LinkedIn: findAll(linkedInPattern, text),
		GitHub:   findAll(gitHubPattern, text),
	}
}

// ExtractEmails returns every email address in text
func ExtractEmails(text string) []string {
	return findAll(emailPattern, text)
}

func findAll(re *regexp.Regexp, text string) []string {
	matches := re.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

package render

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// ResumeCharLimit caps what the prompt accepts
const ResumeCharLimit = 50000

// ErrAborted is returned when the user cancels the prompt
var ErrAborted = errors.New("resume entry canceled")

// ValidateResumeText rejects blank submissions
func ValidateResumeText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("please enter resume text")
	}
	return nil
}

// NewResumeForm builds the interactive form that collects resume text into
// value.
func NewResumeForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Resume").
				Description("Paste the plain text of a resume").
				Placeholder("Jane Doe\njane@example.com\n...").
				CharLimit(ResumeCharLimit).
				Lines(15).
				Value(value).
				Validate(ValidateResumeText),

			huh.NewConfirm().
				Title("Parse this resume?").
				Affirmative("Parse").
				Negative("Cancel"),
		),
	).WithTheme(huh.ThemeDracula())
}

// PromptResume runs the form and returns the entered text
func PromptResume() (string, error) {
	var text string
	if err := NewResumeForm(&text).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	return text, nil
}

package testutil

import "github.com/talentlens/resume-parser/internal/resume/domain"

// SampleResume is a small resume exercising every extractor
const SampleResume = `Jane Doe
jane.doe@example.com | +1 (555) 123-4567, linkedin.com/in/janedoe | github.com/janedoe

EDUCATION
Bachelor of Science in Computer Science — MIT 2016-2020

SKILLS
Python, Docker, Kubernetes, PostgreSQL`

// Person returns a person entity without offsets
func Person(text string) domain.Entity {
	return domain.Entity{Type: domain.EntityPerson, Text: text}
}

// Org returns an organization entity without offsets
func Org(text string) domain.Entity {
	return domain.Entity{Type: domain.EntityOrganization, Text: text}
}

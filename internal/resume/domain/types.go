package domain

import "time"

// EntityType is the category a recognizer assigns to a span of text
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityOrganization EntityType = "organization"
	EntityLocation     EntityType = "location"
	EntityMisc         EntityType = "misc"
)

// Entity is a typed span returned by a recognizer. Start and End are byte
// offsets into the recognized text; End is exclusive.
type Entity struct {
	Type  EntityType `json:"type"`
	Text  string     `json:"text"`
	Start int        `json:"start"`
	End   int        `json:"end"`
}

// ContactInfo holds every contact detail found, in order of appearance.
// Values are reported exactly as matched.
type ContactInfo struct {
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	LinkedIn []string `json:"linkedin"`
	GitHub   []string `json:"github"`
}

// Empty reports whether no contact detail was found
func (c ContactInfo) Empty() bool {
	return len(c.Emails) == 0 && len(c.Phones) == 0 && len(c.LinkedIn) == 0 && len(c.GitHub) == 0
}

// EducationEntry describes one degree line or one organization/date pairing.
// Any field may be absent.
type EducationEntry struct {
	Degree      *string `json:"degree"`
	Major       *string `json:"major"`
	Institution *string `json:"institution"`
	DateRange   *string `json:"date_range"`
}

// SkillGroup is a display category together with the skills assigned to it
type SkillGroup struct {
	Key    string   `json:"key"`
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
}

// ParseResult is everything extracted from one resume
type ParseResult struct {
	Name        *string          `json:"name"`
	Contact     ContactInfo      `json:"contact"`
	Skills      []string         `json:"skills"`
	SkillGroups []SkillGroup     `json:"skill_groups"`
	Education   []EducationEntry `json:"education"`
	Duration    time.Duration    `json:"-"`
	DurationMS  int64            `json:"duration_ms"`
}

// FieldsFound lists the keys of the fields that carry a value. Only keys are
// returned so the list can be logged and audited without personal data.
func (r *ParseResult) FieldsFound() []string {
	var keys []string
	if r.Name != nil {
		keys = append(keys, "name")
	}
	if len(r.Contact.Emails) > 0 {
		keys = append(keys, "emails")
	}
	if len(r.Contact.Phones) > 0 {
		keys = append(keys, "phones")
	}
	if len(r.Contact.LinkedIn) > 0 {
		keys = append(keys, "linkedin")
	}
	if len(r.Contact.GitHub) > 0 {
		keys = append(keys, "github")
	}
	if len(r.Skills) > 0 {
		keys = append(keys, "skills")
	}
	if len(r.Education) > 0 {
		keys = append(keys, "education")
	}
	return keys
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or the empty string
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

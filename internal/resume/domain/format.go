package domain

import "strings"

// Headline is the degree line shown for an entry, e.g.
// "Bachelor of Science in Computer Science". Empty for entries found by
// organization/date pairing.
func (e EducationEntry) Headline() string {
	degree := Deref(e.Degree)
	if major := Deref(e.Major); major != "" {
		if degree == "" {
			return major
		}
		return degree + " in " + major
	}
	return degree
}

// Subline joins institution and date, e.g. "MIT — 2016-2020"
func (e EducationEntry) Subline() string {
	var parts []string
	if inst := Deref(e.Institution); inst != "" {
		parts = append(parts, inst)
	}
	if date := Deref(e.DateRange); date != "" {
		parts = append(parts, date)
	}
	return strings.Join(parts, " — ")
}

// Columns deals skill groups round-robin into n display columns
func Columns(groups []SkillGroup, n int) [][]SkillGroup {
	if n < 1 {
		n = 1
	}
	cols := make([][]SkillGroup, n)
	for i, g := range groups {
		cols[i%n] = append(cols[i%n], g)
	}
	return cols
}

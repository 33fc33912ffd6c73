package models

// SectionProgress is the completion percentage for one section, 0 to 100.
type SectionProgress struct {
	Section string `json:"section"`
	Percent int    `json:"percent"`
}

// ProgressResult reports per-section and overall completion. Sections follow
// questionnaire order and always include every known section, absent ones at
// zero. Overall is the rounded mean across all sections.
type ProgressResult struct {
	Overall  int               `json:"overall"`
	Sections []SectionProgress `json:"sections"`
}

// Section returns the percentage for a section key, or 0 when unknown.
func (p ProgressResult) Section(key string) int {
	for _, s := range p.Sections {
		if s.Section == key {
			return s.Percent
		}
	}
	return 0
}

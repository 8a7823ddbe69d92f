package resume

import (
	"encoding/json"
	"fmt"
)

// Record is the structured resume accumulated over a conversation. Every
// field except Name is optional; absent fields render nothing. A newly
// extracted record replaces the previous one wholesale.
type Record struct {
	Name           string         `json:"name,omitempty"`
	Title          string         `json:"title,omitempty"`
	Contact        *Contact       `json:"contact,omitempty"`
	Summary        string         `json:"summary,omitempty"`
	Skills         StringList     `json:"skills,omitempty"`
	Experience     ExperienceList `json:"experience,omitempty"`
	Education      EducationList  `json:"education,omitempty"`
	Certifications StringList     `json:"certifications,omitempty"`
}

// Contact holds the optional contact fields rendered on one line.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// StringList accepts either a JSON array of strings or a single string.
// Models emit both forms; a bare string becomes a one-element list.
type StringList []string

// UnmarshalJSON implements the scalar-or-sequence union.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("string or array expected: %w", err)
	}
	out := make(StringList, 0, len(items))
	for _, item := range items {
		if str, ok := item.(string); ok {
			out = append(out, str)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	*s = out
	return nil
}

// Job is a structured experience entry.
type Job struct {
	Position     string     `json:"position,omitempty"`
	Company      string     `json:"company,omitempty"`
	StartDate    string     `json:"start_date,omitempty"`
	EndDate      string     `json:"end_date,omitempty"`
	Location     string     `json:"location,omitempty"`
	Description  string     `json:"description,omitempty"`
	Achievements StringList `json:"achievements,omitempty"`
}

// Experience is one experience entry: either a structured Job or a bare
// freeform string, matching whatever the model produced.
type Experience struct {
	Job      *Job
	Freeform string
}

// UnmarshalJSON implements the structured-or-freeform union.
func (e *Experience) UnmarshalJSON(data []byte) error {
	var freeform string
	if err := json.Unmarshal(data, &freeform); err == nil {
		*e = Experience{Freeform: freeform}
		return nil
	}
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return fmt.Errorf("experience entry: %w", err)
	}
	*e = Experience{Job: &job}
	return nil
}

// MarshalJSON emits the same form the entry was decoded from.
func (e Experience) MarshalJSON() ([]byte, error) {
	if e.Job != nil {
		return json.Marshal(e.Job)
	}
	return json.Marshal(e.Freeform)
}

// ExperienceList accepts either a JSON array of entries or a single bare
// string describing the whole work history. The bare form becomes a
// one-element list with a freeform entry.
type ExperienceList []Experience

// UnmarshalJSON implements the scalar-or-sequence union.
func (l *ExperienceList) UnmarshalJSON(data []byte) error {
	var freeform string
	if err := json.Unmarshal(data, &freeform); err == nil {
		*l = ExperienceList{{Freeform: freeform}}
		return nil
	}
	var entries []Experience
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("experience: string or array expected: %w", err)
	}
	*l = entries
	return nil
}

// Study is a structured education entry.
type Study struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one education entry: structured Study or freeform string.
type Education struct {
	Study    *Study
	Freeform string
}

// UnmarshalJSON implements the structured-or-freeform union.
func (e *Education) UnmarshalJSON(data []byte) error {
	var freeform string
	if err := json.Unmarshal(data, &freeform); err == nil {
		*e = Education{Freeform: freeform}
		return nil
	}
	var study Study
	if err := json.Unmarshal(data, &study); err != nil {
		return fmt.Errorf("education entry: %w", err)
	}
	*e = Education{Study: &study}
	return nil
}

// MarshalJSON emits the same form the entry was decoded from.
func (e Education) MarshalJSON() ([]byte, error) {
	if e.Study != nil {
		return json.Marshal(e.Study)
	}
	return json.Marshal(e.Freeform)
}

// EducationList accepts either a JSON array of entries or a single bare
// string, mirroring ExperienceList.
type EducationList []Education

// UnmarshalJSON implements the scalar-or-sequence union.
func (l *EducationList) UnmarshalJSON(data []byte) error {
	var freeform string
	if err := json.Unmarshal(data, &freeform); err == nil {
		*l = EducationList{{Freeform: freeform}}
		return nil
	}
	var entries []Education
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("education: string or array expected: %w", err)
	}
	*l = entries
	return nil
}

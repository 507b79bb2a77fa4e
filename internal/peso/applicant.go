package peso

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Applicant is a jobseeker record as handed over by the registration system.
// Collection fields may arrive either as native JSON arrays/objects or as
// JSON-encoded strings; the list types below accept both and default to empty
// on anything unparseable. Legacy flat fields are consulted only when their
// structured counterpart is absent.
type Applicant struct {
	ID         string `json:"id,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	MiddleName string `json:"middleName,omitempty"`
	Surname    string `json:"surname,omitempty"`
	Suffix     string `json:"suffix,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`

	Sex         string `json:"sex,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	CivilStatus string `json:"civilStatus,omitempty"`
	Disability  string `json:"disability,omitempty"`

	Barangay     string `json:"barangay,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	Province     string `json:"province,omitempty"`

	EmploymentStatus string `json:"employmentStatus,omitempty"`
	IsOFW            bool   `json:"isOfw,omitempty"`
	ActivelyLooking  bool   `json:"activelyLookingForWork,omitempty"`
	WillingToStart   bool   `json:"willingToStartImmediately,omitempty"`
	WhenCanStart     string `json:"whenCanStart,omitempty"`

	Education            EducationList      `json:"education,omitempty"`
	Training             TrainingList       `json:"technicalTraining,omitempty"`
	WorkExperience       WorkExperienceList `json:"workExperience,omitempty"`
	Languages            LanguageList       `json:"languageProficiency,omitempty"`
	OtherSkills          StringList         `json:"otherSkills,omitempty"`
	PreferredOccupations StringList         `json:"preferredOccupations,omitempty"`
	Preferences          JobPreferences     `json:"jobPreferences,omitempty"`

	// Legacy flat fields kept by older registrations.
	EducationalAttainment string `json:"educationalAttainment,omitempty"`
	Course                string `json:"course,omitempty"`
	OtherSkillsTraining   string `json:"otherSkillsTraining,omitempty"`
	PreferredOccupation   string `json:"preferredOccupation,omitempty"`
}

type Education struct {
	Level         string `json:"level,omitempty"`
	Course        string `json:"course,omitempty"`
	School        string `json:"school,omitempty"`
	YearGraduated string `json:"yearGraduated,omitempty"`
}

type Training struct {
	Course         string `json:"course,omitempty"`
	Institution    string `json:"institution,omitempty"`
	SkillsAcquired string `json:"skillsAcquired,omitempty"`
	Certificate    string `json:"certificate,omitempty"`
}

type WorkExperience struct {
	Position string `json:"position,omitempty"`
	Company  string `json:"company,omitempty"`
	Status   string `json:"status,omitempty"`
	From     string `json:"inclusiveDateFrom,omitempty"`
	To       string `json:"inclusiveDateTo,omitempty"`
}

type Language struct {
	Language      string `json:"language,omitempty"`
	CanRead       bool   `json:"canRead,omitempty"`
	CanWrite      bool   `json:"canWrite,omitempty"`
	CanSpeak      bool   `json:"canSpeak,omitempty"`
	CanUnderstand bool   `json:"canUnderstand,omitempty"`
}

// JobPreferences holds the stated work preferences from the NSRP form.
type JobPreferences struct {
	EmploymentType       string     `json:"employmentType,omitempty"`
	PreferredLocal       StringList `json:"preferredWorkLocationLocal,omitempty"`
	PreferredOverseas    StringList `json:"preferredWorkLocationOverseas,omitempty"`
	Industries           StringList `json:"industries,omitempty"`
	Shift                string     `json:"shift,omitempty"`
	ExpectedSalary       float64    `json:"expectedSalary,omitempty"`
	ExpectedSalaryPeriod string     `json:"expectedSalaryPeriod,omitempty"`
	Readiness            string     `json:"readiness,omitempty"`
}

type (
	EducationList      []Education
	TrainingList       []Training
	WorkExperienceList []WorkExperience
	LanguageList       []Language
	StringList         []string
)

// decodeFlexible unmarshals data into v, unwrapping one level of
// JSON-encoded string first when present. Unparseable payloads are dropped
// silently; the caller always ends up with a usable zero value.
func decodeFlexible(data []byte, v any) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return
		}
		data = bytes.TrimSpace([]byte(inner))
		if len(data) == 0 {
			return
		}
	}
	_ = json.Unmarshal(data, v)
}

func (l *EducationList) UnmarshalJSON(data []byte) error {
	var out []Education
	decodeFlexible(data, &out)
	*l = out
	return nil
}

func (l *TrainingList) UnmarshalJSON(data []byte) error {
	var out []Training
	decodeFlexible(data, &out)
	*l = out
	return nil
}

func (l *WorkExperienceList) UnmarshalJSON(data []byte) error {
	var out []WorkExperience
	decodeFlexible(data, &out)
	*l = out
	return nil
}

func (l *LanguageList) UnmarshalJSON(data []byte) error {
	var out []Language
	decodeFlexible(data, &out)
	*l = out
	return nil
}

// UnmarshalJSON accepts a JSON array, a JSON-encoded array string, or a plain
// comma-separated string.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var out []string
	decodeFlexible(data, &out)
	if out == nil {
		var plain string
		if err := json.Unmarshal(bytes.TrimSpace(data), &plain); err == nil {
			out = SplitList(plain)
		}
	}
	cleaned := make([]string, 0, len(out))
	for _, s := range out {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	*l = cleaned
	return nil
}

func (p *JobPreferences) UnmarshalJSON(data []byte) error {
	type plain JobPreferences
	var out plain
	decodeFlexible(data, &out)
	*p = JobPreferences(out)
	return nil
}

// SplitList splits free text on commas and semicolons, trimming blanks.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (a *Applicant) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.FirstName, a.MiddleName, a.Surname, a.Suffix} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

const defaultAge = 30

// Age computes the applicant's age at the given instant. Missing or
// unparseable dates of birth fall back to a neutral default.
func (a *Applicant) Age(now time.Time) int {
	dob := strings.TrimSpace(a.DateOfBirth)
	if dob == "" {
		return defaultAge
	}
	var born time.Time
	var err error
	for _, layout := range []string{"2006-01-02", time.RFC3339, "01/02/2006"} {
		if born, err = time.Parse(layout, dob); err == nil {
			break
		}
	}
	if err != nil {
		return defaultAge
	}
	age := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		age--
	}
	return age
}

// HighestEducation returns the structured attainment when present, otherwise
// the legacy flat field.
func (a *Applicant) HighestEducation() string {
	for i := len(a.Education) - 1; i >= 0; i-- {
		if level := strings.TrimSpace(a.Education[i].Level); level != "" {
			return level
		}
	}
	return strings.TrimSpace(a.EducationalAttainment)
}

// PreferredOccupationList merges nothing: structured entries win outright,
// the legacy scalar is a fallback only.
func (a *Applicant) PreferredOccupationList() []string {
	if len(a.PreferredOccupations) > 0 {
		return a.PreferredOccupations
	}
	return SplitList(a.PreferredOccupation)
}

// SkillText concatenates every field that can carry skill evidence, for
// keyword extraction. Structured sources are preferred; legacy scalars are
// appended only when their structured counterpart is empty.
func (a *Applicant) SkillText() string {
	var b strings.Builder
	write := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			b.WriteString(s)
			b.WriteString(". ")
		}
	}

	if len(a.OtherSkills) > 0 {
		write(strings.Join(a.OtherSkills, ", "))
	} else {
		write(a.OtherSkillsTraining)
	}
	for _, t := range a.Training {
		write(t.Course)
		write(t.SkillsAcquired)
	}
	write(strings.Join(a.PreferredOccupationList(), ", "))
	for _, w := range a.WorkExperience {
		write(w.Position)
	}
	for _, e := range a.Education {
		write(e.Course)
	}
	if len(a.Education) == 0 {
		write(a.Course)
	}
	return b.String()
}

// HasPreferredLocations reports whether the applicant stated any preferred
// work location, a signal of willingness to relocate.
func (a *Applicant) HasPreferredLocations() bool {
	return len(a.Preferences.PreferredLocal) > 0 || len(a.Preferences.PreferredOverseas) > 0
}

// EmploymentCategory buckets the free-form employment status used by the
// experience and availability scoring.
type EmploymentCategory int

const (
	CategoryUnknown EmploymentCategory = iota
	CategoryEmployed
	CategoryUnderemployed
	CategorySelfEmployed
	CategoryNewEntrant
	CategoryUnemployed
)

func (a *Applicant) Category() EmploymentCategory {
	status := strings.ToLower(strings.TrimSpace(a.EmploymentStatus))
	switch {
	case a.IsOFW:
		return CategoryEmployed
	case strings.Contains(status, "underemployed"):
		return CategoryUnderemployed
	case strings.Contains(status, "self"):
		return CategorySelfEmployed
	case strings.Contains(status, "new") || strings.Contains(status, "entrant") || strings.Contains(status, "fresh"):
		return CategoryNewEntrant
	case strings.Contains(status, "unemployed"):
		return CategoryUnemployed
	case strings.Contains(status, "employed"):
		return CategoryEmployed
	default:
		return CategoryUnknown
	}
}

// HasDisclosedDisability reports a disclosed disability other than "None".
// Used exclusively to flag accommodation needs, never to penalize.
func (a *Applicant) HasDisclosedDisability() bool {
	d := strings.ToLower(strings.TrimSpace(a.Disability))
	return d != "" && d != "none" && d != "n/a"
}

package peso

// JobPosting is an employer-submitted vacancy as stored by the job board.
type JobPosting struct {
	ID                 string  `json:"id,omitempty"`
	Title              string  `json:"title,omitempty"`
	Description        string  `json:"description,omitempty"`
	Requirements       string  `json:"requirements,omitempty"`
	Skills             string  `json:"skills,omitempty"`
	Location           string  `json:"location,omitempty"`
	SalaryMin          float64 `json:"salaryMin,omitempty"`
	SalaryMax          float64 `json:"salaryMax,omitempty"`
	SalaryPeriod       string  `json:"salaryPeriod,omitempty"`
	EmploymentType     string  `json:"employmentType,omitempty"`
	EducationLevel     string  `json:"educationLevel,omitempty"`
	ExperienceRequired string  `json:"experienceRequired,omitempty"`
	Industry           string  `json:"industry,omitempty"`
	Positions          int     `json:"positions,omitempty"`
}

// SkillSourceText concatenates the fields skill keywords are extracted from.
func (j *JobPosting) SkillSourceText() string {
	return j.Title + ". " + j.Skills + ". " + j.Requirements + ". " + j.Description
}

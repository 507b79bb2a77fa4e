package scoring

import (
	"strings"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
)

type experienceLevel int

const (
	experienceNone experienceLevel = iota
	experienceEntry
	experienceGeneral
	experienceSenior
)

var experienceKeywords = []string{
	"experience", "year", "senior", "junior", "entry", "fresh", "background",
}

func classifyRequirement(text string) experienceLevel {
	text = strings.ToLower(text)

	hasKeyword := false
	for _, kw := range experienceKeywords {
		if strings.Contains(text, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return experienceNone
	}

	for _, kw := range []string{"entry", "fresh", "junior", "no experience", "without experience"} {
		if strings.Contains(text, kw) {
			return experienceEntry
		}
	}
	for _, kw := range []string{"senior", "lead", "supervisor", "manager", "5 years", "five years"} {
		if strings.Contains(text, kw) {
			return experienceSenior
		}
	}
	return experienceGeneral
}

// scoreExperience grades the applicant's employment history category against
// the classified requirement. The lookup favors fresh entrants for entry
// roles and penalizes them hard for senior ones.
func scoreExperience(applicant *peso.Applicant, job *peso.JobPosting) float64 {
	level := classifyRequirement(job.ExperienceRequired)
	if level == experienceNone {
		return 1.0
	}

	category := applicant.Category()
	hasHistory := len(applicant.WorkExperience) > 0

	switch level {
	case experienceEntry:
		switch {
		case category == peso.CategoryNewEntrant:
			return 1.0
		case hasHistory:
			return 0.95
		default:
			return 0.7
		}
	case experienceSenior:
		switch {
		case category == peso.CategoryEmployed:
			return 0.9
		case hasHistory || category == peso.CategoryUnderemployed || category == peso.CategorySelfEmployed:
			return 0.7
		case category == peso.CategoryNewEntrant:
			return 0.2
		default:
			return 0.5
		}
	default:
		switch {
		case category == peso.CategoryEmployed:
			return 0.85
		case hasHistory || category == peso.CategoryUnderemployed || category == peso.CategorySelfEmployed:
			return 0.75
		case category == peso.CategoryNewEntrant:
			return 0.4
		default:
			return 0.6
		}
	}
}

package scoring

import (
	"strings"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
)

// educationRanks orders attainment levels the way the NSRP form does. Ranks
// are matched by substring so both the form's wording and employer free text
// resolve.
var educationRanks = []struct {
	keyword string
	rank    int
}{
	{"doctor", 8},
	{"phd", 8},
	{"master", 7},
	{"post graduate", 7},
	{"tertiary", 6},
	{"college graduate", 6},
	{"bachelor", 6},
	{"college level", 5},
	{"college undergraduate", 5},
	{"vocational", 4},
	{"technical", 4},
	{"tvet", 4},
	{"senior high", 3},
	{"high school", 2},
	{"junior high", 2},
	{"secondary", 2},
	{"elementary", 1},
	{"primary", 1},
}

func educationRank(level string) int {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return 0
	}
	for _, entry := range educationRanks {
		if strings.Contains(level, entry.keyword) {
			return entry.rank
		}
	}
	return 0
}

// scoreEducation compares the job's minimum attainment with the applicant's
// highest. No stated requirement means no constraint; an applicant with an
// unknown attainment gets benefit of the doubt rather than a zero.
func scoreEducation(applicant *peso.Applicant, job *peso.JobPosting) float64 {
	required := educationRank(job.EducationLevel)
	if required == 0 {
		return 1.0
	}

	attained := educationRank(applicant.HighestEducation())
	if attained == 0 {
		return 0.6
	}
	if attained >= required {
		return 1.0
	}

	gap := float64(required - attained)
	score := 1 - 0.2*gap
	if score < 0.2 {
		score = 0.2
	}
	return score
}

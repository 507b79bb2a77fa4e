package scoring

import (
	"strings"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
)

func containsEither(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// scoreLocation checks, in priority order: residence inside the job location,
// stated preferred location overlapping it, same province, then a general
// relocation-willingness signal. A job with no location imposes no constraint.
func scoreLocation(applicant *peso.Applicant, job *peso.JobPosting) float64 {
	jobLocation := strings.TrimSpace(job.Location)
	if jobLocation == "" {
		return 1.0
	}

	if containsEither(jobLocation, applicant.Municipality) || containsEither(jobLocation, applicant.Barangay) {
		return 1.0
	}

	for _, preferred := range applicant.Preferences.PreferredLocal {
		if containsEither(jobLocation, preferred) {
			return 0.95
		}
	}

	if containsEither(jobLocation, applicant.Province) {
		return 0.7
	}

	if applicant.IsOFW || applicant.HasPreferredLocations() {
		return 0.6
	}

	return 0.4
}

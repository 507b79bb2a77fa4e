package scoring

import (
	"strings"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
)

// monthlyAmount normalizes a salary figure to a monthly equivalent based on
// its period string. Daily rates assume 26 working days, hourly an 8-hour
// day; unrecognized periods are treated as monthly.
func monthlyAmount(amount float64, period string) float64 {
	period = strings.ToLower(period)
	switch {
	case strings.Contains(period, "hour"):
		return amount * 8 * 26
	case strings.Contains(period, "day"):
		return amount * 26
	case strings.Contains(period, "week"):
		return amount * 4
	case strings.Contains(period, "year"):
		return amount / 12
	default:
		return amount
	}
}

// scoreSalary compares the job's monthly-normalized offer (preferring the
// upper bound) with the applicant's expectation, grading the deficit ratio
// when the offer falls short.
func scoreSalary(applicant *peso.Applicant, job *peso.JobPosting) float64 {
	offer := job.SalaryMax
	if offer <= 0 {
		offer = job.SalaryMin
	}
	if offer <= 0 {
		return 1.0
	}
	offer = monthlyAmount(offer, job.SalaryPeriod)

	expected := applicant.Preferences.ExpectedSalary
	if expected <= 0 {
		return 0.8
	}
	expected = monthlyAmount(expected, applicant.Preferences.ExpectedSalaryPeriod)

	if offer >= expected || offer >= expected*0.9 {
		return 1.0
	}

	deficit := (expected - offer) / expected
	switch {
	case deficit <= 0.2:
		return 0.8
	case deficit <= 0.3:
		return 0.6
	case deficit <= 0.4:
		return 0.4
	default:
		return 0.2
	}
}

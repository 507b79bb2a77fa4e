package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
)

func fixedNow() time.Time {
	return time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
}

func testScorer(opts ...Option) *Scorer {
	return New(append([]Option{WithClock(fixedNow)}, opts...)...)
}

func graphicDesignJob() *peso.JobPosting {
	return &peso.JobPosting{
		ID:     "j1",
		Title:  "Graphic Designer",
		Skills: "Adobe Photoshop",
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	scorer := testScorer()
	applicant := &peso.Applicant{
		ID:          "a1",
		FirstName:   "Ana",
		Surname:     "Reyes",
		DateOfBirth: "1998-03-10",
		OtherSkills: peso.StringList{"Adobe Photoshop", "Canva"},
		Education:   peso.EducationList{{Level: "Tertiary"}},
	}
	job := graphicDesignJob()

	first := scorer.Calculate(applicant, job, true)
	second := scorer.Calculate(applicant, job, true)

	require.Equal(t, first, second)
	assert.Equal(t, first.Percentage, int(first.Score+0.5))
}

func TestSkillsAsymmetry(t *testing.T) {
	scorer := testScorer()
	job := graphicDesignJob()

	sewer := &peso.Applicant{ID: "s1", OtherSkills: peso.StringList{"sewing"}}
	result := scorer.Calculate(sewer, job, false)
	assert.LessOrEqual(t, result.Breakdown.Skills, 0.1)
	assert.NotEmpty(t, result.MissingSkills)
	assert.Empty(t, result.MatchedSkills)

	designer := &peso.Applicant{ID: "d1", OtherSkills: peso.StringList{"Adobe Photoshop"}}
	result = scorer.Calculate(designer, job, false)
	assert.GreaterOrEqual(t, result.Breakdown.Skills, 0.7)
	assert.NotEmpty(t, result.MatchedSkills)
}

func TestSkillsScoreRules(t *testing.T) {
	cases := []struct {
		name       string
		jobSkills  []string
		appSkills  []string
		matched    []string
		want       float64
	}{
		{"no job skills", nil, []string{"welding"}, nil, 0.7},
		{"no applicant skills", []string{"welding"}, nil, nil, 0.1},
		{"zero matched", []string{"welding", "carpentry"}, []string{"baking"}, nil, 0.1},
		{"low coverage penalized", []string{"a", "b", "c", "d", "e"}, []string{"a"}, []string{"a"}, 0.2 * 0.4},
		{"half coverage", []string{"a", "b"}, []string{"a"}, []string{"a"}, 0.5},
		{"full coverage", []string{"a", "b"}, []string{"a", "b"}, []string{"a", "b"}, 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, scoreSkills(tc.jobSkills, tc.appSkills, tc.matched), 1e-9)
		})
	}
}

func TestEducationScore(t *testing.T) {
	cases := []struct {
		name     string
		attained string
		required string
		want     float64
	}{
		{"no requirement", "Elementary", "", 1.0},
		{"exceeds requirement", "Tertiary", "Senior High School", 1.0},
		{"meets requirement", "Senior High School", "Senior High School", 1.0},
		{"unknown attainment", "", "College Graduate", 0.6},
		{"one rank short", "Senior High School", "Vocational", 0.8},
		{"far short floors at 0.2", "Elementary", "Master's Degree", 0.2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			applicant := &peso.Applicant{EducationalAttainment: tc.attained}
			job := &peso.JobPosting{EducationLevel: tc.required}
			assert.InDelta(t, tc.want, scoreEducation(applicant, job), 1e-9)
		})
	}
}

func TestEducationScenarioTertiaryVsSeniorHigh(t *testing.T) {
	scorer := testScorer()
	applicant := &peso.Applicant{Education: peso.EducationList{{Level: "Tertiary"}}}
	job := &peso.JobPosting{Title: "Clerk", EducationLevel: "Senior High School"}

	result := scorer.Calculate(applicant, job, false)
	assert.Equal(t, 1.0, result.Breakdown.Education)
}

func TestLocationScorePriorityOrder(t *testing.T) {
	job := &peso.JobPosting{Location: "General Santos City, South Cotabato"}

	cases := []struct {
		name      string
		applicant peso.Applicant
		want      float64
	}{
		{"no job location", peso.Applicant{}, 1.0},
		{"municipality contained", peso.Applicant{Municipality: "General Santos City"}, 1.0},
		{"preferred location overlap", peso.Applicant{
			Municipality: "Koronadal City",
			Preferences:  peso.JobPreferences{PreferredLocal: peso.StringList{"General Santos"}},
		}, 0.95},
		{"same province", peso.Applicant{Municipality: "Polomolok", Province: "South Cotabato"}, 0.7},
		{"ofw relocation signal", peso.Applicant{Municipality: "Davao City", IsOFW: true}, 0.6},
		{"no signal", peso.Applicant{Municipality: "Davao City"}, 0.4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			j := job
			if tc.name == "no job location" {
				j = &peso.JobPosting{}
			}
			assert.InDelta(t, tc.want, scoreLocation(&tc.applicant, j), 1e-9)
		})
	}
}

func TestSalaryScore(t *testing.T) {
	cases := []struct {
		name      string
		expected  float64
		expPeriod string
		min, max  float64
		jobPeriod string
		want      float64
	}{
		{"job pays more than expected", 30000, "monthly", 35000, 35000, "monthly", 1.0},
		{"no job salary", 30000, "monthly", 0, 0, "", 1.0},
		{"no expectation", 0, "", 15000, 20000, "monthly", 0.8},
		{"within ten percent", 20000, "monthly", 0, 18500, "monthly", 1.0},
		{"small deficit", 20000, "monthly", 0, 17000, "monthly", 0.8},
		{"moderate deficit", 20000, "monthly", 0, 15000, "monthly", 0.6},
		{"large deficit", 20000, "monthly", 0, 13000, "monthly", 0.4},
		{"severe deficit", 20000, "monthly", 0, 9000, "monthly", 0.2},
		{"daily offer normalized", 13000, "monthly", 0, 500, "per day", 1.0},
		{"hourly expectation normalized", 75, "per hour", 0, 16000, "monthly", 1.0},
		{"yearly offer normalized", 20000, "monthly", 0, 240000, "yearly", 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			applicant := &peso.Applicant{Preferences: peso.JobPreferences{
				ExpectedSalary:       tc.expected,
				ExpectedSalaryPeriod: tc.expPeriod,
			}}
			job := &peso.JobPosting{SalaryMin: tc.min, SalaryMax: tc.max, SalaryPeriod: tc.jobPeriod}
			assert.InDelta(t, tc.want, scoreSalary(applicant, job), 1e-9)
		})
	}
}

func TestAvailabilityScore(t *testing.T) {
	eager := &peso.Applicant{
		ActivelyLooking:  true,
		WillingToStart:   true,
		EmploymentStatus: "Unemployed",
		WhenCanStart:     "Immediately",
	}
	assert.Equal(t, 1.0, scoreAvailability(eager))

	passive := &peso.Applicant{EmploymentStatus: "Employed"}
	assert.InDelta(t, 0.4, scoreAvailability(passive), 1e-9)

	oneWeek := &peso.Applicant{WhenCanStart: "within 1 week"}
	assert.InDelta(t, 0.55, scoreAvailability(oneWeek), 1e-9)
}

func TestExperienceScore(t *testing.T) {
	noReq := &peso.JobPosting{ExperienceRequired: "Willing to be trained"}
	assert.Equal(t, 1.0, scoreExperience(&peso.Applicant{}, noReq))

	entry := &peso.JobPosting{ExperienceRequired: "Entry level, fresh graduates welcome"}
	assert.Equal(t, 1.0, scoreExperience(&peso.Applicant{EmploymentStatus: "New Entrant"}, entry))
	assert.Equal(t, 0.95, scoreExperience(&peso.Applicant{
		WorkExperience: peso.WorkExperienceList{{Position: "Clerk"}},
	}, entry))
	assert.Equal(t, 0.7, scoreExperience(&peso.Applicant{}, entry))

	senior := &peso.JobPosting{ExperienceRequired: "At least 5 years as senior supervisor"}
	assert.Equal(t, 0.9, scoreExperience(&peso.Applicant{EmploymentStatus: "Employed"}, senior))
	assert.Equal(t, 0.2, scoreExperience(&peso.Applicant{EmploymentStatus: "New Entrant"}, senior))
	assert.Equal(t, 0.5, scoreExperience(&peso.Applicant{}, senior))

	general := &peso.JobPosting{ExperienceRequired: "2 years related experience"}
	assert.Equal(t, 0.85, scoreExperience(&peso.Applicant{IsOFW: true}, general))
	assert.Equal(t, 0.75, scoreExperience(&peso.Applicant{EmploymentStatus: "Underemployed"}, general))
	assert.Equal(t, 0.4, scoreExperience(&peso.Applicant{EmploymentStatus: "Fresh Graduate"}, general))
	assert.Equal(t, 0.6, scoreExperience(&peso.Applicant{}, general))
}

func TestDemographicScore(t *testing.T) {
	scorer := testScorer()

	primeAge := &peso.Applicant{DateOfBirth: "1995-06-15"}
	assert.InDelta(t, 0.7, scorer.scoreDemographic(primeAge), 1e-9)

	older := &peso.Applicant{DateOfBirth: "1965-06-15"} // 60
	assert.InDelta(t, 0.6, scorer.scoreDemographic(older), 1e-9)

	minor := &peso.Applicant{DateOfBirth: "2010-06-15"} // 15
	assert.InDelta(t, 0.3, scorer.scoreDemographic(minor), 1e-9)

	// A disclosed disability adds an accommodation flag, never a penalty.
	withDisability := &peso.Applicant{DateOfBirth: "1995-06-15", Disability: "Hearing impairment"}
	assert.InDelta(t, 0.8, scorer.scoreDemographic(withDisability), 1e-9)

	noDOB := &peso.Applicant{}
	assert.InDelta(t, 0.7, scorer.scoreDemographic(noDOB), 1e-9)
}

func TestCustomWeightsShiftTheTotal(t *testing.T) {
	applicant := &peso.Applicant{
		OtherSkills: peso.StringList{"Adobe Photoshop"},
		Education:   peso.EducationList{{Level: "Tertiary"}},
	}
	job := graphicDesignJob()

	base := testScorer().Calculate(applicant, job, false)
	skewed := testScorer(WithWeights(map[string]float64{"skills": 90})).Calculate(applicant, job, false)

	// Skills are a perfect match here, so weighting them harder raises the total.
	assert.Greater(t, skewed.Score, base.Score)
	assert.Equal(t, base.Breakdown, skewed.Breakdown)
}

func TestInsightsOnlyWhenRequested(t *testing.T) {
	applicant := &peso.Applicant{OtherSkills: peso.StringList{"Adobe Photoshop"}}
	job := graphicDesignJob()

	with := testScorer().Calculate(applicant, job, true)
	assert.NotEmpty(t, with.AIComment)
	assert.NotEmpty(t, with.HiringRecommendation)

	without := testScorer().Calculate(applicant, job, false)
	assert.Empty(t, without.AIComment)
	assert.Empty(t, without.HiringRecommendation)
	// Strengths and concerns are part of the base contract either way.
	assert.NotNil(t, without.Strengths)
}

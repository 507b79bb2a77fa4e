package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
)

func strongBreakdown() peso.Breakdown {
	return peso.Breakdown{
		Skills:       1.0,
		Education:    1.0,
		Location:     1.0,
		Salary:       1.0,
		Availability: 0.9,
		Experience:   0.9,
		Demographic:  0.7,
	}
}

func weakBreakdown() peso.Breakdown {
	return peso.Breakdown{
		Skills:       0.1,
		Education:    0.4,
		Location:     0.4,
		Salary:       0.4,
		Availability: 0.4,
		Experience:   0.3,
		Demographic:  0.5,
	}
}

func TestStrengthsThresholds(t *testing.T) {
	applicant := &peso.Applicant{ActivelyLooking: true}
	got := buildStrengths(strongBreakdown(), applicant)

	assert.Contains(t, got, "Strong skills alignment with the job requirements (100% match)")
	assert.Contains(t, got, "Meets or exceeds the educational requirement")
	assert.Contains(t, got, "Available to start work right away")
	assert.Contains(t, got, "Actively looking for work")

	got = buildStrengths(weakBreakdown(), &peso.Applicant{})
	assert.Empty(t, got)
}

func TestConcernsEmbedPercentages(t *testing.T) {
	applicant := &peso.Applicant{ActivelyLooking: true}
	got := buildConcerns(weakBreakdown(), applicant)

	assert.Contains(t, got, "Skills gap: only 10% of the required skills are evidenced")
	assert.Contains(t, got, "Educational attainment is below the requirement (40% match)")
	assert.Contains(t, got, "Experience level falls short of the requirement (30% match)")
	assert.Contains(t, got, "May not be available to start immediately")
}

func TestConcernsMidBandsUseSofterWording(t *testing.T) {
	b := peso.Breakdown{
		Skills:       0.6,
		Education:    0.7,
		Location:     0.6,
		Salary:       0.7,
		Availability: 0.8,
		Experience:   0.6,
	}
	got := buildConcerns(b, &peso.Applicant{ActivelyLooking: true})

	assert.Contains(t, got, "Partial skills match at 60%; some requirements are not covered")
	assert.Contains(t, got, "Educational attainment is slightly below the stated requirement")
	assert.Contains(t, got, "Work location is outside the applicant's immediate area")
	assert.NotContains(t, got, "May not be available to start immediately")
}

func TestDisabilityNoteIsInformational(t *testing.T) {
	applicant := &peso.Applicant{ActivelyLooking: true, Disability: "Low vision"}
	got := buildConcerns(strongBreakdown(), applicant)

	assert.Contains(t, got, "Disclosed disability (Low vision); workplace accommodation may be needed")

	none := buildConcerns(strongBreakdown(), &peso.Applicant{ActivelyLooking: true, Disability: "None"})
	assert.Empty(t, none)
}

func TestInactiveApplicantConcern(t *testing.T) {
	got := buildConcerns(strongBreakdown(), &peso.Applicant{})
	assert.Contains(t, got, "Not flagged as actively looking for work; confirm interest before endorsement")
}

func TestCommentAndRecommendationFollowBands(t *testing.T) {
	job := &peso.JobPosting{Title: "Welder"}

	strong := Build(strongBreakdown(), []string{"welding"}, nil, &peso.Applicant{}, job)
	assert.Contains(t, strong.Comment, "Excellent candidate for Welder")
	assert.Contains(t, strong.HiringRecommendation, "Endorse for interview immediately")

	weak := Build(weakBreakdown(), nil, []string{"welding"}, &peso.Applicant{}, job)
	assert.Contains(t, weak.Comment, "Weak fit for Welder")
	assert.Contains(t, weak.HiringRecommendation, "Do not endorse")
}

func TestCommentNamesWeakestDimension(t *testing.T) {
	b := strongBreakdown()
	b.Skills = 0.9
	b.Location = 0.5
	got := buildComment(70, b, &peso.JobPosting{Title: "Cashier"})
	assert.Contains(t, got, "location")
}

func TestWhyQualifiedListsTopMatches(t *testing.T) {
	job := &peso.JobPosting{Title: "Graphic Designer"}
	matched := []string{"adobe photoshop", "illustrator", "canva", "typography"}

	got := buildWhyQualified(85, matched, job)
	assert.Contains(t, got, "adobe photoshop, illustrator, canva")
	assert.NotContains(t, got, "typography")

	got = buildWhyQualified(55, nil, job)
	assert.Contains(t, got, "General profile factors")

	got = buildWhyQualified(20, nil, job)
	assert.Contains(t, got, "No direct qualifications")
}

func TestRoleSuggestions(t *testing.T) {
	cases := []struct {
		name    string
		matched []string
		skills  peso.StringList
		want    string
	}{
		{"from matched skills", []string{"graphic design"}, nil, "Graphic Designer, Layout Artist, Multimedia Assistant"},
		{"from profile skills", nil, peso.StringList{"Welding"}, "Welder, Fabrication Worker"},
		{"sewing", nil, peso.StringList{"sewing", "pattern making"}, "Sewer, Garment Worker"},
		{"fallback", nil, nil, "General Labor, Entry-Level Positions"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			applicant := &peso.Applicant{OtherSkills: tc.skills}
			assert.Equal(t, tc.want, suggestRole(tc.matched, applicant))
		})
	}
}

func TestDevelopmentAreasCappedAtThree(t *testing.T) {
	got := buildDevelopmentAreas(weakBreakdown(), []string{"welding", "carpentry"})
	assert.Len(t, got, 3)
	// Weakest dimensions come first, ordered ascending.
	assert.Equal(t, "Build hands-on experience through OJT or short-term work", got[1])
	assert.Equal(t, "Upskill on the role's required tools and techniques", got[0])
}

func TestDevelopmentAreasIncludeMissingSkills(t *testing.T) {
	got := buildDevelopmentAreas(strongBreakdown(), []string{"forklift operation"})
	assert.Equal(t, []string{"Train on forklift operation"}, got)
}

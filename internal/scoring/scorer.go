// Package scoring implements the deterministic rule-based match scorer. It
// uses only locally available data, never calls external services, and never
// fails: bad input degrades to neutral sub-scores.
package scoring

import (
	"strings"
	"time"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/insights"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/skills"
)

// Scorer evaluates one applicant against one job posting.
type Scorer struct {
	taxonomy *skills.Taxonomy
	weights  peso.Weights

	// now is swappable so age computation stays deterministic under test.
	now func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights overlays partial weight overrides onto the defaults.
func WithWeights(overrides map[string]float64) Option {
	return func(s *Scorer) { s.weights = peso.DefaultWeights().Merge(overrides) }
}

// WithClock fixes the scorer's notion of "now".
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// WithTaxonomy swaps the skill taxonomy.
func WithTaxonomy(t *skills.Taxonomy) Option {
	return func(s *Scorer) { s.taxonomy = t }
}

func New(opts ...Option) *Scorer {
	s := &Scorer{
		taxonomy: skills.Default(),
		weights:  peso.DefaultWeights(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the scorer's merged (pre-normalization) weights.
func (s *Scorer) Weights() peso.Weights { return s.weights }

// Calculate produces a complete MatchScore for the pair. Insight text is
// attached only when requested.
func (s *Scorer) Calculate(applicant *peso.Applicant, job *peso.JobPosting, includeInsights bool) peso.MatchScore {
	jobSkills := s.taxonomy.Extract(job.SkillSourceText())
	applicantSkills := s.taxonomy.Extract(applicant.SkillText())

	matched, missing := s.partitionSkills(jobSkills, applicantSkills)

	breakdown := peso.Breakdown{
		Skills:       scoreSkills(jobSkills, applicantSkills, matched),
		Education:    scoreEducation(applicant, job),
		Location:     scoreLocation(applicant, job),
		Salary:       scoreSalary(applicant, job),
		Availability: scoreAvailability(applicant),
		Experience:   scoreExperience(applicant, job),
		Demographic:  s.scoreDemographic(applicant),
	}.Clamped()

	result := peso.MatchScore{
		ApplicantID:   applicant.ID,
		ApplicantName: applicant.FullName(),
		Breakdown:     breakdown,
		MatchedSkills: matched,
		MissingSkills: missing,
	}
	result.SetScore(s.weights.Score(breakdown))

	built := insights.Build(breakdown, matched, missing, applicant, job)
	result.Strengths = built.Strengths
	result.Concerns = built.Concerns
	if includeInsights {
		result.AIComment = built.Comment
		result.WhyQualified = built.WhyQualified
		result.HiringRecommendation = built.HiringRecommendation
		result.PotentialRole = built.PotentialRole
		result.DevelopmentAreas = built.DevelopmentAreas
	}

	return result
}

// partitionSkills splits the job's skill set into matched and missing,
// relation being taxonomy similarity against the applicant's set.
func (s *Scorer) partitionSkills(jobSkills, applicantSkills []string) (matched, missing []string) {
	matched = make([]string, 0, len(jobSkills))
	missing = make([]string, 0, len(jobSkills))
	for _, js := range jobSkills {
		if s.taxonomy.AnySimilar(js, applicantSkills) {
			matched = append(matched, js)
		} else {
			missing = append(missing, js)
		}
	}
	return matched, missing
}

// scoreSkills applies the coverage-ratio rules: an absent requirement cannot
// penalize, an empty applicant set nearly zeroes the dimension, and partial
// coverage below half is steeply discounted.
func scoreSkills(jobSkills, applicantSkills, matched []string) float64 {
	if len(jobSkills) == 0 {
		return 0.7
	}
	if len(applicantSkills) == 0 {
		return 0.1
	}
	if len(matched) == 0 {
		return 0.1
	}
	ratio := float64(len(matched)) / float64(len(jobSkills))
	if ratio < 0.5 {
		return ratio * 0.4
	}
	return ratio
}

func (s *Scorer) scoreDemographic(applicant *peso.Applicant) float64 {
	score := 0.5
	age := applicant.Age(s.now())
	switch {
	case age < 18:
		score -= 0.2
	case age <= 55:
		score += 0.2
	case age <= 65:
		score += 0.1
	}
	// A disclosed disability flags accommodation needs; it never penalizes.
	if applicant.HasDisclosedDisability() {
		score += 0.1
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

func scoreAvailability(applicant *peso.Applicant) float64 {
	score := 0.5
	if applicant.ActivelyLooking {
		score += 0.2
	}
	if applicant.WillingToStart {
		score += 0.2
	}
	switch applicant.Category() {
	case peso.CategoryUnemployed, peso.CategoryNewEntrant:
		score += 0.1
	case peso.CategoryUnderemployed:
		score += 0.05
	case peso.CategoryEmployed:
		score -= 0.1
	}
	start := strings.ToLower(applicant.WhenCanStart)
	if strings.Contains(start, "immediately") {
		score += 0.1
	} else if strings.Contains(start, "1 week") {
		score += 0.05
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

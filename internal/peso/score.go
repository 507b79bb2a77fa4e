package peso

import (
	"math"
	"strings"
)

// Recommendation is the hiring-recommendation band derived from the overall score.
type Recommendation string

const (
	HighlyRecommended Recommendation = "Highly Recommended"
	Recommended       Recommendation = "Recommended"
	Consider          Recommendation = "Consider"
	NotSuitable       Recommendation = "Not Suitable"
)

// RecommendationFor maps a 0-100 score to its band.
func RecommendationFor(score float64) Recommendation {
	switch {
	case score >= 80:
		return HighlyRecommended
	case score >= 65:
		return Recommended
	case score >= 50:
		return Consider
	default:
		return NotSuitable
	}
}

// Breakdown holds the seven sub-scores, each in [0,1].
type Breakdown struct {
	Skills       float64 `json:"skillsMatch"`
	Education    float64 `json:"educationMatch"`
	Location     float64 `json:"locationMatch"`
	Salary       float64 `json:"salaryMatch"`
	Availability float64 `json:"availabilityMatch"`
	Experience   float64 `json:"experienceMatch"`
	Demographic  float64 `json:"demographicMatch"`
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// Clamped returns the breakdown with every dimension forced into [0,1].
func (b Breakdown) Clamped() Breakdown {
	return Breakdown{
		Skills:       clamp01(b.Skills),
		Education:    clamp01(b.Education),
		Location:     clamp01(b.Location),
		Salary:       clamp01(b.Salary),
		Availability: clamp01(b.Availability),
		Experience:   clamp01(b.Experience),
		Demographic:  clamp01(b.Demographic),
	}
}

// Weights assigns relative importance to each dimension. The defaults sum to
// 100 with skills dominating, so that applicants with generic or unrelated
// skills cannot score well on the remaining dimensions alone.
type Weights struct {
	Skills       float64
	Education    float64
	Experience   float64
	Location     float64
	Availability float64
	Salary       float64
	Demographic  float64
}

func DefaultWeights() Weights {
	return Weights{
		Skills:       50,
		Education:    15,
		Experience:   15,
		Location:     10,
		Availability: 5,
		Salary:       3,
		Demographic:  2,
	}
}

// Merge overlays positive overrides onto w. Keys are the dimension names,
// with or without the "Match" suffix, case-insensitive.
func (w Weights) Merge(overrides map[string]float64) Weights {
	for key, value := range overrides {
		if value <= 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(key), "Match"))
		name = strings.TrimSuffix(name, "match")
		switch name {
		case "skills":
			w.Skills = value
		case "education":
			w.Education = value
		case "experience":
			w.Experience = value
		case "location":
			w.Location = value
		case "availability":
			w.Availability = value
		case "salary":
			w.Salary = value
		case "demographic":
			w.Demographic = value
		}
	}
	return w
}

func (w Weights) sum() float64 {
	return w.Skills + w.Education + w.Experience + w.Location + w.Availability + w.Salary + w.Demographic
}

// Normalized rescales the weights to sum to 100. A non-positive total falls
// back to the defaults.
func (w Weights) Normalized() Weights {
	total := w.sum()
	if total <= 0 {
		return DefaultWeights()
	}
	factor := 100 / total
	return Weights{
		Skills:       w.Skills * factor,
		Education:    w.Education * factor,
		Experience:   w.Experience * factor,
		Location:     w.Location * factor,
		Availability: w.Availability * factor,
		Salary:       w.Salary * factor,
		Demographic:  w.Demographic * factor,
	}
}

// Score computes the weighted total in [0,100] from a clamped breakdown.
func (w Weights) Score(b Breakdown) float64 {
	b = b.Clamped()
	n := w.Normalized()
	return b.Skills*n.Skills +
		b.Education*n.Education +
		b.Experience*n.Experience +
		b.Location*n.Location +
		b.Availability*n.Availability +
		b.Salary*n.Salary +
		b.Demographic*n.Demographic
}

// MatchScore is the engine's output for one applicant against one job.
type MatchScore struct {
	ApplicantID   string    `json:"applicantId"`
	ApplicantName string    `json:"applicantName"`
	Score         float64   `json:"score"`
	Percentage    int       `json:"percentage"`
	Breakdown     Breakdown `json:"breakdown"`

	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
	Strengths     []string `json:"strengths"`
	Concerns      []string `json:"concerns"`

	Recommendation Recommendation `json:"recommendation"`

	// Populated only when insights were requested.
	AIComment            string   `json:"aiComment,omitempty"`
	WhyQualified         string   `json:"whyQualified,omitempty"`
	HiringRecommendation string   `json:"hiringRecommendation,omitempty"`
	PotentialRole        string   `json:"potentialRole,omitempty"`
	DevelopmentAreas     []string `json:"developmentAreas,omitempty"`
}

// SetScore keeps Score, Percentage, and Recommendation consistent.
func (m *MatchScore) SetScore(score float64) {
	m.Score = score
	m.Percentage = int(math.Round(score))
	m.Recommendation = RecommendationFor(score)
}

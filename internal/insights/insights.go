// Package insights turns a score breakdown into human-readable narrative
// text. It is deterministic and shared by the rule-based path and the
// per-field backfill of the external-model path.
package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
)

// Insights is the narrative output for one match.
type Insights struct {
	Strengths            []string
	Concerns             []string
	Comment              string
	WhyQualified         string
	HiringRecommendation string
	PotentialRole        string
	DevelopmentAreas     []string
}

func pct(v float64) int { return int(v*100 + 0.5) }

// Build derives the full narrative from one breakdown. The overall score is
// recomputed with default weights only for band selection; callers that
// reweight keep their own score on the MatchScore.
func Build(breakdown peso.Breakdown, matched, missing []string, applicant *peso.Applicant, job *peso.JobPosting) Insights {
	score := peso.DefaultWeights().Score(breakdown)

	out := Insights{
		Strengths:        buildStrengths(breakdown, applicant),
		Concerns:         buildConcerns(breakdown, applicant),
		PotentialRole:    suggestRole(matched, applicant),
		DevelopmentAreas: buildDevelopmentAreas(breakdown, missing),
	}
	out.Comment = buildComment(score, breakdown, job)
	out.WhyQualified = buildWhyQualified(score, matched, job)
	out.HiringRecommendation = buildHiringRecommendation(score)
	return out
}

func buildStrengths(b peso.Breakdown, applicant *peso.Applicant) []string {
	strengths := make([]string, 0, 8)
	if b.Skills >= 0.8 {
		strengths = append(strengths, fmt.Sprintf("Strong skills alignment with the job requirements (%d%% match)", pct(b.Skills)))
	}
	if b.Education >= 0.9 {
		strengths = append(strengths, "Meets or exceeds the educational requirement")
	}
	if b.Location >= 0.9 {
		strengths = append(strengths, "Located within or near the job's work location")
	}
	if b.Salary >= 0.9 {
		strengths = append(strengths, "Salary expectation fits the offered range")
	}
	if b.Availability >= 0.8 {
		strengths = append(strengths, "Available to start work right away")
	}
	if b.Experience >= 0.8 {
		strengths = append(strengths, "Work history fits the experience requirement")
	}
	if applicant.ActivelyLooking {
		strengths = append(strengths, "Actively looking for work")
	}
	if applicant.IsOFW {
		strengths = append(strengths, "Overseas work experience as an OFW")
	}
	if applicant.Category() == peso.CategoryEmployed && !applicant.IsOFW {
		strengths = append(strengths, "Currently employed, indicating up-to-date work habits")
	}
	return strengths
}

func buildConcerns(b peso.Breakdown, applicant *peso.Applicant) []string {
	concerns := make([]string, 0, 8)

	switch {
	case b.Skills < 0.5:
		concerns = append(concerns, fmt.Sprintf("Skills gap: only %d%% of the required skills are evidenced", pct(b.Skills)))
	case b.Skills < 0.7:
		concerns = append(concerns, fmt.Sprintf("Partial skills match at %d%%; some requirements are not covered", pct(b.Skills)))
	}

	switch {
	case b.Education < 0.5:
		concerns = append(concerns, fmt.Sprintf("Educational attainment is below the requirement (%d%% match)", pct(b.Education)))
	case b.Education < 0.8:
		concerns = append(concerns, "Educational attainment is slightly below the stated requirement")
	}

	switch {
	case b.Location < 0.5:
		concerns = append(concerns, fmt.Sprintf("Lives far from the work location (%d%% match); relocation or commute needs confirming", pct(b.Location)))
	case b.Location < 0.7:
		concerns = append(concerns, "Work location is outside the applicant's immediate area")
	}

	switch {
	case b.Salary < 0.5:
		concerns = append(concerns, fmt.Sprintf("Salary expectation is well above the offer (%d%% match)", pct(b.Salary)))
	case b.Salary < 0.8:
		concerns = append(concerns, "Salary expectation is somewhat above the offered range")
	}

	switch {
	case b.Experience < 0.5:
		concerns = append(concerns, fmt.Sprintf("Experience level falls short of the requirement (%d%% match)", pct(b.Experience)))
	case b.Experience < 0.7:
		concerns = append(concerns, "Experience partially matches the requirement; probe depth during interview")
	}

	if b.Availability < 0.5 {
		concerns = append(concerns, "May not be available to start immediately")
	}

	// Informational only; accommodation is never treated as a negative.
	if applicant.HasDisclosedDisability() {
		concerns = append(concerns, fmt.Sprintf("Disclosed disability (%s); workplace accommodation may be needed", strings.TrimSpace(applicant.Disability)))
	}
	if !applicant.ActivelyLooking {
		concerns = append(concerns, "Not flagged as actively looking for work; confirm interest before endorsement")
	}

	return concerns
}

func buildComment(score float64, b peso.Breakdown, job *peso.JobPosting) string {
	title := strings.TrimSpace(job.Title)
	if title == "" {
		title = "this position"
	}
	switch {
	case score >= 80:
		return fmt.Sprintf("Excellent candidate for %s with strong alignment across skills, education, and availability.", title)
	case score >= 65:
		return fmt.Sprintf("Good candidate for %s; most requirements are met with minor gaps in %s.", title, weakestDimension(b))
	case score >= 50:
		return fmt.Sprintf("Possible candidate for %s, but the gap in %s should be assessed during screening.", title, weakestDimension(b))
	default:
		return fmt.Sprintf("Weak fit for %s; the profile diverges from the requirements, mainly on %s.", title, weakestDimension(b))
	}
}

func buildWhyQualified(score float64, matched []string, job *peso.JobPosting) string {
	title := strings.TrimSpace(job.Title)
	if title == "" {
		title = "the position"
	}
	if len(matched) > 0 {
		shown := matched
		if len(shown) > 3 {
			shown = shown[:3]
		}
		return fmt.Sprintf("Demonstrates %s, directly relevant to %s.", strings.Join(shown, ", "), title)
	}
	if score >= 50 {
		return fmt.Sprintf("General profile factors (education, location, availability) support consideration for %s.", title)
	}
	return fmt.Sprintf("No direct qualifications were identified for %s.", title)
}

func buildHiringRecommendation(score float64) string {
	switch {
	case score >= 80:
		return "Endorse for interview immediately; strong overall match."
	case score >= 65:
		return "Endorse for interview; verify the weaker areas noted above."
	case score >= 50:
		return "Shortlist as a secondary candidate; screen before endorsement."
	default:
		return "Do not endorse for this vacancy; consider alternative referrals."
	}
}

// roleSuggestions maps a skill keyword fragment to alternative job
// categories, used when an applicant is a poor fit for the scored vacancy.
var roleSuggestions = []struct {
	keyword string
	roles   string
}{
	{"design", "Graphic Designer, Layout Artist, Multimedia Assistant"},
	{"web", "Web Developer, Website Maintenance Staff"},
	{"program", "Junior Programmer, Software Support"},
	{"data", "Data Encoder, Administrative Aide"},
	{"office", "Administrative Assistant, Office Clerk"},
	{"clerical", "Office Clerk, Records Assistant"},
	{"customer", "Customer Service Representative, Call Center Agent"},
	{"sales", "Sales Associate, Merchandiser"},
	{"cashier", "Cashier, Store Crew"},
	{"cook", "Kitchen Staff, Food Service Crew"},
	{"food", "Food Service Crew, Catering Staff"},
	{"bak", "Baker, Pastry Assistant"},
	{"housekeep", "Housekeeping Staff, Room Attendant"},
	{"driv", "Company Driver, Delivery Rider"},
	{"weld", "Welder, Fabrication Worker"},
	{"carpentr", "Carpenter, Construction Worker"},
	{"electric", "Electrician, Maintenance Technician"},
	{"sew", "Sewer, Garment Worker"},
	{"nurs", "Caregiver, Clinic Aide"},
	{"care", "Caregiver, Health Aide"},
	{"teach", "Tutor, Teaching Aide"},
	{"security", "Security Guard, Safety Officer"},
	{"farm", "Farm Worker, Agricultural Technician"},
	{"warehouse", "Warehouse Staff, Inventory Clerk"},
	{"machine", "Machine Operator, Production Worker"},
}

func suggestRole(matched []string, applicant *peso.Applicant) string {
	pool := strings.ToLower(strings.Join(matched, " ") + " " + applicant.SkillText())
	for _, suggestion := range roleSuggestions {
		if strings.Contains(pool, suggestion.keyword) {
			return suggestion.roles
		}
	}
	return "General Labor, Entry-Level Positions"
}

type dimension struct {
	name  string
	value float64
}

func dimensions(b peso.Breakdown) []dimension {
	return []dimension{
		{"skills", b.Skills},
		{"education", b.Education},
		{"experience", b.Experience},
		{"location", b.Location},
		{"availability", b.Availability},
		{"salary expectations", b.Salary},
	}
}

func weakestDimension(b peso.Breakdown) string {
	dims := dimensions(b)
	weakest := dims[0]
	for _, d := range dims[1:] {
		if d.value < weakest.value {
			weakest = d
		}
	}
	return weakest.name
}

var developmentLabels = map[string]string{
	"skills":              "Upskill on the role's required tools and techniques",
	"education":           "Pursue further education or equivalency certification",
	"experience":          "Build hands-on experience through OJT or short-term work",
	"location":            "Consider roles closer to home or confirm relocation plans",
	"availability":        "Clarify availability and earliest start date",
	"salary expectations": "Align salary expectations with prevailing local rates",
}

// buildDevelopmentAreas lists the weakest dimensions plus concrete missing
// skills, capped at three items.
func buildDevelopmentAreas(b peso.Breakdown, missing []string) []string {
	dims := dimensions(b)
	sort.SliceStable(dims, func(i, j int) bool { return dims[i].value < dims[j].value })

	areas := make([]string, 0, 3)
	for _, d := range dims {
		if len(areas) == 3 {
			return areas
		}
		if d.value < 0.6 {
			areas = append(areas, developmentLabels[d.name])
		}
	}
	for _, skill := range missing {
		if len(areas) == 3 {
			break
		}
		areas = append(areas, fmt.Sprintf("Train on %s", skill))
	}
	return areas
}

package match

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
)

// buildPrompt fills the embedded template with the job payload and a
// formatted applicant profile.
func buildPrompt(applicant *peso.Applicant, job *peso.JobPosting) string {
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		jobJSON = []byte(fmt.Sprintf("%+v", job))
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{JOB_JSON}}", string(jobJSON))
	prompt = strings.ReplaceAll(prompt, "{{APPLICANT_PROFILE}}", formatProfile(applicant))
	return prompt
}

// formatProfile renders the applicant as labeled sections, merging the
// structured NSRP fields with the legacy scalars and deduplicating.
func formatProfile(a *peso.Applicant) string {
	var b strings.Builder
	section := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}

	section("Name", a.FullName())
	section("Sex", a.Sex)
	section("Civil Status", a.CivilStatus)
	section("Location", joinNonEmpty(", ", a.Barangay, a.Municipality, a.Province))
	section("Employment Status", a.EmploymentStatus)
	if a.IsOFW {
		section("OFW", "yes")
	}
	if a.HasDisclosedDisability() {
		section("Disability", a.Disability)
	}
	section("Education", formatEducation(a))
	section("Technical Training", formatTraining(a))
	section("Work Experience", formatWorkExperience(a))
	section("Language Proficiency", formatLanguages(a))
	section("Skills", formatSkills(a))
	section("Preferred Occupations", strings.Join(a.PreferredOccupationList(), "; "))
	section("Job Preferences", formatPreferences(a))
	section("Availability", formatAvailability(a))

	return b.String()
}

func formatEducation(a *peso.Applicant) string {
	entries := make([]string, 0, len(a.Education)+1)
	for _, e := range a.Education {
		entries = appendUnique(entries, joinNonEmpty(" - ", e.Level, e.Course, e.School))
	}
	if len(entries) == 0 {
		entries = appendUnique(entries, joinNonEmpty(" - ", a.EducationalAttainment, a.Course))
	}
	return strings.Join(entries, "; ")
}

func formatTraining(a *peso.Applicant) string {
	entries := make([]string, 0, len(a.Training))
	for _, t := range a.Training {
		entry := joinNonEmpty(" - ", t.Course, t.Institution)
		if skills := strings.TrimSpace(t.SkillsAcquired); skills != "" {
			entry = joinNonEmpty(" - ", entry, "skills: "+skills)
		}
		entries = appendUnique(entries, entry)
	}
	return strings.Join(entries, "; ")
}

func formatWorkExperience(a *peso.Applicant) string {
	entries := make([]string, 0, len(a.WorkExperience))
	for _, w := range a.WorkExperience {
		entry := joinNonEmpty(" at ", w.Position, w.Company)
		if period := joinNonEmpty(" to ", w.From, w.To); period != "" {
			entry = joinNonEmpty(", ", entry, period)
		}
		entries = appendUnique(entries, entry)
	}
	return strings.Join(entries, "; ")
}

func formatLanguages(a *peso.Applicant) string {
	entries := make([]string, 0, len(a.Languages))
	for _, l := range a.Languages {
		abilities := make([]string, 0, 4)
		if l.CanSpeak {
			abilities = append(abilities, "speak")
		}
		if l.CanRead {
			abilities = append(abilities, "read")
		}
		if l.CanWrite {
			abilities = append(abilities, "write")
		}
		if l.CanUnderstand {
			abilities = append(abilities, "understand")
		}
		entry := strings.TrimSpace(l.Language)
		if entry != "" && len(abilities) > 0 {
			entry = fmt.Sprintf("%s (%s)", entry, strings.Join(abilities, "/"))
		}
		entries = appendUnique(entries, entry)
	}
	return strings.Join(entries, "; ")
}

func formatSkills(a *peso.Applicant) string {
	entries := make([]string, 0, len(a.OtherSkills))
	for _, s := range a.OtherSkills {
		entries = appendUnique(entries, s)
	}
	if len(entries) == 0 {
		for _, s := range peso.SplitList(a.OtherSkillsTraining) {
			entries = appendUnique(entries, s)
		}
	}
	return strings.Join(entries, ", ")
}

func formatPreferences(a *peso.Applicant) string {
	p := a.Preferences
	parts := make([]string, 0, 5)
	if v := strings.TrimSpace(p.EmploymentType); v != "" {
		parts = append(parts, "employment type: "+v)
	}
	if len(p.PreferredLocal) > 0 {
		parts = append(parts, "preferred locations: "+strings.Join(p.PreferredLocal, ", "))
	}
	if len(p.PreferredOverseas) > 0 {
		parts = append(parts, "preferred overseas: "+strings.Join(p.PreferredOverseas, ", "))
	}
	if len(p.Industries) > 0 {
		parts = append(parts, "industries: "+strings.Join(p.Industries, ", "))
	}
	if p.ExpectedSalary > 0 {
		period := strings.TrimSpace(p.ExpectedSalaryPeriod)
		if period == "" {
			period = "monthly"
		}
		parts = append(parts, fmt.Sprintf("expected salary: %.0f (%s)", p.ExpectedSalary, period))
	}
	return strings.Join(parts, "; ")
}

func formatAvailability(a *peso.Applicant) string {
	parts := make([]string, 0, 3)
	if a.ActivelyLooking {
		parts = append(parts, "actively looking for work")
	}
	if a.WillingToStart {
		parts = append(parts, "willing to start immediately")
	}
	if v := strings.TrimSpace(a.WhenCanStart); v != "" {
		parts = append(parts, "can start: "+v)
	}
	return strings.Join(parts, "; ")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func appendUnique(list []string, entry string) []string {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return list
	}
	for _, existing := range list {
		if strings.EqualFold(existing, entry) {
			return list
		}
	}
	return append(list, entry)
}

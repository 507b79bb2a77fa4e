package match

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	_ "embed"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/ai"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/insights"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/logger"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
)

//go:embed prompt.md
var promptTemplate string

//go:embed system.md
var systemPrompt string

//go:embed response_schema.json
var responseSchemaData string

const (
	aiTemperature       = 0.1
	defaultPreviewLimit = 200
)

var responseSchema = gojsonschema.NewStringLoader(responseSchemaData)

// aiScorer obtains one higher-fidelity MatchScore per applicant/job pair from
// the external model, enforcing the same output contract as the rule-based
// path. Every failure substitutes the supplied fallback score.
type aiScorer struct {
	completer       ai.Completer
	logger          *zap.Logger
	weights         peso.Weights
	customWeights   bool
	includeInsights bool
}

func newAIScorer(completer ai.Completer, log *zap.Logger, weights peso.Weights, customWeights, includeInsights bool) *aiScorer {
	return &aiScorer{
		completer:       completer,
		logger:          log,
		weights:         weights,
		customWeights:   customWeights,
		includeInsights: includeInsights,
	}
}

// Score evaluates one pair. On any error (network, malformed JSON, schema
// violation) it logs and returns the rule-based fallback unchanged.
func (s *aiScorer) Score(ctx context.Context, applicant *peso.Applicant, job *peso.JobPosting, fallback peso.MatchScore) peso.MatchScore {
	prompt := buildPrompt(applicant, job)

	s.logger.Debug("ai scoring request",
		zap.String("applicant_id", applicant.ID),
		zap.String("job_id", job.ID),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, defaultPreviewLimit)),
	)

	raw, err := s.completer.Complete(ctx, ai.CompletionRequest{
		Prompt:       prompt,
		SystemPrompt: systemPrompt,
		Temperature:  aiTemperature,
	})
	if err != nil {
		s.logger.Warn("ai scoring failed; using rule-based score",
			zap.String("applicant_id", applicant.ID),
			zap.Error(err),
		)
		return fallback
	}

	s.logger.Debug("ai scoring response",
		zap.String("applicant_id", applicant.ID),
		zap.String("response_preview", logger.TruncateForLog(raw, defaultPreviewLimit)),
	)

	parsed, err := parseResponse(raw)
	if err != nil {
		s.logger.Warn("ai response rejected; using rule-based score",
			zap.String("applicant_id", applicant.ID),
			zap.Error(err),
		)
		return fallback
	}

	return s.assemble(parsed, applicant, job, fallback)
}

// aiResponse mirrors the JSON contract the prompt instructs the model to
// return. Missing optional fields are backfilled from the narrative
// generator.
type aiResponse struct {
	Score     float64        `json:"score"`
	Breakdown peso.Breakdown `json:"breakdown"`

	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
	Strengths     []string `json:"strengths"`
	Concerns      []string `json:"concerns"`

	AIComment            string   `json:"aiComment"`
	WhyQualified         string   `json:"whyQualified"`
	HiringRecommendation string   `json:"hiringRecommendation"`
	PotentialRole        string   `json:"potentialRole"`
	DevelopmentAreas     []string `json:"developmentAreas"`
}

// assemble maps the external response into a MatchScore, re-deriving the
// aggregate from the returned sub-scores when custom weights are in play:
// the breakdown is the source of truth, not the model's own total.
func (s *aiScorer) assemble(resp *aiResponse, applicant *peso.Applicant, job *peso.JobPosting, fallback peso.MatchScore) peso.MatchScore {
	result := peso.MatchScore{
		ApplicantID:   applicant.ID,
		ApplicantName: applicant.FullName(),
		Breakdown:     resp.Breakdown.Clamped(),
		MatchedSkills: resp.MatchedSkills,
		MissingSkills: resp.MissingSkills,
		Strengths:     resp.Strengths,
		Concerns:      resp.Concerns,
	}
	if result.MatchedSkills == nil {
		result.MatchedSkills = fallback.MatchedSkills
	}
	if result.MissingSkills == nil {
		result.MissingSkills = fallback.MissingSkills
	}

	if s.customWeights {
		result.SetScore(s.weights.Score(result.Breakdown))
	} else {
		score := resp.Score
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		result.SetScore(score)
	}

	backfill := insights.Build(result.Breakdown, result.MatchedSkills, result.MissingSkills, applicant, job)
	if len(result.Strengths) == 0 {
		result.Strengths = backfill.Strengths
	}
	if len(result.Concerns) == 0 {
		result.Concerns = backfill.Concerns
	}
	if s.includeInsights {
		result.AIComment = firstNonEmpty(resp.AIComment, backfill.Comment)
		result.WhyQualified = firstNonEmpty(resp.WhyQualified, backfill.WhyQualified)
		result.HiringRecommendation = firstNonEmpty(resp.HiringRecommendation, backfill.HiringRecommendation)
		result.PotentialRole = firstNonEmpty(resp.PotentialRole, backfill.PotentialRole)
		result.DevelopmentAreas = resp.DevelopmentAreas
		if len(result.DevelopmentAreas) == 0 {
			result.DevelopmentAreas = backfill.DevelopmentAreas
		}
	}

	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parseResponse extracts the first balanced JSON object from the raw model
// output, validates it against the response schema, and unmarshals it.
func parseResponse(raw string) (*aiResponse, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("no json object found in response")
	}

	document := gojsonschema.NewStringLoader(cleaned)
	validation, err := gojsonschema.Validate(responseSchema, document)
	if err != nil {
		return nil, fmt.Errorf("validate ai response: %w", err)
	}
	if !validation.Valid() {
		details := make([]string, 0, len(validation.Errors()))
		for _, e := range validation.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("ai response violates schema: %s", strings.Join(details, "; "))
	}

	var resp aiResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("parse ai response: %w", err)
	}
	return &resp, nil
}

// extractJSON returns the first balanced {...} substring, tolerating code
// fences and surrounding prose. Strings and escapes inside the object are
// skipped so embedded braces do not unbalance the scan.
func extractJSON(raw string) string {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1]
				}
			}
		}
	}
	return ""
}

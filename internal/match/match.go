// Package match orchestrates the two-phase applicant ranking: a cheap
// deterministic pass over the whole pool, then selective external-model
// scoring of the top survivors. The entry point never returns an error and
// never panics; every failure degrades to rule-based scoring.
package match

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/ai"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/scoring"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/skills"
)

const (
	defaultMinScore = 50

	// prefilterMargin loosens the phase-1 threshold so candidates the
	// external model might rescue are not discarded early.
	prefilterMargin = 20

	// phase2TopN caps how many candidates are sent to the external model.
	phase2TopN = 15

	// batchSize bounds the external-call fan-out per batch.
	batchSize = 3

	// minPoolForAI: smaller pools gain nothing from the expensive pass.
	minPoolForAI = 10
)

// Options controls one Match call. Zero values mean: MinScore 50, unlimited
// results, AI enabled whenever a completer is available, insights included.
type Options struct {
	MinScore     int
	MaxResults   int
	DisableAI    bool
	SkipInsights bool
	// Weights overlays partial overrides onto the default dimension weights.
	Weights map[string]float64
}

func (o Options) minScore() int {
	if o.MinScore <= 0 {
		return defaultMinScore
	}
	return o.MinScore
}

// Matcher ranks an applicant pool against a job posting.
type Matcher struct {
	completer ai.Completer
	logger    *zap.Logger
	taxonomy  *skills.Taxonomy
	now       func() time.Time
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithClock fixes the matcher's notion of "now" for deterministic scoring.
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) { m.now = now }
}

// WithTaxonomy swaps the skill taxonomy.
func WithTaxonomy(t *skills.Taxonomy) Option {
	return func(m *Matcher) { m.taxonomy = t }
}

// New builds a Matcher. A nil completer means AI scoring is unavailable; the
// matcher then always runs rule-based only.
func New(completer ai.Completer, logger *zap.Logger, opts ...Option) *Matcher {
	if completer == nil {
		completer = ai.Unavailable{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Matcher{
		completer: completer,
		logger:    logger,
		taxonomy:  skills.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// candidate pairs an applicant with its rule-based score so phase 2 can both
// re-score and fall back per applicant.
type candidate struct {
	applicant *peso.Applicant
	score     peso.MatchScore
}

// Match returns the ranked, filtered match list. It always returns a slice,
// never an error: per-applicant AI failures substitute the rule-based score,
// and anything escaping the AI phases triggers a full rule-based recompute.
func (m *Matcher) Match(ctx context.Context, applicants []*peso.Applicant, job *peso.JobPosting, opts Options) []peso.MatchScore {
	if len(applicants) == 0 {
		return []peso.MatchScore{}
	}

	scorer := scoring.New(
		scoring.WithClock(m.now),
		scoring.WithTaxonomy(m.taxonomy),
		scoring.WithWeights(opts.Weights),
	)
	includeInsights := !opts.SkipInsights
	minScore := opts.minScore()

	// Phase 1: rule-score the whole pool with a loosened threshold.
	phase1 := make([]candidate, 0, len(applicants))
	for _, applicant := range applicants {
		if applicant == nil {
			continue
		}
		score := scorer.Calculate(applicant, job, includeInsights)
		if score.Percentage >= minScore-prefilterMargin {
			phase1 = append(phase1, candidate{applicant: applicant, score: score})
		}
	}
	sortCandidates(phase1)

	m.logger.Debug("phase 1 complete",
		zap.String("job_id", job.ID),
		zap.Int("pool", len(applicants)),
		zap.Int("prefiltered", len(phase1)),
	)

	useAI := !opts.DisableAI && m.completer.Available() && len(applicants) > minPoolForAI
	if !useAI {
		return finalize(phase1, minScore, opts.MaxResults)
	}

	merged, ok := m.runAIPhase(ctx, scorer, phase1, job, opts)
	if !ok {
		// Whole-operation failure: discard partial work, recompute rule-only.
		m.logger.Warn("ai phase failed; recomputing pool rule-based", zap.String("job_id", job.ID))
		recomputed := make([]candidate, 0, len(applicants))
		for _, applicant := range applicants {
			if applicant == nil {
				continue
			}
			score := scorer.Calculate(applicant, job, includeInsights)
			recomputed = append(recomputed, candidate{applicant: applicant, score: score})
		}
		sortCandidates(recomputed)
		return finalize(recomputed, minScore, opts.MaxResults)
	}

	return finalize(merged, minScore, opts.MaxResults)
}

// runAIPhase sends the top candidates through the external model in
// sequential batches of bounded concurrency, then merges with the untouched
// remainder. Worker panics are contained per applicant; ok is false only
// when the phase itself panics.
func (m *Matcher) runAIPhase(ctx context.Context, scorer *scoring.Scorer, phase1 []candidate, job *peso.JobPosting, opts Options) (merged []candidate, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("panic during ai scoring", zap.Any("panic", r))
			merged, ok = nil, false
		}
	}()

	topN := phase2TopN
	if len(phase1) < topN {
		topN = len(phase1)
	}
	top := phase1[:topN]
	remainder := phase1[topN:]

	aiScorer := newAIScorer(m.completer, m.logger, scorer.Weights(), len(opts.Weights) > 0, !opts.SkipInsights)

	rescored := make([]candidate, len(top))
	for start := 0; start < len(top); start += batchSize {
		end := start + batchSize
		if end > len(top) {
			end = len(top)
		}

		var group errgroup.Group
		for i := start; i < end; i++ {
			group.Go(func() error {
				// errgroup does not recover worker panics; each worker
				// shields itself so a panicking provider SDK costs one
				// applicant its AI score, not the process.
				defer func() {
					if r := recover(); r != nil {
						m.logger.Error("panic during ai scoring; keeping rule-based score",
							zap.String("applicant_id", top[i].applicant.ID),
							zap.Any("panic", r),
						)
						rescored[i] = top[i]
					}
				}()
				rescored[i] = candidate{
					applicant: top[i].applicant,
					score:     aiScorer.Score(ctx, top[i].applicant, job, top[i].score),
				}
				return nil
			})
		}
		// Workers never return errors: failures substitute the rule-based
		// score per applicant. Wait only synchronizes the batch.
		_ = group.Wait()
	}

	merged = make([]candidate, 0, len(phase1))
	merged = append(merged, rescored...)
	merged = append(merged, remainder...)
	sortCandidates(merged)
	return merged, true
}

func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score.Score > cands[j].score.Score
	})
}

// finalize applies the strict threshold, keeps the descending order, and
// truncates to maxResults (0 = unlimited).
func finalize(cands []candidate, minScore, maxResults int) []peso.MatchScore {
	out := make([]peso.MatchScore, 0, len(cands))
	for _, c := range cands {
		if c.score.Percentage < minScore {
			continue
		}
		out = append(out, c.score)
		if maxResults > 0 && len(out) == maxResults {
			break
		}
	}
	return out
}

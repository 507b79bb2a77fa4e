package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Ta1kunjms/gensanworks-matcher/internal/ai"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/ai/gemini"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/logger"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/match"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/peso"
	"github.com/Ta1kunjms/gensanworks-matcher/internal/secrets"
)

const (
	PromptExit          = "Exit"
	PromptResultsToFile = "Dump results to file"
	PromptReportByBand  = "Report by recommendation"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next action?",
	Items: []string{PromptResultsToFile, PromptReportByBand, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the matching engine over an applicant pool and a job posting",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("applicants", "a", "", "path to the applicant pool JSON file")
	runCmd.Flags().StringP("job", "b", "", "path to the job posting JSON file")
	runCmd.Flags().Int("min-score", 0, "minimum percentage a match must reach (default 50)")
	runCmd.Flags().Int("max-results", 0, "cap on returned matches (default unlimited)")
	runCmd.Flags().Bool("no-ai", false, "skip AI scoring even when a provider is configured")
	runCmd.Flags().BoolP("print-only", "y", false, "print results as JSON and exit without the action prompt")

	viper.BindPFlag("applicants-file", runCmd.Flags().Lookup("applicants"))
	viper.BindPFlag("job-file", runCmd.Flags().Lookup("job"))
	viper.BindPFlag("matching.min-score", runCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("matching.max-results", runCmd.Flags().Lookup("max-results"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the gensanworks-matcher", zap.String("version", version))

	if config.ApplicantsFile == "" || config.JobFile == "" {
		logger.Fatal("applicant pool and job posting files are required",
			zap.String("hint", "pass --applicants and --job or set applicants-file/job-file in the configuration file"),
		)
	}

	applicants, err := loadApplicants(config.ApplicantsFile)
	if err != nil {
		logger.Fatal("loading applicant pool", zap.Error(err))
	}

	job, err := loadJob(config.JobFile)
	if err != nil {
		logger.Fatal("loading job posting", zap.Error(err))
	}

	logger.Info("loaded inputs",
		zap.Int("applicants", len(applicants)),
		zap.String("job_title", job.Title),
	)

	completer := buildCompleter(ctx, config.AI, logger)

	matcher := match.New(completer, logger)
	opts := match.Options{
		MinScore:     config.Matching.MinScore,
		MaxResults:   config.Matching.MaxResults,
		SkipInsights: config.Matching.SkipInsights,
		Weights:      config.Matching.Weights,
		DisableAI:    cmd.Flag("no-ai").Value.String() == "true",
	}

	results := matcher.Match(ctx, applicants, job, opts)

	logger.Info("matching complete",
		zap.Int("pool", len(applicants)),
		zap.Int("matches", len(results)),
	)

	if cmd.Flag("print-only").Value.String() == "true" {
		pretty, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(pretty))
		return
	}

	printSummary(results)

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if err := handleAction(action, logger, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, results []peso.MatchScore) error {
	switch action {
	case PromptResultsToFile:
		filename, err := dumpResults(results)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptReportByBand:
		pretty, _ := json.MarshalIndent(reportByRecommendation(results), "", "  ")
		logger.Info(string(pretty), zap.Int("matches", len(results)))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// buildCompleter resolves the AI provider from the config. Any failure —
// disabled, missing key, unsupported provider — degrades to the unavailable
// completer so matching still runs rule-based.
func buildCompleter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) ai.Completer {
	if cfg == nil || !cfg.Enabled {
		logger.Info("ai scoring disabled; running rule-based only")
		return ai.Unavailable{}
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		logger.Warn("unsupported ai provider; running rule-based only", zap.String("provider", cfg.Provider))
		return ai.Unavailable{}
	}

	if cfg.Gemini == nil {
		logger.Warn("gemini configuration missing; running rule-based only")
		return ai.Unavailable{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		logger.Warn("gemini api key not available; running rule-based only",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file, GEMINI_API_KEY_FILE, or GEMINI_API_KEY"),
		)
		return ai.Unavailable{}
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		logger.Warn("building gemini client failed; running rule-based only", zap.Error(err))
		return ai.Unavailable{}
	}

	logger.Info("ai scoring enabled",
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)
	return generator
}

func loadApplicants(path string) ([]*peso.Applicant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var applicants []*peso.Applicant
	if err := json.Unmarshal(data, &applicants); err != nil {
		return nil, fmt.Errorf("parse applicant pool: %w", err)
	}
	return applicants, nil
}

func loadJob(path string) (*peso.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var job peso.JobPosting
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parse job posting: %w", err)
	}
	return &job, nil
}

func printSummary(results []peso.MatchScore) {
	for _, r := range results {
		fmt.Printf("%3d%%  %-22s %s\n", r.Percentage, r.Recommendation, r.ApplicantName)
	}
}

func reportByRecommendation(results []peso.MatchScore) map[peso.Recommendation]int {
	report := make(map[peso.Recommendation]int)
	for _, r := range results {
		report[r.Recommendation]++
	}
	return report
}

func dumpResults(results []peso.MatchScore) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return file.Name(), nil
}

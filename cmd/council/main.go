package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ideacouncil/internal/config"
	"ideacouncil/internal/council"
	"ideacouncil/internal/logging"
	"ideacouncil/internal/provider"
)

var (
	// Global flags
	verbose    bool
	apiKey     string
	configPath string

	// generate flags
	ideaCount      int
	painPoints     []string
	painPointsFile string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "council",
	Short: "Multi-model idea council with anonymous peer review",
	Long: `council orchestrates a panel of independently configured language
models: every member generates startup ideas from the supplied market pain
points, the council anonymously scores each other's candidates, and a
designated chairman synthesizes a final ranked list.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// generateCmd runs one full council session
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run a full council session over the given pain points",
	Long: `Runs the three-stage pipeline and prints the session result as JSON:
  1. Generation: every council member proposes ideas concurrently
  2. Review: members anonymously score each other's proposals
  3. Synthesis: the chairman merges the ranked proposals into a final list

Pain points come from repeated --pain-point flags and/or --pain-points-file
(one per line).`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}
	if ideaCount > 0 {
		cfg.Council.IdeaCount = ideaCount
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Initialize("."); err != nil {
		logger.Warn("category logging unavailable", zap.Error(err))
	}
	defer logging.CloseAll()

	points, err := collectPainPoints()
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no pain points supplied; use --pain-point or --pain-points-file")
	}

	client := provider.NewOpenRouterClientWithConfig(provider.OpenRouterConfig{
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.CallTimeoutDuration(),
		SiteURL:  cfg.LLM.SiteURL,
		SiteName: cfg.LLM.SiteName,
	})

	c := council.New(client, cfg.Council.Members, cfg.Council.ChairmanModel).
		WithSettings(council.Settings{
			MaxTokens:   cfg.Council.MaxTokens,
			Temperature: cfg.Council.Temperature,
		})

	// Ctrl-C cancels the whole session; in-flight calls resolve as errors.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting council session",
		zap.Int("members", len(cfg.Council.Members)),
		zap.Int("pain_points", len(points)),
		zap.Int("idea_count", cfg.Council.IdeaCount))

	result := c.GenerateIdeas(ctx, points, cfg.Council.IdeaCount, func(stage string) {
		logger.Info(stage)
		fmt.Fprintln(os.Stderr, stage)
	})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session result: %w", err)
	}
	fmt.Println(string(out))

	if result.Final.Error != "" {
		logger.Warn("session ended with error synthesis", zap.String("error", result.Final.Error))
	}
	return nil
}

// collectPainPoints merges --pain-point flags with the optional file
// (one pain point per line, blank lines and #-comments skipped).
func collectPainPoints() ([]string, error) {
	points := make([]string, 0, len(painPoints))
	for _, p := range painPoints {
		if p = strings.TrimSpace(p); p != "" {
			points = append(points, p)
		}
	}

	if painPointsFile == "" {
		return points, nil
	}

	f, err := os.Open(painPointsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open pain points file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		points = append(points, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pain points file: %w", err)
	}
	return points, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "OpenRouter API key (overrides config and env)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to config file")

	generateCmd.Flags().IntVarP(&ideaCount, "count", "n", 0, "Number of synthesized ideas to request")
	generateCmd.Flags().StringArrayVarP(&painPoints, "pain-point", "p", nil, "Market pain point (repeatable)")
	generateCmd.Flags().StringVarP(&painPointsFile, "pain-points-file", "f", "", "File with one pain point per line")

	rootCmd.AddCommand(generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

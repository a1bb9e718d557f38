package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appanalysis "github.com/bryanwahyu/code-doctor/internal/application/analysis"
	"github.com/bryanwahyu/code-doctor/internal/config"
	"github.com/bryanwahyu/code-doctor/internal/formatter"
	infraai "github.com/bryanwahyu/code-doctor/internal/infra/ai"
	"github.com/bryanwahyu/code-doctor/internal/logging"
)

type analyzeOptions struct {
	language     string
	errorMessage string
	outputFormat string
	configPath   string
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [FILE]",
		Short: "Analyze a code snippet with the configured model",
		Long: `Analyze a code snippet and its error message.

Examples:
  # Analyze a file
  codedoctor analyze main.py -l python -e "NameError: name 'y' is not defined"

  # Read code from stdin and print JSON
  cat app.js | codedoctor analyze -l javascript -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "Language of the snippet (python, javascript, ...)")
	cmd.Flags().StringVarP(&opts.errorMessage, "error", "e", "", "Error message produced by the snippet")
	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&opts.configPath, "config", configPath(), "Path to config file")
	_ = cmd.MarkFlagRequired("language")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *analyzeOptions) error {
	code, err := readSource(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := newCLILogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := contextWithTimeout(cmd, cfg.AI.Timeout)
	defer cancel()

	client, err := infraai.New(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("init model client: %w", err)
	}
	svc := appanalysis.NewService(client, logger)

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = fmt.Sprintf(" Analyzing with %s...", client.Name())
	s.Start()

	res, err := svc.Analyze(ctx, appanalysis.Command{
		Code:         code,
		Language:     opts.language,
		ErrorMessage: opts.errorMessage,
	})
	s.Stop()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printOutcome(cmd.ErrOrStderr(), res)
	return formatter.Render(cmd.OutOrStdout(), res.Analysis, opts.outputFormat)
}

// printOutcome writes a one-line status to stderr so stdout stays machine-readable.
func printOutcome(w io.Writer, res *appanalysis.Result) {
	if res.Fallback {
		color.New(color.FgYellow).Fprintln(w, "! model reply could not be parsed, showing a fallback analysis")
		return
	}
	if res.Duration > 0 {
		color.New(color.FgGreen).Fprintf(w, "✓ Analysis complete in %s\n", res.Duration.Round(time.Millisecond))
		return
	}
	color.New(color.FgGreen).Fprintln(w, "✓ Analysis complete")
}

// newCLILogger logs to stderr, keeping stdout clean for -o json
func newCLILogger() (*zap.Logger, error) {
	return logging.New("warn", "console")
}

func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// readSource reads the snippet from the file argument, or stdin when none is given.
func readSource(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func configPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "config.yaml"
}

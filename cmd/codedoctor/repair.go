package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appanalysis "github.com/bryanwahyu/code-doctor/internal/application/analysis"
	"github.com/bryanwahyu/code-doctor/internal/formatter"
)

type repairOptions struct {
	responsePath string
	codePath     string
	language     string
	outputFormat string
}

func newRepairCmd() *cobra.Command {
	opts := &repairOptions{}
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Repair a saved model reply into a full analysis",
		Long: `Run the extraction and normalization pipeline over a model reply saved to disk.
No model is called.

Examples:
  codedoctor repair --response reply.txt --code main.py --language python -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.responsePath, "response", "", "File holding the raw model reply (- for stdin)")
	cmd.Flags().StringVar(&opts.codePath, "code", "", "File holding the analyzed code")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "Language of the code")
	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", formatter.FormatJSON, "Output format (human, json, yaml)")
	_ = cmd.MarkFlagRequired("response")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("language")

	return cmd
}

func runRepair(cmd *cobra.Command, opts *repairOptions) error {
	var respArgs []string
	if opts.responsePath != "-" {
		respArgs = []string{opts.responsePath}
	}
	raw, err := readSource(cmd.InOrStdin(), respArgs)
	if err != nil {
		return err
	}
	code, err := os.ReadFile(opts.codePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.codePath, err)
	}

	logger, err := newCLILogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// no model client: Repair never calls one
	res, err := appanalysis.NewService(nil, logger).Repair(appanalysis.Command{
		Code:     string(code),
		Language: opts.language,
	}, raw)
	if err != nil {
		return err
	}

	printOutcome(cmd.ErrOrStderr(), res)
	return formatter.Render(cmd.OutOrStdout(), res.Analysis, opts.outputFormat)
}

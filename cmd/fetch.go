package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelquiz/internal/logging"
	"github.com/abhisek/levelquiz/internal/source"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Print the questions of a level without starting the quiz",
	Long: `Fetch one level from the configured source and print it.

Useful for checking that the quiz service is reachable or for reviewing
questions produced by an LLM provider. Answers are hidden unless --answers
is given.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Bool("answers", false, "mark the correct answer of each question")
	fetchCmd.Flags().Bool("json", false, "print the questions as JSON")
}

func runFetch(cmd *cobra.Command, args []string) error {
	showAnswers, _ := cmd.Flags().GetBool("answers")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	src, err := source.New(cmd.Context(), cfg.SourceConfig(), log, nil)
	if err != nil {
		return fmt.Errorf("init question source: %w", err)
	}

	qs, err := src.FetchQuestions(cmd.Context(), cfg.Level)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(qs)
	}

	fmt.Fprintf(out, "Level %d: %d questions\n", cfg.Level, len(qs))
	for i, q := range qs {
		fmt.Fprintf(out, "\nQ%d. %s\n", i+1, q.Prompt)
		for j, a := range q.Answers {
			mark := " "
			if showAnswers && j == q.CorrectIndex {
				mark = "✓"
			}
			fmt.Fprintf(out, "  %s %d) %s\n", mark, j+1, a)
		}
	}
	return nil
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelquiz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "levelquiz",
	Short: "Levelled multiple-choice quiz in the terminal",
	Long: `levelquiz plays multiple-choice quizzes level by level. Questions come from
the remote quiz service or, with --source llm, are written by an LLM.

Every flag can also be set with a LEVELQUIZ_* environment variable
(e.g. LEVELQUIZ_SOURCE_URL) or in a YAML file passed with --config.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig merges flags, environment and the optional config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	file, _ := cmd.Flags().GetString("config")
	return config.Load(v, file)
}

package cmd

import (
	"os"

	"github.com/msalah0e/cxgraph/internal/config"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	cfg      = config.Default()
	dataDir  string
	seedFlag int64
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "cxgraph",
	Short: "cxgraph — explore a construction graph",
	Long: ui.Brand.Sprint(ui.Glyph+" cxgraph") + " — browse constructions and their relations\n" +
		ui.Subtle.Sprint("Select a construction to see its neighborhood within a few hops"),
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyConfig(cmd, config.Load())
	},
}

func init() {
	rootCmd.SetVersionTemplate("cxgraph {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Directory holding constructions.json and relations.json")
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "Seed for layout and random selection (0 = clock)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		selectCmd(),
		randomCmd(),
		searchCmd(),
		listCmd(),
		statsCmd(),
		exploreCmd(),
		viewCmd(),
		historyCmd(),
		completionCmd(),
	)
}

// applyConfig layers the persistent flags over the loaded config.
func applyConfig(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		c.Data.Dir = dataDir
		c.Data.Constructions = ""
		c.Data.Relations = ""
	}
	if flags.Changed("seed") {
		c.Random.Seed = seedFlag
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		c.UI.Color = false
	}
	ui.SetColor(c.UI.Color)
	cfg = c
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

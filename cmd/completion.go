package cmd

import (
	"context"
	"io"
	"strings"

	"github.com/msalah0e/cxgraph/internal/config"
	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/spf13/cobra"
)

// completionCmd generates shell completion scripts.
func completionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate completion scripts for your shell.

  # Bash (add to ~/.bashrc)
  eval "$(cxgraph completion bash)"

  # Zsh (add to ~/.zshrc)
  eval "$(cxgraph completion zsh)"

  # Fish
  cxgraph completion fish | source

  # PowerShell
  cxgraph completion powershell | Out-String | Invoke-Expression`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				_ = rootCmd.GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				_ = rootCmd.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				_ = rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				_ = rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}

	return cmd
}

// constructionCompletionFunc completes construction ids from the data files.
// Completion skips the persistent pre-run, so the config is loaded here.
func constructionCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	applyConfig(cmd, config.Load())
	store, err := loadStore(context.Background(), cfg, nil, io.Discard)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completions(store, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completions(store *graph.Store, prefix string) []string {
	var out []string
	for _, id := range store.Range(graph.NodeID(prefix), 0) {
		if !strings.HasPrefix(string(id), prefix) {
			break
		}
		n, _ := store.Node(id)
		out = append(out, string(id)+"\t"+graph.FormatName(n.Name))
	}
	return out
}

// formatCompletionFunc completes --format values.
func formatCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return formats, cobra.ShellCompDirectiveNoFileComp
}

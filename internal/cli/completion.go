package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. Framework names,
// PHP versions and feature IDs complete as well as commands and flags.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for phpgen.

Bash:
  $ source <(phpgen completion bash)
  $ phpgen completion bash > /etc/bash_completion.d/phpgen

Zsh:
  $ phpgen completion zsh > "${fpath[1]}/_phpgen"

Fish:
  $ phpgen completion fish > ~/.config/fish/completions/phpgen.fish

PowerShell:
  PS> phpgen completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

package cmd

import (
	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for contribrole.

To load completions:

Bash:

  $ source <(contribrole completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ contribrole completion bash > /etc/bash_completion.d/contribrole
  # macOS:
  $ contribrole completion bash > $(brew --prefix)/etc/bash_completion.d/contribrole

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ contribrole completion zsh > "${fpath[1]}/_contribrole"

  # You will need to start a new shell for this setup to take effect.

Fish:

  $ contribrole completion fish | source

  # To load completions for each session, execute once:
  $ contribrole completion fish > ~/.config/fish/completions/contribrole.fish

PowerShell:

  PS> contribrole completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> contribrole completion powershell > contribrole.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		var err error
		switch args[0] {
		case "bash":
			err = cmd.Root().GenBashCompletion(out)
		case "zsh":
			err = cmd.Root().GenZshCompletion(out)
		case "fish":
			err = cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			err = cmd.Root().GenPowerShellCompletionWithDesc(out)
		}
		if err != nil {
			cmd.PrintErrf("Error generating completion: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

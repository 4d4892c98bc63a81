package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Ahmed-Tahan7/TestDiscord/internal/log"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/config"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/discord"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/mapping"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/notify"
)

var (
	assignMapping      string
	assignAPIURL       string
	assignWebhookURL   string
	assignDryRun       bool
	assignFailOnReject bool
)

// assignOptions carries command-line settings that are not part of config.Config
type assignOptions struct {
	DryRun       bool
	FailOnReject bool
}

var assignCmd = &cobra.Command{
	Use:     "assign",
	Aliases: []string{"a"},
	Short:   "Grant the contributor role to the current GitHub actor",
	Long: `Grant the contributor role to the GitHub user that triggered the workflow.

The actor is looked up in the mapping file. If there is no entry a warning is
printed and the command succeeds without touching Discord. Otherwise a single
PUT request grants the role; Discord answering 204 is a success, any other
status is reported but does not fail the step unless --fail-on-reject is set.

Configuration is read from the environment:
  • GITHUB_ACTOR         - GitHub username to look up (set by Actions)
  • DISCORD_BOT_TOKEN    - Bot token with Manage Roles permission
  • DISCORD_GUILD_ID     - Guild (server) ID
  • CONTRIBUTOR_ROLE_ID  - Role to grant
  • DISCORD_WEBHOOK_URL  - Optional webhook for announcements`,
	Example: `  # Inside a GitHub Actions step
  contribrole assign

  # Use a YAML mapping and fail the job when Discord rejects the grant
  contribrole assign --mapping .github/contributors.yaml --fail-on-reject

  # Show what would happen without calling Discord
  GITHUB_ACTOR=octocat contribrole assign --dry-run`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := config.FromEnv()
		if cmd.Flags().Changed("mapping") {
			cfg.MappingFile = assignMapping
		}
		if cmd.Flags().Changed("api-url") {
			cfg.APIURL = assignAPIURL
			cfg.ApplyDefaults()
		}
		if cmd.Flags().Changed("webhook") {
			cfg.WebhookURL = assignWebhookURL
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		result, err := runAssign(ctx, cfg, assignOptions{
			DryRun:       assignDryRun,
			FailOnReject: assignFailOnReject,
		})
		if err != nil {
			stop()
			log.Fatal(err)
		}
		log.Debug("Assignment finished: %s", result.Outcome)
	},
}

// runAssign wires the real dependencies and runs one assignment
func runAssign(ctx context.Context, cfg *config.Config, opts assignOptions) (*rolesync.Result, error) {
	table, err := mapping.Load(cfg.MappingFile)
	if err != nil {
		return nil, err
	}

	assigner := &rolesync.Assigner{
		Config:   cfg,
		Resolver: table,
		Granter:  discord.New(cfg.APIURL, cfg.BotToken),
		DryRun:   opts.DryRun,
	}

	if cfg.WebhookURL != "" {
		w, err := notify.NewWebhook(cfg.WebhookURL)
		if err != nil {
			log.Error("Webhook announcements disabled: %v", err)
		} else {
			assigner.Notifier = w
		}
	}

	result, err := assigner.Run(ctx)
	if err != nil {
		return nil, err
	}
	if opts.FailOnReject {
		if err := result.Err(); err != nil {
			return result, err
		}
	}
	return result, nil
}

func init() {
	rootCmd.AddCommand(assignCmd)

	assignCmd.Flags().StringVarP(&assignMapping, "mapping", "m", defaultMappingFile(), "Mapping file (or set CONTRIBUTOR_MAPPING_FILE env var)")
	assignCmd.Flags().StringVar(&assignAPIURL, "api-url", config.DefaultAPIURL, "Discord REST API base URL (or set DISCORD_API_URL env var)")
	assignCmd.Flags().StringVarP(&assignWebhookURL, "webhook", "w", "", "Discord webhook URL for announcements (or set DISCORD_WEBHOOK_URL env var)")
	assignCmd.Flags().BoolVar(&assignDryRun, "dry-run", false, "Resolve and validate without calling Discord")
	assignCmd.Flags().BoolVar(&assignFailOnReject, "fail-on-reject", false, "Exit non-zero when Discord does not answer 204")
}

// Package notify announces granted roles through a Discord webhook
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/webhook"

	"github.com/Ahmed-Tahan7/TestDiscord/internal/log"
)

// Grant describes a role that was just assigned
type Grant struct {
	Actor     string
	DiscordID string
	RoleID    string
}

// Webhook posts contributor announcements
type Webhook struct {
	client webhook.Client
}

// NewWebhook creates a notifier for the given webhook URL. opts are passed to
// the underlying disgo client.
func NewWebhook(url string, opts ...webhook.ConfigOpt) (*Webhook, error) {
	if url == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}

	client, err := webhook.NewWithURL(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook client: %w", err)
	}
	return &Webhook{client: client}, nil
}

// sanitize keeps GitHub logins from pinging the whole server
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "@everyone", "@everyon3")
	return strings.ReplaceAll(s, "@here", "@her3")
}

// BuildEmbed renders the announcement for g
func BuildEmbed(g Grant) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("🎉 New Contributor").
		SetDescription(fmt.Sprintf("Thanks **%s** for contributing! <@%s> now has the <@&%s> role.", sanitize(g.Actor), g.DiscordID, g.RoleID)).
		AddField("GitHub", fmt.Sprintf("[%s](https://github.com/%s)", sanitize(g.Actor), g.Actor), true).
		SetColor(0x2ECC71).
		SetTimestamp(time.Now()).
		Build()
}

// Notify sends the announcement for g
func (w *Webhook) Notify(g Grant) error {
	if _, err := w.client.CreateEmbeds([]discord.Embed{BuildEmbed(g)}); err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	log.Debug("Announced role grant for %s", g.Actor)
	return nil
}

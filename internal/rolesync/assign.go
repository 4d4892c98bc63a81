// Package rolesync grants a Discord guild role to the GitHub user behind a CI run.
package rolesync

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Ahmed-Tahan7/TestDiscord/internal/log"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/config"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/discord"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/errors"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/mapping"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/notify"
)

// RoleGranter performs the role grant request
type RoleGranter interface {
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) (*discord.Response, error)
}

// Notifier announces a successful grant
type Notifier interface {
	Notify(g notify.Grant) error
}

// Outcome is the terminal state of a run
type Outcome int

const (
	// OutcomeSkipped means the actor had no mapping and nothing was sent
	OutcomeSkipped Outcome = iota
	// OutcomeAssigned means Discord answered 204
	OutcomeAssigned
	// OutcomeRejected means Discord answered anything other than 204
	OutcomeRejected
	// OutcomePlanned means a dry run stopped before the request
	OutcomePlanned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeAssigned:
		return "assigned"
	case OutcomeRejected:
		return "rejected"
	case OutcomePlanned:
		return "planned"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result reports what a run did
type Result struct {
	Outcome   Outcome
	Actor     string
	DiscordID string

	// Set only when a request was sent
	StatusCode int
	Body       string
}

// Assigner runs one role assignment
type Assigner struct {
	Config   *config.Config
	Resolver mapping.Resolver
	Granter  RoleGranter

	// Optional
	Notifier Notifier
	DryRun   bool
}

// Run resolves the actor and grants the role. A missing mapping and a
// non-204 answer are both reported through the Result, not as errors. Errors
// are reserved for invalid configuration and failed transport.
func (a *Assigner) Run(ctx context.Context) (*Result, error) {
	if a.Config == nil || a.Resolver == nil || a.Granter == nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "assigner is missing a dependency")
	}
	cfg := a.Config

	discordID, ok := a.Resolver.Resolve(cfg.Actor)
	if !ok {
		log.Warn("No Discord user mapped for GitHub user '%s'.", cfg.Actor)
		return &Result{Outcome: OutcomeSkipped, Actor: cfg.Actor}, nil
	}
	log.Debug("Resolved %s to Discord ID %s", cfg.Actor, discordID)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := config.ParseSnowflake(fmt.Sprintf("Discord ID for %s", cfg.Actor), discordID); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMappingInvalid, err)
	}

	result := &Result{Actor: cfg.Actor, DiscordID: discordID}

	if a.DryRun {
		log.Info("Dry run: would grant role %s to %s (Discord ID %s) in guild %s", cfg.RoleID, cfg.Actor, discordID, cfg.GuildID)
		log.InfoH2("%s %s", http.MethodPut, discord.MemberRoleURL(cfg.APIURL, cfg.GuildID, discordID, cfg.RoleID))
		log.InfoH2("Authorization: Bot ***")
		log.InfoH2("Content-Type: application/json")
		result.Outcome = OutcomePlanned
		return result, nil
	}

	resp, err := a.Granter.AddMemberRole(ctx, cfg.GuildID, discordID, cfg.RoleID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to assign role to %s", cfg.Actor)
	}
	result.StatusCode = resp.StatusCode
	result.Body = resp.Body

	if !resp.NoContent() {
		log.Error("Failed to assign role. Status: %d, %s", resp.StatusCode, resp.Body)
		result.Outcome = OutcomeRejected
		return result, nil
	}

	log.Success("Successfully assigned role to %s (Discord ID %s).", cfg.Actor, discordID)
	result.Outcome = OutcomeAssigned

	if a.Notifier != nil {
		err := a.Notifier.Notify(notify.Grant{Actor: cfg.Actor, DiscordID: discordID, RoleID: cfg.RoleID})
		if err != nil {
			log.Error("Failed to announce role grant: %v", err)
		}
	}
	return result, nil
}

// Err converts a rejected result into ErrRoleRejected; other outcomes are nil
func (r *Result) Err() error {
	if r == nil || r.Outcome != OutcomeRejected {
		return nil
	}
	return errors.Wrapf(errors.ErrRoleRejected, "status %d", r.StatusCode)
}

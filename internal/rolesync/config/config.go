// Package config collects the run configuration for a role assignment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/disgoorg/snowflake/v2"

	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/errors"
)

// Environment variables read by FromEnv
const (
	EnvActor       = "GITHUB_ACTOR"
	EnvBotToken    = "DISCORD_BOT_TOKEN"
	EnvGuildID     = "DISCORD_GUILD_ID"
	EnvRoleID      = "CONTRIBUTOR_ROLE_ID"
	EnvAPIURL      = "DISCORD_API_URL"
	EnvWebhookURL  = "DISCORD_WEBHOOK_URL"
	EnvMappingFile = "CONTRIBUTOR_MAPPING_FILE"
)

const (
	DefaultAPIURL      = "https://discord.com/api"
	DefaultMappingFile = "users.json"
)

// Config holds everything a single assignment run needs
type Config struct {
	Actor    string
	BotToken string
	GuildID  string
	RoleID   string

	// APIURL is the Discord REST base, without trailing slash
	APIURL string

	// Optional webhook used to announce a granted role
	WebhookURL string

	MappingFile string
}

// FromEnv reads the configuration from the process environment
func FromEnv() *Config {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the configuration through lookup and applies defaults
func FromLookup(lookup func(string) (string, bool)) *Config {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	c := &Config{
		Actor:       get(EnvActor),
		BotToken:    get(EnvBotToken),
		GuildID:     get(EnvGuildID),
		RoleID:      get(EnvRoleID),
		APIURL:      get(EnvAPIURL),
		WebhookURL:  get(EnvWebhookURL),
		MappingFile: get(EnvMappingFile),
	}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills optional fields left empty
func (c *Config) ApplyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.MappingFile == "" {
		c.MappingFile = DefaultMappingFile
	}
}

// Validate checks the fields needed to issue the role grant. The actor is not
// checked here: an unknown or empty actor is a no-op, not a config error.
func (c *Config) Validate() error {
	var errs []error

	if c.BotToken == "" {
		errs = append(errs, errors.Wrapf(errors.ErrMissingRequired, "%s is not set", EnvBotToken))
	}
	if _, err := ParseSnowflake(EnvGuildID, c.GuildID); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseSnowflake(EnvRoleID, c.RoleID); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ParseSnowflake parses a Discord ID named field. Zero is rejected.
func ParseSnowflake(field, value string) (snowflake.ID, error) {
	if value == "" {
		return 0, errors.Wrapf(errors.ErrMissingRequired, "%s is not set", field)
	}
	id, err := snowflake.Parse(value)
	if err != nil || id == 0 {
		return 0, errors.Wrapf(errors.ErrInvalidSnowflake, "%s %q", field, value)
	}
	return id, nil
}

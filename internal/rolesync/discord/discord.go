// Package discord is a minimal Discord REST client for granting guild roles.
package discord

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/imroc/req/v3"

	"github.com/Ahmed-Tahan7/TestDiscord/internal/log"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/config"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/errors"
)

// Discord asks bots to identify with this User-Agent shape
const userAgent = "DiscordBot (https://github.com/Ahmed-Tahan7/TestDiscord, 1.0)"

// Response is the outcome of a REST call that reached the server
type Response struct {
	StatusCode int
	Body       string
}

// NoContent reports whether Discord accepted the request. Role grants
// answer 204 on success and nothing else counts.
func (r *Response) NoContent() bool {
	return r.StatusCode == http.StatusNoContent
}

// Client talks to the Discord REST API with a bot token
type Client struct {
	Url    string
	Token  string
	Client *req.Client
}

// New creates a client. An empty url selects config.DefaultAPIURL.
func New(url, token string) *Client {
	return &Client{
		Url:    baseURL(url),
		Token:  token,
		Client: createClient(),
	}
}

func createClient() *req.Client {
	return req.C().
		SetUserAgent(userAgent).
		SetTimeout(30 * time.Second)
}

func baseURL(url string) string {
	if url == "" {
		url = config.DefaultAPIURL
	}
	return strings.TrimRight(url, "/")
}

// MemberRoleURL builds the endpoint under the API base that grants roleID to
// userID in guildID
func MemberRoleURL(base, guildID, userID, roleID string) string {
	return fmt.Sprintf("%s/guilds/%s/members/%s/roles/%s", baseURL(base), guildID, userID, roleID)
}

// MemberRoleURL builds the role grant endpoint for this client
func (c *Client) MemberRoleURL(guildID, userID, roleID string) string {
	return MemberRoleURL(c.Url, guildID, userID, roleID)
}

// AddMemberRole issues a single PUT granting the role. Any HTTP response is
// returned as-is; an error means the request never completed.
func (c *Client) AddMemberRole(ctx context.Context, guildID, userID, roleID string) (*Response, error) {
	return c.do(ctx, http.MethodPut, c.MemberRoleURL(guildID, userID, roleID), func(r *req.Request, url string) (*req.Response, error) {
		return r.Put(url)
	})
}

// requestExecutor is a function that executes an HTTP request
type requestExecutor func(*req.Request, string) (*req.Response, error)

func (c *Client) do(ctx context.Context, method, url string, executor requestExecutor) (*Response, error) {
	if c == nil || c.Client == nil {
		return nil, fmt.Errorf("discord client is not initialized")
	}

	log.Debug("Making %s request to: %s", method, url)

	r := c.Client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bot "+c.Token).
		SetHeader("Content-Type", "application/json")

	resp, err := executor(r, url)
	if err != nil {
		return nil, errors.Wrapf(fmt.Errorf("%w: %w", errors.ErrAPIConnection, err), "%s %s", method, url)
	}

	log.Debug("%s %s returned %d", method, url, resp.StatusCode)
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       resp.String(),
	}, nil
}

package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

const defaultAPIEndpoint = "https://discord.com/api/v10"

type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewClient(ctx context.Context) *Client {
	cfg := xcontext.Configs(ctx).Discord
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = defaultAPIEndpoint
	}

	return &Client{
		endpoint:   endpoint,
		token:      cfg.BotToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendMessage posts msg to a channel and returns the created message id.
func (c *Client) SendMessage(ctx context.Context, channelID string, msg Message) (string, error) {
	var created struct {
		ID string `json:"id"`
	}

	path := fmt.Sprintf("/channels/%s/messages", channelID)
	if err := c.do(ctx, http.MethodPost, path, msg, &created); err != nil {
		return "", err
	}

	return created.ID, nil
}

func (c *Client) EditMessage(ctx context.Context, channelID, messageID string, msg Message) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	return c.do(ctx, http.MethodPatch, path, msg, nil)
}

// GetMessage fails if the channel or the message no longer exists.
func (c *Client) GetMessage(ctx context.Context, channelID, messageID string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

func (c *Client) GetGuildMember(ctx context.Context, guildID, userID string) (*Member, error) {
	var member Member
	path := fmt.Sprintf("/guilds/%s/members/%s", guildID, userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &member); err != nil {
		return nil, err
	}

	return &member, nil
}

func (c *Client) GetGuildRoles(ctx context.Context, guildID string) ([]Role, error) {
	var roles []Role
	path := fmt.Sprintf("/guilds/%s/roles", guildID)
	if err := c.do(ctx, http.MethodGet, path, nil, &roles); err != nil {
		return nil, err
	}

	return roles, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("discord api %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}

	return nil
}

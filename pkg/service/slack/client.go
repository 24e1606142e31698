// Package slack wraps the Slack Web API client used to talk back to users.
package slack

import (
	"bytes"
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	goslack "github.com/slack-go/slack"
)

// Client is the Slack Web API backed implementation of Service
type Client struct {
	api *goslack.Client

	mu        sync.Mutex
	botUserID string
}

var _ Service = (*Client)(nil)

// New creates a Slack service client with the given bot token
func New(botToken string) *Client {
	return &Client{
		api: goslack.New(botToken),
	}
}

func (c *Client) PostMessage(ctx context.Context, channelID string, blocks []goslack.Block, fallback string) (string, error) {
	opts := []goslack.MsgOption{
		goslack.MsgOptionText(fallback, false),
	}
	if len(blocks) > 0 {
		opts = append(opts, goslack.MsgOptionBlocks(blocks...))
	}

	_, timestamp, err := c.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post message", goerr.V("channel_id", channelID))
	}
	return timestamp, nil
}

func (c *Client) UpdateMessage(ctx context.Context, channelID, timestamp string, blocks []goslack.Block, fallback string) error {
	opts := []goslack.MsgOption{
		goslack.MsgOptionText(fallback, false),
	}
	if len(blocks) > 0 {
		opts = append(opts, goslack.MsgOptionBlocks(blocks...))
	}

	_, _, _, err := c.api.UpdateMessageContext(ctx, channelID, timestamp, opts...)
	if err != nil {
		return goerr.Wrap(err, "failed to update message",
			goerr.V("channel_id", channelID), goerr.V("timestamp", timestamp))
	}
	return nil
}

func (c *Client) DownloadFile(ctx context.Context, url string) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.api.GetFileContext(ctx, url, &buf); err != nil {
		return nil, goerr.Wrap(err, "failed to download file", goerr.V("url", url))
	}
	return buf.Bytes(), nil
}

func (c *Client) BotUserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.botUserID != "" {
		return c.botUserID, nil
	}

	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call auth.test")
	}
	c.botUserID = resp.UserID
	return c.botUserID, nil
}

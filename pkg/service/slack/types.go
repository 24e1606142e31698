package slack

import (
	"context"

	goslack "github.com/slack-go/slack"
)

// Service abstracts the Slack Web API calls the bot depends on
type Service interface {
	// PostMessage posts blocks to a channel and returns the message timestamp
	PostMessage(ctx context.Context, channelID string, blocks []goslack.Block, fallback string) (string, error)

	// UpdateMessage replaces an existing message in place
	UpdateMessage(ctx context.Context, channelID, timestamp string, blocks []goslack.Block, fallback string) error

	// DownloadFile fetches a file shared with the bot
	DownloadFile(ctx context.Context, url string) ([]byte, error)

	// BotUserID returns the bot's own user ID, cached after the first call
	BotUserID(ctx context.Context) (string, error)
}

package config

import (
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for the Slack integration
type Slack struct {
	botToken      string
	signingSecret string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (xoxb-...)",
			Sources:     cli.EnvVars("PANTRYBOT_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack app signing secret for webhook verification",
			Sources:     cli.EnvVars("PANTRYBOT_SLACK_SIGNING_SECRET"),
			Destination: &s.signingSecret,
		},
	}
}

// BotToken returns the configured bot token
func (s *Slack) BotToken() string {
	return s.botToken
}

// SigningSecret returns the configured signing secret
func (s *Slack) SigningSecret() string {
	return s.signingSecret
}

// IsConfigured reports whether both webhook credentials are present
func (s *Slack) IsConfigured() bool {
	return s.botToken != "" && s.signingSecret != ""
}

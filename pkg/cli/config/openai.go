package config

import (
	openai "github.com/sashabaranov/go-openai"
	"github.com/urfave/cli/v3"
)

// OpenAI holds configuration for the vision model used by photo recognition
type OpenAI struct {
	apiKey string
}

// Flags returns CLI flags for OpenAI configuration
func (o *OpenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key for photo recognition (disabled when empty)",
			Sources:     cli.EnvVars("PANTRYBOT_OPENAI_API_KEY"),
			Destination: &o.apiKey,
		},
	}
}

// Configure creates an OpenAI client. Returns nil if no API key is
// configured (photo recognition will be disabled).
func (o *OpenAI) Configure() *openai.Client {
	if o.apiKey == "" {
		return nil
	}
	return openai.NewClient(o.apiKey)
}

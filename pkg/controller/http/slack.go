package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/service/slack"
	"github.com/pantry-lab/pantrybot/pkg/usecase"
	"github.com/pantry-lab/pantrybot/pkg/utils/async"
	"github.com/pantry-lab/pantrybot/pkg/utils/errutil"
	"github.com/pantry-lab/pantrybot/pkg/utils/logging"
	"github.com/slack-go/slack/slackevents"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const slackBodyKey contextKey = "slack_body"

const msgInternalFailure = "⚠️ Что-то пошло не так. Попробуй ещё раз."

const messageHandleTimeout = 60 * time.Second

// verifySlackSignature verifies the Slack request signature
// This is a pure function that can be used independently for testing
func verifySlackSignature(signingSecret, timestamp, signature string, body []byte) error {
	if timestamp == "" {
		return goerr.New("missing timestamp")
	}

	if signature == "" {
		return goerr.New("missing signature")
	}

	// Check timestamp to prevent replay attacks (within 5 minutes)
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}

	now := time.Now().Unix()
	if now-ts > 60*5 {
		return goerr.New("timestamp too old", goerr.V("timestamp", timestamp), goerr.V("now", now))
	}

	// Compute expected signature
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	if _, err := mac.Write([]byte(baseString)); err != nil {
		return goerr.Wrap(err, "failed to compute HMAC")
	}
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	// Compare signatures
	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// SlackSignatureMiddleware creates a middleware that verifies Slack request signatures
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}
			defer func() {
				if err := r.Body.Close(); err != nil {
					logging.From(ctx).Error("failed to close request body", "error", err)
				}
			}()

			timestamp := r.Header.Get("X-Slack-Request-Timestamp")
			signature := r.Header.Get("X-Slack-Signature")

			if err := verifySlackSignature(signingSecret, timestamp, signature, body); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "slack signature verification failed"), http.StatusUnauthorized)
				return
			}

			// Store body in context for later use and restore it to the request
			ctx = context.WithValue(ctx, slackBodyKey, body)
			r.Body = io.NopCloser(bytes.NewBuffer(body))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SlackWebhookHandler handles Slack Events API webhook requests
type SlackWebhookHandler struct {
	uc       *usecase.UseCases
	slackSvc slack.Service
}

// NewSlackWebhookHandler creates a new Slack webhook handler
func NewSlackWebhookHandler(uc *usecase.UseCases, slackSvc slack.Service) *SlackWebhookHandler {
	return &SlackWebhookHandler{
		uc:       uc,
		slackSvc: slackSvc,
	}
}

// ServeHTTP handles Slack webhook requests
func (h *SlackWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Read body (already verified by middleware)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slack event"), http.StatusBadRequest)
		return
	}

	switch eventsAPIEvent.Type {
	case slackevents.URLVerification:
		var challenge *slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to unmarshal challenge"), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(challenge.Challenge)); err != nil {
			logging.From(ctx).Error("failed to write challenge response", "error", err)
		}
		return

	case slackevents.CallbackEvent:
		// Return 200 immediately to satisfy Slack's 3-second timeout requirement
		w.WriteHeader(http.StatusOK)

		async.Dispatch(ctx, func(ctx context.Context) error {
			return h.handleCallbackEvent(ctx, &eventsAPIEvent)
		})

	default:
		logging.From(ctx).Warn("unknown slack event type", "type", eventsAPIEvent.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *SlackWebhookHandler) handleCallbackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	msg, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		logging.From(ctx).Debug("ignoring non-message inner event",
			"type", event.InnerEvent.Type)
		return nil
	}

	// Ignore bot traffic, including our own replies
	if msg.BotID != "" || msg.SubType == "bot_message" {
		return nil
	}
	if botID, err := h.slackSvc.BotUserID(ctx); err == nil && msg.User == botID {
		return nil
	}
	// Edits, deletions and other subtypes are not conversational input
	if msg.SubType != "" && msg.SubType != "file_share" {
		return nil
	}

	// Bound the whole turn, resolver call included
	ctx, cancel := context.WithTimeout(ctx, messageHandleTimeout)
	defer cancel()

	reply, err := h.dispatchMessage(ctx, msg)
	if err != nil {
		errutil.Handle(ctx, err, "failed to handle message event")
		if _, postErr := h.slackSvc.PostMessage(ctx, msg.Channel, nil, msgInternalFailure); postErr != nil {
			errutil.Handle(ctx, postErr, "failed to post failure notice")
		}
		return err
	}

	blocks, fallback := h.uc.RenderReply(reply)
	if _, err := h.slackSvc.PostMessage(ctx, msg.Channel, blocks, fallback); err != nil {
		return goerr.Wrap(err, "failed to post reply", goerr.V("channel_id", msg.Channel))
	}
	return nil
}

func (h *SlackWebhookHandler) dispatchMessage(ctx context.Context, msg *slackevents.MessageEvent) (*model.Reply, error) {
	if len(msg.Files) > 0 {
		image, err := h.slackSvc.DownloadFile(ctx, msg.Files[0].URLPrivateDownload)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to download photo",
				goerr.V("file_id", msg.Files[0].ID))
		}
		return h.uc.HandlePhoto(ctx, msg.User, image)
	}

	return h.uc.HandleText(ctx, msg.User, msg.Text)
}

package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pantry-lab/pantrybot/pkg/service/slack"
	"github.com/pantry-lab/pantrybot/pkg/usecase"
	"github.com/pantry-lab/pantrybot/pkg/utils/async"
	"github.com/pantry-lab/pantrybot/pkg/utils/errutil"
	"github.com/pantry-lab/pantrybot/pkg/utils/logging"
	goslack "github.com/slack-go/slack"
)

// SlackInteractionHandler handles block action callbacks from interactive
// messages.
type SlackInteractionHandler struct {
	uc       *usecase.UseCases
	slackSvc slack.Service
}

// NewSlackInteractionHandler creates a new interaction handler
func NewSlackInteractionHandler(uc *usecase.UseCases, slackSvc slack.Service) *SlackInteractionHandler {
	return &SlackInteractionHandler{
		uc:       uc,
		slackSvc: slackSvc,
	}
}

// ServeHTTP handles interaction payloads
func (h *SlackInteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing interaction payload"), http.StatusBadRequest)
		return
	}

	var callback goslack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	if callback.Type != goslack.InteractionTypeBlockActions {
		logging.From(ctx).Warn("unknown interaction type", "type", callback.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	// Return 200 immediately to satisfy Slack's 3-second timeout requirement
	w.WriteHeader(http.StatusOK)

	async.Dispatch(ctx, func(ctx context.Context) error {
		return h.handleBlockActions(ctx, &callback)
	})
}

func (h *SlackInteractionHandler) handleBlockActions(ctx context.Context, callback *goslack.InteractionCallback) error {
	channelID := callback.Channel.ID
	messageTS := callback.Message.Timestamp
	userID := callback.User.ID

	for _, action := range callback.ActionCallback.BlockActions {
		cmd, err := usecase.DecodeSlackAction(usecase.SlackActionID(action.ActionID), action.Value)
		if err != nil {
			logging.From(ctx).Warn("ignoring undecodable block action",
				"action_id", action.ActionID,
				"value", action.Value,
				"error", err)
			continue
		}

		reply, err := h.uc.HandleCommand(ctx, userID, cmd)
		if err != nil {
			errutil.Handle(ctx, err, "failed to handle block action")
			if _, postErr := h.slackSvc.PostMessage(ctx, channelID, nil, msgInternalFailure); postErr != nil {
				errutil.Handle(ctx, postErr, "failed to post failure notice")
			}
			return err
		}

		blocks, fallback := h.uc.RenderReply(reply)
		// Replace the menu message in place so the conversation stays tidy
		if err := h.slackSvc.UpdateMessage(ctx, channelID, messageTS, blocks, fallback); err != nil {
			return goerr.Wrap(err, "failed to update message",
				goerr.V("channel_id", channelID), goerr.V("timestamp", messageTS))
		}
	}

	return nil
}

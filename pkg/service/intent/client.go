// Package intent resolves free-text messages and photos into structured
// inventory intents using LLM backends.
package intent

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/pantry-lab/pantrybot/pkg/domain/model"
	"github.com/pantry-lab/pantrybot/pkg/domain/types"
	openai "github.com/sashabaranov/go-openai"
)

const visionModel = openai.GPT4oMini

const textSystemPrompt = `Ты — парсер сообщений бота учёта домашних запасов еды.
Пользователь пишет в свободной форме. Определи:
1. action: "add" если пользователь хочет добавить продукты, "delete" если убрать/съесть/выбросить, иначе "unknown".
2. category: "meal" для готовых блюд, "ingredient" для продуктов и ингредиентов.
3. location: "fridge", "kitchen" или "freezer", если место указано явно; иначе пустая строка.
4. items: список названий позиций, по одной на элемент, без количеств и дат.
Не выдумывай позиции, которых нет в сообщении. Если сообщение не про запасы еды, верни action "unknown" и пустой items.`

const mealVisionPrompt = `На фото — готовое блюдо. Назови его одним коротким названием по-русски (например "Борщ", "Плов", "Запеканка"). Верни JSON вида {"items": ["название"]}. Если блюдо распознать нельзя, верни {"items": []}.`

const ingredientVisionPrompt = `На фото — продукты. Перечисли их короткими названиями по-русски, по одному на элемент (например "Молоко", "Сыр", "Помидоры"). Верни JSON вида {"items": ["...", "..."]}. Если продукты распознать нельзя, верни {"items": []}.`

var textIntentSchema = &gollem.Parameter{
	Title:       "InventoryIntent",
	Description: "Structured interpretation of a free-text inventory message",
	Type:        gollem.TypeObject,
	Properties: map[string]*gollem.Parameter{
		"action": {
			Type:        gollem.TypeString,
			Description: `One of "add", "delete" or "unknown"`,
			Required:    true,
		},
		"category": {
			Type:        gollem.TypeString,
			Description: `One of "meal" or "ingredient"`,
			Required:    true,
		},
		"location": {
			Type:        gollem.TypeString,
			Description: `One of "fridge", "kitchen", "freezer" or empty when not mentioned`,
			Required:    true,
		},
		"items": {
			Type:        gollem.TypeArray,
			Description: "Item names mentioned in the message, one per element",
			Items:       &gollem.Parameter{Type: gollem.TypeString},
			Required:    true,
		},
	},
}

// Client resolves intents via an LLM for text and a vision model for photos
type Client struct {
	llm    gollem.LLMClient
	vision *openai.Client
}

var _ Resolver = (*Client)(nil)

// New creates an intent resolver. Either backend may be nil; the
// corresponding parse method then fails with an error.
func New(llm gollem.LLMClient, vision *openai.Client) *Client {
	return &Client{
		llm:    llm,
		vision: vision,
	}
}

// itemList tolerates a model returning a bare string instead of an array
type itemList []string

func (l *itemList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
		} else {
			*l = []string{single}
		}
		return nil
	}

	return goerr.New("items is neither a string nor a string array", goerr.V("data", string(data)))
}

type textIntentPayload struct {
	Action   string   `json:"action"`
	Category string   `json:"category"`
	Location string   `json:"location"`
	Items    itemList `json:"items"`
}

func (c *Client) ParseText(ctx context.Context, text string) (*model.Intent, error) {
	if c.llm == nil {
		return nil, goerr.New("text intent backend is not configured")
	}

	session, err := c.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(textIntentSchema),
		gollem.WithSessionSystemPrompt(textSystemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create intent session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(text))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve text intent")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("intent resolution returned empty response")
	}

	var payload textIntentPayload
	if err := json.Unmarshal([]byte(resp.Texts[0]), &payload); err != nil {
		return nil, goerr.Wrap(err, "failed to parse intent response", goerr.V("response", resp.Texts[0]))
	}

	return &model.Intent{
		Action:   payload.Action,
		Category: payload.Category,
		Location: payload.Location,
		Items:    payload.Items,
	}, nil
}

func (c *Client) ParsePhoto(ctx context.Context, category types.Category, image []byte) (*model.Intent, error) {
	if c.vision == nil {
		return nil, goerr.New("photo intent backend is not configured")
	}

	prompt := ingredientVisionPrompt
	if category == types.CategoryMeal {
		prompt = mealVisionPrompt
	}

	imageURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := c.vision.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: imageURL,
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve photo intent")
	}
	if len(resp.Choices) == 0 {
		return nil, goerr.New("photo intent resolution returned no choices")
	}

	var payload struct {
		Items itemList `json:"items"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, goerr.Wrap(err, "failed to parse photo intent response", goerr.V("response", content))
	}

	items := cleanItems(payload.Items)
	// A meal photo yields a single dish name at most
	if category == types.CategoryMeal && len(items) > 1 {
		items = items[:1]
	}

	return &model.Intent{
		Action:   "add",
		Category: string(category),
		Items:    items,
	}, nil
}

func cleanItems(items []string) []string {
	var cleaned []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client — клиент Telegram Bot API поверх HTTPS
type Client struct {
	botToken   string
	baseURL    string
	httpClient *http.Client
}

func NewClient(botToken string) *Client {
	return &Client{
		botToken: botToken,
		baseURL:  "https://api.telegram.org",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// apiResponse — обёртка всех ответов Bot API
type apiResponse struct {
	Ok          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

type sendMessagePayload struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
	// топик супергруппы; передаём только если задан
	MessageThreadID       int                   `json:"message_thread_id,omitempty"`
	DisableWebPagePreview bool                  `json:"disable_web_page_preview"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type editMessagePayload struct {
	ChatID      int64                 `json:"chat_id"`
	MessageID   int                   `json:"message_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type answerCallbackPayload struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
}

type setWebhookPayload struct {
	URL         string `json:"url"`
	SecretToken string `json:"secret_token,omitempty"`
}

// SendMessage отправляет HTML-сообщение в чат (и топик, если threadID > 0).
// Возвращает id отправленного сообщения.
func (c *Client) SendMessage(chatID int64, threadID int, text string, keyboard *InlineKeyboardMarkup) (int, error) {
	payload := sendMessagePayload{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		MessageThreadID:       threadID,
		DisableWebPagePreview: true,
		ReplyMarkup:           keyboard,
	}

	var result struct {
		MessageID int `json:"message_id"`
	}
	if err := c.call("sendMessage", payload, &result); err != nil {
		return 0, err
	}
	return result.MessageID, nil
}

// EditMessageText правит текст и клавиатуру уже отправленного сообщения
func (c *Client) EditMessageText(chatID int64, messageID int, text string, keyboard *InlineKeyboardMarkup) error {
	payload := editMessagePayload{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	}
	return c.call("editMessageText", payload, nil)
}

// AnswerCallbackQuery подтверждает нажатие кнопки (убирает "часики")
func (c *Client) AnswerCallbackQuery(callbackID, text string) error {
	return c.call("answerCallbackQuery", answerCallbackPayload{
		CallbackQueryID: callbackID,
		Text:            text,
	}, nil)
}

// SetWebhook регистрирует URL вебхука у Bot API
func (c *Client) SetWebhook(url, secretToken string) error {
	return c.call("setWebhook", setWebhookPayload{
		URL:         url,
		SecretToken: secretToken,
	}, nil)
}

func (c *Client) call(method string, payload interface{}, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.botToken, method)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	if !api.Ok {
		if api.Description != "" {
			return fmt.Errorf("%s: telegram API error: %s", method, api.Description)
		}
		return fmt.Errorf("%s: telegram API error, status=%d", method, resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(api.Result, result); err != nil {
			return fmt.Errorf("%s: decode result: %w", method, err)
		}
	}
	return nil
}

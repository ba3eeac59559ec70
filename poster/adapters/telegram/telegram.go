package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"yadro.com/comicbot/poster/core"
)

const photoName = "comic.png"

type Client struct {
	log      *slog.Logger
	endpoint string
	http     *http.Client
}

// NewClient builds a Bot API client rooted at baseURL, e.g. https://api.telegram.org.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("empty telegram api url")
	}
	return &Client{
		log:      log,
		endpoint: strings.TrimRight(baseURL, "/") + "/bot%s/%s",
		http:     &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) bot(token string) *tgbotapi.BotAPI {
	bot := &tgbotapi.BotAPI{Token: token, Client: c.http}
	bot.SetAPIEndpoint(c.endpoint)
	return bot
}

func (c *Client) SendPhoto(ctx context.Context, creds core.Credentials, photo []byte, caption string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}

	msg := photoConfig(creds.ChannelID, tgbotapi.FileBytes{Name: photoName, Bytes: photo})
	msg.Caption = caption

	// Request keeps the APIResponse, uploads do not copy error_code into the error.
	resp, err := c.bot(creds.BotToken).Request(msg)
	if err != nil {
		return classify(err, resp)
	}
	c.log.Debug("photo sent", "channel", creds.ChannelID)
	return nil
}

// photoConfig addresses numeric chat ids directly and anything else as a channel username.
func photoConfig(channelID string, file tgbotapi.RequestFileData) tgbotapi.PhotoConfig {
	if id, err := strconv.ParseInt(channelID, 10, 64); err == nil {
		return tgbotapi.NewPhoto(id, file)
	}
	return tgbotapi.NewPhotoToChannel(channelID, file)
}

func classify(err error, resp *tgbotapi.APIResponse) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", core.ErrPlatform, err)
	}
	code := apiErr.Code
	if resp != nil && resp.ErrorCode != 0 {
		code = resp.ErrorCode
	}
	if code == 0 {
		return fmt.Errorf("%w: telegram api: %s", core.ErrPlatform, apiErr.Message)
	}
	return fmt.Errorf("%w: telegram api: %d %s", core.ErrPlatform, code, apiErr.Message)
}

package xkcd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"yadro.com/comicbot/poster/core"
)

// Telegram refuses photos above 10 MB, anything larger is not worth reading.
const maxImageSize = 10 << 20

type Client struct {
	log     *slog.Logger
	baseURL string
	http    *http.Client
	schemas schemas
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("empty base url")
	}
	sc, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	return &Client{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		schemas: sc,
	}, nil
}

type comicResp struct {
	Num   int    `json:"num"`
	Img   string `json:"img"`
	Title string `json:"safe_title"`
	Alt   string `json:"alt"`
}

func (c *Client) get(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("close response body failed", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status: %s", core.ErrNetwork, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", core.ErrNetwork, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: response larger than %d bytes", core.ErrDataShape, limit)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, url string, schema *gojsonschema.Schema, out any) error {
	body, err := c.get(ctx, url, maxImageSize)
	if err != nil {
		return err
	}
	if err := check(schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", core.ErrDataShape, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, id int) (core.Comic, error) {
	var cr comicResp
	url := fmt.Sprintf("%s/%d/info.0.json", c.baseURL, id)
	if err := c.getJSON(ctx, url, c.schemas.comic, &cr); err != nil {
		return core.Comic{}, err
	}
	if cr.Num == 0 {
		cr.Num = id
	}
	c.log.Debug("comic metadata fetched", "id", cr.Num, "title", cr.Title)
	return core.Comic{
		ID:       cr.Num,
		Title:    cr.Title,
		ImageURL: cr.Img,
		Caption:  cr.Alt,
	}, nil
}

func (c *Client) LastID(ctx context.Context) (int, error) {
	var cr comicResp
	if err := c.getJSON(ctx, fmt.Sprintf("%s/info.0.json", c.baseURL), c.schemas.latest, &cr); err != nil {
		return 0, err
	}
	return cr.Num, nil
}

// Image downloads the raw bytes of a comic image.
func (c *Client) Image(ctx context.Context, url string) ([]byte, error) {
	body, err := c.get(ctx, url, maxImageSize)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty image %s", core.ErrDataShape, url)
	}
	return body, nil
}

package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apierr "github.com/pronas-suite/aicore/pkg/api/types/errors"
	apiprojects "github.com/pronas-suite/aicore/pkg/api/types/projects"
	"github.com/pronas-suite/aicore/pkg/domain"
	kerr "github.com/pronas-suite/aicore/pkg/errors"
)

// Client talks to a model-server over HTTP/JSON and implements every
// capability interface in this package.
//
// The server contract is one endpoint per capability:
//
//	POST {base}/embed           {"text": ...}             -> {"embedding": [...]}
//	POST {base}/sentiment       {"text": ...}             -> {"label": ..., "score": ...}
//	POST {base}/entities        {"text": ...}             -> {"entities": [...]}
//	POST {base}/extract-text    {"document": ...}         -> {"text": ...}
//	POST {base}/extract-tables  {"document": ...}         -> {"tables": [...]}
//	POST {base}/render          {"structure":..., "formats":...} -> {"artifacts": {...}}
//	GET  {base}/ready                                     -> 200 or 503
type Client struct {
	base string
	hc   *http.Client
}

var _ Embedder = &Client{}
var _ SentimentClassifier = &Client{}
var _ EntityTagger = &Client{}
var _ TextExtractor = &Client{}
var _ Renderer = &Client{}
var _ ReadinessChecker = &Client{}

// NewClient returns a Client for a model-server at base.
//
// When hc is nil, http.DefaultClient is used.
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimSuffix(base, "/"), hc: hc}
}

func (c *Client) apipath(path string) string {
	return c.base + "/" + strings.TrimPrefix(path, "/")
}

// postJSON sends payload to path and decodes a 2xx response body into v.
//
// Non-2xx responses are turned into errors; a 503 wraps ErrNotReady so
// callers can detect "model is still loading".
func (c *Client) postJSON(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return kerr.Wrap(err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath(path), bytes.NewReader(body),
	)
	if err != nil {
		return kerr.Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return kerr.Wrap(err)
	}
	defer resp.Body.Close()

	if 200 <= resp.StatusCode && resp.StatusCode < 300 {
		if v == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return kerr.Wrap(err)
		}
		return nil
	}

	return c.errorFromResponse(resp)
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := strings.TrimSpace(string(raw))
	er := apierr.ErrorResponse{}
	if err := json.Unmarshal(raw, &er); err == nil && er.Message.Reason != "" {
		message = er.Message.Reason
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return kerr.Wrap(fmt.Errorf(
			"%w: %s %s: %s", ErrNotReady, c.base, resp.Request.URL.Path, message,
		))
	}
	return kerr.Wrap(fmt.Errorf(
		"model-server %s %s: status %d: %s",
		c.base, resp.Request.URL.Path, resp.StatusCode, message,
	))
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	payload := struct {
		Text string `json:"text"`
	}{Text: text}
	result := struct {
		Embedding []float32 `json:"embedding"`
	}{}
	if err := c.postJSON(ctx, "/embed", payload, &result); err != nil {
		return nil, err
	}
	return result.Embedding, nil
}

func (c *Client) Classify(ctx context.Context, text string) (Sentiment, error) {
	payload := struct {
		Text string `json:"text"`
	}{Text: text}
	result := struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}{}
	if err := c.postJSON(ctx, "/sentiment", payload, &result); err != nil {
		return Sentiment{}, err
	}
	return Sentiment{Label: result.Label, Score: result.Score}, nil
}

func (c *Client) Tag(ctx context.Context, text string) ([]domain.EntitySpan, error) {
	payload := struct {
		Text string `json:"text"`
	}{Text: text}
	result := struct {
		Entities []struct {
			Text  string `json:"text"`
			Label string `json:"label"`
			Start int    `json:"start"`
			End   int    `json:"end"`
		} `json:"entities"`
	}{}
	if err := c.postJSON(ctx, "/entities", payload, &result); err != nil {
		return nil, err
	}

	entities := make([]domain.EntitySpan, len(result.Entities))
	for i, e := range result.Entities {
		entities[i] = domain.EntitySpan{
			Text: e.Text, Label: e.Label, Start: e.Start, End: e.End,
		}
	}
	return entities, nil
}

func (c *Client) ExtractText(ctx context.Context, document string) (string, error) {
	payload := struct {
		Document string `json:"document"`
	}{Document: document}
	result := struct {
		Text string `json:"text"`
	}{}
	if err := c.postJSON(ctx, "/extract-text", payload, &result); err != nil {
		return "", err
	}
	return result.Text, nil
}

func (c *Client) ExtractTables(ctx context.Context, document string) ([]Table, error) {
	payload := struct {
		Document string `json:"document"`
	}{Document: document}
	result := struct {
		Tables []struct {
			Name string     `json:"name"`
			Rows [][]string `json:"rows"`
		} `json:"tables"`
	}{}
	if err := c.postJSON(ctx, "/extract-tables", payload, &result); err != nil {
		return nil, err
	}

	tables := make([]Table, len(result.Tables))
	for i, t := range result.Tables {
		tables[i] = Table{Name: t.Name, Rows: t.Rows}
	}
	return tables, nil
}

func (c *Client) Render(ctx context.Context, p domain.ProjectStructure, formats []string) (map[string]string, error) {
	payload := struct {
		Structure apiprojects.Detail `json:"structure"`
		Formats   []string           `json:"formats"`
	}{Structure: apiprojects.ComposeDetail(p), Formats: formats}
	result := struct {
		Artifacts map[string]string `json:"artifacts"`
	}{}
	if err := c.postJSON(ctx, "/render", payload, &result); err != nil {
		return nil, err
	}
	return result.Artifacts, nil
}

func (c *Client) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("/ready"), nil)
	if err != nil {
		return kerr.Wrap(err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return kerr.Wrap(err)
	}
	defer resp.Body.Close()

	if 200 <= resp.StatusCode && resp.StatusCode < 300 {
		return nil
	}
	return c.errorFromResponse(resp)
}

package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domai "github.com/bryanwahyu/platex-api/internal/domain/ai"
)

const (
	baseURL        = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 120 * time.Second
)

// Client is the vision-capable backend, a plain REST client for the
// generateContent API. Photos travel inline as base64 parts.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		apiKey:     apiKey,
		model:      model,
	}
}

type generateContentRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) Generate(ctx context.Context, p domai.Prompt, media *domai.Media) (string, error) {
	parts := []part{{Text: p.User}}
	if media != nil {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: media.MIME,
			Data:     base64.StdEncoding.EncodeToString(media.Data),
		}})
	}

	reqBody := generateContentRequest{
		Contents: []content{{Role: "user", Parts: parts}},
	}
	if p.System != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: p.System}}}
	}
	if p.JSON {
		reqBody.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%w: %s", domai.ErrQuotaExceeded, snippet(data))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned %d: %s", resp.StatusCode, snippet(data))
	}

	var out generateContentResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("gemini response decode failed: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini error %s: %s", out.Error.Status, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// snippet keeps error bodies short enough for logs.
func snippet(b []byte) string {
	const n = 256
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

package cards

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// =============================================================================
// RENDERER - Image generation capability
// =============================================================================

// Renderer turns a prompt into image bytes.
type Renderer interface {
	Render(ctx context.Context, prompt string, width, height int) ([]byte, error)
}

// HTTPRenderer calls an image-generation HTTP endpoint.
// Request/response shape:
//
//	POST {endpoint}  {"model": "...", "prompt": "...", "width": W, "height": H}
//	200              {"images": ["<base64 png>", ...]}
type HTTPRenderer struct {
	Endpoint string
	Model    string
	Client   *http.Client
}

var _ Renderer = (*HTTPRenderer)(nil)

// NewHTTPRenderer creates a renderer with a bounded request timeout.
// Image generation is slow; the timeout is generous.
func NewHTTPRenderer(endpoint, model string) *HTTPRenderer {
	return &HTTPRenderer{
		Endpoint: endpoint,
		Model:    model,
		Client:   &http.Client{Timeout: 2 * time.Minute},
	}
}

func (r *HTTPRenderer) Render(ctx context.Context, prompt string, width, height int) ([]byte, error) {
	body, err := json.Marshal(map[string]any{
		"model":  r.Model,
		"prompt": prompt,
		"width":  width,
		"height": height,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render endpoint returned %d", resp.StatusCode)
	}

	var out struct {
		Images []string `json:"images"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("render response malformed: %w", err)
	}
	if len(out.Images) == 0 || out.Images[0] == "" {
		return nil, fmt.Errorf("render response contained no image")
	}

	img, err := base64.StdEncoding.DecodeString(out.Images[0])
	if err != nil {
		return nil, fmt.Errorf("render response not base64: %w", err)
	}
	return img, nil
}

package greetings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/warp/office-cheer/people"
)

// =============================================================================
// REMOTE GENERATOR - Text-generation endpoint
// =============================================================================

// Remote asks a text-generation HTTP endpoint for a personalized greeting.
// Request/response shape:
//
//	POST {endpoint}  {"model": "...", "prompt": "..."}
//	200              {"text": "..."}
//
// Errors surface to the caller; the orchestrator falls back to Template.
type Remote struct {
	Endpoint string
	Model    string
	Client   *http.Client
}

var _ Generator = (*Remote)(nil)

// NewRemote creates a remote generator with a bounded request timeout.
func NewRemote(endpoint, model string) *Remote {
	return &Remote{
		Endpoint: endpoint,
		Model:    model,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *Remote) Birthday(ctx context.Context, p people.Person) (string, error) {
	prompt := fmt.Sprintf(
		"Write a warm, professional birthday greeting (2-3 sentences) for a "+
			"colleague named %s.%s Do not mention their age.",
		p.DisplayName(), interestHint(p),
	)
	return r.generate(ctx, prompt)
}

func (r *Remote) Anniversary(ctx context.Context, p people.Person, years int) (string, error) {
	prompt := fmt.Sprintf(
		"Write a warm, professional message (2-3 sentences) congratulating a "+
			"colleague named %s on %d year(s) at the company.%s",
		p.DisplayName(), years, interestHint(p),
	)
	return r.generate(ctx, prompt)
}

func (r *Remote) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]string{"model": r.Model, "prompt": prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("greeting request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("greeting endpoint returned %d", resp.StatusCode)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("greeting response malformed: %w", err)
	}
	if strings.TrimSpace(out.Text) == "" {
		return "", fmt.Errorf("greeting endpoint returned empty text")
	}
	return strings.TrimSpace(out.Text), nil
}

func interestHint(p people.Person) string {
	if primary := p.PrimaryInterest(); primary != "" {
		return fmt.Sprintf(" They enjoy %s.", primary)
	}
	return ""
}

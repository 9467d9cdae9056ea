package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DeepSeekClient is the thin HTTP relay to the text-generation endpoint.
// One request, one response; prompt construction happens upstream of this
// subsystem.
type DeepSeekClient struct {
	APIKey     string
	Model      string
	URL        string
	HTTPClient *http.Client
}

func NewDeepSeekClient(apiKey, model, url string) *DeepSeekClient {
	return &DeepSeekClient{
		APIKey:     apiKey,
		Model:      model,
		URL:        url,
		HTTPClient: &http.Client{Timeout: 70 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (d *DeepSeekClient) Generate(ctx context.Context, mode, input string) (string, error) {
	if d.APIKey == "" {
		return "", fmt.Errorf("missing DEEPSEEK_API_KEY")
	}

	payload := chatRequest{
		Model: d.Model,
		Messages: []chatMessage{
			{Role: "user", Content: input},
		},
		Temperature: 0.15,
		TopP:        0.9,
		MaxTokens:   1200,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+d.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("generation endpoint returned %s", resp.Status)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "No response.", nil
	}
	answer := strings.TrimSpace(out.Choices[0].Message.Content)
	if answer == "" {
		return "No response.", nil
	}
	return answer, nil
}

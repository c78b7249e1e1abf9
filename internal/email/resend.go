package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResendClient sends mail through the Resend HTTP API.
type ResendClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewResendClient(apiKey, baseURL string) *ResendClient {
	return &ResendClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *ResendClient) Send(ctx context.Context, msg Message) (Receipt, error) {

	body, err := json.Marshal(msg)
	if err != nil {
		return Receipt{}, fmt.Errorf("encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("email provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Receipt{}, fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Resend error bodies carry a message field.
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return Receipt{}, fmt.Errorf("email provider error: %s", apiErr.Message)
		}
		return Receipt{}, fmt.Errorf("email provider error: status %d", resp.StatusCode)
	}

	var receipt Receipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return Receipt{}, fmt.Errorf("decode provider response: %w", err)
	}

	return receipt, nil
}

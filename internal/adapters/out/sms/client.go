// Package sms sends text messages through the messaging-service.co.tz HTTP
// gateway used by the Tanzanian courier operation.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"couriertrack/internal/pkg/errs"
)

// Client posts single text messages to the gateway. The gateway
// authenticates with a pre-encoded basic credential and identifies the
// operation through a registered sender name.
type Client struct {
	url       string
	basicAuth string
	sender    string
	http      *http.Client
}

type sendRequest struct {
	From string `json:"from"`
	Text string `json:"text"`
	To   string `json:"to"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
}

// NewClient creates a gateway client. url is the single-text endpoint,
// basicAuth the pre-encoded credential placed after "Basic ", sender the
// registered sender name shown to recipients.
func NewClient(url, basicAuth, sender string) (*Client, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}
	if basicAuth == "" {
		return nil, errs.NewValueIsRequiredError("basicAuth")
	}
	if sender == "" {
		return nil, errs.NewValueIsRequiredError("sender")
	}

	return &Client{
		url:       url,
		basicAuth: basicAuth,
		sender:    sender,
		http:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Send delivers one text message to the given phone number and returns the
// gateway's message identifier.
func (c *Client) Send(ctx context.Context, to, text string) (string, error) {
	body, err := json.Marshal(sendRequest{
		From: c.sender,
		Text: text,
		To:   to,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+c.basicAuth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, payload)
	}

	var parsed sendResponse
	if err := json.Unmarshal(payload, &parsed); err != nil || parsed.MessageID == "" {
		// Gateway responses without a message ID are still successes.
		return "unknown", nil
	}
	return parsed.MessageID, nil
}

// Package push provides a client for delivering call offers to doctor
// devices through an FCM-compatible push gateway.
//
// Delivery is best effort: the broker treats an unreachable device as a
// logged non-event, never as a dispatch failure.
package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client sends data notifications to device push tokens.
type Client struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

// NewClient creates a push client for the given gateway endpoint,
// authenticating with the server key.
func NewClient(endpoint, serverKey string) *Client {
	return &Client{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{},
	}
}

// sendRequest is the push gateway message envelope.
type sendRequest struct {
	To   string            `json:"to"`   // device push token
	Data map[string]string `json:"data"` // call offer payload
}

// Send delivers a data payload to the device identified by token.
func (c *Client) Send(token string, data map[string]string) error {
	reqBody := sendRequest{
		To:   token,
		Data: data,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push gateway error: %s", resp.Status)
	}

	return nil
}

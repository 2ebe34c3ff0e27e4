package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"enrolpay/internal/port"
)

type smsSender struct {
	client   *http.Client
	url      string
	apiKey   string
	senderID string
}

// NewSender creates a MessageSender backed by an HTTP SMS gateway. The
// gateway accepts a JSON body {sender, to, message} and replies with
// {message_id}.
func NewSender(gatewayURL, apiKey, senderID string, timeout time.Duration) port.MessageSender {
	return &smsSender{
		client:   &http.Client{Timeout: timeout},
		url:      gatewayURL,
		apiKey:   apiKey,
		senderID: senderID,
	}
}

func (s *smsSender) Name() string { return "smsgateway" }

type sendRequest struct {
	Sender  string `json:"sender"`
	To      string `json:"to"`
	Message string `json:"message"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
}

func (s *smsSender) Send(ctx context.Context, msg port.Message) (string, error) {
	payload, err := json.Marshal(sendRequest{
		Sender:  s.senderID,
		To:      msg.Recipient,
		Message: msg.Body,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling SMS payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("SMS gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding SMS gateway response: %w", err)
	}
	return out.MessageID, nil
}

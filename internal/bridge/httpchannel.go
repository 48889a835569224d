package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPChannel reaches the helper daemon over a single JSON endpoint:
// POST <base>/invoke with {"method": ..., "args": {...}}.
type HTTPChannel struct {
	URL    string
	Client *http.Client
}

func NewHTTPChannel(baseURL string) *HTTPChannel {
	if baseURL == "" {
		return nil
	}
	return &HTTPChannel{
		URL:    strings.TrimRight(baseURL, "/") + "/invoke",
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

type rpcRequest struct {
	Method string            `json:"method"`
	Args   map[string]string `json:"args,omitempty"`
}

type rpcError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type rpcResponse struct {
	Result Reply     `json:"result,omitempty"`
	Error  *rpcError `json:"error,omitempty"`
}

func (c *HTTPChannel) Invoke(ctx context.Context, method string, args map[string]string) (Reply, error) {
	body, err := json.Marshal(rpcRequest{Method: method, Args: args})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("invoke %s: daemon returned %s", method, resp.Status)
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s reply: %w", method, err)
	}
	if out.Error != nil {
		return nil, &Fault{Code: out.Error.Code, Message: out.Error.Message}
	}
	if out.Result == nil {
		return Reply{}, nil
	}
	return out.Result, nil
}

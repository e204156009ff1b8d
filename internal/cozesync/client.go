// internal/cozesync/client.go
package cozesync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client posts row payloads to Coze workflow runs. One POST per row, bounded
// timeout, no retry — failed deliveries are recorded on the config and left to
// operator-initiated manual sync.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type runWorkflowRequest struct {
	WorkflowID string                 `json:"workflow_id"`
	Parameters map[string]interface{} `json:"parameters"`
}

type runWorkflowResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// RunWorkflow delivers one payload to a workflow. Non-2xx statuses and
// non-zero application codes are both delivery failures.
func (c *Client) RunWorkflow(ctx context.Context, workflowID string, payload map[string]interface{}) error {
	if workflowID == "" {
		return fmt.Errorf("no workflow configured")
	}

	body, err := json.Marshal(runWorkflowRequest{
		WorkflowID: workflowID,
		Parameters: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal workflow payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/workflow/run", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to workflow API failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("workflow API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result runWorkflowResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("failed to decode workflow response: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("workflow rejected payload (code %d): %s", result.Code, result.Msg)
	}

	return nil
}

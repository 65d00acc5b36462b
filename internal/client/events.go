package client

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Event is a parsed server-sent event
type Event struct {
	Name string
	Data string
}

// Events opens the SSE stream and delivers parsed events on the
// returned channel. The channel closes when the context is cancelled or
// the stream ends.
func (c *Client) Events(ctx context.Context) (<-chan Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/events", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout for SSE
	streamClient := &http.Client{Timeout: 0}

	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer func() { _ = resp.Body.Close() }()

		scanner := bufio.NewScanner(resp.Body)
		var currentEvent string
		var dataLines []string

		for scanner.Scan() {
			line := scanner.Text()

			if strings.HasPrefix(line, "event: ") {
				currentEvent = strings.TrimPrefix(line, "event: ")
			} else if strings.HasPrefix(line, "data: ") {
				dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
			} else if line == "" {
				// End of event
				if currentEvent != "" {
					evt := Event{Name: currentEvent, Data: strings.Join(dataLines, "\n")}
					select {
					case events <- evt:
					case <-ctx.Done():
						return
					}
				}
				currentEvent = ""
				dataLines = nil
			}
		}
	}()

	return events, nil
}

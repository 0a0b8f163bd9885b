package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteClient asks a maestro server, which holds the model credentials.
type RemoteClient struct {
	URL  string
	http *http.Client
}

func NewRemote(url string, httpClient *http.Client) *RemoteClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &RemoteClient{URL: url, http: httpClient}
}

func (c *RemoteClient) Advise(ctx context.Context, mode, situation string) (Advice, error) {
	body, err := json.Marshal(Request{Mode: mode, Context: situation})
	if nil != err {
		return Advice{}, fmt.Errorf("advice: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if nil != err {
		return Advice{}, fmt.Errorf("advice: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if nil != err {
		return Advice{}, fmt.Errorf("advice: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if nil != err {
		return Advice{}, fmt.Errorf("advice: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Advice{}, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return decode(string(raw))
}

package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxResponseBytes = 1 << 20

// do executes req and decodes a 2xx JSON body into out. Non-2xx responses are
// classified with statusError using describe to extract the provider message.
func do(client *http.Client, req *http.Request, out any, describe func([]byte) string) error {
	resp, err := client.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, describe(body))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindRejected, Message: fmt.Sprintf("unexpected provider response: %v", err), Err: err}
	}
	return nil
}

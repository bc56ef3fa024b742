package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a successful backend reply, body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ContentType returns the response media type header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

package gateway

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SourceHeader tells where a response not coming straight from the network was produced.
const SourceHeader = "X-Gateway-Source"

const (
	sourceCache       = "cache"
	sourceOffline     = "offline"
	sourcePlaceholder = "placeholder"
)

// Snapshot is a stored response.
type Snapshot struct {
	Method     string      `json:"method"`
	URL        string      `json:"url"`
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header"`
	Body       []byte      `json:"body"`
	StoredAt   time.Time   `json:"stored_at"`
}

// RequestKey identifies a request by method and URL without fragment.
func RequestKey(req *http.Request) string {
	u := *req.URL
	u.Fragment = ""
	u.RawFragment = ""
	return req.Method + " " + u.String()
}

// takeSnapshot reads the body of resp and replaces it so that resp can still be returned to the caller.
func takeSnapshot(req *http.Request, resp *http.Response, now time.Time) (Snapshot, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return Snapshot{}, fmt.Errorf("io.ReadAll > %w", err)
	}
	resp.ContentLength = int64(len(body))

	u := *req.URL
	u.Fragment = ""
	u.RawFragment = ""
	return Snapshot{
		Method:     req.Method,
		URL:        u.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
		StoredAt:   now,
	}, nil
}

func (s Snapshot) response(req *http.Request, source string) *http.Response {
	return newResponse(req, s.StatusCode, s.Header, s.Body, source)
}

func newResponse(req *http.Request, statusCode int, header http.Header, body []byte, source string) *http.Response {
	h := header.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set(SourceHeader, source)
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		StatusCode:    statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

func isSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

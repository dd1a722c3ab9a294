package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// RESTClient implements Client over plain HTTP/JSON.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient builds a client for the backend at baseURL. The token source
// is wired separately (SetTokenSource) because the session store that
// supplies credentials is itself constructed on top of this client.
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetTokenSource installs the credential supplier used for authenticated
// calls. Requests sent while no source is set go out unauthenticated.
func (c *RESTClient) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

type requestOptions struct {
	noAuth bool
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

// WithoutAuth suppresses the Authorization header. Used by login/register.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) { o.noAuth = true }
}

// do performs one JSON round-trip: encodes body (when non-nil), attaches the
// credential, sends the request, and decodes into out (when non-nil). Every
// failure comes back as *Error.
func (c *RESTClient) do(ctx context.Context, method, path string, body any, out any, opts ...RequestOption) error {
	var options requestOptions
	for _, opt := range opts {
		opt(&options)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "Failed to encode request body.", Kind: KindGeneric, cause: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: "Failed to build request.", Kind: KindGeneric, cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out, options)
}

// upload performs a multipart file upload under the same normalization
// contract as do. The JSON content type is omitted; the multipart writer
// sets its own boundary-qualified header.
func (c *RESTClient) upload(ctx context.Context, path, field, filename string, data io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Message: "Failed to build upload body.", Kind: KindGeneric, cause: err}
	}
	if _, err := io.Copy(part, data); err != nil {
		return &Error{Message: "Failed to read upload data.", Kind: KindGeneric, cause: err}
	}
	if err := mw.Close(); err != nil {
		return &Error{Message: "Failed to build upload body.", Kind: KindGeneric, cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return &Error{Message: "Failed to build request.", Kind: KindGeneric, cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req, out, requestOptions{})
}

func (c *RESTClient) send(req *http.Request, out any, options requestOptions) error {
	if !options.noAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	// The body is parsed regardless of status; an empty or non-JSON body is
	// treated as "no data", never as a parse failure.
	var parsed map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeError(resp.StatusCode, parsed)
	}

	if out != nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, out)
	}
	return nil
}

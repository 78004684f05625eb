package tests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// APIClient calls the REST API from tests and decodes 2xx answers into dest,
// anything else into errDest. Exchanges go to the test log.
type APIClient struct {
	t          testing.TB
	baseURL    string
	httpClient *http.Client
	headers    http.Header
}

func NewAPIClient(t testing.TB, baseURL string, httpClient *http.Client) APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return APIClient{
		t:          t,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		headers:    http.Header{},
	}
}

// WithHeader returns a copy that sends key on every request, e.g. a session id.
func (a APIClient) WithHeader(key, value string) APIClient {
	a.headers = a.headers.Clone()
	a.headers.Set(key, value)

	return a
}

func (a APIClient) Get(ctx context.Context, endpoint string, headers http.Header, dest, errDest any) (*http.Response, error) {
	return a.do(ctx, http.MethodGet, endpoint, headers, nil, dest, errDest)
}

func (a APIClient) Post(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	request any,
	dest any,
	errDest any,
) (*http.Response, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return a.do(ctx, http.MethodPost, endpoint, headers, body, dest, errDest)
}

// PostJSON sends requestJSON as is, for malformed or partial bodies.
func (a APIClient) PostJSON(
	ctx context.Context,
	endpoint string,
	headers http.Header,
	requestJSON string,
	dest any,
	errDest any,
) (*http.Response, error) {
	return a.do(ctx, http.MethodPost, endpoint, headers, []byte(requestJSON), dest, errDest)
}

func (a APIClient) do(
	ctx context.Context,
	method string,
	endpoint string,
	headers http.Header,
	body []byte,
	dest any,
	errDest any,
) (*http.Response, error) {
	var payload io.Reader = http.NoBody
	if body != nil {
		payload = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, h := range []http.Header{a.headers, headers} {
		for key, values := range h {
			req.Header[key] = values
		}
	}

	a.t.Logf("-> %s %s %s", method, endpoint, body)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if dump, dumpErr := httputil.DumpResponse(resp, true); dumpErr == nil {
		a.t.Logf("<- %s", dump)
	}

	if err = decodeResponse(resp, dest, errDest); err != nil {
		return nil, fmt.Errorf("decodeResponse: %w", err)
	}

	return resp, nil
}

func decodeResponse(resp *http.Response, dest, errDest any) error {
	target := errDest
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		target = dest
	}

	if target == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}

package shttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/asnowfix/shelly-deck/pkg/shelly/ratelimit"

	"github.com/go-logr/logr"
)

// <https://shelly-api-docs.shelly.cloud/gen2/General/RPCChannels#http>
// <https://shelly-api-docs.shelly.cloud/gen1/#common-http-api>

// Doer is the subset of *http.Client used by the channel.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when the device answers with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP status %d", e.Method, e.URL, e.Code)
}

// Channel issues plain HTTP calls to devices. The host argument of every call
// is an IP address, optionally with a port.
type Channel struct {
	client  Doer
	limiter *ratelimit.Limiter
}

// NewChannel returns a channel using client, or http.DefaultClient when nil.
// A nil limiter disables command spacing.
func NewChannel(client Doer, limiter *ratelimit.Limiter) *Channel {
	if client == nil {
		client = http.DefaultClient
	}
	return &Channel{
		client:  client,
		limiter: limiter,
	}
}

func deviceURL(host string, path string, query url.Values) string {
	u := url.URL{
		Scheme: "http",
		Host:   host,
		Path:   path,
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Get issues a GET and decodes the JSON response into out, unless out is nil.
func (ch *Channel) Get(ctx context.Context, host string, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, deviceURL(host, path, query), nil)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	return ch.do(ctx, host, req, out)
}

// Post issues a POST with params as JSON body and decodes the JSON response
// into out, unless out is nil.
func (ch *Channel) Post(ctx context.Context, host string, path string, params any, out any) error {
	var body io.Reader = http.NoBody
	if params != nil {
		jsonData, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, deviceURL(host, path, nil), body)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return ch.do(ctx, host, req, out)
}

// Probe reports whether a GET on path answers with a 2xx status.
func (ch *Channel) Probe(ctx context.Context, host string, path string) bool {
	return ch.Get(ctx, host, path, nil, nil) == nil
}

func (ch *Channel) do(ctx context.Context, host string, req *http.Request, out any) error {
	log := logr.FromContextOrDiscard(ctx)

	if err := ch.limiter.Wait(ctx, host); err != nil {
		return err
	}

	log.V(1).Info("Calling", "method", req.Method, "url", req.URL.String())
	res, err := ch.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer res.Body.Close()
	log.V(1).Info("Response", "method", req.Method, "url", req.URL.String(), "code", res.StatusCode)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return &StatusError{
			Method: req.Method,
			URL:    req.URL.String(),
			Code:   res.StatusCode,
		}
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response of %s %s: %w", req.Method, req.URL, err)
	}
	return nil
}

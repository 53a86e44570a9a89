/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/sirupsen/logrus"
)

const healthEndpoint = "/health"

// Config describes how to reach one bridge process
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	HealthTimeout  time.Duration
	RetryCount     int
	RetryBackoff   time.Duration
}

// Client issues JSON requests against one bridge process. Only GET requests
// are retried; POSTs such as /connect create state on the bridge and are sent
// once. Health probes use their own client bounded by HealthTimeout.
type Client struct {
	baseURL       string
	service       string
	httpClient    heimdall.Client
	onceClient    heimdall.Client
	probeClient   heimdall.Client
	healthTimeout time.Duration
}

// tracingDoer traces every bridge call through the global opentracing tracer
type tracingDoer struct {
	client *http.Client
}

func (d *tracingDoer) Do(req *http.Request) (*http.Response, error) {
	req, ht := nethttp.TraceRequest(opentracing.GlobalTracer(), req,
		nethttp.OperationName("bridge "+req.Method+" "+req.URL.Path))
	defer ht.Finish()
	return d.client.Do(req)
}

func newDoer(timeout time.Duration) heimdall.Doer {
	return &tracingDoer{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &nethttp.Transport{},
		},
	}
}

// NewClient builds a Client. service names the bridge in log lines.
func NewClient(service string, cfg Config) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = 3 * time.Second
	}

	opts := []httpclient.Option{
		httpclient.WithHTTPClient(newDoer(cfg.RequestTimeout)),
		httpclient.WithRetryCount(cfg.RetryCount),
	}
	if cfg.RetryCount > 0 && cfg.RetryBackoff > 0 {
		backoff := heimdall.NewConstantBackoff(cfg.RetryBackoff, cfg.RetryBackoff/2)
		opts = append(opts, httpclient.WithRetrier(heimdall.NewRetrier(backoff)))
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		service:       service,
		httpClient:    httpclient.NewClient(opts...),
		onceClient:    httpclient.NewClient(httpclient.WithHTTPClient(newDoer(cfg.RequestTimeout))),
		probeClient:   httpclient.NewClient(httpclient.WithHTTPClient(newDoer(cfg.HealthTimeout))),
		healthTimeout: cfg.HealthTimeout,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) clientFor(method string) heimdall.Client {
	if method == http.MethodGet {
		return c.httpClient
	}
	return c.onceClient
}

// Health probes GET /health. Any non-2xx status, transport error or timeout
// is reported as an error.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthEndpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.probeClient.Do(req)
	if err != nil {
		return fmt.Errorf("health probe failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health probe failed: %w", &clients.StatusError{StatusCode: resp.StatusCode})
	}
	return nil
}

// MakeRequest sends payload (JSON encoded, may be nil) to endpoint and returns
// the raw response body and status code. Non-2xx statuses are not errors here,
// callers decide how to map them.
func (c *Client) MakeRequest(ctx context.Context, endpoint, method string, payload interface{}) ([]byte, int, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service":  c.service,
		"endpoint": endpoint,
		"method":   method,
	})

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("sending bridge request")
	resp, err := c.clientFor(method).Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		log.WithError(err).Error("bridge request failed")
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	log.WithField("status", resp.StatusCode).Debug("bridge request completed")
	return data, resp.StatusCode, nil
}

// DoJSON sends a request and decodes a 2xx body into out (when non-nil).
// Other statuses are returned as *clients.StatusError.
func (c *Client) DoJSON(ctx context.Context, endpoint, method string, payload, out interface{}) (int, error) {
	resp, status, err := c.MakeRequest(ctx, endpoint, method, payload)
	if err != nil {
		return status, err
	}

	if status < 200 || status >= 300 {
		return status, &clients.StatusError{StatusCode: status, Body: strings.TrimSpace(string(resp))}
	}

	if out != nil && len(resp) > 0 {
		if err := json.Unmarshal(resp, out); err != nil {
			return status, fmt.Errorf("failed to parse response from %s: %w", endpoint, err)
		}
	}
	return status, nil
}

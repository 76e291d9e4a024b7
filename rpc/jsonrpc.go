// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	json2 "github.com/gorilla/rpc/v2/json2"

	"github.com/luxfi/namenode/logger"
)

const (
	jsonMaxAttempts   = 3
	jsonRetryBaseWait = 500 * time.Millisecond
)

// newHTTPClient creates a fresh HTTP client with disabled connection reuse.
// This avoids EOF errors that can occur with connection pooling in complex
// process hierarchies.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DisableKeepAlives: true,
		},
	}
}

// CleanlyCloseBody drains and closes an HTTP response body to prevent
// HTTP/2 GOAWAY errors caused by closing bodies with unread data.
// See: https://github.com/golang/go/issues/46071
func CleanlyCloseBody(body io.ReadCloser) error {
	if body == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, body)
	return body.Close()
}

// isRetryableError checks if an error is transient and worth retrying
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	if errors.Is(err, io.EOF) || strings.Contains(errStr, "EOF") {
		return true
	}
	return strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "broken pipe")
}

// SendJSONRequest issues a single JSON-RPC 2.0 call over HTTP, retrying
// transient transport failures.
func SendJSONRequest(
	ctx context.Context,
	uri *url.URL,
	method string,
	params interface{},
	reply interface{},
) error {
	requestBodyBytes, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return fmt.Errorf("failed to encode client params: %w", err)
	}

	return retry.Do(
		func() error {
			// Fresh request per attempt: the body buffer is consumed.
			request, err := http.NewRequestWithContext(
				ctx,
				http.MethodPost,
				uri.String(),
				bytes.NewBuffer(requestBodyBytes),
			)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			request.Header.Set("Content-Type", "application/json")

			resp, err := newHTTPClient().Do(request)
			if err != nil {
				if isRetryableError(err) {
					logger.Log.Warn("jsonrpc: %s failed, will retry: %v", method, err)
					return err
				}
				return retry.Unrecoverable(fmt.Errorf("failed to issue request: %w", err))
			}

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				CleanlyCloseBody(resp.Body)
				return retry.Unrecoverable(fmt.Errorf("received status code: %d", resp.StatusCode))
			}

			if err := json2.DecodeClientResponse(resp.Body, reply); err != nil {
				CleanlyCloseBody(resp.Body)
				return retry.Unrecoverable(fmt.Errorf("failed to decode client response: %w", err))
			}
			return CleanlyCloseBody(resp.Body)
		},
		retry.Context(ctx),
		retry.Attempts(jsonMaxAttempts),
		retry.Delay(jsonRetryBaseWait),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

// dialJSON creates a JSON-RPC client. addr may be a bare host:port (http
// is assumed) or a full endpoint URL.
func dialJSON(_ context.Context, addr string, _ *dialOptions) (Client, error) {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	uri, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("jsonrpc dial: %w", err)
	}
	return &jsonClient{endpoint: uri}, nil
}

// listenJSON is not provided; serving JSON-RPC belongs to the remote side.
func listenJSON(string, *serverOptions) (Server, error) {
	return nil, errors.New("jsonrpc server not implemented")
}

// jsonClient implements Client over JSON-RPC 2.0 / HTTP
type jsonClient struct {
	endpoint *url.URL
}

func (c *jsonClient) Call(ctx context.Context, method string, args, reply interface{}) error {
	return SendJSONRequest(ctx, c.endpoint, method, args, reply)
}

func (c *jsonClient) CallRaw(context.Context, string, []byte) ([]byte, error) {
	return nil, errors.New("jsonrpc transport does not support raw calls")
}

func (c *jsonClient) Close() error {
	return nil
}

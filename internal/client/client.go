// Package client holds typed HTTP clients for the downstream services
// the storefront composes: catalog, address book, delivery, coupons and
// order placement.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/07chouthri/flowerschool-storefront/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// decodeResponse maps error statuses to app errors and unmarshals a
// success body into out. Bodies are accepted either bare or wrapped in
// the shared {"data": ...} envelope.
func decodeResponse(resp *http.Response, service string, out any) error {
	if resp.StatusCode >= 400 {
		return httpclient.ParseResponseError(resp, service)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", service, err)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		body = envelope.Data
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", service, err)
	}
	return nil
}

// getJSON issues a GET and decodes the response body into out.
func getJSON(ctx context.Context, doer HTTPDoer, url, service string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", service, err)
	}

	resp, err := doer.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, service, out)
}

// postJSON issues a POST with a JSON body and decodes the response into
// out when out is non-nil.
func postJSON(ctx context.Context, doer HTTPDoer, url, service string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", service, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := doer.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, service, out)
}

// putJSON issues a PUT with a JSON body and decodes the response into
// out when out is non-nil.
func putJSON(ctx context.Context, doer HTTPDoer, url, service string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", service, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := doer.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, service, out)
}

// deleteReq issues a DELETE and discards any response body.
func deleteReq(ctx context.Context, doer HTTPDoer, url, service string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", service, err)
	}

	resp, err := doer.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, service, nil)
}

package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// APIError describes a non-2xx response from an upstream HTTP API.
type APIError struct {
	URL        string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request to %s returned status %d", e.URL, e.StatusCode)
}

// Client is a traced HTTP client shared by the generator integrations.
type Client struct {
	Tracer     trace.Tracer
	HTTPClient *http.Client
}

func NewClient(tracer trace.Tracer) *Client {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
	}
	return &Client{
		Tracer:     tracer,
		HTTPClient: httpClient,
	}
}

// Get performs a traced GET against serviceURL with the given query
// parameters and returns the response body.
func (c *Client) Get(ctx context.Context, serviceURL string, params url.Values) (string, error) {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return "", err
	}

	ctx, span := c.startSpan(ctx, parsedURL)
	defer span.End()

	downstreamURL := *parsedURL
	q := downstreamURL.Query()
	for key, values := range params {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	downstreamURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downstreamURL.String(), nil)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	span.SetAttributes(
		attribute.String("http.url", downstreamURL.String()),
		attribute.String("http.method", http.MethodGet),
	)
	return c.do(req, span)
}

// PostJSON performs a traced POST with a JSON payload and returns the
// response body.
func (c *Client) PostJSON(ctx context.Context, serviceURL string, payload []byte) (string, error) {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return "", err
	}

	ctx, span := c.startSpan(ctx, parsedURL)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, parsedURL.String(), bytes.NewReader(payload))
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	span.SetAttributes(
		attribute.String("http.url", parsedURL.String()),
		attribute.String("http.method", http.MethodPost),
	)
	return c.do(req, span)
}

func (c *Client) startSpan(ctx context.Context, parsedURL *url.URL) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("call-%s", strings.Split(parsedURL.Host, ":")[0])
	return c.Tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
}

func (c *Client) do(req *http.Request, span trace.Span) (string, error) {
	otel.GetTextMapPropagator().Inject(req.Context(), propagation.HeaderCarrier(req.Header))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{URL: req.URL.String(), StatusCode: resp.StatusCode}
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Error())
		return "", apiErr
	}
	return string(body), nil
}

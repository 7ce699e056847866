// Package remote implements the Generator port against the flashcard
// generation HTTP service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/flashgenie/internal/domain/flashcard"
	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
	apperrors "github.com/alexisbeaulieu97/flashgenie/pkg/errors"
)

// GeneratePath is the service route that turns a topic into cards.
const GeneratePath = "/api/v1/flashcards/generate"

// MessageUnexpectedFormat is reported when a success response cannot be decoded.
const MessageUnexpectedFormat = "Received an unexpected response format from the server."

const (
	defaultTimeout  = 30 * time.Second
	maxResponseBody = 4 * 1024 * 1024
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     ports.Logger
	Tracer     ports.Tracer
}

// Client calls the generation service over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	logger   ports.Logger
	tracer   ports.Tracer
}

// NewClient builds a Client posting to {BaseURL}/api/v1/flashcards/generate.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("remote: base URL is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		endpoint: base + GeneratePath,
		http:     httpClient,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
	}, nil
}

type generateRequest struct {
	Topic string `json:"topic"`
}

type cardPayload struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Generate implements ports.Generator.
func (c *Client) Generate(ctx context.Context, topic string) ([]flashcard.Card, error) {
	var span ports.Span
	if c.tracer != nil {
		ctx, span = c.tracer.StartSpan(ctx, "remote.generate", "topic", topic)
		defer span.End()
	}
	fail := func(err error) ([]flashcard.Card, error) {
		if span != nil {
			span.SetStatus(ports.SpanStatusError, err.Error())
		}
		return nil, err
	}

	body, err := json.Marshal(generateRequest{Topic: topic})
	if err != nil {
		return fail(fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fail(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := ports.GetCorrelationID(ctx); id != "" {
		req.Header.Set("X-Correlation-ID", id)
	}
	if c.tracer != nil {
		c.tracer.Inject(ctx, req.Header)
	}

	started := time.Now()
	c.debug(ctx, "generation request sent", "endpoint", c.endpoint, "topic", topic)

	resp, err := c.http.Do(req)
	if err != nil {
		c.warn(ctx, "generation request failed", "error", err)
		return fail(apperrors.WrapTransportError(err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fail(apperrors.WrapTransportError(fmt.Errorf("read response: %w", err)))
	}

	if span != nil {
		span.SetAttribute("http.status_code", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := apperrors.NewTransportError(resp.StatusCode, statusText(resp), extractDetail(payload))
		c.warn(ctx, "generation service returned an error", "status", resp.StatusCode, "error", err)
		return fail(err)
	}

	cards, err := c.decodeCards(ctx, payload)
	if err != nil {
		return fail(err)
	}

	if span != nil {
		span.SetAttribute("cards", len(cards))
		span.SetStatus(ports.SpanStatusOK, "")
	}
	c.debug(ctx, "generation response decoded",
		"cards", len(cards),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return cards, nil
}

// decodeCards parses a success body. A body that is not a JSON object is a
// transport failure; a missing or ill-typed card list yields no cards.
func (c *Client) decodeCards(ctx context.Context, payload []byte) ([]flashcard.Card, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, &apperrors.TransportError{Detail: MessageUnexpectedFormat, Err: err}
	}

	raw, ok := envelope["flashcards"]
	if !ok {
		c.debug(ctx, "response carried no flashcards field")
		return nil, nil
	}

	var items []cardPayload
	if err := json.Unmarshal(raw, &items); err != nil {
		c.warn(ctx, "flashcards field has an unexpected shape", "error", err)
		return nil, nil
	}

	cards := make([]flashcard.Card, 0, len(items))
	for _, item := range items {
		cards = append(cards, flashcard.Card{Term: item.Term, Definition: item.Definition})
	}
	return cards, nil
}

// extractDetail returns the structured error text of a failure body: detail
// (strings verbatim, other JSON values re-encoded), then message, then error.
func extractDetail(payload []byte) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}

	if raw, ok := body["detail"]; ok {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			if strings.TrimSpace(text) != "" {
				return text
			}
		} else if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			var compact bytes.Buffer
			if err := json.Compact(&compact, trimmed); err == nil {
				return compact.String()
			}
			return string(trimmed)
		}
	}

	for _, key := range []string{"message", "error"} {
		var text string
		if raw, ok := body[key]; ok && json.Unmarshal(raw, &text) == nil && strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func (c *Client) debug(ctx context.Context, msg string, fields ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(ctx, msg, fields...)
	}
}

func (c *Client) warn(ctx context.Context, msg string, fields ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(ctx, msg, fields...)
	}
}

var _ ports.Generator = (*Client)(nil)

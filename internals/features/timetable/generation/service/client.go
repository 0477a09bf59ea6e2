// file: internals/features/timetable/generation/service/client.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	d "planova_backend/internals/features/timetable/generation/dto"
)

/* =======================================================
   Errors
   ======================================================= */

type ErrorKind string

const (
	KindTransport      ErrorKind = "transport"
	KindResponseFormat ErrorKind = "response_format"
	KindStructural     ErrorKind = "structural"
)

const (
	MsgParseFailed      = "Failed to parse server response"
	MsgInvalidTimetable = "Empty or invalid timetable received"
)

// GenerationError is surfaced to the user; the message is ready for display.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.Err }

/* =======================================================
   Result
   ======================================================= */

// Result is one successful reply. Timetable holds the raw Day->slots mapping.
type Result struct {
	Timetable map[string]json.RawMessage
	Analysis  json.RawMessage
}

// Generator is what the workspace depends on; tests plug in fakes.
type Generator interface {
	Generate(ctx context.Context, req d.GenerateRequest) (*Result, error)
}

/* =======================================================
   Client (fasthttp agent)
   ======================================================= */

type Client struct {
	URL string
	// Timeout of 0 waits for the service indefinitely.
	Timeout time.Duration
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{URL: strings.TrimSpace(url), Timeout: timeout}
}

type wireReply struct {
	Timetable json.RawMessage `json:"timetable"`
	Analysis  json.RawMessage `json:"analysis"`
	Error     *string         `json:"error"`
}

func (c *Client) Generate(ctx context.Context, req d.GenerateRequest) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{Kind: KindTransport, Message: err.Error(), Err: err}
	}

	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	agent := fiber.Post(c.URL)
	agent.ContentType(fiber.MIMEApplicationJSON)
	agent.Body(body)
	if t := c.timeout(ctx); t > 0 {
		agent.Timeout(t)
	}
	if err := agent.Parse(); err != nil {
		return nil, &GenerationError{Kind: KindTransport, Message: err.Error(), Err: err}
	}

	started := time.Now()
	status, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		log.Printf("[GENERATE] transport error after %s: %v", time.Since(started), errs[0])
		return nil, &GenerationError{Kind: KindTransport, Message: errs[0].Error(), Err: errs[0]}
	}
	log.Printf("[GENERATE] status=%d bytes=%d dur=%s", status, len(respBody), time.Since(started))

	return parseReply(status, respBody)
}

// timeout picks the tighter of the configured timeout and the context deadline.
func (c *Client) timeout(ctx context.Context) time.Duration {
	t := c.Timeout
	if dl, ok := ctx.Deadline(); ok {
		left := time.Until(dl)
		if left <= 0 {
			left = time.Millisecond
		}
		if t <= 0 || left < t {
			t = left
		}
	}
	return t
}

func parseReply(status int, body []byte) (*Result, error) {
	if status < 200 || status > 299 {
		// the user sees the status only; any body text is kept for the logs
		ge := &GenerationError{Kind: KindTransport, Message: fmt.Sprintf("Server error: %d", status), Status: status}
		var w wireReply
		if err := sonic.Unmarshal(body, &w); err == nil && w.Error != nil && *w.Error != "" {
			ge.Err = errors.New(*w.Error)
			log.Printf("[GENERATE] status=%d error=%q", status, *w.Error)
		}
		return nil, ge
	}

	var w wireReply
	if err := sonic.Unmarshal(body, &w); err != nil {
		return nil, &GenerationError{Kind: KindResponseFormat, Message: MsgParseFailed, Status: status, Err: err}
	}
	if w.Error != nil && *w.Error != "" {
		return nil, &GenerationError{Kind: KindResponseFormat, Message: *w.Error, Status: status}
	}

	trimmed := bytes.TrimSpace(w.Timetable)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &GenerationError{Kind: KindStructural, Message: MsgInvalidTimetable, Status: status}
	}
	var tt map[string]json.RawMessage
	if err := sonic.Unmarshal(trimmed, &tt); err != nil || len(tt) == 0 {
		return nil, &GenerationError{Kind: KindStructural, Message: MsgInvalidTimetable, Status: status, Err: err}
	}

	return &Result{Timetable: tt, Analysis: w.Analysis}, nil
}

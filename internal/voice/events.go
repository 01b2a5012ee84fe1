// Package voice is the boundary to the voice-AI transport. It understands the
// transport's message contract — named function-call events with arbitrary
// field maps, transcript updates, and connection lifecycle signals — and
// translates them into console operations. It performs no screen derivation
// of its own.
package voice

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ProtocolVersion identifies the bridge contract version exposed via /health.
const ProtocolVersion = "1.0.0"

// EventType names the kinds of message the transport delivers.
type EventType string

const (
	EventFunctionCall        EventType = "function_call"
	EventUserTranscript      EventType = "user_transcript"
	EventAssistantTranscript EventType = "assistant_transcript"
	EventConnected           EventType = "connected"
	EventDisconnected        EventType = "disconnected"
	EventError               EventType = "error"
)

// Event is a single inbound message from the voice transport.
type Event struct {
	Type         EventType      `json:"type"`
	FunctionName string         `json:"function_name,omitempty"`
	Args         map[string]any `json:"args,omitempty"`
	Text         string         `json:"text,omitempty"`
	Message      string         `json:"message,omitempty"`
	ServerTime   time.Time      `json:"server_time,omitempty"`
}

// Normalize applies canonical formatting before validation.
func (e *Event) Normalize() {
	if e == nil {
		return
	}
	e.Type = EventType(strings.TrimSpace(strings.ToLower(string(e.Type))))
	e.FunctionName = strings.TrimSpace(e.FunctionName)
}

// Validate enforces baseline requirements for incoming events.
func (e Event) Validate() error {
	switch e.Type {
	case EventFunctionCall:
		if e.FunctionName == "" {
			return errors.New("function_name is required")
		}
	case EventUserTranscript, EventAssistantTranscript, EventConnected, EventDisconnected, EventError:
	case "":
		return errors.New("type is required")
	default:
		return fmt.Errorf("type %q not supported", string(e.Type))
	}
	return nil
}

// StampServerTime overwrites ServerTime with the supplied clock reading (UTC).
func (e *Event) StampServerTime(now time.Time) {
	if e == nil {
		return
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	e.ServerTime = now.UTC()
}

// DispatchResult is the structured outcome returned to the transport for
// every event. Failures are results, never faults.
type DispatchResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ConnectionState mirrors the transport link for the UI: a three-step
// lifecycle (connecting, connected, failed) plus the live transcript. It
// never touches the workflow trees.
type ConnectionState struct {
	Connected  bool
	Connecting bool
	ErrMessage string
	Transcript string
}

// EventProcessor consumes validated events and answers with a result.
type EventProcessor interface {
	HandleEvent(Event) DispatchResult
}

// EventProcessorFunc adapts a function into an EventProcessor.
type EventProcessorFunc func(Event) DispatchResult

// HandleEvent executes f(e).
func (f EventProcessorFunc) HandleEvent(e Event) DispatchResult {
	if f == nil {
		return DispatchResult{}
	}
	return f(e)
}

// Logger records bridge status information. It matches the logbook's
// printf-style signature.
type Logger interface {
	Printf(format string, args ...any)
}

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

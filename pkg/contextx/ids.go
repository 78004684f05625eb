package contextx

import (
	"context"
	"fmt"
)

// TraceID correlates log lines of a single HTTP request. It is also returned
// to clients as the support id of an error response.
type TraceID string

// SessionID identifies a chatbot conversation. The frontend passes it with
// every call so that a handoff ticket can be matched with the chat transcript.
type SessionID string

type (
	contextKeyTraceID   struct{}
	contextKeySessionID struct{}
)

func (t TraceID) String() string {
	return string(t)
}

func (s SessionID) String() string {
	return string(s)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}

func WithSessionID(ctx context.Context, sessionID SessionID) context.Context {
	return context.WithValue(ctx, contextKeySessionID{}, sessionID)
}

func SessionIDFromContext(ctx context.Context) (SessionID, error) {
	sessionID, ok := ctx.Value(contextKeySessionID{}).(SessionID)
	if !ok {
		return "", fmt.Errorf("session id: %w", ErrNoValue)
	}

	return sessionID, nil
}

package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-posts/pkg/testsupport"
)

type testMessage struct {
	Slug string
}

func (testMessage) Type() string { return "posts.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "posts.test.invalid" }

func (invalidMessage) Validate() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	rec := testsupport.NewRecordingLogger()
	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	}, WithLogger[testMessage](rec), WithOperation[testMessage]("posts.test"))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
	if rec.Count("command.execute.start") != 1 || rec.Count("command.execute.success") != 1 {
		t.Fatalf("expected start and success entries, got %#v", rec.Entries())
	}
	for _, entry := range rec.Entries() {
		if entry.Fields["command"] != "posts.test.message" || entry.Fields["operation"] != "posts.test" {
			t.Fatalf("expected command fields on %q, got %#v", entry.Message, entry.Fields)
		}
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	rec := testsupport.NewRecordingLogger()
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	}, WithLogger[testMessage](rec))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if rec.Count("command.execute.failed") != 1 {
		t.Fatalf("expected failure to be logged, got %v", rec.Messages("error"))
	}
}

func TestHandlerKeepsNotFoundCategory(t *testing.T) {
	missing := errors.New("missing")
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return WrapNotFoundError(missing, "post not found")
	})

	err := h.Execute(context.Background(), testMessage{Slug: "nope"})
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
	if !errors.Is(err, missing) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerNilContextWithoutTimeout(t *testing.T) {
	var deadlineSet bool
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		if ctx == nil {
			return errors.New("nil context")
		}
		_, deadlineSet = ctx.Deadline()
		return nil
	}, WithTimeout[testMessage](0))

	//nolint:staticcheck // SA1012
	if err := h.Execute(nil, testMessage{}); err != nil {
		t.Fatalf("Execute with nil context: %v", err)
	}
	if deadlineSet {
		t.Fatal("expected no deadline when timeout is disabled")
	}
}

func TestHandlerMessageFieldsAndTelemetry(t *testing.T) {
	rec := testsupport.NewRecordingLogger()
	var got TelemetryInfo
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithLogger[testMessage](rec),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"slug": msg.Slug}
		}),
		WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
			got = info
		}),
	)

	if err := h.Execute(context.Background(), testMessage{Slug: "hello"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != TelemetryStatusSuccess || got.Command != "posts.test.message" {
		t.Fatalf("unexpected telemetry %#v", got)
	}
	if got.Fields["slug"] != "hello" {
		t.Fatalf("expected message fields in telemetry, got %#v", got.Fields)
	}
	if rec.Count("command.execute.success") != 0 {
		t.Fatal("custom telemetry should replace default outcome logging")
	}
	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Fields["slug"] != "hello" {
		t.Fatalf("expected start entry with slug field, got %#v", entries)
	}
}

func TestCommandLoggerFields(t *testing.T) {
	provider := testsupport.NewRecordingProvider()
	CommandLogger(provider, " ").Info("hello")

	entries := provider.Logger.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].Fields["command_module"] != "core" || entries[0].Fields["module"] != "posts.commands" {
		t.Fatalf("unexpected fields %#v", entries[0].Fields)
	}
}

package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

// plainLogger does not implement interfaces.FieldsLogger.
type plainLogger struct{}

func (plainLogger) Trace(string, ...any)                            {}
func (plainLogger) Debug(string, ...any)                            {}
func (plainLogger) Info(string, ...any)                             {}
func (plainLogger) Warn(string, ...any)                             {}
func (plainLogger) Error(string, ...any)                            {}
func (plainLogger) Fatal(string, ...any)                            {}
func (p plainLogger) WithContext(context.Context) interfaces.Logger { return p }

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "posts.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerFallsBackWhenProviderReturnsNil(t *testing.T) {
	provider := &stubProvider{}
	logger := ModuleLogger(provider, indexModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
}

func TestModuleLoggerAnnotatesModuleField(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, markdownModule)

	if len(provider.requested) != 1 || provider.requested[0] != markdownModule {
		t.Fatalf("expected module %s, got %v", markdownModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected fields applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != markdownModule {
		t.Fatalf("expected module field %s, got %v", markdownModule, got)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamespacedLoggers(t *testing.T) {
	cases := []struct {
		name   string
		get    func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{"index", IndexLogger, indexModule},
		{"markdown", MarkdownLogger, markdownModule},
		{"commands", CommandsLogger, commandsModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.get(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s request, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithDocumentContextSkipsBlankValues(t *testing.T) {
	rec := &recordingLogger{}

	WithDocumentContext(rec, "  posts/a.md ", "   ")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldDocumentPath] != "posts/a.md" {
		t.Fatalf("expected trimmed path, got %v", rec.fields[0][fieldDocumentPath])
	}
	if _, ok := rec.fields[0][fieldPostSlug]; ok {
		t.Fatalf("expected blank slug to be skipped: %v", rec.fields[0])
	}
}

func TestWithFieldsIgnoresPlainLoggers(t *testing.T) {
	logger := plainLogger{}
	if got := WithFields(logger, map[string]any{"a": 1}); got != logger {
		t.Fatalf("expected logger unchanged, got %T", got)
	}
}

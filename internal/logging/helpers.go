package logging

import (
	"maps"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// WithFields returns a child logger carrying fields when logger implements
// interfaces.FieldsLogger. Otherwise logger is returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return fieldsLogger.WithFields(copied)
}

package plugin

import (
	"context"
	"fmt"
	"log/slog"
)

// Guard runs one call into a component. Returned errors and panics are both
// reported as an error; nothing raised by the component escapes.
func Guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Op: op, Value: r}
		}
	}()
	return fn()
}

// Discard runs fn through Guard and drops the outcome after logging it.
// Components are third-party code; their faults must stop here.
func Discard(logger *slog.Logger, op string, fn func() error) {
	if err := Guard(op, fn); err != nil && logger != nil {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "plugin call failed",
			slog.String("op", op), slog.Any("error", err))
	}
}

func formatPanic(v any) string {
	switch v := v.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

package pipeline

import "fmt"

// LogFunc is the structured logging callback threaded through every stage.
// Fields are passed as alternating key/value pairs, mirroring the
// structlog-style "message plus keyword context" shape the pipeline's
// original logging service used. A nil LogFunc is valid and discards all
// output; stages must never require a logger to run correctly.
type LogFunc func(level, msg string, fields ...any)

// NopLog discards everything, for callers that don't care about pipeline
// diagnostics; passing a nil LogFunc has the same effect.
func NopLog(string, string, ...any) {}

func logf(log LogFunc, level, msg string, fields ...any) {
	if log == nil {
		return
	}
	log(level, msg, fields...)
}

// traceEnabled reports whether any of ids appears in the config's
// TracePairIDs filter. An empty filter means "trace nothing extra", so it
// always returns false.
func traceEnabled(traceIDs []string, ids ...string) bool {
	if len(traceIDs) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(traceIDs))
	for _, t := range traceIDs {
		set[t] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

// fieldString is a small helper for building log field slices without
// repeating fmt.Sprintf at every call site.
func fieldString(k string, v any) string {
	return fmt.Sprintf("%s=%v", k, v)
}

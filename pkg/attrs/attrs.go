// Package attrs inspects slog-style alternating key-value slices.
package attrs

// ExtractString returns the string paired with key in an alternating
// [key, value, key, value, ...] slice, as the audit loggers pass around.
// Missing keys and non-string values yield "".
func ExtractString(pairs []any, key string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok || name != key {
			continue
		}
		if value, ok := pairs[i+1].(string); ok {
			return value
		}
	}
	return ""
}

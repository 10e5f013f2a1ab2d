//go:build unit

package testutil

// Field mutates one key of a request payload map; a nil value removes the
// key, which is how tests build "missing field" variants.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

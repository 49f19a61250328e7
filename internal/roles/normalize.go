package roles

import (
	"encoding/json"
	"strings"
)

// roleListKeys are the object fields checked for role data, in order.
// The first present key wins.
var roleListKeys = []string{"job_roles", "suggested_roles", "recommended_roles"}

// Normalize coerces arbitrary model text into an Output. It never fails:
// malformed input becomes a raw passthrough so callers can still inspect
// what the model produced.
func Normalize(raw string) Output {
	trimmed := stripCodeFence(raw)

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return RawOutput(raw)
	}

	switch v := value.(type) {
	case []any:
		return RolesOutput(decodeRoles(trimmed))
	case map[string]any:
		for _, key := range roleListKeys {
			list, ok := v[key]
			if !ok {
				continue
			}
			encoded, err := json.Marshal(list)
			if err != nil {
				break
			}
			return RolesOutput(decodeRoles(string(encoded)))
		}
		// A parseable object with none of the known keys is an empty
		// role list, not an error.
		return RolesOutput([]Role{})
	default:
		return RawOutput(raw)
	}
}

// stripCodeFence removes a leading ``` or ```json fence and a trailing ```
// fence, case-insensitively, leaving other content untouched.
func stripCodeFence(raw string) string {
	clean := strings.TrimSpace(raw)
	switch {
	case hasFoldPrefix(clean, "```json"):
		clean = clean[len("```json"):]
	case strings.HasPrefix(clean, "```"):
		clean = clean[len("```"):]
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func decodeRoles(encoded string) []Role {
	var out []Role
	if err := json.Unmarshal([]byte(encoded), &out); err != nil {
		return []Role{}
	}
	if out == nil {
		return []Role{}
	}
	return out
}

package narrative

import (
	"fmt"
	"reflect"
	"strings"
)

// lookupPath resolves a dotted path through nested maps.
func lookupPath(root any, path string) (any, bool) {
	if path == "" {
		return root, true
	}
	cur := root
	for _, key := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case Context:
			v, ok := m[key]
			if !ok {
				return nil, false
			}
			cur = v
		case map[string]any:
			v, ok := m[key]
			if !ok {
				return nil, false
			}
			cur = v
		case map[string]string:
			v, ok := m[key]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			if key == "length" {
				if n, ok := lengthOf(cur); ok {
					cur = n
					continue
				}
			}
			return nil, false
		}
	}
	return cur, true
}

func lengthOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return len(t), true
	case []string:
		return len(t), true
	case []any:
		return len(t), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len(), true
	}
	return 0, false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	}
	if n, ok := lengthOf(v); ok {
		return n > 0
	}
	return true
}

// formatValue renders a context value as prose. Lists are comma separated.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = formatValue(item)
		}
		return strings.Join(parts, ", ")
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// evaluate tests a condition: path, !path, path === 'x', path !== 'x'
// or path.includes('x').
func evaluate(ctx Context, cond string) bool {
	if left, right, ok := strings.Cut(cond, "!=="); ok {
		v, _ := lookupPath(ctx, strings.TrimSpace(left))
		return formatValue(v) != unquote(right)
	}
	if left, right, ok := strings.Cut(cond, "==="); ok {
		v, _ := lookupPath(ctx, strings.TrimSpace(left))
		return formatValue(v) == unquote(right)
	}
	if idx := strings.Index(cond, ".includes("); idx >= 0 && strings.HasSuffix(cond, ")") {
		v, _ := lookupPath(ctx, strings.TrimSpace(cond[:idx]))
		needle := unquote(cond[idx+len(".includes(") : len(cond)-1])
		return includes(v, needle)
	}
	if strings.HasPrefix(cond, "!") {
		return !evaluate(ctx, strings.TrimSpace(cond[1:]))
	}
	v, _ := lookupPath(ctx, cond)
	return truthy(v)
}

func includes(v any, needle string) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(t, needle)
	case []string:
		for _, s := range t {
			if s == needle {
				return true
			}
		}
	case []any:
		for _, item := range t {
			if formatValue(item) == needle {
				return true
			}
		}
	}
	return false
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

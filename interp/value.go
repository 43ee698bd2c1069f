package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a runtime value: int64, string or bool.
type Value any

// Format renders v the way println prints it.
func Format(v Value) string {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	}
	return fmt.Sprint(v)
}

// formatList renders several values as `[a, b, c]`.
func formatList(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = Format(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func typeName(v Value) string {
	switch v.(type) {
	case int64:
		return "int"
	case string:
		return "string"
	case bool:
		return "bool"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

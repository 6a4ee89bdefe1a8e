package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts various types to int using explicit type switching.
// Numeric strings may carry surrounding whitespace or a fractional part.
func ToInt(val any) int {
	switch v := val.(type) {
	case nil:
		return 0
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		return parseIntString(v)
	case []byte:
		return parseIntString(string(v))
	default:
		return parseIntString(fmt.Sprintf("%v", v))
	}
}

func parseIntString(s string) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// ToID converts a loosely typed identifier to a non-negative id.
// Negative numbers are mirrored and garbage yields zero.
func ToID(val any) uint {
	i := ToInt(val)
	if i < 0 {
		i = -i
	}
	return uint(i)
}

// ToBool converts various types to bool.
// It handles bool, numeric types (non-zero=true), and strings ("1", "true", "yes", "on").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		}
		return false
	case []byte:
		return ToBool(string(v))
	case nil:
		return false
	default:
		return ToInt(v) != 0
	}
}

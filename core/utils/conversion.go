package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts query values and driver scalars to int. Unparseable input yields 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case int16:
		return int(v)
	case int8:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case uint16:
		return int(v)
	case uint8:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		return atoi(v)
	case []byte:
		return atoi(string(v))
	case nil:
		return 0
	default:
		return atoi(fmt.Sprint(v))
	}
}

// ToIntOr is ToInt with a fallback for missing or non-positive values.
func ToIntOr(val any, def int) int {
	if n := ToInt(val); n > 0 {
		return n
	}
	return def
}

// ToBool converts query flags. It accepts bool, 1 and "1"/"true" in any case.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return ToInt(v) == 1
	case string:
		return truthy(v)
	case []byte:
		return truthy(string(v))
	default:
		return false
	}
}

func atoi(s string) int {
	i, _ := strconv.Atoi(strings.TrimSpace(s))
	return i
}

func truthy(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}

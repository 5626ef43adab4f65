package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToString renders a database value as cell text. Numbers never use exponent
// notation; dates without a clock component render as a plain date.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.DateTime)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool interprets query and config flags. Strings accept what strconv.ParseBool
// accepts plus "yes" and "on"; integers are true when non-zero.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case string:
		return parseBool(v)
	case []byte:
		return parseBool(string(v))
	default:
		return false
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "yes" || s == "on" {
		return true
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

package calc

import (
	"strconv"
	"strings"
)

var basePrefixes = map[int]string{2: "0b", 8: "0o", 16: "0x"}

// BaseConversion is one integer written in the four common bases.
type BaseConversion struct {
	Binary  string `json:"binary"`
	Octal   string `json:"octal"`
	Decimal string `json:"decimal"`
	Hex     string `json:"hex"`
}

// ConvertBase parses value in base from (2, 8, 10 or 16) and renders it in
// every base. A leading sign, underscores and the usual 0b/0o/0x prefixes
// are accepted.
func ConvertBase(value string, from int) (BaseConversion, error) {
	switch from {
	case 2, 8, 10, 16:
	default:
		return BaseConversion{}, invalid("from", "base must be 2, 8, 10 or 16, got %d", from)
	}

	s := strings.ReplaceAll(strings.TrimSpace(value), "_", "")
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else {
		s = strings.TrimPrefix(s, "+")
	}

	if prefix, ok := basePrefixes[from]; ok && strings.HasPrefix(strings.ToLower(s), prefix) {
		s = s[len(prefix):]
	}
	if s == "" {
		return BaseConversion{}, invalid("value", "is empty")
	}

	n, err := strconv.ParseUint(s, from, 64)
	if err != nil {
		return BaseConversion{}, invalid("value", "%q is not a base-%d integer", value, from)
	}

	sign := ""
	if neg && n != 0 {
		sign = "-"
	}
	return BaseConversion{
		Binary:  sign + strconv.FormatUint(n, 2),
		Octal:   sign + strconv.FormatUint(n, 8),
		Decimal: sign + strconv.FormatUint(n, 10),
		Hex:     sign + strings.ToUpper(strconv.FormatUint(n, 16)),
	}, nil
}

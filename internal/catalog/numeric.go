package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record fields are decoded one by one from raw JSON so a single bad value
// never fails a whole list. Numeric fields arrive as JSON numbers or as
// strings (the catalog API renders decimals as strings). Anything unparseable
// is reported as malformed and replaced by its zero value by the callers.

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func rawText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	}
	return string(raw), true
}

// parseDecimal returns the value, whether it was present, and whether it parsed.
func parseDecimal(raw json.RawMessage) (value decimal.Decimal, present bool, ok bool) {
	if isNull(raw) {
		return decimal.Zero, false, true
	}
	text, valid := rawText(raw)
	if !valid {
		return decimal.Zero, true, false
	}
	if text == "" {
		return decimal.Zero, false, true
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, true, false
	}
	return d, true, true
}

func parseInt(raw json.RawMessage) (value int, present bool, ok bool) {
	if isNull(raw) {
		return 0, false, true
	}
	text, valid := rawText(raw)
	if !valid {
		return 0, true, false
	}
	if text == "" {
		return 0, false, true
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n, true, true
	}
	// Tolerate "5.0" style integers.
	d, err := decimal.NewFromString(text)
	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0, true, false
	}
	return int(d.IntPart()), true, true
}

func parseBool(raw json.RawMessage, fallback bool) bool {
	if isNull(raw) {
		return fallback
	}
	text, valid := rawText(raw)
	if !valid {
		return fallback
	}
	if b, err := strconv.ParseBool(strings.ToLower(text)); err == nil {
		return b
	}
	return fallback
}

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// parseText accepts a JSON string or null. Any other JSON type is malformed.
func parseText(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", true
	}
	raw = bytes.TrimSpace(raw)
	if raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// parseTime accepts an RFC 3339 string, null or "". Anything else is malformed.
func parseTime(raw json.RawMessage) (time.Time, bool) {
	text, ok := parseText(raw)
	if !ok {
		return time.Time{}, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseID(raw json.RawMessage) (ID, bool) {
	var id ID
	if err := id.UnmarshalJSON(raw); err != nil {
		return "", false
	}
	return id, true
}

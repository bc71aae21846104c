package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is an untyped key/value mapping decoded from a source document.
//
// Values are int64 (integer literals that fit), decimal.Decimal (larger
// integer literals), json.Number (any other numeric literal), string, bool,
// nil, *Record or []any. Keys keep the order in which
// they first appeared in the source, so a record re-encoded for quarantine
// reads like the input it came from.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores val under key and returns the record for chaining.
// Re-setting an existing key keeps its original position.
func (r *Record) Set(key string, val any) *Record {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = val
	return r
}

// Get returns the value stored under key and whether the key is present.
// A present key may still hold nil (JSON null).
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	val, ok := r.values[key]
	return val, ok
}

// Keys returns the record's keys in source order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of keys in the record.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// MarshalJSON encodes the record as a JSON object in key order.
//
// Strings escape only quotes, backslashes and control characters. Non-integer
// numbers are written in their shortest float form with at least one
// fractional digit ("1e2" becomes 100.0, "2.50" becomes 2.5), switching to
// exponent notation below 1e-4 and from 1e16 upwards.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Record) encode(buf *bytes.Buffer) error {
	if r == nil {
		buf.WriteString("null")
		return nil
	}

	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, key)
		buf.WriteByte(':')
		if err := encodeValue(buf, r.values[key]); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeValue(buf *bytes.Buffer, val any) error {
	switch v := val.(type) {
	case nil:
		buf.WriteString("null")
	case *Record:
		return v.encode(buf)
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case int64:
		buf.WriteString(strconv.FormatInt(v, 10))
	case decimal.Decimal:
		buf.WriteString(v.String())
	case json.Number:
		buf.WriteString(formatNumber(v))
	case string:
		writeString(buf, v)
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	default:
		var scratch bytes.Buffer
		enc := json.NewEncoder(&scratch)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return err
		}
		buf.Write(bytes.TrimRight(scratch.Bytes(), "\n"))
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// formatNumber renders a non-integer literal. Literals that do not fit a
// float64 keep their source text.
func formatNumber(n json.Number) string {
	text := n.String()
	if !strings.ContainsAny(text, ".eE") {
		return text
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) {
		return text
	}
	return formatFloat(f)
}

func formatFloat(f float64) string {
	sign := ""
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	if strings.HasPrefix(sci, "-") {
		sign, sci = "-", sci[1:]
	}

	mantissa, expText, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expText)
	digits := strings.Replace(mantissa, ".", "", 1)
	// position of the decimal point relative to the first digit
	point := exp + 1

	switch {
	case point > 0 && point <= 16:
		if len(digits) <= point {
			return sign + digits + strings.Repeat("0", point-len(digits)) + ".0"
		}
		return sign + digits[:point] + "." + digits[point:]
	case point <= 0 && point > -4:
		return sign + "0." + strings.Repeat("0", -point) + digits
	default:
		frac := digits[1:]
		if frac == "" {
			frac = "0"
		}
		return fmt.Sprintf("%s%s.%se%+03d", sign, digits[:1], frac, point-1)
	}
}

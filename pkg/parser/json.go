package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"topup/pkg/schema"
)

// ParseRecords decodes a JSON array of objects into records.
//
// Integer literals that fit in an int64 become int64 and larger ones become
// decimal.Decimal. Every other number is kept as a json.Number with its
// source text. Object keys keep their
// source order. Anything other than an array of objects is an error.
func ParseRecords(data []byte) ([]*schema.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty document")
		}
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("expected a JSON array of records, got %v", tok)
	}

	records := make([]*schema.Record, 0)
	for index := 0; dec.More(); index++ {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
		rec, ok := val.(*schema.Record)
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", index, val)
		}
		records = append(records, rec)
	}

	// closing ]
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after the record array")
	}

	return records, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case json.Number:
		return numberValue(t), nil
	default:
		// string, bool or nil
		return t, nil
	}
}

func decodeObject(dec *json.Decoder) (*schema.Record, error) {
	rec := schema.NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		rec.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	items := make([]any, 0)
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return items, nil
}

// numberValue returns an int64 for integer literals in range, a decimal for
// integer literals beyond it and the untouched json.Number otherwise.
func numberValue(n json.Number) any {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return n
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return n
}

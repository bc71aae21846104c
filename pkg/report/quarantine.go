package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"topup/pkg/schema"
)

// RenderQuarantine renders rejected records as pretty-printed JSON objects,
// one after another, each followed by a newline. Field order is that of the
// source record; see schema.Record.MarshalJSON for how values are written.
func RenderQuarantine(records []*schema.Record) ([]byte, error) {
	var buf bytes.Buffer

	for i, rec := range records {
		compact, err := rec.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("quarantine record %d: %w", i, err)
		}
		if err := json.Indent(&buf, compact, "", "  "); err != nil {
			return nil, fmt.Errorf("quarantine record %d: %w", i, err)
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

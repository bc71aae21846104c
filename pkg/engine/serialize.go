package engine

import (
	"encoding/json"
	"fmt"
)

// serializedReport is the JSON representation of a reconciled report.
// Aggregate stats are derived from the groups, so only run stats travel.
type serializedReport struct {
	Groups []ReportGroup `json:"groups"`
	Stats  RunStats      `json:"stats"`
}

// SerializeReport encodes the aggregate and run statistics as indented JSON.
// Groups keep their company id order.
func SerializeReport(agg Aggregate, stats RunStats) ([]byte, error) {
	groups := agg.Groups
	if groups == nil {
		groups = make([]ReportGroup, 0)
	}

	data, err := json.MarshalIndent(serializedReport{Groups: groups, Stats: stats}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}

	return append(data, '\n'), nil
}

// DeserializeReport reconstructs an aggregate and its run statistics from the
// output of SerializeReport. Aggregate stats are recomputed from the groups.
func DeserializeReport(data []byte) (Aggregate, RunStats, error) {
	var sr serializedReport
	if err := json.Unmarshal(data, &sr); err != nil {
		return Aggregate{}, RunStats{}, fmt.Errorf("failed to deserialize report: %w", err)
	}

	if sr.Groups == nil {
		sr.Groups = make([]ReportGroup, 0)
	}

	return Aggregate{
		Groups: sr.Groups,
		Stats:  summarize(sr.Groups),
	}, sr.Stats, nil
}

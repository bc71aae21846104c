package engine

import (
	"strconv"

	"topup/pkg/schema"
)

// ResolutionLastWins marks a conflict settled in favour of the later record.
const ResolutionLastWins = "last_wins"

// FieldConflict represents a disagreement between two company records that
// share an id. Resolution is always "last_wins".
type FieldConflict struct {
	Field         string `json:"field"`
	ReplacedValue string `json:"replacedValue"`
	WinningValue  string `json:"winningValue"`
	Resolution    string `json:"resolution"`
}

// DetectConflicts compares the policy fields of a replaced company and the
// company that replaces it. Compared fields: name, top_up, email_status.
func DetectConflicts(replaced, winner schema.Company) []FieldConflict {
	var conflicts []FieldConflict

	add := func(field, replacedValue, winningValue string) {
		if replacedValue == winningValue {
			return
		}
		conflicts = append(conflicts, FieldConflict{
			Field:         field,
			ReplacedValue: replacedValue,
			WinningValue:  winningValue,
			Resolution:    ResolutionLastWins,
		})
	}

	add(schema.FieldName, replaced.Name, winner.Name)
	add(schema.FieldTopUp, replaced.TopUp.String(), winner.TopUp.String())
	add(schema.FieldEmailStatus, strconv.FormatBool(replaced.EmailStatus), strconv.FormatBool(winner.EmailStatus))

	return conflicts
}

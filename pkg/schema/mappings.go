package schema

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Kind is the expected type of a schema field.
type Kind int

const (
	// KindInteger accepts integers of any size: int64 values and integral
	// decimals.
	KindInteger Kind = iota
	KindString
	// KindBoolean accepts only the literals true and false.
	KindBoolean
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Matches reports whether val has exactly this kind. No coercion is applied:
// "100" is not an integer, "true" is not a boolean and nil matches nothing.
func (k Kind) Matches(val any) bool {
	switch k {
	case KindInteger:
		switch n := val.(type) {
		case int64:
			return true
		case decimal.Decimal:
			return n.IsInteger()
		default:
			return false
		}
	case KindString:
		_, ok := val.(string)
		return ok
	case KindBoolean:
		_, ok := val.(bool)
		return ok
	default:
		return false
	}
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Field is one required entry of an entity schema.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Company field names.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldTopUp       = "top_up"
	FieldEmailStatus = "email_status"
)

// User field names. email_status is shared with companies.
const (
	FieldCompanyID    = "company_id"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldTokens       = "tokens"
	FieldEmail        = "email"
	FieldActiveStatus = "active_status"
)

// CompanyFields is the schema every company record must satisfy.
var CompanyFields = []Field{
	{Name: FieldID, Kind: KindInteger},
	{Name: FieldName, Kind: KindString},
	{Name: FieldTopUp, Kind: KindInteger},
	{Name: FieldEmailStatus, Kind: KindBoolean},
}

// UserFields is the schema every user record must satisfy.
var UserFields = []Field{
	{Name: FieldCompanyID, Kind: KindInteger},
	{Name: FieldFirstName, Kind: KindString},
	{Name: FieldLastName, Kind: KindString},
	{Name: FieldTokens, Kind: KindInteger},
	{Name: FieldEmail, Kind: KindString},
	{Name: FieldActiveStatus, Kind: KindBoolean},
	{Name: FieldEmailStatus, Kind: KindBoolean},
}

// MatchesFields reports whether every field is present in rec with the
// expected kind.
func MatchesFields(rec *Record, fields []Field) bool {
	for _, f := range fields {
		val, ok := rec.Get(f.Name)
		if !ok || !f.Kind.Matches(val) {
			return false
		}
	}
	return true
}

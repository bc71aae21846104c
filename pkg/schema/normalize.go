package schema

import "github.com/shopspring/decimal"

// CompanyFromRecord converts a record that satisfies CompanyFields into a
// Company. Fields that are missing or of the wrong kind come back as zero
// values, so callers validate first.
func CompanyFromRecord(rec *Record) Company {
	return Company{
		ID:          integerField(rec, FieldID),
		Name:        stringField(rec, FieldName),
		TopUp:       integerField(rec, FieldTopUp),
		EmailStatus: boolField(rec, FieldEmailStatus),
	}
}

// UserFromRecord converts a record that satisfies UserFields into a User.
func UserFromRecord(rec *Record) User {
	return User{
		CompanyID:    integerField(rec, FieldCompanyID),
		FirstName:    stringField(rec, FieldFirstName),
		LastName:     stringField(rec, FieldLastName),
		Tokens:       integerField(rec, FieldTokens),
		Email:        stringField(rec, FieldEmail),
		ActiveStatus: boolField(rec, FieldActiveStatus),
		EmailStatus:  boolField(rec, FieldEmailStatus),
	}
}

func integerField(rec *Record, name string) decimal.Decimal {
	val, _ := rec.Get(name)
	switch n := val.(type) {
	case int64:
		return decimal.NewFromInt(n)
	case decimal.Decimal:
		return n
	default:
		return decimal.Decimal{}
	}
}

func stringField(rec *Record, name string) string {
	val, _ := rec.Get(name)
	s, _ := val.(string)
	return s
}

func boolField(rec *Record, name string) bool {
	val, _ := rec.Get(name)
	b, _ := val.(bool)
	return b
}

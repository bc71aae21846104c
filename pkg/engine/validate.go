package engine

import (
	"topup/pkg/schema"
)

// ValidateEntities partitions records into those that satisfy every field of
// the schema and those that do not. Both partitions keep input order.
func ValidateEntities(records []*schema.Record, fields []schema.Field) (valid, invalid []*schema.Record) {
	valid = make([]*schema.Record, 0, len(records))
	invalid = make([]*schema.Record, 0)

	for _, rec := range records {
		if schema.MatchesFields(rec, fields) {
			valid = append(valid, rec)
		} else {
			invalid = append(invalid, rec)
		}
	}

	return valid, invalid
}

// CompanyValidation is the outcome of validating company records.
type CompanyValidation struct {
	Valid   []schema.Company `json:"valid"`
	Invalid []*schema.Record `json:"invalid"`
}

// ValidateCompanies validates company records against schema.CompanyFields.
func ValidateCompanies(records []*schema.Record) CompanyValidation {
	valid, invalid := ValidateEntities(records, schema.CompanyFields)

	companies := make([]schema.Company, 0, len(valid))
	for _, rec := range valid {
		companies = append(companies, schema.CompanyFromRecord(rec))
	}

	return CompanyValidation{
		Valid:   companies,
		Invalid: invalid,
	}
}

// UserValidation is the outcome of validating user records.
type UserValidation struct {
	Valid   []schema.User    `json:"valid"`
	Invalid []*schema.Record `json:"invalid"`
	// Unresolved counts schema-valid users whose company is not in the index.
	// Those users appear in neither Valid nor Invalid.
	Unresolved int `json:"unresolved"`
}

// ValidateUsers validates user records against schema.UserFields, then keeps
// only users whose company_id resolves in index.
//
// Users dropped for an unknown company are not reported as invalid and are
// never quarantined. Invalid holds exactly the schema failures.
func ValidateUsers(records []*schema.Record, index *CompanyIndex) UserValidation {
	valid, invalid := ValidateEntities(records, schema.UserFields)

	result := UserValidation{
		Valid:   make([]schema.User, 0, len(valid)),
		Invalid: invalid,
	}

	for _, rec := range valid {
		user := schema.UserFromRecord(rec)
		if !index.Has(user.CompanyID) {
			result.Unresolved++
			continue
		}
		result.Valid = append(result.Valid, user)
	}

	return result
}

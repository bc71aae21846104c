package engine

import (
	"topup/pkg/schema"
)

// Reconciliation is the full outcome of one run over a pair of record sets.
type Reconciliation struct {
	Companies CompanyValidation `json:"companies"`
	Index     *CompanyIndex     `json:"-"`
	Users     UserValidation    `json:"users"`
	Aggregate Aggregate         `json:"aggregate"`
	Stats     RunStats          `json:"stats"`
}

// RunStats summarises what happened to every loaded record.
type RunStats struct {
	CompaniesLoaded    int            `json:"companiesLoaded"`
	CompaniesValid     int            `json:"companiesValid"`
	CompaniesInvalid   int            `json:"companiesInvalid"`
	DuplicateCompanies int            `json:"duplicateCompanies"`
	UsersLoaded        int            `json:"usersLoaded"`
	UsersValid         int            `json:"usersValid"`
	UsersInvalid       int            `json:"usersInvalid"`
	UsersUnresolved    int            `json:"usersUnresolved"`
	Report             AggregateStats `json:"report"`
}

// Reconcile validates companies, indexes them, validates users against the
// index and aggregates the surviving users. It performs no I/O.
func Reconcile(users, companies []*schema.Record, opts ...IndexOption) *Reconciliation {
	companyValidation := ValidateCompanies(companies)
	index := BuildCompanyIndex(companyValidation.Valid, opts...)
	userValidation := ValidateUsers(users, index)
	aggregate := AggregateUsers(userValidation.Valid, index)

	return &Reconciliation{
		Companies: companyValidation,
		Index:     index,
		Users:     userValidation,
		Aggregate: aggregate,
		Stats: RunStats{
			CompaniesLoaded:    len(companies),
			CompaniesValid:     len(companyValidation.Valid),
			CompaniesInvalid:   len(companyValidation.Invalid),
			DuplicateCompanies: index.Stats.Duplicates,
			UsersLoaded:        len(users),
			UsersValid:         len(userValidation.Valid),
			UsersInvalid:       len(userValidation.Invalid),
			UsersUnresolved:    userValidation.Unresolved,
			Report:             aggregate.Stats,
		},
	}
}

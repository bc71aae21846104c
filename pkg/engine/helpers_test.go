package engine

import (
	"github.com/shopspring/decimal"

	"topup/pkg/schema"
)

func companyRecord(id, name, topUp, emailStatus any) *schema.Record {
	return schema.NewRecord().
		Set(schema.FieldID, id).
		Set(schema.FieldName, name).
		Set(schema.FieldTopUp, topUp).
		Set(schema.FieldEmailStatus, emailStatus)
}

func userRecord(companyID any, first, last string, tokens any, active, emailStatus any) *schema.Record {
	return schema.NewRecord().
		Set(schema.FieldCompanyID, companyID).
		Set(schema.FieldFirstName, first).
		Set(schema.FieldLastName, last).
		Set(schema.FieldTokens, tokens).
		Set(schema.FieldEmail, first+"."+last+"@x.com").
		Set(schema.FieldActiveStatus, active).
		Set(schema.FieldEmailStatus, emailStatus)
}

func company(id int64, name string, topUp int64, emailStatus bool) schema.Company {
	return schema.Company{
		ID:          decimal.NewFromInt(id),
		Name:        name,
		TopUp:       decimal.NewFromInt(topUp),
		EmailStatus: emailStatus,
	}
}

func user(companyID int64, first, last string, tokens int64, active, emailStatus bool) schema.User {
	return schema.User{
		CompanyID:    decimal.NewFromInt(companyID),
		FirstName:    first,
		LastName:     last,
		Tokens:       decimal.NewFromInt(tokens),
		Email:        first + "." + last + "@x.com",
		ActiveStatus: active,
		EmailStatus:  emailStatus,
	}
}

func fullNames(rows []schema.ComputedUserRow) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.FullName)
	}
	return names
}

func idStrings(ids []decimal.Decimal) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

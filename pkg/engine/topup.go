package engine

import (
	"topup/pkg/schema"
)

// ComputeTopUp calculates a user's new balance under their company's policy.
//
// Active users receive the company top-up; inactive users keep their balance.
// An email is due only when both the company and the user have email enabled.
// Balances have arbitrary precision, so the result is never clamped and
// never wraps.
func ComputeTopUp(user schema.User, company schema.Company) schema.ComputedUserRow {
	updated := user.Tokens
	if user.ActiveStatus {
		updated = updated.Add(company.TopUp)
	}

	return schema.ComputedUserRow{
		CompanyID:      company.ID,
		CompanyName:    company.Name,
		FullName:       user.LastName + ", " + user.FirstName,
		Email:          user.Email,
		InitialBalance: user.Tokens,
		UpdatedBalance: updated,
		EmailSent:      company.EmailStatus && user.EmailStatus,
	}
}

package schema

import "github.com/shopspring/decimal"

// Company is a validated company record carrying its top-up policy.
// Integer fields have arbitrary precision.
type Company struct {
	ID          decimal.Decimal `json:"id"`
	Name        string          `json:"name"`
	TopUp       decimal.Decimal `json:"topUp"`
	EmailStatus bool            `json:"emailStatus"`
}

// User is a validated user record with its current token balance.
type User struct {
	CompanyID    decimal.Decimal `json:"companyId"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Tokens       decimal.Decimal `json:"tokens"`
	Email        string          `json:"email"`
	ActiveStatus bool            `json:"activeStatus"`
	EmailStatus  bool            `json:"emailStatus"`
}

// ComputedUserRow is one user's reconciled balance, ready for reporting.
type ComputedUserRow struct {
	CompanyID      decimal.Decimal `json:"companyId"`
	CompanyName    string          `json:"companyName"`
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	UpdatedBalance decimal.Decimal `json:"updatedBalance"`
	EmailSent      bool            `json:"emailSent"`
}

// TopUpAmount returns the tokens added to this user.
func (r ComputedUserRow) TopUpAmount() decimal.Decimal {
	return r.UpdatedBalance.Sub(r.InitialBalance)
}

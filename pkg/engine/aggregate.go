package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"topup/pkg/schema"
)

// Aggregate is the reconciled report: one group per company, ordered by
// ascending company id.
type Aggregate struct {
	Groups []ReportGroup  `json:"groups"`
	Stats  AggregateStats `json:"stats"`
}

// ReportGroup holds the computed rows of one company's users, ordered by
// last name.
type ReportGroup struct {
	CompanyID   decimal.Decimal          `json:"companyId"`
	CompanyName string                   `json:"companyName"`
	Users       []schema.ComputedUserRow `json:"users"`
}

// AggregateStats contains aggregate statistics about the reconciled users.
type AggregateStats struct {
	Companies  int             `json:"companies"`
	Users      int             `json:"users"`
	Emailed    int             `json:"emailed"`
	NotEmailed int             `json:"notEmailed"`
	TotalTopUp decimal.Decimal `json:"totalTopUp"`
}

// Emailed returns the group's rows whose email was sent, in group order.
func (g ReportGroup) Emailed() []schema.ComputedUserRow {
	return g.filter(true)
}

// NotEmailed returns the group's rows whose email was not sent, in group order.
func (g ReportGroup) NotEmailed() []schema.ComputedUserRow {
	return g.filter(false)
}

func (g ReportGroup) filter(emailSent bool) []schema.ComputedUserRow {
	rows := make([]schema.ComputedUserRow, 0, len(g.Users))
	for _, row := range g.Users {
		if row.EmailSent == emailSent {
			rows = append(rows, row)
		}
	}
	return rows
}

// TotalTopUp sums the tokens added across the group.
func (g ReportGroup) TotalTopUp() decimal.Decimal {
	var total decimal.Decimal
	for _, row := range g.Users {
		total = total.Add(row.TopUpAmount())
	}
	return total
}

// AggregateUsers groups validated users by company and computes each user's
// top-up.
//
// Users whose company does not resolve are skipped. Users are stable-sorted
// by last name before grouping, so each group lists its users by last name
// with ties in input order. Groups come out by ascending company id.
func AggregateUsers(users []schema.User, index *CompanyIndex) Aggregate {
	resolved := make([]schema.User, 0, len(users))
	for _, user := range users {
		if index.Has(user.CompanyID) {
			resolved = append(resolved, user)
		}
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].LastName < resolved[j].LastName
	})

	byCompany := make(map[string]*ReportGroup)
	companyIDs := make([]decimal.Decimal, 0)

	for _, user := range resolved {
		company, _ := index.Lookup(user.CompanyID)

		key := company.ID.String()
		group, ok := byCompany[key]
		if !ok {
			group = &ReportGroup{
				CompanyID:   company.ID,
				CompanyName: company.Name,
				Users:       make([]schema.ComputedUserRow, 0),
			}
			byCompany[key] = group
			companyIDs = append(companyIDs, company.ID)
		}
		group.Users = append(group.Users, ComputeTopUp(user, company))
	}

	sort.Slice(companyIDs, func(i, j int) bool {
		return companyIDs[i].LessThan(companyIDs[j])
	})

	groups := make([]ReportGroup, 0, len(companyIDs))
	for _, id := range companyIDs {
		groups = append(groups, *byCompany[id.String()])
	}

	return Aggregate{
		Groups: groups,
		Stats:  summarize(groups),
	}
}

func summarize(groups []ReportGroup) AggregateStats {
	stats := AggregateStats{Companies: len(groups)}
	for _, group := range groups {
		for _, row := range group.Users {
			if row.EmailSent {
				stats.Emailed++
			} else {
				stats.NotEmailed++
			}
		}
		stats.Users += len(group.Users)
		stats.TotalTopUp = stats.TotalTopUp.Add(group.TotalTopUp())
	}
	return stats
}

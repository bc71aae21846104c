package report

import (
	"bytes"
	"fmt"

	"topup/pkg/engine"
	"topup/pkg/schema"
)

// RenderReport renders the aggregate as the plain-text top-up report.
//
// Each company block lists emailed users, then non-emailed users, both in
// the group's last-name order, followed by the company's total top-up and a
// blank line. An empty aggregate renders as an empty document.
func RenderReport(agg engine.Aggregate) []byte {
	var buf bytes.Buffer

	for _, group := range agg.Groups {
		fmt.Fprintf(&buf, "Company Id: %s\n", group.CompanyID.String())
		fmt.Fprintf(&buf, "Company Name: %s\n", group.CompanyName)

		buf.WriteString("Users Emailed:\n")
		writeUsers(&buf, group.Emailed())

		buf.WriteString("Users Not Emailed:\n")
		writeUsers(&buf, group.NotEmailed())

		fmt.Fprintf(&buf, "\tTotal amount of top ups for %s: %s\n", group.CompanyName, group.TotalTopUp().String())
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

func writeUsers(buf *bytes.Buffer, rows []schema.ComputedUserRow) {
	for _, row := range rows {
		fmt.Fprintf(buf, "\t%s, %s\n", row.FullName, row.Email)
		fmt.Fprintf(buf, "\t  Previous Token Balance, %s\n", row.InitialBalance.String())
		fmt.Fprintf(buf, "\t  New Token Balance, %s\n", row.UpdatedBalance.String())
	}
}

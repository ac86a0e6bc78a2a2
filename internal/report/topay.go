package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/cleared-dev/cashbook/internal/aggregate"
)

type paymentView struct {
	Bill  string
	Price string
	Date  string
}

type monthView struct {
	Month string
	Rows  []paymentView
}

func views(months []aggregate.MonthPayments) []monthView {
	out := make([]monthView, 0, len(months))
	for _, mp := range months {
		mv := monthView{Month: mp.Month}
		for _, r := range mp.Rows {
			pv := paymentView{
				Bill:  aggregate.Capitalize(r.Tag),
				Price: UnpaidPrice,
				Date:  UnpaidDate,
			}
			if r.Found {
				pv.Price = amount(r.Value)
				pv.Date = date(r.Date)
			}
			mv.Rows = append(mv.Rows, pv)
		}
		out = append(out, mv)
	}
	return out
}

// TopayText writes one block per month listing every payable with its
// price and pay date, or placeholders when it was not paid.
func TopayText(w io.Writer, months []aggregate.MonthPayments) error {
	var b strings.Builder
	for _, mv := range views(months) {
		fmt.Fprintf(&b, "Date: %s\n", mv.Month)
		b.WriteString("Bill\t\tPrice\tPay Date\n")
		for _, r := range mv.Rows {
			fmt.Fprintf(&b, "%-15s\t%s\t%s\n", r.Bill, r.Price, r.Date)
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing payments: %w", err)
	}
	return nil
}

var topayHTML = template.Must(template.New("topay").Parse(`{{range .}}<h2>Date: <i>{{.Month}}</i></h2>
<table>
<tr><th>Bills</th><th>Price</th><th>Pay Date</th></tr>
{{- range .Rows}}
<tr><td>{{.Bill}}</td><td>{{.Price}}</td><td>{{.Date}}</td></tr>
{{- end}}
</table>
{{end}}`))

// TopayHTML writes the payments of TopayText as HTML tables.
func TopayHTML(w io.Writer, months []aggregate.MonthPayments) error {
	if err := topayHTML.Execute(w, views(months)); err != nil {
		return fmt.Errorf("rendering payments: %w", err)
	}
	return nil
}

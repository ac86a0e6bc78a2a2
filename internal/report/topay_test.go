package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashbook/internal/aggregate"
)

func pending(t *testing.T) []aggregate.MonthPayments {
	t.Helper()
	c := collection(t,
		row{"10", "1970-05-15", "foo #rent", "outgoing"},
		row{"10", "1970-06-17", "bah #water", "outgoing"},
	)
	months, err := aggregate.PendingPayments(c, []string{"rent", "water"})
	require.NoError(t, err)
	return months
}

func TestTopayText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TopayText(&buf, pending(t)))

	want := "Date: 1970-05\n" +
		"Bill\t\tPrice\tPay Date\n" +
		"Rent           \t10\t1970-05-15\n" +
		"Water          \t$0\tNot yet\n" +
		"Date: 1970-06\n" +
		"Bill\t\tPrice\tPay Date\n" +
		"Rent           \t$0\tNot yet\n" +
		"Water          \t10\t1970-06-17\n"
	assert.Equal(t, want, buf.String())
}

func TestTopayHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TopayHTML(&buf, pending(t)))

	want := "<h2>Date: <i>1970-05</i></h2>\n" +
		"<table>\n" +
		"<tr><th>Bills</th><th>Price</th><th>Pay Date</th></tr>\n" +
		"<tr><td>Rent</td><td>10</td><td>1970-05-15</td></tr>\n" +
		"<tr><td>Water</td><td>$0</td><td>Not yet</td></tr>\n" +
		"</table>\n" +
		"<h2>Date: <i>1970-06</i></h2>\n" +
		"<table>\n" +
		"<tr><th>Bills</th><th>Price</th><th>Pay Date</th></tr>\n" +
		"<tr><td>Rent</td><td>$0</td><td>Not yet</td></tr>\n" +
		"<tr><td>Water</td><td>10</td><td>1970-06-17</td></tr>\n" +
		"</table>\n"
	assert.Equal(t, want, buf.String())
}

func TestTopayHTML_Escapes(t *testing.T) {
	months := []aggregate.MonthPayments{{
		Month: "2025-01",
		Rows:  []aggregate.PaymentRow{{Tag: "<b>"}},
	}}
	var buf bytes.Buffer
	require.NoError(t, TopayHTML(&buf, months))
	assert.Contains(t, buf.String(), "&lt;b&gt;")
	assert.NotContains(t, buf.String(), "<b>")
}

func TestTopay_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TopayText(&buf, nil))
	require.NoError(t, TopayHTML(&buf, nil))
	assert.Empty(t, buf.String())
}

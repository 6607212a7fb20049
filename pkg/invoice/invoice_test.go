package invoice

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicing-service/pkg/party"
)

func testParties() (*party.Sender, *party.Recipient) {
	return &party.Sender{Name: "Jane Doe", Street: "1 Main St"},
		&party.Recipient{Name: "John Smith", Company: "Acme"}
}

func mustItem(t *testing.T, desc string, hours, rate int64) LineItem {
	t.Helper()
	li, err := NewLineItem(desc, decimal.NewFromInt(hours), decimal.NewFromInt(rate))
	require.NoError(t, err)
	return li
}

func TestNewLineItem(t *testing.T) {
	t.Run("line total derived at construction", func(t *testing.T) {
		li, err := NewLineItem("Design", decimal.NewFromFloat(10.5), decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.True(t, li.LineTotal().Equal(decimal.NewFromFloat(525)))
	})

	t.Run("missing description", func(t *testing.T) {
		_, err := NewLineItem("", decimal.NewFromInt(1), decimal.NewFromInt(1))
		var mf *MissingFieldError
		require.True(t, errors.As(err, &mf))
		assert.Equal(t, "description", mf.Field)
	})

	t.Run("negative hours", func(t *testing.T) {
		_, err := NewLineItem("Design", decimal.NewFromInt(-1), decimal.NewFromInt(1))
		var inv *InvalidFieldError
		require.True(t, errors.As(err, &inv))
		assert.Equal(t, "hours", inv.Field)
	})

	t.Run("negative rate", func(t *testing.T) {
		_, err := NewLineItem("Design", decimal.NewFromInt(1), decimal.NewFromInt(-1))
		var inv *InvalidFieldError
		assert.True(t, errors.As(err, &inv))
	})
}

func TestNewJob(t *testing.T) {
	sender, recipient := testParties()

	t.Run("derives number and totals", func(t *testing.T) {
		job, err := NewJob(JobParams{
			Date:      "2022-07-15",
			Sender:    sender,
			Recipient: recipient,
			LineItems: []LineItem{mustItem(t, "Design", 10, 50)},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(86376026), job.InvoiceNumber())
		assert.True(t, job.Subtotal().Equal(decimal.NewFromInt(500)))
		assert.True(t, job.Total().Equal(decimal.NewFromInt(500)))
		assert.Equal(t, time.Date(2022, time.July, 15, 0, 0, 0, 0, time.UTC), job.IssueDate())
		assert.Equal(t, "2022-07-15", job.DateString())
	})

	t.Run("discount and tax applied to total", func(t *testing.T) {
		job, err := NewJob(JobParams{
			Date:      "2022-07-15",
			Sender:    sender,
			Recipient: recipient,
			LineItems: []LineItem{mustItem(t, "Design", 10, 50), mustItem(t, "Build", 4, 60)},
			Discount:  decimal.NewFromInt(100),
			Tax:       decimal.NewFromInt(37),
		})
		require.NoError(t, err)
		assert.True(t, job.Subtotal().Equal(decimal.NewFromInt(740)))
		assert.True(t, job.Total().Equal(decimal.NewFromInt(677)))
	})

	t.Run("negative total is not clamped", func(t *testing.T) {
		job, err := NewJob(JobParams{
			Date:      "2022-07-15",
			Sender:    sender,
			Recipient: recipient,
			LineItems: []LineItem{mustItem(t, "Design", 1, 50)},
			Discount:  decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.True(t, job.Total().Equal(decimal.NewFromInt(-50)))
	})

	t.Run("no line items gives zero subtotal", func(t *testing.T) {
		job, err := NewJob(JobParams{Date: "2022-07-15", Sender: sender, Recipient: recipient})
		require.NoError(t, err)
		assert.True(t, job.Subtotal().IsZero())
	})

	t.Run("missing required fields", func(t *testing.T) {
		cases := []struct {
			field  string
			params JobParams
		}{
			{"date", JobParams{Sender: sender, Recipient: recipient}},
			{"sender", JobParams{Date: "2022-07-15", Recipient: recipient}},
			{"recipient", JobParams{Date: "2022-07-15", Sender: sender}},
		}
		for _, tc := range cases {
			_, err := NewJob(tc.params)
			var mf *MissingFieldError
			require.True(t, errors.As(err, &mf), tc.field)
			assert.Equal(t, tc.field, mf.Field)
		}
	})

	t.Run("unparseable date", func(t *testing.T) {
		_, err := NewJob(JobParams{Date: "someday", Sender: sender, Recipient: recipient})
		var inv *InvalidFieldError
		require.True(t, errors.As(err, &inv))
		assert.Equal(t, "date", inv.Field)
	})

	t.Run("items are copied in and out", func(t *testing.T) {
		items := []LineItem{mustItem(t, "Design", 10, 50)}
		job, err := NewJob(JobParams{
			Date: "2022-07-15", Sender: sender, Recipient: recipient, LineItems: items,
		})
		require.NoError(t, err)

		items[0] = mustItem(t, "Replaced", 1, 1)
		got := job.Items()
		require.Len(t, got, 1)
		assert.Equal(t, "Design", got[0].Description())

		got[0] = mustItem(t, "Mutated", 1, 1)
		assert.Equal(t, "Design", job.Items()[0].Description())
	})
}

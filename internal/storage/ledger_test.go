package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/mathnote/internal/common"
	"github.com/Veraticus/mathnote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSales(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	sale := model.Sale{
		Date:          time.Date(2024, 3, 5, 15, 30, 0, 0, time.Local),
		Party:         "Rahul",
		Amount:        dec("1000"),
		PaidAmount:    dec("200"),
		PaymentMethod: model.PaymentUPI,
		Note:          "shirts",
		Source:        "Sold 1000 to Rahul advance 200 upi",
	}
	require.NoError(t, store.CreateSale(ctx, &sale))
	assert.NotEmpty(t, sale.ID)
	assert.False(t, sale.CreatedAt.IsZero())
	assert.Equal(t, day(2024, 3, 5), sale.Date)

	got, err := store.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)
	assert.Equal(t, day(2024, 3, 5), got.Date)
	assert.Equal(t, "Rahul", got.Party)
	assert.True(t, got.Amount.Equal(dec("1000")))
	assert.True(t, got.PaidAmount.Equal(dec("200")))
	assert.True(t, got.Due().Equal(dec("800")))
	assert.Equal(t, model.PaymentUPI, got.PaymentMethod)
	assert.Equal(t, "shirts", got.Note)
	assert.Equal(t, sale.Source, got.Source)
	assert.WithinDuration(t, sale.CreatedAt, got.CreatedAt, time.Second)

	// A duplicate ID is rejected.
	dup := sale
	assert.ErrorIs(t, store.CreateSale(ctx, &dup), common.ErrDuplicateEntry)

	require.NoError(t, store.DeleteSale(ctx, sale.ID))
	_, err = store.GetSale(ctx, sale.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, store.DeleteSale(ctx, sale.ID), common.ErrNotFound)
}

func TestSales_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	valid := func() model.Sale {
		return model.Sale{Date: day(2024, 3, 1), Party: "Shop", Amount: dec("100"), PaidAmount: dec("100"), PaymentMethod: model.PaymentCash}
	}

	tests := []struct {
		mutate func(*model.Sale)
		name   string
	}{
		{name: "missing date", mutate: func(s *model.Sale) { s.Date = time.Time{} }},
		{name: "zero amount", mutate: func(s *model.Sale) { s.Amount = dec("0") }},
		{name: "paid over amount", mutate: func(s *model.Sale) { s.PaidAmount = dec("101") }},
		{name: "negative paid", mutate: func(s *model.Sale) { s.PaidAmount = dec("-1") }},
		{name: "missing party", mutate: func(s *model.Sale) { s.Party = " " }},
		{name: "bad payment method", mutate: func(s *model.Sale) { s.PaymentMethod = "Card" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := valid()
			tt.mutate(&sale)
			assert.ErrorIs(t, store.CreateSale(ctx, &sale), ErrInvalidSale)
		})
	}

	assert.ErrorIs(t, store.CreateSale(ctx, nil), ErrNilParameter)

	// Fully unpaid sales are allowed.
	unpaid := valid()
	unpaid.PaidAmount = dec("0")
	assert.NoError(t, store.CreateSale(ctx, &unpaid))
}

func TestListSales_Filter(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for i, party := range []string{"Rahul", "Shop", "rahul", "Meena"} {
		sale := model.Sale{
			Date:          day(2024, 3, i+1),
			Party:         party,
			Amount:        dec("100"),
			PaidAmount:    dec("100"),
			PaymentMethod: model.PaymentCash,
		}
		require.NoError(t, store.CreateSale(ctx, &sale))
	}

	all, err := store.ListSales(ctx, model.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Meena", all[0].Party, "newest first")

	start, end := day(2024, 3, 2), day(2024, 3, 3)
	ranged, err := store.ListSales(ctx, model.LedgerFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	byParty, err := store.ListSales(ctx, model.LedgerFilter{Party: "RAHUL"})
	require.NoError(t, err)
	assert.Len(t, byParty, 2)

	limited, err := store.ListSales(ctx, model.LedgerFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = store.ListSales(ctx, model.LedgerFilter{StartDate: &end, EndDate: &start})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = store.ListSales(ctx, model.LedgerFilter{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestExpenses(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expense := model.Expense{
		Date:          day(2024, 3, 5),
		Category:      model.CategoryFood,
		Amount:        dec("200"),
		PaymentMethod: model.PaymentCash,
		Source:        "Spent 200 on Lunch",
	}
	require.NoError(t, store.CreateExpense(ctx, &expense))

	got, err := store.GetExpense(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFood, got.Category)
	assert.True(t, got.Amount.Equal(dec("200")))
	assert.Empty(t, got.Party)

	list, err := store.ListExpenses(ctx, model.LedgerFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	bad := expense
	bad.ID = ""
	bad.Category = "Toys"
	assert.ErrorIs(t, store.CreateExpense(ctx, &bad), ErrInvalidExpense)

	require.NoError(t, store.DeleteExpense(ctx, expense.ID))
	_, err = store.GetExpense(ctx, expense.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCredits(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	given := model.Credit{Date: day(2024, 3, 1), Party: "Ajay", CreditType: model.CreditGiven, Amount: dec("1000"), PaymentMethod: model.PaymentCash}
	taken := model.Credit{Date: day(2024, 3, 2), Party: "Suresh", CreditType: model.CreditTaken, Amount: dec("5000"), PaymentMethod: model.PaymentUPI}
	require.NoError(t, store.CreateCredit(ctx, &given))
	require.NoError(t, store.CreateCredit(ctx, &taken))

	got, err := store.GetCredit(ctx, given.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CreditGiven, got.CreditType)
	assert.False(t, got.IsSettled())

	settled := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	require.NoError(t, store.SettleCredit(ctx, given.ID, settled))

	got, err = store.GetCredit(ctx, given.ID)
	require.NoError(t, err)
	require.True(t, got.IsSettled())
	assert.True(t, got.SettledAt.Equal(settled))

	assert.ErrorIs(t, store.SettleCredit(ctx, given.ID, settled), common.ErrAlreadySettled)
	assert.ErrorIs(t, store.SettleCredit(ctx, "missing", settled), common.ErrNotFound)

	open, err := store.ListCredits(ctx, model.LedgerFilter{OnlyOpen: true})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, taken.ID, open[0].ID)

	all, err := store.ListCredits(ctx, model.LedgerFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bad := model.Credit{Date: day(2024, 3, 1), CreditType: "maybe", Amount: dec("1"), PaymentMethod: model.PaymentCash}
	assert.ErrorIs(t, store.CreateCredit(ctx, &bad), ErrInvalidCredit)

	require.NoError(t, store.DeleteCredit(ctx, taken.ID))
	assert.ErrorIs(t, store.DeleteCredit(ctx, taken.ID), common.ErrNotFound)
}

func TestGetSummary(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	sales := []model.Sale{
		{Date: day(2024, 3, 1), Party: "Shop", Amount: dec("400"), PaidAmount: dec("400"), PaymentMethod: model.PaymentCash},
		{Date: day(2024, 3, 2), Party: "Rahul", Amount: dec("1000"), PaidAmount: dec("200"), PaymentMethod: model.PaymentUPI},
		{Date: day(2024, 4, 1), Party: "Late", Amount: dec("999"), PaidAmount: dec("999"), PaymentMethod: model.PaymentCash},
	}
	for i := range sales {
		require.NoError(t, store.CreateSale(ctx, &sales[i]))
	}

	expenses := []model.Expense{
		{Date: day(2024, 3, 1), Category: model.CategoryFood, Amount: dec("200"), PaymentMethod: model.PaymentCash},
		{Date: day(2024, 3, 3), Category: model.CategoryFood, Amount: dec("50.50"), PaymentMethod: model.PaymentCash},
		{Date: day(2024, 3, 3), Category: model.CategoryRent, Amount: dec("5000"), PaymentMethod: model.PaymentUPI},
	}
	for i := range expenses {
		require.NoError(t, store.CreateExpense(ctx, &expenses[i]))
	}

	credits := []model.Credit{
		{Date: day(2024, 2, 20), Party: "Old", CreditType: model.CreditGiven, Amount: dec("300"), PaymentMethod: model.PaymentCash},
		{Date: day(2024, 3, 5), Party: "Ajay", CreditType: model.CreditGiven, Amount: dec("1000"), PaymentMethod: model.PaymentCash},
		{Date: day(2024, 3, 6), Party: "Suresh", CreditType: model.CreditTaken, Amount: dec("5000"), PaymentMethod: model.PaymentCash},
		{Date: day(2024, 3, 7), Party: "Paid", CreditType: model.CreditGiven, Amount: dec("70"), PaymentMethod: model.PaymentCash},
	}
	for i := range credits {
		require.NoError(t, store.CreateCredit(ctx, &credits[i]))
	}
	require.NoError(t, store.SettleCredit(ctx, credits[3].ID, day(2024, 3, 8)))

	summary, err := store.GetSummary(ctx, day(2024, 3, 1), time.Date(2024, 3, 31, 18, 0, 0, 0, time.Local))
	require.NoError(t, err)

	assert.Equal(t, day(2024, 3, 31), summary.End)
	assert.Equal(t, 2, summary.SaleCount)
	assert.True(t, summary.TotalSales.Equal(dec("1400")), summary.TotalSales.String())
	assert.True(t, summary.TotalReceived.Equal(dec("600")))
	assert.True(t, summary.TotalDue.Equal(dec("800")))
	assert.True(t, summary.SalesByPayment[model.PaymentCash].Equal(dec("400")))
	assert.True(t, summary.SalesByPayment[model.PaymentUPI].Equal(dec("1000")))

	assert.Equal(t, 3, summary.ExpenseCount)
	assert.True(t, summary.TotalExpenses.Equal(dec("5250.50")))
	assert.True(t, summary.ExpensesByCategory[model.CategoryFood].Equal(dec("250.50")))
	assert.True(t, summary.ExpensesByCategory[model.CategoryRent].Equal(dec("5000")))

	assert.Equal(t, 3, summary.CreditCount)
	assert.True(t, summary.OutstandingGiven.Equal(dec("1300")), summary.OutstandingGiven.String())
	assert.True(t, summary.OutstandingTaken.Equal(dec("5000")))
	assert.True(t, summary.Net().Equal(dec("-3850.50")))

	// Before the settlement the repaid credit was still outstanding.
	early, err := store.GetSummary(ctx, day(2024, 3, 1), day(2024, 3, 7))
	require.NoError(t, err)
	assert.True(t, early.OutstandingGiven.Equal(dec("1370")), early.OutstandingGiven.String())

	_, err = store.GetSummary(ctx, day(2024, 3, 31), day(2024, 3, 1))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

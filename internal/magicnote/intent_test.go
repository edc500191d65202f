package magicnote

import (
	"testing"

	"github.com/Veraticus/mathnote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	classifier, err := NewClassifier(DefaultRules())
	require.NoError(t, err)

	tests := []struct {
		wantErr    error
		name       string
		text       string
		wantType   model.TransactionType
		wantCredit model.CreditType
		wantRule   string
	}{
		{name: "sold", text: "Sold 500 to Shop", wantType: model.TypeSale, wantRule: "Sale"},
		{name: "sale noun", text: "Sale 500", wantType: model.TypeSale, wantRule: "Sale"},
		{name: "selling", text: "selling 4 shirts 400", wantType: model.TypeSale, wantRule: "Sale"},
		{name: "spent", text: "Spent 200 on Lunch", wantType: model.TypeExpense, wantRule: "Expense"},
		{name: "bought", text: "bought stock 900", wantType: model.TypeExpense, wantRule: "Expense"},
		{name: "paid for", text: "paid for rent 5000", wantType: model.TypeExpense, wantRule: "Expense"},
		{name: "paid amount for", text: "paid 5000 for rent", wantType: model.TypeExpense, wantRule: "Expense"},
		{name: "lent", text: "Lent 1000 to Ajay", wantType: model.TypeCredit, wantCredit: model.CreditGiven, wantRule: "Credit Given"},
		{name: "gave credit", text: "gave credit 200 to Mohan", wantType: model.TypeCredit, wantCredit: model.CreditGiven, wantRule: "Credit Given"},
		{name: "borrowed", text: "Borrowed 5000", wantType: model.TypeCredit, wantCredit: model.CreditTaken, wantRule: "Credit Taken"},
		{name: "mixed case", text: "SOLD 5", wantType: model.TypeSale, wantRule: "Sale"},
		{name: "sale beats credit", text: "lent 200 after I sold 500", wantType: model.TypeSale, wantRule: "Sale"},
		{name: "credit beats expense", text: "spent 100 and lent 50", wantType: model.TypeCredit, wantCredit: model.CreditGiven, wantRule: "Credit Given"},
		{name: "earliest credit wins", text: "borrowed 100 then lent 50", wantType: model.TypeCredit, wantCredit: model.CreditTaken, wantRule: "Credit Taken"},
		{name: "paid alone is not an expense", text: "paid 500", wantErr: ErrNoIntentMatched},
		{name: "substring does not match", text: "consolidated 500", wantErr: ErrNoIntentMatched},
		{name: "nothing", text: "hello 500", wantErr: ErrNoIntentMatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifier.Classify(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantCredit, got.CreditType)
			assert.Equal(t, tt.wantRule, got.Rule)
		})
	}
}

func TestNewClassifier_InvalidPattern(t *testing.T) {
	_, err := NewClassifier([]Rule{{Name: "bad", Pattern: `[`}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile pattern bad")
}

func TestPaymentDetector(t *testing.T) {
	detector, err := newPaymentDetector(DefaultPaymentRules())
	require.NoError(t, err)

	tests := []struct {
		text      string
		want      model.PaymentMethod
		wantSpans int
	}{
		{text: "Sold 500", want: model.PaymentCash, wantSpans: 0},
		{text: "Sold 500 cash", want: model.PaymentCash, wantSpans: 1},
		{text: "Sold 500 UPI", want: model.PaymentUPI, wantSpans: 1},
		{text: "Sold 500 via Google  Pay", want: model.PaymentUPI, wantSpans: 1},
		{text: "Sold 500 phonepe", want: model.PaymentUPI, wantSpans: 1},
		{text: "Sold 500 cash then paytm", want: model.PaymentUPI, wantSpans: 2},
		{text: "Sold 500 cashew", want: model.PaymentCash, wantSpans: 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, spans := detector.detect(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Len(t, spans, tt.wantSpans)
		})
	}
}

func TestCategorizer(t *testing.T) {
	c, err := newCategorizer(DefaultCategoryRules())
	require.NoError(t, err)

	tests := []struct {
		text   string
		want   model.ExpenseCategory
		wantOK bool
	}{
		{text: "Spent 200 on Lunch", want: model.CategoryFood, wantOK: true},
		{text: "Spent 900 on petrol", want: model.CategoryTransport, wantOK: true},
		{text: "paid for shop rent 5000", want: model.CategoryRent, wantOK: true},
		{text: "Spent 8000 on staff salary", want: model.CategorySalary, wantOK: true},
		{text: "Spent 1200 on electric  bill", want: model.CategoryUtilities, wantOK: true},
		{text: "Bought maal 3000", want: model.CategoryStock, wantOK: true},
		{text: "Spent 450 on fan repair", want: model.CategoryMaintenance, wantOK: true},
		{text: "Spent 50 on tea and petrol", want: model.CategoryFood, wantOK: true},
		{text: "Spent 300 on stuff", want: model.CategoryOther, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, _, ok := c.categorize(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestDefaultVocabulary(t *testing.T) {
	for _, r := range DefaultCategoryRules() {
		assert.True(t, r.Category.Valid(), r.Category)
		assert.NotEmpty(t, r.Keywords, r.Category)
	}
	for _, r := range DefaultRules() {
		assert.NotEmpty(t, r.Name)
		assert.Contains(t, []int{PrioritySale, PriorityCredit, PriorityExpense}, r.Priority, r.Name)
	}
}

package magicnote

import (
	"github.com/Veraticus/mathnote/internal/model"
)

// Intent priorities. A sale keyword beats a credit keyword, which beats an
// expense keyword, wherever they appear in the sentence.
const (
	PrioritySale    = 300
	PriorityCredit  = 200
	PriorityExpense = 100
)

// Rule maps an intent keyword pattern to a transaction type.
type Rule struct {
	Name       string
	Pattern    string // regex body; compiled case-insensitive with word boundaries
	Type       model.TransactionType
	CreditType model.CreditType
	Priority   int // higher priority rules win; ties go to the earliest match
}

// CategoryRule maps expense keywords to a category.
type CategoryRule struct {
	Category model.ExpenseCategory
	Keywords []string
}

// PaymentRule maps keywords to a payment method.
type PaymentRule struct {
	Method   model.PaymentMethod
	Keywords []string
}

// DefaultRules returns the built-in intent vocabulary.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "Sale",
			Pattern:  `sold|sales?|sell(?:s|ing)?`,
			Type:     model.TypeSale,
			Priority: PrioritySale,
		},
		{
			Name:       "Credit Given",
			Pattern:    `lent|lend|loaned|gave\s+credit|given\s+credit`,
			Type:       model.TypeCredit,
			CreditType: model.CreditGiven,
			Priority:   PriorityCredit,
		},
		{
			Name:       "Credit Taken",
			Pattern:    `borrowed|borrow|took\s+credit|taken\s+credit|owe`,
			Type:       model.TypeCredit,
			CreditType: model.CreditTaken,
			Priority:   PriorityCredit,
		},
		{
			Name:     "Expense",
			Pattern:  `spent|spend|bought|paid\s+for|paid\s+\d+(?:\.\d+)?\s+for|expenses?`,
			Type:     model.TypeExpense,
			Priority: PriorityExpense,
		},
	}
}

// DefaultCategoryRules returns the expense categories in match order.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Category: model.CategoryFood, Keywords: []string{
			"food", "lunch", "dinner", "breakfast", "snack", "snacks", "tea", "coffee",
			"meal", "meals", "grocery", "groceries", "vegetables", "milk",
		}},
		{Category: model.CategoryTransport, Keywords: []string{
			"petrol", "fuel", "diesel", "transport", "taxi", "cab", "auto", "bus",
			"train", "travel", "parking",
		}},
		{Category: model.CategoryRent, Keywords: []string{"rent"}},
		{Category: model.CategorySalary, Keywords: []string{"salary", "salaries", "wages", "wage"}},
		{Category: model.CategoryUtilities, Keywords: []string{
			"electricity", "electric bill", "water bill", "internet", "wifi", "recharge", "gas",
		}},
		{Category: model.CategoryStock, Keywords: []string{"stock", "inventory", "goods", "maal"}},
		{Category: model.CategoryMaintenance, Keywords: []string{"repair", "repairs", "maintenance"}},
	}
}

// DefaultPaymentRules returns the payment vocabulary. UPI is checked first.
func DefaultPaymentRules() []PaymentRule {
	return []PaymentRule{
		{Method: model.PaymentUPI, Keywords: []string{"upi", "gpay", "google pay", "phonepe", "paytm"}},
		{Method: model.PaymentCash, Keywords: []string{"cash"}},
	}
}

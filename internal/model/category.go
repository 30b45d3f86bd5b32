package model

import "github.com/shopspring/decimal"

// Category names an income or expense bucket.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryHousing        Category = "housing"
	CategoryTransportation Category = "transportation"
	CategoryUtilities      Category = "utilities"
	CategoryHealthcare     Category = "healthcare"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryEducation      Category = "education"
	CategoryTravel         Category = "travel"
	CategoryPersonal       Category = "personal"
	CategoryDebt           Category = "debt"
	CategorySavings        Category = "savings"
	CategoryGifts          Category = "gifts"
	CategoryOther          Category = "other"

	CategorySalary      Category = "salary"
	CategoryFreelance   Category = "freelance"
	CategoryBusiness    Category = "business"
	CategoryInvestments Category = "investments"
	CategoryRefunds     Category = "refunds"
)

// ExpenseCategories is the category set for expenses, in display order.
var ExpenseCategories = []Category{
	CategoryFood, CategoryHousing, CategoryTransportation, CategoryUtilities,
	CategoryHealthcare, CategoryEntertainment, CategoryShopping, CategoryEducation,
	CategoryTravel, CategoryPersonal, CategoryDebt, CategorySavings,
	CategoryGifts, CategoryOther,
}

// IncomeCategories is the category set for income, in display order.
var IncomeCategories = []Category{
	CategorySalary, CategoryFreelance, CategoryBusiness, CategoryInvestments,
	CategoryGifts, CategoryRefunds, CategoryOther,
}

// CategoriesFor returns the category set for a transaction type.
func CategoriesFor(t TransactionType) []Category {
	switch t {
	case Income:
		return IncomeCategories
	case Expense:
		return ExpenseCategories
	default:
		return nil
	}
}

// ValidFor reports whether c belongs to the category set of t.
func (c Category) ValidFor(t TransactionType) bool {
	for _, candidate := range CategoriesFor(t) {
		if candidate == c {
			return true
		}
	}
	return false
}

// PaymentMethods lists the payment methods offered for expenses.
var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"Bank Transfer",
	"Mobile Payment",
	"Other",
}

// GoalCategory names the purpose of a goal.
type GoalCategory string

const (
	GoalSavings       GoalCategory = "savings"
	GoalDebtRepayment GoalCategory = "debt_repayment"
	GoalEmergencyFund GoalCategory = "emergency_fund"
	GoalTravel        GoalCategory = "travel"
	GoalEducation     GoalCategory = "education"
	GoalRetirement    GoalCategory = "retirement"
	GoalHome          GoalCategory = "home"
	GoalVehicle       GoalCategory = "vehicle"
	GoalGadget        GoalCategory = "gadget"
	GoalOther         GoalCategory = "other"
)

// GoalCategories lists goal categories in display order.
var GoalCategories = []GoalCategory{
	GoalSavings, GoalDebtRepayment, GoalEmergencyFund, GoalTravel, GoalEducation,
	GoalRetirement, GoalHome, GoalVehicle, GoalGadget, GoalOther,
}

// GoalTemplate is a preset offered when creating a goal.
type GoalTemplate struct {
	Name         string
	Category     GoalCategory
	TargetAmount decimal.Decimal
}

// GoalTemplates are the presets shown on the goals screen.
var GoalTemplates = []GoalTemplate{
	{Name: "Emergency Fund", Category: GoalEmergencyFund, TargetAmount: decimal.NewFromInt(10000)},
	{Name: "Vacation", Category: GoalTravel, TargetAmount: decimal.NewFromInt(2000)},
	{Name: "New Phone", Category: GoalGadget, TargetAmount: decimal.NewFromInt(1000)},
	{Name: "Down Payment", Category: GoalHome, TargetAmount: decimal.NewFromInt(20000)},
}

// GoalColors is the palette new goals pick their display color from.
var GoalColors = []string{
	"#8b5cf6", "#6366f1", "#3b82f6", "#2dd4bf",
	"#f97316", "#ef4444", "#ec4899", "#34d399",
}

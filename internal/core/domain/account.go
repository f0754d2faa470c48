package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every valid account type, in trial-balance bucket order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Income, Expense}

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a ledger account in a company's chart of accounts.
// AccountType is immutable once journal lines reference the account.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	CompanyID   string      `json:"companyID"`
	Code        string      `json:"code"` // Unique per company (e.g. "1000")
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`
	AuditFields
}

package dto

// CreateAccountRequest creates a new chart-of-accounts entry.
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Description string `json:"description"`
}

// UpdateAccountRequest updates mutable account fields. Nil means "unchanged".
// AccountType is deliberately absent: it is immutable once lines reference the account.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

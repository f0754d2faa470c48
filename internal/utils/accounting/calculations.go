package accounting

import (
	"fmt"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the fixed tolerance for monetary balance comparisons.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// WithinTolerance reports whether |a - b| < 0.01.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(BalanceTolerance)
}

// ValidateJournalLines enforces the double-entry invariant on a journal's lines:
// at least one line, exactly one of debit/credit set and positive per line, and
// total debits equal to total credits within tolerance.
func ValidateJournalLines(lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("journal must have at least one line")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range lines {
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %d: debit and credit must not be negative", i+1)
		}
		if debitSet == creditSet {
			return fmt.Errorf("line %d: exactly one of debit or credit must be set and positive", i+1)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !WithinTolerance(totalDebit, totalCredit) {
		return fmt.Errorf("journal does not balance: debits %s, credits %s",
			totalDebit.String(), totalCredit.String())
	}
	return nil
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank accounts and statement lines.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

// FindBankAccountByID retrieves a company's bank account by id.
func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT bank_account_id, company_id, name, bank_name, account_number, ledger_account_id, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE bank_account_id = $1 AND company_id = $2;
	`
	var account domain.BankAccount
	err := r.Pool.QueryRow(ctx, query, bankAccountID, companyID).Scan(
		&account.BankAccountID,
		&account.CompanyID,
		&account.Name,
		&account.BankName,
		&account.AccountNumber,
		&account.LedgerAccountID,
		&account.IsActive,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account "+bankAccountID, err)
	}
	return &account, nil
}

// LatestStatementBalance returns the statement balance of the most recent
// statement line at or before asOf.
func (r *PgxBankRepository) LatestStatementBalance(ctx context.Context, bankAccountID string, asOf time.Time) (decimal.Decimal, bool, error) {
	query := `
		SELECT statement_balance
		FROM bank_transactions
		WHERE bank_account_id = $1 AND transaction_date <= $2
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT 1;
	`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, bankAccountID, asOf).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, apperrors.NewAppError(500, "failed to resolve statement balance for "+bankAccountID, err)
	}
	return balance, true, nil
}

// ListUnreconciledTransactions retrieves statement lines up to asOf that have
// not been matched to a posted journal, ordered by date.
func (r *PgxBankRepository) ListUnreconciledTransactions(ctx context.Context, bankAccountID string, asOf time.Time) ([]domain.BankTransaction, error) {
	query := `
		SELECT bank_transaction_id, company_id, bank_account_id, transaction_date,
		       description, reference, amount, statement_balance, is_reconciled, matched_journal_id, created_at
		FROM bank_transactions
		WHERE bank_account_id = $1 AND transaction_date <= $2 AND is_reconciled = false
		ORDER BY transaction_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, bankAccountID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unreconciled transactions for "+bankAccountID, err)
	}
	defer rows.Close()

	transactions := []domain.BankTransaction{}
	for rows.Next() {
		var txn domain.BankTransaction
		var description, reference, matchedJournalID sql.NullString
		err := rows.Scan(
			&txn.BankTransactionID,
			&txn.CompanyID,
			&txn.BankAccountID,
			&txn.TransactionDate,
			&description,
			&reference,
			&txn.Amount,
			&txn.StatementBalance,
			&txn.IsReconciled,
			&matchedJournalID,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank transaction row", err)
		}
		txn.Description = description.String
		txn.Reference = reference.String
		if matchedJournalID.Valid {
			txn.MatchedJournalID = &matchedJournalID.String
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating bank transaction rows", err)
	}
	return transactions, nil
}

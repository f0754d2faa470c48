package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `
	account_id, company_id, code, name, account_type, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.CompanyID,
		account.Code,
		account.Name,
		account.AccountType,
		nullableString(account.Description),
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "account code "+account.Code+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a company's account by id.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1 AND company_id = $2;
	`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	return account, nil
}

// FindAccountsByIDs retrieves a company's accounts keyed by id. Missing ids are
// simply absent from the map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, companyID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by ids", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating account rows", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a page of a company's accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string, onlyActive bool, limit, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY code
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, onlyActive, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating account rows", err)
	}
	return accounts, nil
}

// UpdateAccount updates the mutable fields of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, description = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $6 AND company_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.Name,
		nullableString(account.Description),
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.AccountID,
		account.CompanyID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasJournalLines reports whether any journal line references the account.
func (r *PgxAccountRepository) HasJournalLines(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check journal lines for account "+accountID, err)
	}
	return exists, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var description sql.NullString
	err := row.Scan(
		&account.AccountID,
		&account.CompanyID,
		&account.Code,
		&account.Name,
		&account.AccountType,
		&description,
		&account.IsActive,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	account.Description = description.String
	return &account, nil
}

// nullableString maps empty strings to SQL NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isUniqueViolation reports whether err is a postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

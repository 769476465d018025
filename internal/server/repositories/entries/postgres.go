package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/dbx"
	"github.com/dmitrijs2005/vaultshare/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.VaultEntry) error {
	query := `
		INSERT INTO vault_entries (id, owner_user_id, website_name, username, password_encrypted, email, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.OwnerID, e.WebsiteName, e.Username, e.EncryptedPassword, e.Email, e.URL, e.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.VaultEntry, error) {
	query := `
		SELECT id, owner_user_id, website_name, username, password_encrypted, email, url, created_at
		FROM vault_entries WHERE id = $1
	`
	var e models.VaultEntry
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.OwnerID, &e.WebsiteName, &e.Username, &e.EncryptedPassword, &e.Email, &e.URL, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

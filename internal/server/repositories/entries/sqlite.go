package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/dbx"
	"github.com/dmitrijs2005/vaultshare/internal/server/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, e *models.VaultEntry) error {
	query := `
		INSERT INTO vault_entries (id, owner_user_id, website_name, username, password_encrypted, email, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.OwnerID, e.WebsiteName, e.Username, e.EncryptedPassword, e.Email, e.URL, e.CreatedAt.UnixNano())
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.VaultEntry, error) {
	query := `
		SELECT id, owner_user_id, website_name, username, password_encrypted, email, url, created_at
		FROM vault_entries WHERE id = ?
	`
	var (
		e         models.VaultEntry
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.OwnerID, &e.WebsiteName, &e.Username, &e.EncryptedPassword, &e.Email, &e.URL, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	e.CreatedAt = time.Unix(0, createdAt).UTC()
	return &e, nil
}

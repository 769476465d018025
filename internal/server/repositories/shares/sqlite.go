package shares

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

// SQLiteRepository implements Repository on modernc.org/sqlite. Timestamps
// are stored as UTC unix nanoseconds so they compare numerically in SQL.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteSelectShare = `
	SELECT id, vault_entry_id, owner_user_id, token_hash, encrypted_payload,
		recipient_note, created_at, expires_at, max_views, view_count,
		first_viewed_at, revoked_at
	FROM vault_shares`

func (r *SQLiteRepository) Insert(ctx context.Context, s *models.Share) error {
	query := `
		INSERT INTO vault_shares (id, vault_entry_id, owner_user_id, token_hash, encrypted_payload,
			recipient_note, created_at, expires_at, max_views, view_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.EntryID, s.OwnerID, s.TokenHash, s.EncryptedPayload,
		nullString(s.RecipientNote), s.CreatedAt.UnixNano(), nullUnix(s.ExpiresAt), s.MaxViews, s.ViewCount)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

func (r *SQLiteRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.Share, error) {
	return r.findOne(ctx, sqliteSelectShare+` WHERE token_hash = ?`, tokenHash)
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*models.Share, error) {
	return r.findOne(ctx, sqliteSelectShare+` WHERE id = ?`, id)
}

func (r *SQLiteRepository) findOne(ctx context.Context, query string, arg string) (*models.Share, error) {
	var (
		s             models.Share
		note          sql.NullString
		createdAt     int64
		expiresAt     sql.NullInt64
		firstViewedAt sql.NullInt64
		revokedAt     sql.NullInt64
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&s.ID, &s.EntryID, &s.OwnerID, &s.TokenHash, &s.EncryptedPayload,
		&note, &createdAt, &expiresAt, &s.MaxViews, &s.ViewCount,
		&firstViewedAt, &revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	s.RecipientNote = note.String
	s.CreatedAt = time.Unix(0, createdAt).UTC()
	s.ExpiresAt = unixPtr(expiresAt)
	s.FirstViewedAt = unixPtr(firstViewedAt)
	s.RevokedAt = unixPtr(revokedAt)
	return &s, nil
}

func (r *SQLiteRepository) CompareAndSwapViewCount(ctx context.Context, id string, expected int, viewedAt time.Time) error {
	query := `
		UPDATE vault_shares
		SET view_count = view_count + 1,
			first_viewed_at = COALESCE(first_viewed_at, ?)
		WHERE id = ?
			AND view_count = ?
			AND view_count < max_views
			AND revoked_at IS NULL
			AND (expires_at IS NULL OR expires_at >= ?)
	`
	at := viewedAt.UnixNano()
	res, err := r.db.ExecContext(ctx, query, at, id, expected, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) SetRevoked(ctx context.Context, id, ownerID string, at time.Time) (bool, error) {
	query := `
		UPDATE vault_shares
		SET revoked_at = COALESCE(revoked_at, ?)
		WHERE id = ? AND owner_user_id = ?
	`
	res, err := r.db.ExecContext(ctx, query, at.UnixNano(), id, ownerID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func nullUnix(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixNano()
}

func unixPtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(0, v.Int64).UTC()
	return &t
}

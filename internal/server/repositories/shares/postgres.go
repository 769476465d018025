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
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx)
// opened with the pgx stdlib driver.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const pgSelectShare = `
	SELECT id, vault_entry_id, owner_user_id, token_hash, encrypted_payload,
		recipient_note, created_at, expires_at, max_views, view_count,
		first_viewed_at, revoked_at
	FROM vault_shares`

func (r *PostgresRepository) Insert(ctx context.Context, s *models.Share) error {
	query := `
		INSERT INTO vault_shares (id, vault_entry_id, owner_user_id, token_hash, encrypted_payload,
			recipient_note, created_at, expires_at, max_views, view_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.EntryID, s.OwnerID, s.TokenHash, s.EncryptedPayload,
		nullString(s.RecipientNote), s.CreatedAt.UTC(), nullTime(s.ExpiresAt), s.MaxViews, s.ViewCount)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.Share, error) {
	return r.findOne(ctx, pgSelectShare+` WHERE token_hash = $1`, tokenHash)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Share, error) {
	return r.findOne(ctx, pgSelectShare+` WHERE id = $1`, id)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg string) (*models.Share, error) {
	var (
		s             models.Share
		note          sql.NullString
		expiresAt     sql.NullTime
		firstViewedAt sql.NullTime
		revokedAt     sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&s.ID, &s.EntryID, &s.OwnerID, &s.TokenHash, &s.EncryptedPayload,
		&note, &s.CreatedAt, &expiresAt, &s.MaxViews, &s.ViewCount,
		&firstViewedAt, &revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	s.RecipientNote = note.String
	s.CreatedAt = s.CreatedAt.UTC()
	s.ExpiresAt = timePtr(expiresAt)
	s.FirstViewedAt = timePtr(firstViewedAt)
	s.RevokedAt = timePtr(revokedAt)
	return &s, nil
}

func (r *PostgresRepository) CompareAndSwapViewCount(ctx context.Context, id string, expected int, viewedAt time.Time) error {
	query := `
		UPDATE vault_shares
		SET view_count = view_count + 1,
			first_viewed_at = COALESCE(first_viewed_at, $3)
		WHERE id = $1
			AND view_count = $2
			AND view_count < max_views
			AND revoked_at IS NULL
			AND (expires_at IS NULL OR expires_at >= $3)
	`
	res, err := r.db.ExecContext(ctx, query, id, expected, viewedAt.UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) SetRevoked(ctx context.Context, id, ownerID string, at time.Time) (bool, error) {
	query := `
		UPDATE vault_shares
		SET revoked_at = COALESCE(revoked_at, $3)
		WHERE id = $1 AND owner_user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID, at.UTC())
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

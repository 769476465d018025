package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/cryptox"
	"github.com/dmitrijs2005/vaultshare/internal/logging"
	"github.com/dmitrijs2005/vaultshare/internal/server/auth"
	"github.com/dmitrijs2005/vaultshare/internal/server/models"
	"github.com/dmitrijs2005/vaultshare/internal/server/repositories/shares"
	"github.com/dmitrijs2005/vaultshare/internal/sharetoken"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// Status is the outcome of a retrieval attempt.
type Status int

const (
	StatusNotFound Status = iota
	StatusSuccess
	StatusExpired
	StatusRevoked
	StatusViewLimitReached
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusExpired:
		return "expired"
	case StatusRevoked:
		return "revoked"
	case StatusViewLimitReached:
		return "view_limit_reached"
	default:
		return "not_found"
	}
}

const (
	maxIssueAttempts       = 5
	defaultRetrieveRetries = 5
	defaultRetrieveBackoff = 10 * time.Millisecond
	maxRetrieveBackoff     = time.Second
)

type CreateShareRequest struct {
	EntryID          string
	ExpiresInMinutes int
	MaxViews         int
	RecipientNote    string
}

// CreatedShare is returned to the owner once. RawToken is not stored
// anywhere and cannot be recovered later.
type CreatedShare struct {
	Share    *models.Share
	RawToken string
	Link     string
}

// RetrievalResult carries the payload only when Status is StatusSuccess.
type RetrievalResult struct {
	Status         Status
	Payload        *models.SharePayload
	RecipientNote  string
	ExpiresAt      *time.Time
	RemainingViews int
}

// ShareService creates, consumes and revokes vault shares.
type ShareService struct {
	shares    shares.Repository
	entries   EntrySource
	principal auth.PrincipalProvider
	cipher    *cryptox.Cipher
	baseURL   string
	logger    logging.Logger

	now             func() time.Time
	issue           func() (string, string, error)
	retrieveMax     uint64
	retrieveBackoff time.Duration
}

type Option func(*ShareService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ShareService) { s.now = now }
}

// WithRetrieveRetry bounds how often a contended view update is retried.
// A non-positive backoff keeps the default.
func WithRetrieveRetry(maxRetries uint64, baseBackoff time.Duration) Option {
	return func(s *ShareService) {
		s.retrieveMax = maxRetries
		if baseBackoff > 0 {
			s.retrieveBackoff = baseBackoff
		}
	}
}

// WithTokenIssuer replaces sharetoken.Issue.
func WithTokenIssuer(issue func() (raw, hash string, err error)) Option {
	return func(s *ShareService) { s.issue = issue }
}

func NewShareService(
	repo shares.Repository,
	entrySource EntrySource,
	principal auth.PrincipalProvider,
	cipher *cryptox.Cipher,
	publicBaseURL string,
	logger logging.Logger,
	opts ...Option,
) *ShareService {
	s := &ShareService{
		shares:          repo,
		entries:         entrySource,
		principal:       principal,
		cipher:          cipher,
		baseURL:         strings.TrimRight(publicBaseURL, "/"),
		logger:          logger.With("module", "shares"),
		now:             time.Now,
		issue:           sharetoken.Issue,
		retrieveMax:     defaultRetrieveRetries,
		retrieveBackoff: defaultRetrieveBackoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Link builds the public URL for a raw token.
func (s *ShareService) Link(rawToken string) string {
	return s.baseURL + "/share/" + rawToken
}

// CreateShare shares the entry req.EntryID owned by the caller.
// Entries that do not exist and entries of other owners both yield
// common.ErrorNotFound.
func (s *ShareService) CreateShare(ctx context.Context, req CreateShareRequest) (*CreatedShare, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	owner, ok := s.principal.CurrentUserID(ctx)
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	entry, err := s.entries.GetEntry(ctx, owner, req.EntryID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}

	return s.create(ctx, owner, entry, req)
}

// CreateShareForEntry is CreateShare for a caller that already holds the
// decrypted entry. req.EntryID defaults to entry.ID.
func (s *ShareService) CreateShareForEntry(ctx context.Context, entry *models.VaultEntry, req CreateShareRequest) (*CreatedShare, error) {
	if entry != nil && req.EntryID == "" {
		req.EntryID = entry.ID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	owner, ok := s.principal.CurrentUserID(ctx)
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	if entry == nil || entry.ID != req.EntryID {
		return nil, common.ErrorNotFound
	}

	return s.create(ctx, owner, entry, req)
}

func (s *ShareService) create(ctx context.Context, owner string, entry *models.VaultEntry, req CreateShareRequest) (*CreatedShare, error) {
	if entry.OwnerID != owner {
		return nil, common.ErrorNotFound
	}

	payload, err := s.cipher.EncryptJSON(models.NewSharePayload(entry))
	if err != nil {
		return nil, fmt.Errorf("encrypt share payload: %w", err)
	}

	now := s.now().UTC()
	expiresAt := now.Add(time.Duration(req.ExpiresInMinutes) * time.Minute)

	for attempt := 1; ; attempt++ {
		raw, hash, err := s.issue()
		if err != nil {
			return nil, fmt.Errorf("issue share token: %w", err)
		}

		share := &models.Share{
			ID:               uuid.NewString(),
			EntryID:          entry.ID,
			OwnerID:          owner,
			TokenHash:        hash,
			EncryptedPayload: payload,
			RecipientNote:    req.RecipientNote,
			CreatedAt:        now,
			ExpiresAt:        &expiresAt,
			MaxViews:         req.MaxViews,
		}

		err = s.shares.Insert(ctx, share)
		if err == nil {
			s.logger.Info(ctx, "share created", "share_id", share.ID, "entry_id", entry.ID, "max_views", share.MaxViews)
			return &CreatedShare{Share: share, RawToken: raw, Link: s.Link(raw)}, nil
		}

		if !errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		if attempt >= maxIssueAttempts {
			return nil, fmt.Errorf("%w: share token collided %d times", common.ErrorInternal, attempt)
		}
		s.logger.Warn(ctx, "share token collision, reissuing", "entry_id", entry.ID, "attempt", attempt)
	}
}

// Retrieve consumes one view of the share behind rawToken. Unusable tokens
// produce a StatusNotFound result, not an error. Errors are reserved for
// storage failures and for common.ErrContention when the view counter stayed
// contended through every retry.
func (s *ShareService) Retrieve(ctx context.Context, rawToken string) (*RetrievalResult, error) {
	token := strings.ToLower(strings.TrimSpace(rawToken))
	if !sharetoken.Valid(token) {
		return &RetrievalResult{Status: StatusNotFound}, nil
	}
	hash := sharetoken.Hash(token)

	backoff := retry.WithMaxRetries(s.retrieveMax,
		retry.WithCappedDuration(maxRetrieveBackoff,
			retry.WithJitterPercent(20, retry.NewExponential(s.retrieveBackoff))))

	res, err := retry.DoValue(ctx, backoff, func(ctx context.Context) (*RetrievalResult, error) {
		res, err := s.tryRetrieve(ctx, hash)
		if errors.Is(err, common.ErrVersionConflict) {
			return nil, retry.RetryableError(err)
		}
		return res, err
	})
	if err != nil {
		if errors.Is(err, common.ErrVersionConflict) {
			s.logger.Warn(ctx, "share view counter contended, giving up")
			return nil, common.ErrContention
		}
		return nil, err
	}
	return res, nil
}

func (s *ShareService) tryRetrieve(ctx context.Context, hash string) (*RetrievalResult, error) {
	share, err := s.shares.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &RetrievalResult{Status: StatusNotFound}, nil
		}
		return nil, err
	}

	now := s.now().UTC()

	switch {
	case share.IsRevoked():
		return &RetrievalResult{Status: StatusRevoked}, nil
	case share.IsExpired(now):
		return &RetrievalResult{Status: StatusExpired}, nil
	case share.IsExhausted():
		return &RetrievalResult{Status: StatusViewLimitReached}, nil
	}

	var payload models.SharePayload
	if err := s.cipher.DecryptJSON(share.EncryptedPayload, &payload); err != nil {
		s.logger.Error(ctx, "share payload cannot be decrypted", "share_id", share.ID, "error", err)
		return &RetrievalResult{Status: StatusNotFound}, nil
	}

	if err := s.shares.CompareAndSwapViewCount(ctx, share.ID, share.ViewCount, now); err != nil {
		return nil, err
	}

	share.ViewCount++
	s.logger.Info(ctx, "share viewed", "share_id", share.ID, "view", share.ViewCount, "max_views", share.MaxViews)

	return &RetrievalResult{
		Status:         StatusSuccess,
		Payload:        &payload,
		RecipientNote:  share.RecipientNote,
		ExpiresAt:      share.ExpiresAt,
		RemainingViews: share.RemainingViews(),
	}, nil
}

// Revoke permanently disables a share owned by the caller. Revoking twice
// succeeds and keeps the first revocation time. Shares that do not exist and
// shares of other owners both report false.
func (s *ShareService) Revoke(ctx context.Context, shareID string) (bool, error) {
	owner, ok := s.principal.CurrentUserID(ctx)
	if !ok || shareID == "" || uuid.Validate(shareID) != nil {
		return false, nil
	}

	share, err := s.shares.FindByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	if share.OwnerID != owner {
		return false, nil
	}
	if share.IsRevoked() {
		return true, nil
	}

	revoked, err := s.shares.SetRevoked(ctx, shareID, owner, s.now().UTC())
	if err != nil {
		return false, err
	}
	if revoked {
		s.logger.Info(ctx, "share revoked", "share_id", shareID, "entry_id", share.EntryID)
	}
	return revoked, nil
}

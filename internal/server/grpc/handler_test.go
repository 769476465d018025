package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/server/models"
	"github.com/dmitrijs2005/vaultshare/internal/server/services"
	"github.com/dmitrijs2005/vaultshare/internal/shareapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakeShares struct {
	ShareService

	gotCreate services.CreateShareRequest
	created   *services.CreatedShare
	createErr error

	gotRevoke string
	revoked   bool
	revokeErr error

	gotToken    string
	retrieved   *services.RetrievalResult
	retrieveErr error
}

func (f *fakeShares) CreateShare(ctx context.Context, req services.CreateShareRequest) (*services.CreatedShare, error) {
	f.gotCreate = req
	return f.created, f.createErr
}

func (f *fakeShares) Revoke(ctx context.Context, shareID string) (bool, error) {
	f.gotRevoke = shareID
	return f.revoked, f.revokeErr
}

func (f *fakeShares) Retrieve(ctx context.Context, rawToken string) (*services.RetrievalResult, error) {
	f.gotToken = rawToken
	return f.retrieved, f.retrieveErr
}

func TestCreateShare_MapsRequestAndResponse(t *testing.T) {
	expires := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	fs := &fakeShares{created: &services.CreatedShare{
		Share:    &models.Share{ID: "share-1", ExpiresAt: &expires, MaxViews: 3},
		RawToken: "raw",
		Link:     "https://vault.example/share/raw",
	}}
	s := newTestServer("secret", fs)

	resp, err := s.CreateShare(context.Background(), &shareapi.CreateShareRequest{
		VaultID:          "entry-1",
		ExpiresInMinutes: 60,
		MaxViews:         3,
		RecipientNote:    "for bob",
	})
	require.NoError(t, err)

	assert.Equal(t, services.CreateShareRequest{
		EntryID:          "entry-1",
		ExpiresInMinutes: 60,
		MaxViews:         3,
		RecipientNote:    "for bob",
	}, fs.gotCreate)
	assert.Equal(t, &shareapi.CreateShareResponse{
		Link:      "https://vault.example/share/raw",
		ShareID:   "share-1",
		ExpiresAt: &expires,
		MaxViews:  3,
	}, resp)
}

func TestCreateShare_ValidationCarriesFieldViolations(t *testing.T) {
	fs := &fakeShares{createErr: &services.ValidationError{Fields: []services.FieldError{
		{Field: "max_views", Message: "must be between 1 and 25"},
		{Field: "recipient_note", Message: "too long"},
	}}}
	s := newTestServer("secret", fs)

	_, err := s.CreateShare(context.Background(), &shareapi.CreateShareRequest{})
	require.Error(t, err)

	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	require.Len(t, st.Details(), 1)

	br, ok := st.Details()[0].(*errdetails.BadRequest)
	require.True(t, ok, "unexpected detail %T", st.Details()[0])
	require.Len(t, br.GetFieldViolations(), 2)
	assert.Equal(t, "max_views", br.GetFieldViolations()[0].GetField())
	assert.Equal(t, "too long", br.GetFieldViolations()[1].GetDescription())
}

func TestHandlers_ErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"not found", common.ErrorNotFound, codes.NotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", common.ErrorNotFound), codes.NotFound},
		{"unauthorized", common.ErrorUnauthorized, codes.Unauthenticated},
		{"contention", common.ErrContention, codes.Unavailable},
		{"canceled", context.Canceled, codes.Canceled},
		{"storage", errors.New("db error: connection reset"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeShares{createErr: tt.err, revokeErr: tt.err, retrieveErr: tt.err}
			s := newTestServer("secret", fs)
			ctx := context.Background()

			_, err := s.CreateShare(ctx, &shareapi.CreateShareRequest{})
			assert.Equal(t, tt.code, status.Code(err))

			_, err = s.RevokeShare(ctx, &shareapi.RevokeShareRequest{ShareID: "x"})
			assert.Equal(t, tt.code, status.Code(err))

			_, err = s.RetrieveShare(ctx, &shareapi.RetrieveShareRequest{Token: "t"})
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestHandlers_InternalErrorHidesDetail(t *testing.T) {
	fs := &fakeShares{retrieveErr: errors.New("db error: password=hunter2")}
	s := newTestServer("secret", fs)

	_, err := s.RetrieveShare(context.Background(), &shareapi.RetrieveShareRequest{Token: "t"})
	assert.Equal(t, "internal error", status.Convert(err).Message())
}

func TestRevokeShare_PassesResult(t *testing.T) {
	fs := &fakeShares{revoked: true}
	s := newTestServer("secret", fs)

	resp, err := s.RevokeShare(context.Background(), &shareapi.RevokeShareRequest{ShareID: "share-1"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "share-1", fs.gotRevoke)
}

func TestRetrieveShare_RendersOutcome(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fs := &fakeShares{retrieved: &services.RetrievalResult{
			Status:         services.StatusSuccess,
			Payload:        &models.SharePayload{WebsiteName: "Bank", Username: "alice", Password: "p"},
			RecipientNote:  "hi",
			RemainingViews: 2,
		}}
		s := newTestServer("secret", fs)

		resp, err := s.RetrieveShare(context.Background(), &shareapi.RetrieveShareRequest{Token: "abc"})
		require.NoError(t, err)
		assert.Equal(t, "abc", fs.gotToken)
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "Bank", resp.Title)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "p", resp.Password)
		assert.Equal(t, "hi", resp.RecipientNote)
		assert.Equal(t, 2, resp.RemainingViews)
	})

	t.Run("revoked has no payload", func(t *testing.T) {
		fs := &fakeShares{retrieved: &services.RetrievalResult{Status: services.StatusRevoked}}
		s := newTestServer("secret", fs)

		resp, err := s.RetrieveShare(context.Background(), &shareapi.RetrieveShareRequest{Token: "abc"})
		require.NoError(t, err)
		assert.Equal(t, "revoked", resp.Status)
		assert.Empty(t, resp.Password)
		assert.Empty(t, resp.Username)
	})
}

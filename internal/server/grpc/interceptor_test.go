package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/logging"
	"github.com/dmitrijs2005/vaultshare/internal/server/auth"
	"github.com/dmitrijs2005/vaultshare/internal/shareapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(secret string, ss ShareService) *GRPCServer {
	return NewGRPCServer("", logging.NopLogger{}, ss, secret)
}

func ctxWithToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_Retrieve_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret", nil)

	info := &grpc.UnaryServerInfo{FullMethod: shareapi.RetrieveShareFullMethod}
	handlerCalled := false

	h := func(ctx context.Context, req any) (any, error) {
		handlerCalled = true
		_, ok := auth.UserIDFromContext(ctx)
		assert.False(t, ok)
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	require.NoError(t, err)
	assert.True(t, handlerCalled)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_OwnerMethods_RejectBadTokens(t *testing.T) {
	secret := "super-secret"

	expired, err := auth.GenerateToken("user-1", []byte(secret), -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.GenerateToken("user-1", []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		ctx     context.Context
		message string
	}{
		{"no metadata", context.Background(), "missing token"},
		{"empty token", ctxWithToken(""), "missing token"},
		{"garbage", ctxWithToken("not-a-valid-jwt"), "invalid token"},
		{"wrong secret", ctxWithToken(foreign), "invalid token"},
		{"expired", ctxWithToken(expired), "token expired"},
	}

	for _, method := range []string{shareapi.CreateShareFullMethod, shareapi.RevokeShareFullMethod} {
		for _, tt := range tests {
			t.Run(method+"/"+tt.name, func(t *testing.T) {
				s := newTestServer(secret, nil)
				info := &grpc.UnaryServerInfo{FullMethod: method}

				h := func(ctx context.Context, req any) (any, error) {
					t.Fatal("handler should not be called")
					return nil, nil
				}

				_, err := s.accessTokenInterceptor(tt.ctx, nil, info, h)
				require.Error(t, err)
				assert.Equal(t, codes.Unauthenticated, status.Code(err))
				assert.Equal(t, tt.message, status.Convert(err).Message())
			})
		}
	}
}

func TestInterceptor_ValidToken_SetsUserID(t *testing.T) {
	secret := "super-secret"
	s := newTestServer(secret, nil)

	token, err := auth.GenerateToken("user-123", []byte(secret), time.Hour)
	require.NoError(t, err)

	info := &grpc.UnaryServerInfo{FullMethod: shareapi.CreateShareFullMethod}

	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got, _ = auth.UserIDFromContext(ctx)
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(ctxWithToken(token), nil, info, h)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "user-123", got)
}

func TestRecoveryInterceptor_ConvertsPanic(t *testing.T) {
	s := newTestServer("secret", nil)
	info := &grpc.UnaryServerInfo{FullMethod: shareapi.RetrieveShareFullMethod}

	h := func(ctx context.Context, req any) (any, error) {
		panic("boom")
	}

	resp, err := s.recoveryInterceptor(context.Background(), nil, info, h)
	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
}

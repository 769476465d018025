package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/server/presenter"
	"github.com/dmitrijs2005/vaultshare/internal/server/services"
	"github.com/dmitrijs2005/vaultshare/internal/shareapi"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) CreateShare(ctx context.Context, req *shareapi.CreateShareRequest) (*shareapi.CreateShareResponse, error) {

	created, err := s.shares.CreateShare(ctx, services.CreateShareRequest{
		EntryID:          req.VaultID,
		ExpiresInMinutes: req.ExpiresInMinutes,
		MaxViews:         req.MaxViews,
		RecipientNote:    req.RecipientNote,
	})
	if err != nil {
		return nil, s.toStatus(ctx, "create share", err)
	}

	return &shareapi.CreateShareResponse{
		Link:      created.Link,
		ShareID:   created.Share.ID,
		ExpiresAt: created.Share.ExpiresAt,
		MaxViews:  created.Share.MaxViews,
	}, nil
}

func (s *GRPCServer) RevokeShare(ctx context.Context, req *shareapi.RevokeShareRequest) (*shareapi.RevokeShareResponse, error) {

	ok, err := s.shares.Revoke(ctx, req.ShareID)
	if err != nil {
		return nil, s.toStatus(ctx, "revoke share", err)
	}

	return &shareapi.RevokeShareResponse{Success: ok}, nil
}

func (s *GRPCServer) RetrieveShare(ctx context.Context, req *shareapi.RetrieveShareRequest) (*shareapi.RetrieveShareResponse, error) {

	res, err := s.shares.Retrieve(ctx, req.Token)
	if err != nil {
		return nil, s.toStatus(ctx, "retrieve share", err)
	}

	v := presenter.Render(res)
	return &shareapi.RetrieveShareResponse{
		Status:         v.Status,
		Title:          v.Title,
		Message:        v.Message,
		WebsiteName:    v.WebsiteName,
		Username:       v.Username,
		Password:       v.Password,
		Email:          v.Email,
		URL:            v.URL,
		RecipientNote:  v.RecipientNote,
		ExpiresAt:      v.ExpiresAt,
		RemainingViews: v.RemainingViews,
	}, nil
}

// toStatus maps service errors to gRPC codes. Unknown errors are logged and
// reported without detail.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		return validationStatus(verr)
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrContention):
		return status.Error(codes.Unavailable, "share is busy, try again")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	s.logger.Error(ctx, op+" failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func validationStatus(verr *services.ValidationError) error {
	br := &errdetails.BadRequest{}
	for _, f := range verr.Fields {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       f.Field,
			Description: f.Message,
		})
	}

	st := status.New(codes.InvalidArgument, verr.Error())
	if withDetails, err := st.WithDetails(br); err == nil {
		st = withDetails
	}
	return st.Err()
}

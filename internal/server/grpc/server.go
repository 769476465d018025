package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/vaultshare/internal/logging"
	"github.com/dmitrijs2005/vaultshare/internal/server/services"
	"github.com/dmitrijs2005/vaultshare/internal/shareapi"
	"google.golang.org/grpc"
)

// ShareService is the part of services.ShareService the transport calls.
type ShareService interface {
	CreateShare(ctx context.Context, req services.CreateShareRequest) (*services.CreatedShare, error)
	Revoke(ctx context.Context, shareID string) (bool, error)
	Retrieve(ctx context.Context, rawToken string) (*services.RetrievalResult, error)
}

type GRPCServer struct {
	shareapi.UnimplementedShareServiceServer
	address   string
	shares    ShareService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, ss ShareService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		shares:    ss,
		jwtSecret: []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.recoveryInterceptor, s.accessTokenInterceptor))

	// registers service
	shareapi.RegisterShareServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gPRC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}

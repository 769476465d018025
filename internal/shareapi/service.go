// Package shareapi declares the vaultshare.ShareService gRPC contract:
// request and response messages, the service descriptor and a client stub.
// Messages travel with the JSON codec registered by this package.
package shareapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "vaultshare.ShareService"

	CreateShareFullMethod   = "/" + ServiceName + "/CreateShare"
	RevokeShareFullMethod   = "/" + ServiceName + "/RevokeShare"
	RetrieveShareFullMethod = "/" + ServiceName + "/RetrieveShare"
)

// ShareServiceServer is implemented by the server transport.
type ShareServiceServer interface {
	CreateShare(context.Context, *CreateShareRequest) (*CreateShareResponse, error)
	RevokeShare(context.Context, *RevokeShareRequest) (*RevokeShareResponse, error)
	RetrieveShare(context.Context, *RetrieveShareRequest) (*RetrieveShareResponse, error)
}

// UnimplementedShareServiceServer answers every call with codes.Unimplemented.
type UnimplementedShareServiceServer struct{}

func (UnimplementedShareServiceServer) CreateShare(context.Context, *CreateShareRequest) (*CreateShareResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateShare not implemented")
}

func (UnimplementedShareServiceServer) RevokeShare(context.Context, *RevokeShareRequest) (*RevokeShareResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RevokeShare not implemented")
}

func (UnimplementedShareServiceServer) RetrieveShare(context.Context, *RetrieveShareRequest) (*RetrieveShareResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RetrieveShare not implemented")
}

func RegisterShareServiceServer(s grpc.ServiceRegistrar, srv ShareServiceServer) {
	s.RegisterService(&ShareServiceDesc, srv)
}

func createShareHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateShareRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShareServiceServer).CreateShare(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CreateShareFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShareServiceServer).CreateShare(ctx, req.(*CreateShareRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func revokeShareHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RevokeShareRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShareServiceServer).RevokeShare(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RevokeShareFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShareServiceServer).RevokeShare(ctx, req.(*RevokeShareRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func retrieveShareHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RetrieveShareRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShareServiceServer).RetrieveShare(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RetrieveShareFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShareServiceServer).RetrieveShare(ctx, req.(*RetrieveShareRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var ShareServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShareServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateShare", Handler: createShareHandler},
		{MethodName: "RevokeShare", Handler: revokeShareHandler},
		{MethodName: "RetrieveShare", Handler: retrieveShareHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vaultshare/share.go",
}

type ShareServiceClient interface {
	CreateShare(ctx context.Context, in *CreateShareRequest, opts ...grpc.CallOption) (*CreateShareResponse, error)
	RevokeShare(ctx context.Context, in *RevokeShareRequest, opts ...grpc.CallOption) (*RevokeShareResponse, error)
	RetrieveShare(ctx context.Context, in *RetrieveShareRequest, opts ...grpc.CallOption) (*RetrieveShareResponse, error)
}

type shareServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewShareServiceClient(cc grpc.ClientConnInterface) ShareServiceClient {
	return &shareServiceClient{cc: cc}
}

func (c *shareServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *shareServiceClient) CreateShare(ctx context.Context, in *CreateShareRequest, opts ...grpc.CallOption) (*CreateShareResponse, error) {
	out := new(CreateShareResponse)
	if err := c.invoke(ctx, CreateShareFullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *shareServiceClient) RevokeShare(ctx context.Context, in *RevokeShareRequest, opts ...grpc.CallOption) (*RevokeShareResponse, error) {
	out := new(RevokeShareResponse)
	if err := c.invoke(ctx, RevokeShareFullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *shareServiceClient) RetrieveShare(ctx context.Context, in *RetrieveShareRequest, opts ...grpc.CallOption) (*RetrieveShareResponse, error) {
	out := new(RetrieveShareResponse)
	if err := c.invoke(ctx, RetrieveShareFullMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

package decisionrpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName        = "decision.DecisionService"
	SelectMoveMethod   = "/" + ServiceName + "/SelectMove"
	ClassifyMoveMethod = "/" + ServiceName + "/ClassifyMove"
)

type DecisionServiceServer interface {
	SelectMove(ctx context.Context, in *SelectMoveRequest) (*SelectMoveResponse, error)
	ClassifyMove(ctx context.Context, in *ClassifyMoveRequest) (*ClassifyMoveResponse, error)
}

// UnimplementedDecisionServiceServer can be embedded to keep a server
// compiling while only part of the service is served.
type UnimplementedDecisionServiceServer struct{}

func (UnimplementedDecisionServiceServer) SelectMove(context.Context, *SelectMoveRequest) (*SelectMoveResponse, error) {
	return nil, errUnimplemented("SelectMove")
}

func (UnimplementedDecisionServiceServer) ClassifyMove(context.Context, *ClassifyMoveRequest) (*ClassifyMoveResponse, error) {
	return nil, errUnimplemented("ClassifyMove")
}

func RegisterDecisionServiceServer(s grpc.ServiceRegistrar, srv DecisionServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DecisionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SelectMove", Handler: selectMoveHandler},
		{MethodName: "ClassifyMove", Handler: classifyMoveHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "decision",
}

func selectMoveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SelectMoveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionServiceServer).SelectMove(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SelectMoveMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DecisionServiceServer).SelectMove(ctx, req.(*SelectMoveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func classifyMoveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ClassifyMoveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionServiceServer).ClassifyMove(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ClassifyMoveMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DecisionServiceServer).ClassifyMove(ctx, req.(*ClassifyMoveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

type DecisionServiceClient interface {
	SelectMove(ctx context.Context, in *SelectMoveRequest, opts ...grpc.CallOption) (*SelectMoveResponse, error)
	ClassifyMove(ctx context.Context, in *ClassifyMoveRequest, opts ...grpc.CallOption) (*ClassifyMoveResponse, error)
}

type decisionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDecisionServiceClient(cc grpc.ClientConnInterface) DecisionServiceClient {
	return &decisionServiceClient{cc: cc}
}

func (c *decisionServiceClient) SelectMove(ctx context.Context, in *SelectMoveRequest, opts ...grpc.CallOption) (*SelectMoveResponse, error) {
	out := new(SelectMoveResponse)
	if err := c.cc.Invoke(ctx, SelectMoveMethod, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *decisionServiceClient) ClassifyMove(ctx context.Context, in *ClassifyMoveRequest, opts ...grpc.CallOption) (*ClassifyMoveResponse, error) {
	out := new(ClassifyMoveResponse)
	if err := c.cc.Invoke(ctx, ClassifyMoveMethod, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withJSON(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// RollServiceName is the fully qualified gRPC service name
const RollServiceName = "diceroller.api.v1alpha1.RollService"

// MaxMessageSize bounds requests and responses on both ends. A display
// carries every roll total, so the gRPC default of 4MB is too small for the
// largest simulations.
const MaxMessageSize = 64 << 20

// Full method names of RollService
const (
	RollService_Roll_FullMethodName         = "/" + RollServiceName + "/Roll"
	RollService_GetDisplay_FullMethodName   = "/" + RollServiceName + "/GetDisplay"
	RollService_ClearDisplay_FullMethodName = "/" + RollServiceName + "/ClearDisplay"
	RollService_InspectBin_FullMethodName   = "/" + RollServiceName + "/InspectBin"
)

// RollServiceServer is the server API for RollService. Requests and
// responses are google.protobuf.Struct; field names are listed in codec.go.
type RollServiceServer interface {
	Roll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDisplay(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearDisplay(context.Context, *structpb.Struct) (*structpb.Struct, error)
	InspectBin(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterRollServiceServer registers srv on s
func RegisterRollServiceServer(s grpc.ServiceRegistrar, srv RollServiceServer) {
	s.RegisterService(&RollService_ServiceDesc, srv)
}

func unaryHandler(
	method string,
	call func(RollServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RollServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(RollServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RollService_ServiceDesc is the grpc.ServiceDesc for RollService
var RollService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: RollServiceName,
	HandlerType: (*RollServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Roll",
			Handler:    unaryHandler(RollService_Roll_FullMethodName, RollServiceServer.Roll),
		},
		{
			MethodName: "GetDisplay",
			Handler:    unaryHandler(RollService_GetDisplay_FullMethodName, RollServiceServer.GetDisplay),
		},
		{
			MethodName: "ClearDisplay",
			Handler:    unaryHandler(RollService_ClearDisplay_FullMethodName, RollServiceServer.ClearDisplay),
		},
		{
			MethodName: "InspectBin",
			Handler:    unaryHandler(RollService_InspectBin_FullMethodName, RollServiceServer.InspectBin),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// RollServiceClient is the client API for RollService
type RollServiceClient interface {
	Roll(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetDisplay(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ClearDisplay(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	InspectBin(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type rollServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRollServiceClient creates a client on an existing connection
func NewRollServiceClient(cc grpc.ClientConnInterface) RollServiceClient {
	return &rollServiceClient{cc: cc}
}

func (c *rollServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rollServiceClient) Roll(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RollService_Roll_FullMethodName, in, opts...)
}

func (c *rollServiceClient) GetDisplay(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RollService_GetDisplay_FullMethodName, in, opts...)
}

func (c *rollServiceClient) ClearDisplay(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RollService_ClearDisplay_FullMethodName, in, opts...)
}

func (c *rollServiceClient) InspectBin(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RollService_InspectBin_FullMethodName, in, opts...)
}

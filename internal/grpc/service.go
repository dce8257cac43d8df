package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName - полное имя gRPC-сервиса журнала.
// Сообщения передаются как google.protobuf.Struct, поэтому сгенерированный код не нужен.
const ServiceName = "ledger.v1.LedgerService"

const (
	calculatePeriodMethod = "/" + ServiceName + "/CalculatePeriod"
	evaluateBudgetMethod  = "/" + ServiceName + "/EvaluateBudget"
	contributeMethod      = "/" + ServiceName + "/Contribute"
)

// LedgerServiceServer - серверная сторона ledger.v1.LedgerService
type LedgerServiceServer interface {
	CalculatePeriod(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	EvaluateBudget(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Contribute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// LedgerServiceDesc описывает методы сервиса для grpc.Server
var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CalculatePeriod", Handler: unaryHandler(calculatePeriodMethod, LedgerServiceServer.CalculatePeriod)},
		{MethodName: "EvaluateBudget", Handler: unaryHandler(evaluateBudgetMethod, LedgerServiceServer.EvaluateBudget)},
		{MethodName: "Contribute", Handler: unaryHandler(contributeMethod, LedgerServiceServer.Contribute)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/v1/ledger.proto",
}

// RegisterLedgerServiceServer регистрирует реализацию сервиса на gRPC сервере
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}

type unaryMethod func(LedgerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler строит обработчик метода с поддержкой interceptor'ов
func unaryHandler(fullMethod string, method unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(LedgerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return method(srv.(LedgerServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LedgerClient - клиент ledger.v1.LedgerService
type LedgerClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerClient(cc grpc.ClientConnInterface) *LedgerClient {
	return &LedgerClient{cc: cc}
}

func (c *LedgerClient) CalculatePeriod(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, calculatePeriodMethod, req, opts...)
}

func (c *LedgerClient) EvaluateBudget(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, evaluateBudgetMethod, req, opts...)
}

func (c *LedgerClient) Contribute(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, contributeMethod, req, opts...)
}

func (c *LedgerClient) invoke(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

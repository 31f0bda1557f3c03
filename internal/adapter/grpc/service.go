package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "ledgerflow.v1.TrackerService"

// TrackerServiceServer is the server API for TrackerService.
// Requests and responses are google.protobuf.Struct messages whose fields
// follow the JSON shape of the domain types.
type TrackerServiceServer interface {
	AddTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTransactions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBreakdown(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SchedulePayments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPayments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListUpcomingPayments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPaymentDates(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MarkPaid(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDeletionOptions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeletePayment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteSeries(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddInvestmentAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteInvestmentAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListInvestmentAccounts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAdvice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetOverview(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type rpc func(TrackerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

var rpcs = []struct {
	name string
	call rpc
}{
	{"AddTransaction", TrackerServiceServer.AddTransaction},
	{"DeleteTransaction", TrackerServiceServer.DeleteTransaction},
	{"ListTransactions", TrackerServiceServer.ListTransactions},
	{"GetSummary", TrackerServiceServer.GetSummary},
	{"GetBreakdown", TrackerServiceServer.GetBreakdown},
	{"SchedulePayments", TrackerServiceServer.SchedulePayments},
	{"ListPayments", TrackerServiceServer.ListPayments},
	{"ListUpcomingPayments", TrackerServiceServer.ListUpcomingPayments},
	{"GetPaymentDates", TrackerServiceServer.GetPaymentDates},
	{"MarkPaid", TrackerServiceServer.MarkPaid},
	{"GetDeletionOptions", TrackerServiceServer.GetDeletionOptions},
	{"DeletePayment", TrackerServiceServer.DeletePayment},
	{"DeleteSeries", TrackerServiceServer.DeleteSeries},
	{"AddInvestmentAccount", TrackerServiceServer.AddInvestmentAccount},
	{"DeleteInvestmentAccount", TrackerServiceServer.DeleteInvestmentAccount},
	{"ListInvestmentAccounts", TrackerServiceServer.ListInvestmentAccounts},
	{"GetAdvice", TrackerServiceServer.GetAdvice},
	{"GetOverview", TrackerServiceServer.GetOverview},
}

// FullMethod returns the gRPC path of a TrackerService method
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// TrackerServiceDesc is the grpc.ServiceDesc for TrackerService
var TrackerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TrackerServiceServer)(nil),
	Methods:     methodDescs(),
	Streams:     []grpc.StreamDesc{},
	Metadata:    "ledgerflow/v1/tracker.proto",
}

// RegisterTrackerServiceServer registers srv on s
func RegisterTrackerServiceServer(s grpc.ServiceRegistrar, srv TrackerServiceServer) {
	s.RegisterService(&TrackerServiceDesc, srv)
}

func methodDescs() []grpc.MethodDesc {
	descs := make([]grpc.MethodDesc, 0, len(rpcs))
	for _, r := range rpcs {
		descs = append(descs, grpc.MethodDesc{
			MethodName: r.name,
			Handler:    unaryHandler(r.name, r.call),
		})
	}
	return descs
}

func unaryHandler(name string, call rpc) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(TrackerServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(name),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(server, ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

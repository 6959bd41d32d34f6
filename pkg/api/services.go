package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	AuthServiceName   = "messbook.v1.AuthService"
	LedgerServiceName = "messbook.v1.LedgerService"
	AdminServiceName  = "messbook.v1.AdminService"
)

// Procedure names, in the /package.Service/Method form Connect routes on.
const (
	AuthServiceLoginProcedure      = "/" + AuthServiceName + "/Login"
	AuthServiceAdminLoginProcedure = "/" + AuthServiceName + "/AdminLogin"

	LedgerServiceAddExpenseProcedure    = "/" + LedgerServiceName + "/AddExpense"
	LedgerServiceLogMealProcedure       = "/" + LedgerServiceName + "/LogMeal"
	LedgerServiceGetMemberDataProcedure = "/" + LedgerServiceName + "/GetMemberData"

	AdminServiceGetSummaryProcedure    = "/" + AdminServiceName + "/GetSummary"
	AdminServiceListExpensesProcedure  = "/" + AdminServiceName + "/ListExpenses"
	AdminServiceListMealsProcedure     = "/" + AdminServiceName + "/ListMeals"
	AdminServiceUpdateExpenseProcedure = "/" + AdminServiceName + "/UpdateExpense"
	AdminServiceDeleteExpenseProcedure = "/" + AdminServiceName + "/DeleteExpense"
	AdminServiceUpdateMealProcedure    = "/" + AdminServiceName + "/UpdateMeal"
	AdminServiceDeleteMealProcedure    = "/" + AdminServiceName + "/DeleteMeal"
	AdminServiceListPeriodsProcedure   = "/" + AdminServiceName + "/ListPeriods"
	AdminServiceListMembersProcedure   = "/" + AdminServiceName + "/ListMembers"
	AdminServiceCreateMemberProcedure  = "/" + AdminServiceName + "/CreateMember"
)

// Codec returns the codec used by every handler and client in this package.
func Codec() connect.Codec { return jsonCodec{} }

// route dispatches a service's procedures to their unary handlers.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
}

// AuthServiceHandler is implemented by the authentication service.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	AdminLogin(context.Context, *connect.Request[AdminLoginRequest]) (*connect.Response[AdminLoginResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + AuthServiceName + "/", route(map[string]http.Handler{
		AuthServiceLoginProcedure:      connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceAdminLoginProcedure: connect.NewUnaryHandler(AuthServiceAdminLoginProcedure, svc.AdminLogin, opts...),
	})
}

// LedgerServiceHandler is implemented by the member-facing ledger service.
type LedgerServiceHandler interface {
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	LogMeal(context.Context, *connect.Request[LogMealRequest]) (*connect.Response[LogMealResponse], error)
	GetMemberData(context.Context, *connect.Request[GetMemberDataRequest]) (*connect.Response[GetMemberDataResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + LedgerServiceName + "/", route(map[string]http.Handler{
		LedgerServiceAddExpenseProcedure:    connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...),
		LedgerServiceLogMealProcedure:       connect.NewUnaryHandler(LedgerServiceLogMealProcedure, svc.LogMeal, opts...),
		LedgerServiceGetMemberDataProcedure: connect.NewUnaryHandler(LedgerServiceGetMemberDataProcedure, svc.GetMemberData, opts...),
	})
}

// AdminServiceHandler is implemented by the administration service.
type AdminServiceHandler interface {
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	ListMeals(context.Context, *connect.Request[ListMealsRequest]) (*connect.Response[ListMealsResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	UpdateMeal(context.Context, *connect.Request[UpdateMealRequest]) (*connect.Response[UpdateMealResponse], error)
	DeleteMeal(context.Context, *connect.Request[DeleteMealRequest]) (*connect.Response[DeleteMealResponse], error)
	ListPeriods(context.Context, *connect.Request[ListPeriodsRequest]) (*connect.Response[ListPeriodsResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	CreateMember(context.Context, *connect.Request[CreateMemberRequest]) (*connect.Response[CreateMemberResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler from the service implementation.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + AdminServiceName + "/", route(map[string]http.Handler{
		AdminServiceGetSummaryProcedure:    connect.NewUnaryHandler(AdminServiceGetSummaryProcedure, svc.GetSummary, opts...),
		AdminServiceListExpensesProcedure:  connect.NewUnaryHandler(AdminServiceListExpensesProcedure, svc.ListExpenses, opts...),
		AdminServiceListMealsProcedure:     connect.NewUnaryHandler(AdminServiceListMealsProcedure, svc.ListMeals, opts...),
		AdminServiceUpdateExpenseProcedure: connect.NewUnaryHandler(AdminServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...),
		AdminServiceDeleteExpenseProcedure: connect.NewUnaryHandler(AdminServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		AdminServiceUpdateMealProcedure:    connect.NewUnaryHandler(AdminServiceUpdateMealProcedure, svc.UpdateMeal, opts...),
		AdminServiceDeleteMealProcedure:    connect.NewUnaryHandler(AdminServiceDeleteMealProcedure, svc.DeleteMeal, opts...),
		AdminServiceListPeriodsProcedure:   connect.NewUnaryHandler(AdminServiceListPeriodsProcedure, svc.ListPeriods, opts...),
		AdminServiceListMembersProcedure:   connect.NewUnaryHandler(AdminServiceListMembersProcedure, svc.ListMembers, opts...),
		AdminServiceCreateMemberProcedure:  connect.NewUnaryHandler(AdminServiceCreateMemberProcedure, svc.CreateMember, opts...),
	})
}

package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// AuthServiceClient calls AuthService procedures.
type AuthServiceClient struct {
	login      *connect.Client[LoginRequest, LoginResponse]
	adminLogin *connect.Client[AdminLoginRequest, AdminLoginResponse]
}

// NewAuthServiceClient constructs a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthServiceClient{
		login:      connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		adminLogin: connect.NewClient[AdminLoginRequest, AdminLoginResponse](httpClient, baseURL+AuthServiceAdminLoginProcedure, opts...),
	}
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) AdminLogin(ctx context.Context, req *connect.Request[AdminLoginRequest]) (*connect.Response[AdminLoginResponse], error) {
	return c.adminLogin.CallUnary(ctx, req)
}

// LedgerServiceClient calls LedgerService procedures.
type LedgerServiceClient struct {
	addExpense    *connect.Client[AddExpenseRequest, AddExpenseResponse]
	logMeal       *connect.Client[LogMealRequest, LogMealResponse]
	getMemberData *connect.Client[GetMemberDataRequest, GetMemberDataResponse]
}

// NewLedgerServiceClient constructs a client for the LedgerService at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		addExpense:    connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		logMeal:       connect.NewClient[LogMealRequest, LogMealResponse](httpClient, baseURL+LedgerServiceLogMealProcedure, opts...),
		getMemberData: connect.NewClient[GetMemberDataRequest, GetMemberDataResponse](httpClient, baseURL+LedgerServiceGetMemberDataProcedure, opts...),
	}
}

func (c *LedgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) LogMeal(ctx context.Context, req *connect.Request[LogMealRequest]) (*connect.Response[LogMealResponse], error) {
	return c.logMeal.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetMemberData(ctx context.Context, req *connect.Request[GetMemberDataRequest]) (*connect.Response[GetMemberDataResponse], error) {
	return c.getMemberData.CallUnary(ctx, req)
}

// AdminServiceClient calls AdminService procedures.
type AdminServiceClient struct {
	getSummary    *connect.Client[GetSummaryRequest, GetSummaryResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	listMeals     *connect.Client[ListMealsRequest, ListMealsResponse]
	updateExpense *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	updateMeal    *connect.Client[UpdateMealRequest, UpdateMealResponse]
	deleteMeal    *connect.Client[DeleteMealRequest, DeleteMealResponse]
	listPeriods   *connect.Client[ListPeriodsRequest, ListPeriodsResponse]
	listMembers   *connect.Client[ListMembersRequest, ListMembersResponse]
	createMember  *connect.Client[CreateMemberRequest, CreateMemberResponse]
}

// NewAdminServiceClient constructs a client for the AdminService at baseURL.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AdminServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AdminServiceClient{
		getSummary:    connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+AdminServiceGetSummaryProcedure, opts...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+AdminServiceListExpensesProcedure, opts...),
		listMeals:     connect.NewClient[ListMealsRequest, ListMealsResponse](httpClient, baseURL+AdminServiceListMealsProcedure, opts...),
		updateExpense: connect.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL+AdminServiceUpdateExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+AdminServiceDeleteExpenseProcedure, opts...),
		updateMeal:    connect.NewClient[UpdateMealRequest, UpdateMealResponse](httpClient, baseURL+AdminServiceUpdateMealProcedure, opts...),
		deleteMeal:    connect.NewClient[DeleteMealRequest, DeleteMealResponse](httpClient, baseURL+AdminServiceDeleteMealProcedure, opts...),
		listPeriods:   connect.NewClient[ListPeriodsRequest, ListPeriodsResponse](httpClient, baseURL+AdminServiceListPeriodsProcedure, opts...),
		listMembers:   connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+AdminServiceListMembersProcedure, opts...),
		createMember:  connect.NewClient[CreateMemberRequest, CreateMemberResponse](httpClient, baseURL+AdminServiceCreateMemberProcedure, opts...),
	}
}

func (c *AdminServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *AdminServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *AdminServiceClient) ListMeals(ctx context.Context, req *connect.Request[ListMealsRequest]) (*connect.Response[ListMealsResponse], error) {
	return c.listMeals.CallUnary(ctx, req)
}

func (c *AdminServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *AdminServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *AdminServiceClient) UpdateMeal(ctx context.Context, req *connect.Request[UpdateMealRequest]) (*connect.Response[UpdateMealResponse], error) {
	return c.updateMeal.CallUnary(ctx, req)
}

func (c *AdminServiceClient) DeleteMeal(ctx context.Context, req *connect.Request[DeleteMealRequest]) (*connect.Response[DeleteMealResponse], error) {
	return c.deleteMeal.CallUnary(ctx, req)
}

func (c *AdminServiceClient) ListPeriods(ctx context.Context, req *connect.Request[ListPeriodsRequest]) (*connect.Response[ListPeriodsResponse], error) {
	return c.listPeriods.CallUnary(ctx, req)
}

func (c *AdminServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *AdminServiceClient) CreateMember(ctx context.Context, req *connect.Request[CreateMemberRequest]) (*connect.Response[CreateMemberResponse], error) {
	return c.createMember.CallUnary(ctx, req)
}

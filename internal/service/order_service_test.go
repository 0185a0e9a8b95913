package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/studypay-service/internal/domain"
	"github.com/spec-kit/studypay-service/internal/events"
	"github.com/spec-kit/studypay-service/internal/repository"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

const (
	testUserID   = "11e6ad72-3f0a-4c4b-9a4f-5d6e7f8a9b0c"
	testAdminID  = "a1b2c3d4-e5f6-47a8-89ab-cdef01234567"
	testOrderID  = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	testCatID    = "f3d1a2b4-5c6d-4e7f-8a9b-0c1d2e3f4a5b"
	testHandle   = "student42"
	testTelegram = "@student42"
)

func newOrderService(orders *MockOrderRepository, users *MockUserRepository, categories *MockCategoryRepository, dispatcher *recordingDispatcher) *OrderService {
	return NewOrderService(OrderDependencies{
		OrderRepo:    orders,
		UserRepo:     users,
		CategoryRepo: categories,
		Dispatcher:   dispatcher,
	})
}

func verifiedUser() *domain.User {
	return &domain.User{
		ID:         testUserID,
		Handle:     testHandle,
		Telegram:   testTelegram,
		Role:       domain.RoleUser,
		IsVerified: true,
	}
}

func adminUser() *domain.User {
	return &domain.User{ID: testAdminID, Handle: "admin1", Role: domain.RoleAdmin}
}

func ownerUser() *domain.User {
	return &domain.User{ID: testAdminID, Handle: "boss", Role: domain.RoleOwner}
}

func essayCategory() *domain.Category {
	return &domain.Category{
		ID:   testCatID,
		Name: "Essays",
		Services: []domain.ServiceEntry{
			{Name: "Essay", PriceRange: "1000-3000"},
		},
	}
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestCreateOrder_ByHandle(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	categories := new(MockCategoryRepository)
	dispatcher := &recordingDispatcher{}
	svc := newOrderService(orders, users, categories, dispatcher)

	users.On("GetByHandle", mock.Anything, testHandle).Return(verifiedUser(), nil)
	categories.On("GetByID", mock.Anything, testCatID).Return(essayCategory(), nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	order, err := svc.CreateOrder(context.Background(), OrderCreateInput{
		User:        testHandle,
		Telegram:    testTelegram,
		Description: "write an essay on Go",
		CategoryID:  testCatID,
		Service:     "Essay",
		Price:       2000,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAwaitingPayment, order.Status)
	assert.Equal(t, testUserID, order.UserID)
	assert.False(t, order.Closed)
	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventOrderCreated, dispatcher.published[0].Type)
	orders.AssertExpectations(t)
}

func TestCreateOrder_ByIdentifierFallsBackToHandle(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	categories := new(MockCategoryRepository)
	svc := newOrderService(orders, users, categories, &recordingDispatcher{})

	// UUID-shaped input that matches no account id but matches a handle.
	users.On("GetByID", mock.Anything, testUserID).Return(nil, pgx.ErrNoRows)
	users.On("GetByHandle", mock.Anything, testUserID).Return(verifiedUser(), nil)
	categories.On("GetByID", mock.Anything, testCatID).Return(essayCategory(), nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	_, err := svc.CreateOrder(context.Background(), OrderCreateInput{
		User:        testUserID,
		Telegram:    testTelegram,
		Description: "coursework",
		CategoryID:  testCatID,
		Service:     "Essay",
		Price:       1500,
	})

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestCreateOrder_UnverifiedUser(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	categories := new(MockCategoryRepository)
	svc := newOrderService(orders, users, categories, &recordingDispatcher{})

	unverified := verifiedUser()
	unverified.IsVerified = false
	users.On("GetByHandle", mock.Anything, testHandle).Return(unverified, nil)

	_, err := svc.CreateOrder(context.Background(), OrderCreateInput{
		User:        testHandle,
		Telegram:    testTelegram,
		Description: "essay",
		CategoryID:  testCatID,
		Service:     "Essay",
		Price:       1000,
	})

	require.Error(t, err)
	assert.Equal(t, "UNVERIFIED", errorCode(t, err))
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_CategoryNotFound(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	categories := new(MockCategoryRepository)
	svc := newOrderService(orders, users, categories, &recordingDispatcher{})

	users.On("GetByHandle", mock.Anything, testHandle).Return(verifiedUser(), nil)
	categories.On("GetByID", mock.Anything, testCatID).Return(nil, pgx.ErrNoRows)

	_, err := svc.CreateOrder(context.Background(), OrderCreateInput{
		User:        testHandle,
		Telegram:    testTelegram,
		Description: "essay",
		CategoryID:  testCatID,
		Service:     "Essay",
		Price:       1000,
	})

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestCreateOrder_ServiceNotFoundInCategory(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	categories := new(MockCategoryRepository)
	svc := newOrderService(orders, users, categories, &recordingDispatcher{})

	users.On("GetByHandle", mock.Anything, testHandle).Return(verifiedUser(), nil)
	categories.On("GetByID", mock.Anything, testCatID).Return(essayCategory(), nil)

	_, err := svc.CreateOrder(context.Background(), OrderCreateInput{
		User:        testHandle,
		Telegram:    testTelegram,
		Description: "essay",
		CategoryID:  testCatID,
		Service:     "Dissertation",
		Price:       1000,
	})

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestCreateOrder_NonPositivePrice(t *testing.T) {
	svc := newOrderService(new(MockOrderRepository), new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	_, err := svc.CreateOrder(context.Background(), OrderCreateInput{
		User:        testHandle,
		Telegram:    testTelegram,
		Description: "essay",
		CategoryID:  testCatID,
		Service:     "Essay",
		Price:       0,
	})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

func TestTakeOrder_ClaimsPaidOrder(t *testing.T) {
	orders := new(MockOrderRepository)
	dispatcher := &recordingDispatcher{}
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), dispatcher)

	adminID := testAdminID
	claimed := &domain.Order{
		ID:       testOrderID,
		UserID:   testUserID,
		Telegram: testTelegram,
		Status:   domain.OrderStatusInProgress,
		AdminID:  &adminID,
	}
	orders.On("ClaimPaid", mock.Anything, testOrderID, testAdminID).Return(claimed, nil)

	order, err := svc.TakeOrder(context.Background(), adminUser(), testOrderID)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusInProgress, order.Status)
	require.NotNil(t, order.AdminID)
	assert.Equal(t, testAdminID, *order.AdminID)
	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventOrderTaken, dispatcher.published[0].Type)
}

func TestTakeOrder_AlreadyTaken(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("ClaimPaid", mock.Anything, testOrderID, testAdminID).Return(nil, pgx.ErrNoRows)
	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		Status: domain.OrderStatusInProgress,
	}, nil)

	_, err := svc.TakeOrder(context.Background(), adminUser(), testOrderID)

	require.Error(t, err)
	assert.Equal(t, "INVALID_STATE", errorCode(t, err))
}

func TestTakeOrder_NotFound(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("ClaimPaid", mock.Anything, testOrderID, testAdminID).Return(nil, pgx.ErrNoRows)
	orders.On("GetByID", mock.Anything, testOrderID).Return(nil, pgx.ErrNoRows)

	_, err := svc.TakeOrder(context.Background(), adminUser(), testOrderID)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestTakeOrder_RequiresStaffRole(t *testing.T) {
	svc := newOrderService(new(MockOrderRepository), new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	_, err := svc.TakeOrder(context.Background(), verifiedUser(), testOrderID)

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
}

func TestCancelOrder_Success(t *testing.T) {
	orders := new(MockOrderRepository)
	dispatcher := &recordingDispatcher{}
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), dispatcher)

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		UserID: testUserID,
		Status: domain.OrderStatusAwaitingPayment,
	}, nil)
	orders.On("Update", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.OrderStatusCanceled && o.Closed
	})).Return(nil)

	order, err := svc.CancelOrder(context.Background(), testUserID, testOrderID)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCanceled, order.Status)
	assert.True(t, order.Closed)
	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventOrderCanceled, dispatcher.published[0].Type)
	orders.AssertExpectations(t)
}

func TestCancelOrder_NotOwner(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		UserID: testUserID,
		Status: domain.OrderStatusAwaitingPayment,
	}, nil)

	_, err := svc.CancelOrder(context.Background(), testAdminID, testOrderID)

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelOrder_AlreadyFinalized(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		UserID: testUserID,
		Status: domain.OrderStatusCompleted,
	}, nil)

	_, err := svc.CancelOrder(context.Background(), testUserID, testOrderID)

	require.Error(t, err)
	assert.Equal(t, "INVALID_STATE", errorCode(t, err))
}

func TestTransitionStatus_RejectsIllegalMove(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		Status: domain.OrderStatusPaid,
	}, nil)

	_, err := svc.TransitionStatus(context.Background(), adminUser(), testOrderID, domain.OrderStatusCompleted)

	require.Error(t, err)
	assert.Equal(t, "INVALID_STATE", errorCode(t, err))
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTransitionStatus_UnknownStatus(t *testing.T) {
	svc := newOrderService(new(MockOrderRepository), new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	_, err := svc.TransitionStatus(context.Background(), adminUser(), testOrderID, domain.OrderStatus("shipped"))

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

func TestTransitionStatus_TerminalSetsClosed(t *testing.T) {
	orders := new(MockOrderRepository)
	dispatcher := &recordingDispatcher{}
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), dispatcher)

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		Status: domain.OrderStatusReadyForHandoff,
	}, nil)
	orders.On("Update", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.OrderStatusCompleted && o.Closed
	})).Return(nil)

	order, err := svc.TransitionStatus(context.Background(), adminUser(), testOrderID, domain.OrderStatusCompleted)

	require.NoError(t, err)
	assert.True(t, order.Closed)
	require.Len(t, dispatcher.published, 1)
	payload, ok := dispatcher.published[0].Payload.(events.OrderStatusChangedPayload)
	require.True(t, ok)
	assert.False(t, payload.Override)
	orders.AssertExpectations(t)
}

func TestOverrideStatus_RequiresOwner(t *testing.T) {
	svc := newOrderService(new(MockOrderRepository), new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	_, err := svc.OverrideStatus(context.Background(), adminUser(), testOrderID, domain.OrderStatusCompleted)

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
}

func TestOverrideStatus_BypassesTransitionTable(t *testing.T) {
	orders := new(MockOrderRepository)
	dispatcher := &recordingDispatcher{}
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), dispatcher)

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		Status: domain.OrderStatusAwaitingPayment,
	}, nil)
	orders.On("Update", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	order, err := svc.OverrideStatus(context.Background(), ownerUser(), testOrderID, domain.OrderStatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	assert.True(t, order.Closed)
	require.Len(t, dispatcher.published, 1)
	payload, ok := dispatcher.published[0].Payload.(events.OrderStatusChangedPayload)
	require.True(t, ok)
	assert.True(t, payload.Override)
}

func TestOverrideStatus_StillValidatesEnum(t *testing.T) {
	svc := newOrderService(new(MockOrderRepository), new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	_, err := svc.OverrideStatus(context.Background(), ownerUser(), testOrderID, domain.OrderStatus("archived"))

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

func TestUpdateOrder_ReassignsContact(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, users, new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:       testOrderID,
		UserID:   testUserID,
		Telegram: testTelegram,
		Price:    2000,
		Status:   domain.OrderStatusAwaitingPayment,
	}, nil)
	other := &domain.User{ID: testAdminID, Handle: "other", Telegram: "@other"}
	users.On("GetByTelegram", mock.Anything, "@other").Return(other, nil)
	orders.On("Update", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.UserID == testAdminID && o.Telegram == "@other" && o.Price == 2000
	})).Return(nil)

	description := "updated details"
	order, err := svc.UpdateOrder(context.Background(), testUserID, testOrderID, OrderUpdateInput{
		Telegram:    "@other",
		Description: &description,
	})

	require.NoError(t, err)
	assert.Equal(t, "updated details", order.Description)
	assert.Equal(t, domain.OrderStatusAwaitingPayment, order.Status)
	orders.AssertExpectations(t)
}

func TestUpdateOrder_NotOwner(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		UserID: testUserID,
	}, nil)

	_, err := svc.UpdateOrder(context.Background(), testAdminID, testOrderID, OrderUpdateInput{Telegram: "@other"})

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
}

func TestListPaidOrders_AppliesDiscount(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	categories := new(MockCategoryRepository)
	svc := newOrderService(orders, users, categories, &recordingDispatcher{})

	orders.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f repository.OrderFilter) bool {
		return len(f.Statuses) == 1 && f.Statuses[0] == domain.OrderStatusPaid
	})).Return([]domain.Order{{
		ID:         testOrderID,
		UserID:     testUserID,
		CategoryID: testCatID,
		Price:      200,
		Status:     domain.OrderStatusPaid,
	}}, nil)
	users.On("GetByID", mock.Anything, testUserID).Return(verifiedUser(), nil)
	categories.On("GetByID", mock.Anything, testCatID).Return(essayCategory(), nil)

	projections, err := svc.ListPaidOrders(context.Background())

	require.NoError(t, err)
	require.Len(t, projections, 1)
	require.NotNil(t, projections[0].DiscountedPrice)
	assert.InDelta(t, 170, *projections[0].DiscountedPrice, 0.0001)
	assert.Equal(t, float64(200), projections[0].Price)
	assert.Equal(t, testHandle, projections[0].User)
	assert.Equal(t, "Essays", projections[0].Category)
}

func TestListPersonalOrders_NoDiscount(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	categories := new(MockCategoryRepository)
	svc := newOrderService(orders, users, categories, &recordingDispatcher{})

	orders.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f repository.OrderFilter) bool {
		return f.UserID != nil && *f.UserID == testUserID
	})).Return([]domain.Order{{ID: testOrderID, UserID: testUserID, CategoryID: testCatID, Price: 500}}, nil)
	users.On("GetByID", mock.Anything, testUserID).Return(verifiedUser(), nil)
	categories.On("GetByID", mock.Anything, testCatID).Return(essayCategory(), nil)

	projections, err := svc.ListPersonalOrders(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, projections, 1)
	assert.Nil(t, projections[0].DiscountedPrice)
}

func TestProjection_FallbackNames(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	categories := new(MockCategoryRepository)
	svc := newOrderService(orders, users, categories, &recordingDispatcher{})

	adminID := testAdminID
	orders.On("ListWithFilter", mock.Anything, mock.Anything).Return([]domain.Order{{
		ID:         testOrderID,
		UserID:     testUserID,
		AdminID:    &adminID,
		CategoryID: testCatID,
		Price:      100,
	}}, nil)
	// Neither the owner, the admin nor the category resolve anymore.
	users.On("GetByID", mock.Anything, testUserID).Return(nil, pgx.ErrNoRows)
	users.On("GetByID", mock.Anything, testAdminID).Return(nil, pgx.ErrNoRows)
	categories.On("GetByID", mock.Anything, testCatID).Return(nil, pgx.ErrNoRows)

	projections, err := svc.ListPersonalOrders(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, projections, 1)
	assert.Equal(t, UnknownUserName, projections[0].User)
	require.NotNil(t, projections[0].Admin)
	assert.Equal(t, testAdminID, *projections[0].Admin)
	assert.Equal(t, testCatID, projections[0].Category)
}

func TestListWorkOrders_FiltersByAdminAndWorkStatuses(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	categories := new(MockCategoryRepository)
	svc := newOrderService(orders, users, categories, &recordingDispatcher{})

	orders.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f repository.OrderFilter) bool {
		return f.AdminID != nil && *f.AdminID == testAdminID && len(f.Statuses) == len(domain.WorkStatuses())
	})).Return([]domain.Order{}, nil)

	projections, err := svc.ListWorkOrders(context.Background(), testAdminID)

	require.NoError(t, err)
	assert.Empty(t, projections)
	orders.AssertExpectations(t)
}

func TestGetOrderNotification_ResolvesOwnerHandle(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, users, new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		UserID: testUserID,
		Status: domain.OrderStatusPaid,
	}, nil)
	users.On("GetByID", mock.Anything, testUserID).Return(verifiedUser(), nil)

	view, err := svc.GetOrderNotification(context.Background(), testOrderID)

	require.NoError(t, err)
	assert.Equal(t, testHandle, view.User)
	assert.Equal(t, testOrderID, view.Order.ID)
}

func TestGetOrderNotification_UnknownOwnerFallsBackToSentinel(t *testing.T) {
	orders := new(MockOrderRepository)
	users := new(MockUserRepository)
	svc := newOrderService(orders, users, new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		UserID: testUserID,
	}, nil)
	users.On("GetByID", mock.Anything, testUserID).Return(nil, pgx.ErrNoRows)

	view, err := svc.GetOrderNotification(context.Background(), testOrderID)

	require.NoError(t, err)
	assert.Equal(t, UnknownUserName, view.User)
}

func TestGetOrderNotification_MissingOrder(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("GetByID", mock.Anything, testOrderID).Return(nil, pgx.ErrNoRows)

	_, err := svc.GetOrderNotification(context.Background(), testOrderID)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestGetOrderDetail_UserCannotReadForeignOrder(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := newOrderService(orders, new(MockUserRepository), new(MockCategoryRepository), &recordingDispatcher{})

	orders.On("GetByID", mock.Anything, testOrderID).Return(&domain.Order{
		ID:     testOrderID,
		UserID: testAdminID,
	}, nil)

	_, err := svc.GetOrderDetail(context.Background(), verifiedUser(), testOrderID)

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
}

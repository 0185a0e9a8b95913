package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/studypay-service/internal/domain"
)

func TestUpdateUser_PromoteToAdmin(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("GetByID", mock.Anything, testUserID).Return(verifiedUser(), nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleAdmin
	})).Return(nil)

	role := domain.RoleAdmin
	updated, err := svc.UpdateUser(context.Background(), testUserID, UserUpdateInput{Role: &role})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	users.AssertExpectations(t)
}

func TestUpdateUser_CannotGrantOwner(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("GetByID", mock.Anything, testUserID).Return(verifiedUser(), nil)

	role := domain.RoleOwner
	_, err := svc.UpdateUser(context.Background(), testUserID, UserUpdateInput{Role: &role})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateUser_SetsAIPurchase(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("GetByID", mock.Anything, testUserID).Return(verifiedUser(), nil)
	users.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	purchase := &domain.AIPurchase{PurchaseDate: time.Now(), DaysValid: 30}
	updated, err := svc.UpdateUser(context.Background(), testUserID, UserUpdateInput{AIPurchase: purchase})

	require.NoError(t, err)
	require.NotNil(t, updated.AIPurchase)
	assert.Equal(t, 30, updated.AIPurchase.DaysValid)
}

func TestUpdateUser_RejectsNonPositivePurchase(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("GetByID", mock.Anything, testUserID).Return(verifiedUser(), nil)

	purchase := &domain.AIPurchase{PurchaseDate: time.Now(), DaysValid: 0}
	_, err := svc.UpdateUser(context.Background(), testUserID, UserUpdateInput{AIPurchase: purchase})

	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

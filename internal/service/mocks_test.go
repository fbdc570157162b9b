package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leasehold-backend/internal/domain"
)

// MockLeaseRepo
type MockLeaseRepo struct {
	mock.Mock
}

func (m *MockLeaseRepo) Create(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}
func (m *MockLeaseRepo) GetByID(ctx context.Context, id string) (*domain.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) ListByLandlord(ctx context.Context, landlordID string, page, pageSize int32) ([]domain.Lease, int32, error) {
	args := m.Called(ctx, landlordID, page, pageSize)
	return args.Get(0).([]domain.Lease), args.Get(1).(int32), args.Error(2)
}
func (m *MockLeaseRepo) UpdateTermination(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}
func (m *MockLeaseRepo) UpdateOccupancy(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}
func (m *MockLeaseRepo) CompleteTermination(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}
func (m *MockLeaseRepo) UpdateRenewal(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}
func (m *MockLeaseRepo) ListRenewalCandidates(ctx context.Context, cutoff string) ([]domain.Lease, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) ListNoticeCandidates(ctx context.Context, from, to string) ([]domain.Lease, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Lease), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendTerminationRequestNotification(ctx context.Context, landlordEmail, tenantName, propertyLabel, moveOutDate string) error {
	args := m.Called(ctx, landlordEmail, tenantName, propertyLabel, moveOutDate)
	return args.Error(0)
}
func (m *MockEmailService) SendTerminationInitiatedNotification(ctx context.Context, tenantEmail, propertyLabel, moveOutDate, reason string) error {
	args := m.Called(ctx, tenantEmail, propertyLabel, moveOutDate, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendTerminationConfirmedNotification(ctx context.Context, tenantEmail, propertyLabel, moveOutDate string, finalReturnCents int64) error {
	args := m.Called(ctx, tenantEmail, propertyLabel, moveOutDate, finalReturnCents)
	return args.Error(0)
}
func (m *MockEmailService) SendTerminationRejectedNotification(ctx context.Context, tenantEmail, propertyLabel string) error {
	args := m.Called(ctx, tenantEmail, propertyLabel)
	return args.Error(0)
}
func (m *MockEmailService) SendTerminationCompletedNotification(ctx context.Context, tenantEmail, propertyLabel string, finalReturnCents int64) error {
	args := m.Called(ctx, tenantEmail, propertyLabel, finalReturnCents)
	return args.Error(0)
}
func (m *MockEmailService) SendRenewalNoticeNotification(ctx context.Context, tenantEmail, tenantName, propertyLabel, contractEnd string) error {
	args := m.Called(ctx, tenantEmail, tenantName, propertyLabel, contractEnd)
	return args.Error(0)
}
func (m *MockEmailService) SendAutoRenewalNotification(ctx context.Context, tenantEmail, propertyLabel, newContractEnd string) error {
	args := m.Called(ctx, tenantEmail, propertyLabel, newContractEnd)
	return args.Error(0)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID, kind, title, message string, attrs map[string]string) {
	m.Called(ctx, userID, kind, title, message, attrs)
}
func (m *MockNotificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

package notify

import (
	"errors"
	"testing"

	"github.com/campuswall/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	args := m.Called(firebaseUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAdmins() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockRequestRepository mocks the RequestRepository interface
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) CreateRequest(request *models.ItemRequest) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockRequestRepository) GetRequestByID(id uint) (*models.ItemRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) GetOpenByCategory(categoryID uint) ([]models.ItemRequest, error) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) GetOpenByRequesterID(requesterID uint) ([]models.ItemRequest, error) {
	args := m.Called(requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) CloseRequest(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockNotificationRepository mocks the NotificationRepository interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateNotifications(notifications []models.Notification) error {
	args := m.Called(notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	args := m.Called(recipientID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(recipientID, notificationID uint) error {
	args := m.Called(recipientID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(recipientID uint) error {
	args := m.Called(recipientID)
	return args.Error(0)
}

func newFanoutWithMocks() (*Fanout, *MockUserRepository, *MockRequestRepository, *MockNotificationRepository) {
	userRepo := new(MockUserRepository)
	requestRepo := new(MockRequestRepository)
	notifRepo := new(MockNotificationRepository)
	return NewFanout(userRepo, requestRepo, notifRepo), userRepo, requestRepo, notifRepo
}

func TestNotifyAdmins_NoAdmins(t *testing.T) {
	fanout, userRepo, _, notifRepo := newFanoutWithMocks()

	userRepo.On("GetAdmins").Return([]models.User{}, nil)

	count, err := fanout.NotifyAdmins(models.NotificationConfessionPending, "New confession awaiting review", "", "/admin")

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	notifRepo.AssertNotCalled(t, "CreateNotifications", mock.Anything)
}

func TestNotifyAdmins_OneRowPerAdmin(t *testing.T) {
	fanout, userRepo, _, notifRepo := newFanoutWithMocks()

	admins := []models.User{
		{ID: 1, Role: models.RoleAdmin},
		{ID: 7, Role: models.RoleAdmin},
		{ID: 9, Role: models.RoleAdmin},
	}
	userRepo.On("GetAdmins").Return(admins, nil)

	var created []models.Notification
	notifRepo.On("CreateNotifications", mock.AnythingOfType("[]models.Notification")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).([]models.Notification)
		}).Return(nil)

	count, err := fanout.NotifyAdmins(models.NotificationCrushPending, "New crush awaiting review", "details", "/admin")

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, created, 3)
	recipients := make(map[uint]bool)
	for _, n := range created {
		recipients[n.RecipientID] = true
		assert.Equal(t, models.NotificationCrushPending, n.Type)
		assert.Equal(t, "New crush awaiting review", n.Title)
		assert.Equal(t, "details", n.Body)
	}
	assert.Len(t, recipients, 3)
	notifRepo.AssertNumberOfCalls(t, "CreateNotifications", 1)
}

func TestNotifyAdmins_RepositoryError(t *testing.T) {
	fanout, userRepo, _, _ := newFanoutWithMocks()

	userRepo.On("GetAdmins").Return(nil, errors.New("db down"))

	count, err := fanout.NotifyAdmins(models.NotificationMessage, "title", "", "")

	assert.Error(t, err)
	assert.Equal(t, 0, count)
}

func uintPtr(v uint) *uint { return &v }

func TestNotifyMatchingRequests_PartitionsRecipients(t *testing.T) {
	fanout, _, requestRepo, notifRepo := newFanoutWithMocks()

	requests := []models.ItemRequest{
		{ID: 1, RequesterID: uintPtr(11), CategoryID: 3},
		{ID: 2, GuestEmail: "guest@example.edu", CategoryID: 3},
		{ID: 3, RequesterID: uintPtr(12), CategoryID: 3},
		{ID: 4, GuestEmail: "other@example.edu", CategoryID: 3},
	}
	requestRepo.On("GetOpenByCategory", uint(3)).Return(requests, nil)

	var created []models.Notification
	notifRepo.On("CreateNotifications", mock.AnythingOfType("[]models.Notification")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).([]models.Notification)
		}).Return(nil)

	result, err := fanout.NotifyMatchingRequests(42, "Desk lamp", 3)

	assert.NoError(t, err)
	assert.Len(t, result.Notified, 2)
	assert.Len(t, result.GuestEmails, 2)
	assert.Len(t, created, 2)

	// No request appears on both sides.
	notifiedRequesters := map[uint]bool{}
	for _, n := range result.Notified {
		notifiedRequesters[n.RecipientID] = true
		assert.Equal(t, models.NotificationSuggestionMatch, n.Type)
		assert.Equal(t, "Desk lamp", n.Body)
		assert.Equal(t, "/marketplace/listings/42", n.Link)
	}
	assert.True(t, notifiedRequesters[11])
	assert.True(t, notifiedRequesters[12])

	guestEmails := map[string]bool{}
	for _, g := range result.GuestEmails {
		guestEmails[g.Email] = true
	}
	assert.True(t, guestEmails["guest@example.edu"])
	assert.True(t, guestEmails["other@example.edu"])
}

func TestNotifyMatchingRequests_NoOpenRequests(t *testing.T) {
	fanout, _, requestRepo, notifRepo := newFanoutWithMocks()

	requestRepo.On("GetOpenByCategory", uint(5)).Return([]models.ItemRequest{}, nil)
	notifRepo.On("CreateNotifications", mock.AnythingOfType("[]models.Notification")).Return(nil)

	result, err := fanout.NotifyMatchingRequests(1, "Bike", 5)

	assert.NoError(t, err)
	assert.Empty(t, result.Notified)
	assert.Empty(t, result.GuestEmails)
}

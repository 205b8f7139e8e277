package modification

import (
	"context"
	"testing"

	modificationRepo "carenest/database/repository/modification"
	"carenest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// Mock repositories and services

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(booking *models.Booking) error {
	args := m.Called(booking)
	return args.Error(0)
}

func (m *MockBookingRepo) GetByID(id string) (*models.Booking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByClientID(clientID string) ([]models.Booking, error) {
	args := m.Called(clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByNannyID(nannyID string) ([]models.Booking, error) {
	args := m.Called(nannyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(id, from, to string) error {
	args := m.Called(id, from, to)
	return args.Error(0)
}

func (m *MockBookingRepo) ApplyModification(id string, services models.ServiceSelection, costDelta float64) error {
	args := m.Called(id, services, costDelta)
	return args.Error(0)
}

type MockModificationRepo struct {
	mock.Mock
}

func (m *MockModificationRepo) Create(req *models.ModificationRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockModificationRepo) GetByID(id string) (*models.ModificationRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModificationRequest), args.Error(1)
}

func (m *MockModificationRepo) GetActiveByBookingID(bookingID string) (*models.ModificationRequest, error) {
	args := m.Called(bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModificationRequest), args.Error(1)
}

func (m *MockModificationRepo) ListByBookingID(bookingID string) ([]models.ModificationRequest, error) {
	args := m.Called(bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ModificationRequest), args.Error(1)
}

func (m *MockModificationRepo) UpdateStatus(id, from, to string, extra bson.M) error {
	args := m.Called(id, from, to, extra)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyAdminsModificationCreated(ctx context.Context, req *models.ModificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockNotifier) NotifyNannyModificationApproved(ctx context.Context, nannyID string, req *models.ModificationRequest) error {
	args := m.Called(ctx, nannyID, req)
	return args.Error(0)
}

func (m *MockNotifier) NotifyClientModificationResolved(ctx context.Context, clientID string, req *models.ModificationRequest) error {
	args := m.Called(ctx, clientID, req)
	return args.Error(0)
}

func (m *MockNotifier) NotifyClientBookingConfirmed(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockNotifier) NotifyNannyBookingReminder(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func newCoordinator() (*DefaultApprovalCoordinator, *MockBookingRepo, *MockModificationRepo, *MockNotifier) {
	bookings := new(MockBookingRepo)
	mods := new(MockModificationRepo)
	notifier := new(MockNotifier)
	coord := &DefaultApprovalCoordinator{
		BookingRepo: bookings,
		ModRepo:     mods,
		Notifier:    notifier,
	}
	return coord, bookings, mods, notifier
}

func activeBooking() *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		ClientID:      "client-1",
		NannyID:       "nanny-1",
		Category:      models.CategoryDateDay,
		Status:        models.BookingStatusActive,
		TotalCost:     5000,
		SelectedDates: []string{"2025-06-02", "2025-06-03", "2025-06-04"},
		HomeSizeTier:  models.HomeTwoBedroom,
	}
}

func TestCreateRequestComputesServiceAdditionDelta(t *testing.T) {
	coord, bookings, mods, notifier := newCoordinator()
	booking := activeBooking()

	bookings.On("GetByID", "bk-1").Return(booking, nil)
	mods.On("GetActiveByBookingID", "bk-1").Return(nil, modificationRepo.ErrNotFound)
	mods.On("Create", mock.AnythingOfType("*models.ModificationRequest")).Return(nil)
	notifier.On("NotifyAdminsModificationCreated", mock.Anything, mock.Anything).Return(nil)

	req, err := coord.CreateRequest(context.Background(), CreateRequestInput{
		BookingID:        "bk-1",
		ClientID:         "client-1",
		ModificationType: models.ModificationServiceAddition,
		NewServices:      models.ServiceSelection{Cooking: true},
	})
	require.NoError(t, err)

	assert.Equal(t, models.ModStatusPendingAdminReview, req.Status)
	assert.Equal(t, 300.0, req.PriceAdjustment) // cooking R100/day x 3 days
	assert.Equal(t, models.ServiceSelection{}, req.OldValues)
	assert.Equal(t, models.ServiceSelection{Cooking: true}, req.NewValues)
	mods.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateRequestServiceRemovalIsNegative(t *testing.T) {
	coord, bookings, mods, notifier := newCoordinator()
	booking := activeBooking()
	booking.ServicesSnapshot = models.ServiceSelection{Cooking: true, LightHousekeeping: true}

	bookings.On("GetByID", "bk-1").Return(booking, nil)
	mods.On("GetActiveByBookingID", "bk-1").Return(nil, modificationRepo.ErrNotFound)
	mods.On("Create", mock.Anything).Return(nil)
	notifier.On("NotifyAdminsModificationCreated", mock.Anything, mock.Anything).Return(nil)

	req, err := coord.CreateRequest(context.Background(), CreateRequestInput{
		BookingID:        "bk-1",
		ClientID:         "client-1",
		ModificationType: models.ModificationServiceRemoval,
		NewServices:      models.ServiceSelection{LightHousekeeping: true},
	})
	require.NoError(t, err)
	assert.Equal(t, -300.0, req.PriceAdjustment) // dropping cooking R100/day x 3 days
}

func TestCreateRequestCancellationRefundsWholeCost(t *testing.T) {
	coord, bookings, mods, notifier := newCoordinator()
	booking := activeBooking()
	booking.ServicesSnapshot = models.ServiceSelection{Cooking: true}

	bookings.On("GetByID", "bk-1").Return(booking, nil)
	mods.On("GetActiveByBookingID", "bk-1").Return(nil, modificationRepo.ErrNotFound)
	mods.On("Create", mock.Anything).Return(nil)
	notifier.On("NotifyAdminsModificationCreated", mock.Anything, mock.Anything).Return(nil)

	req, err := coord.CreateRequest(context.Background(), CreateRequestInput{
		BookingID:        "bk-1",
		ClientID:         "client-1",
		ModificationType: models.ModificationCancellation,
	})
	require.NoError(t, err)
	assert.Equal(t, -5000.0, req.PriceAdjustment)
	// Cancellation changes no services; both snapshots mirror the booking.
	assert.Equal(t, booking.ServicesSnapshot, req.OldValues)
	assert.Equal(t, booking.ServicesSnapshot, req.NewValues)
}

func TestCreateRequestRejectsSecondConcurrentRequest(t *testing.T) {
	coord, bookings, mods, _ := newCoordinator()
	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)
	mods.On("GetActiveByBookingID", "bk-1").Return(&models.ModificationRequest{
		ID: "mod-0", Status: models.ModStatusPendingAdminReview,
	}, nil)

	_, err := coord.CreateRequest(context.Background(), CreateRequestInput{
		BookingID:        "bk-1",
		ClientID:         "client-1",
		ModificationType: models.ModificationServiceAddition,
	})
	assert.ErrorIs(t, err, ErrActiveRequestExists)
	mods.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateRequestRacingInsertIsRejected(t *testing.T) {
	// Two creations can both pass the read-side check before either inserts.
	// The repository's unique active index fails the loser; the coordinator
	// surfaces it as the same already-exists error.
	coord, bookings, mods, _ := newCoordinator()
	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)
	mods.On("GetActiveByBookingID", "bk-1").Return(nil, modificationRepo.ErrNotFound)
	mods.On("Create", mock.AnythingOfType("*models.ModificationRequest")).
		Return(modificationRepo.ErrActiveExists)

	_, err := coord.CreateRequest(context.Background(), CreateRequestInput{
		BookingID:        "bk-1",
		ClientID:         "client-1",
		ModificationType: models.ModificationServiceAddition,
	})
	assert.ErrorIs(t, err, ErrActiveRequestExists)
}

func TestCreateRequestRejectsForeignClient(t *testing.T) {
	coord, bookings, _, _ := newCoordinator()
	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)

	_, err := coord.CreateRequest(context.Background(), CreateRequestInput{
		BookingID:        "bk-1",
		ClientID:         "intruder",
		ModificationType: models.ModificationServiceAddition,
	})
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestCreateRequestRejectsInactiveBooking(t *testing.T) {
	coord, bookings, _, _ := newCoordinator()
	booking := activeBooking()
	booking.Status = models.BookingStatusCompleted
	bookings.On("GetByID", "bk-1").Return(booking, nil)

	_, err := coord.CreateRequest(context.Background(), CreateRequestInput{
		BookingID:        "bk-1",
		ClientID:         "client-1",
		ModificationType: models.ModificationServiceAddition,
	})
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

func pendingRequest(status string) *models.ModificationRequest {
	return &models.ModificationRequest{
		ID:               "mod-1",
		BookingID:        "bk-1",
		ClientID:         "client-1",
		ModificationType: models.ModificationServiceAddition,
		NewValues:        models.ServiceSelection{Cooking: true},
		PriceAdjustment:  150,
		Status:           status,
	}
}

func TestAdminApprovalMovesToPendingNannyResponse(t *testing.T) {
	coord, bookings, mods, notifier := newCoordinator()
	mods.On("GetByID", "mod-1").Return(pendingRequest(models.ModStatusPendingAdminReview), nil)
	mods.On("UpdateStatus", "mod-1", models.ModStatusPendingAdminReview, models.ModStatusPendingNannyResponse, mock.Anything).Return(nil)
	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)
	notifier.On("NotifyNannyModificationApproved", mock.Anything, "nanny-1", mock.Anything).Return(nil)

	req, err := coord.ReviewByAdmin(context.Background(), "mod-1", true, "")
	require.NoError(t, err)
	assert.Equal(t, models.ModStatusPendingNannyResponse, req.Status)
	notifier.AssertExpectations(t)
}

func TestAdminRejectionRequiresNotes(t *testing.T) {
	coord, _, mods, _ := newCoordinator()
	mods.On("GetByID", "mod-1").Return(pendingRequest(models.ModStatusPendingAdminReview), nil)

	_, err := coord.ReviewByAdmin(context.Background(), "mod-1", false, "")
	assert.ErrorIs(t, err, ErrAdminNotesRequired)
	mods.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminRejectionIsTerminalAndLeavesBookingAlone(t *testing.T) {
	coord, bookings, mods, notifier := newCoordinator()
	mods.On("GetByID", "mod-1").Return(pendingRequest(models.ModStatusPendingAdminReview), nil).Once()
	mods.On("UpdateStatus", "mod-1", models.ModStatusPendingAdminReview, models.ModStatusAdminRejected, mock.Anything).Return(nil)
	notifier.On("NotifyClientModificationResolved", mock.Anything, "client-1", mock.Anything).Return(nil)

	req, err := coord.ReviewByAdmin(context.Background(), "mod-1", false, "rate card outdated")
	require.NoError(t, err)
	assert.Equal(t, models.ModStatusAdminRejected, req.Status)
	assert.Equal(t, "rate card outdated", req.AdminNotes)
	bookings.AssertNotCalled(t, "ApplyModification", mock.Anything, mock.Anything, mock.Anything)

	// Any further transition attempt on the terminal request must fail.
	mods.On("GetByID", "mod-1").Return(pendingRequest(models.ModStatusAdminRejected), nil)
	_, err = coord.RespondByNanny(context.Background(), "mod-1", true, "")
	ite, ok := AsInvalidTransition(err)
	require.True(t, ok)
	assert.Equal(t, models.ModStatusAdminRejected, ite.Current)
	assert.Equal(t, models.ModStatusNannyAccepted, ite.Attempted)
}

func TestNannyCannotActBeforeAdminApproval(t *testing.T) {
	coord, bookings, mods, _ := newCoordinator()
	mods.On("GetByID", "mod-1").Return(pendingRequest(models.ModStatusPendingAdminReview), nil)

	_, err := coord.RespondByNanny(context.Background(), "mod-1", true, "")
	ite, ok := AsInvalidTransition(err)
	require.True(t, ok)
	assert.Equal(t, models.ModStatusPendingAdminReview, ite.Current)
	bookings.AssertNotCalled(t, "ApplyModification", mock.Anything, mock.Anything, mock.Anything)
}

func TestNannyAcceptanceAppliesPriceAdjustmentOnce(t *testing.T) {
	coord, bookings, mods, notifier := newCoordinator()
	mods.On("GetByID", "mod-1").Return(pendingRequest(models.ModStatusPendingNannyResponse), nil)
	mods.On("UpdateStatus", "mod-1", models.ModStatusPendingNannyResponse, models.ModStatusNannyAccepted, mock.Anything).Return(nil)
	bookings.On("ApplyModification", "bk-1", models.ServiceSelection{Cooking: true}, 150.0).Return(nil).Once()
	notifier.On("NotifyClientModificationResolved", mock.Anything, "client-1", mock.Anything).Return(nil)

	req, err := coord.RespondByNanny(context.Background(), "mod-1", true, "happy to cook")
	require.NoError(t, err)
	assert.Equal(t, models.ModStatusNannyAccepted, req.Status)
	assert.Equal(t, "happy to cook", req.NannyNotes)
	bookings.AssertExpectations(t)
}

func TestNannyDeclineLeavesBookingUnchanged(t *testing.T) {
	coord, bookings, mods, notifier := newCoordinator()
	mods.On("GetByID", "mod-1").Return(pendingRequest(models.ModStatusPendingNannyResponse), nil)
	mods.On("UpdateStatus", "mod-1", models.ModStatusPendingNannyResponse, models.ModStatusNannyDeclined, mock.Anything).Return(nil)
	notifier.On("NotifyClientModificationResolved", mock.Anything, "client-1", mock.Anything).Return(nil)

	req, err := coord.RespondByNanny(context.Background(), "mod-1", false, "schedule conflict")
	require.NoError(t, err)
	assert.Equal(t, models.ModStatusNannyDeclined, req.Status)
	bookings.AssertNotCalled(t, "ApplyModification", mock.Anything, mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptedCancellationClosesBooking(t *testing.T) {
	coord, bookings, mods, notifier := newCoordinator()
	req := pendingRequest(models.ModStatusPendingNannyResponse)
	req.ModificationType = models.ModificationCancellation
	req.NewValues = models.ServiceSelection{}
	req.PriceAdjustment = -5000

	mods.On("GetByID", "mod-1").Return(req, nil)
	mods.On("UpdateStatus", "mod-1", models.ModStatusPendingNannyResponse, models.ModStatusNannyAccepted, mock.Anything).Return(nil)
	bookings.On("ApplyModification", "bk-1", models.ServiceSelection{}, -5000.0).Return(nil)
	bookings.On("GetByID", "bk-1").Return(activeBooking(), nil)
	bookings.On("UpdateStatus", "bk-1", models.BookingStatusActive, models.BookingStatusCancelled).Return(nil)
	notifier.On("NotifyClientModificationResolved", mock.Anything, "client-1", mock.Anything).Return(nil)

	_, err := coord.RespondByNanny(context.Background(), "mod-1", true, "")
	require.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestConcurrentResolutionSurfacesConflict(t *testing.T) {
	coord, _, mods, _ := newCoordinator()
	mods.On("GetByID", "mod-1").Return(pendingRequest(models.ModStatusPendingAdminReview), nil).Once()
	mods.On("UpdateStatus", "mod-1", models.ModStatusPendingAdminReview, models.ModStatusAdminRejected, mock.Anything).
		Return(modificationRepo.ErrStatusMismatch)
	// Refetch shows another admin already approved it.
	mods.On("GetByID", "mod-1").Return(pendingRequest(models.ModStatusPendingNannyResponse), nil)

	_, err := coord.ReviewByAdmin(context.Background(), "mod-1", false, "duplicate of earlier request")
	cce, ok := AsConcurrencyConflict(err)
	require.True(t, ok)
	assert.Equal(t, "mod-1", cce.RequestID)
	assert.Equal(t, models.ModStatusPendingNannyResponse, cce.Current)
}

func TestPriceAdjustmentUnknownType(t *testing.T) {
	_, err := priceAdjustment(activeBooking(), "swap_nanny", models.ServiceSelection{})
	assert.ErrorIs(t, err, ErrUnknownModificationType)
}

func TestModificationTransitionTable(t *testing.T) {
	assert.True(t, models.CanTransitionModification(models.ModStatusPendingAdminReview, models.ModStatusAdminRejected))
	assert.True(t, models.CanTransitionModification(models.ModStatusPendingNannyResponse, models.ModStatusNannyAccepted))
	assert.False(t, models.CanTransitionModification(models.ModStatusAdminRejected, models.ModStatusPendingNannyResponse))
	assert.False(t, models.CanTransitionModification(models.ModStatusNannyAccepted, models.ModStatusNannyDeclined))
	assert.True(t, models.IsTerminalModStatus(models.ModStatusNannyDeclined))
	assert.False(t, models.IsTerminalModStatus(models.ModStatusPendingNannyResponse))
}

package usecase

import (
	"context"
	"sync"
	"time"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/pkg/events"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id int64) (*entity.Reservation, error) {
	args := m.Called(ctx, id)
	reservation, _ := args.Get(0).(*entity.Reservation)
	return reservation, args.Error(1)
}

func (m *MockReservationRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
	args := m.Called(ctx, limit, offset)
	reservations, _ := args.Get(0).([]*entity.Reservation)
	return reservations, args.Error(1)
}

func (m *MockReservationRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Reservation, error) {
	args := m.Called(ctx, userID)
	reservations, _ := args.Get(0).([]*entity.Reservation)
	return reservations, args.Error(1)
}

func (m *MockReservationRepository) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Reservation, error) {
	args := m.Called(ctx, movieID)
	reservations, _ := args.Get(0).([]*entity.Reservation)
	return reservations, args.Error(1)
}

func (m *MockReservationRepository) FindByScheduleID(ctx context.Context, scheduleID int32) ([]*entity.Reservation, error) {
	args := m.Called(ctx, scheduleID)
	reservations, _ := args.Get(0).([]*entity.Reservation)
	return reservations, args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id int64, status entity.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepository) AttachPayment(ctx context.Context, payment *entity.Payment, status entity.ReservationStatus) error {
	args := m.Called(ctx, payment, status)
	return args.Error(0)
}

func (m *MockReservationRepository) ExpirePending(ctx context.Context, cutoff time.Time) ([]int64, error) {
	args := m.Called(ctx, cutoff)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

// recordingPublisher keeps every event it is handed and can be told to fail
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.Type, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type stubProcessor struct {
	approve bool
	err     error
}

func (p stubProcessor) Authorize(context.Context, *entity.Payment) (bool, error) {
	return p.approve, p.err
}

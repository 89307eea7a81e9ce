package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/internal/dto/request"
	"cinema-reservations/internal/dto/response"
	"cinema-reservations/pkg/clock"
	"cinema-reservations/pkg/errs"
	"cinema-reservations/pkg/events"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type ReservationServiceTestSuite struct {
	suite.Suite
	ctx             context.Context
	now             time.Time
	clock           *clock.FixedClock
	reservationRepo *MockReservationRepository
	userRepo        *MockUserRepository
	publisher       *recordingPublisher
	service         ReservationService
}

func (s *ReservationServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
	s.clock = clock.NewFixedClock(s.now)
	s.reservationRepo = new(MockReservationRepository)
	s.userRepo = new(MockUserRepository)
	s.publisher = &recordingPublisher{}
	s.service = NewReservationService(s.reservationRepo, s.userRepo, s.publisher, s.clock, zap.NewNop())
}

func (s *ReservationServiceTestSuite) TearDownTest() {
	s.reservationRepo.AssertExpectations(s.T())
	s.userRepo.AssertExpectations(s.T())
}

func TestReservationServiceSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}

func (s *ReservationServiceTestSuite) user(id int64) *entity.User {
	return &entity.User{Base: entity.Base{ID: id}, Email: "ada@example.com", Name: "Ada"}
}

func (s *ReservationServiceTestSuite) pending(id int64) *entity.Reservation {
	return &entity.Reservation{
		ID:              id,
		UserID:          1,
		ScheduleID:      10,
		MovieID:         "tt0133093",
		TotalAmount:     25,
		Status:          entity.ReservationStatusPending,
		ReservationDate: s.now.Add(-time.Hour),
		ReservedSeats: []entity.ReservedSeat{
			{ID: 100, ReservationID: id, SeatID: 5},
		},
	}
}

func (s *ReservationServiceTestSuite) TestCreateReservation() {
	s.Run("missing user is not found", func() {
		s.SetupTest()
		s.userRepo.On("FindByID", s.ctx, int64(42)).Return(nil, nil).Once()

		_, err := s.service.CreateReservation(s.ctx, &request.CreateReservationRequest{
			UserID: 42, ScheduleID: 1, MovieID: "m1", TotalAmount: 10, SeatIDs: []int32{1},
		})

		s.Equal(errs.KindNotFound, errs.KindOf(err))
		s.EqualError(err, "User not found with id: 42")
		s.reservationRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
		s.Empty(s.publisher.Types())
	})

	s.Run("stores one seat per id as pending", func() {
		s.SetupTest()
		s.userRepo.On("FindByID", s.ctx, int64(1)).Return(s.user(1), nil).Once()
		s.reservationRepo.On("Create", s.ctx, mock.MatchedBy(func(r *entity.Reservation) bool {
			return r.UserID == 1 &&
				r.Status == entity.ReservationStatusPending &&
				r.ReservationDate.Equal(s.now) &&
				cmp.Equal(r.SeatIDs(), []int32{5, 12})
		})).Run(func(args mock.Arguments) {
			r := args.Get(1).(*entity.Reservation)
			r.ID = 77
			for i := range r.ReservedSeats {
				r.ReservedSeats[i].ID = int64(200 + i)
				r.ReservedSeats[i].ReservationID = r.ID
			}
		}).Return(nil).Once()

		resp, err := s.service.CreateReservation(s.ctx, &request.CreateReservationRequest{
			UserID: 1, ScheduleID: 10, MovieID: "tt0133093", TotalAmount: 25, SeatIDs: []int32{5, 12},
		})

		s.Require().NoError(err)
		want := &response.ReservationResponse{
			ID:              77,
			User:            &response.UserResponse{ID: 1, Email: "ada@example.com", Name: "Ada"},
			ScheduleID:      10,
			MovieID:         "tt0133093",
			TotalAmount:     25,
			Status:          entity.ReservationStatusPending,
			ReservationDate: s.now,
			ReservedSeats: []response.ReservedSeatResponse{
				{ID: 200, SeatID: 5},
				{ID: 201, SeatID: 12},
			},
		}
		if diff := cmp.Diff(want, resp); diff != "" {
			s.Failf("unexpected reservation response", "(-want +got):\n%s", diff)
		}
		s.Equal([]events.Type{events.ReservationCreated}, s.publisher.Types())
	})

	s.Run("empty seat list is accepted", func() {
		s.SetupTest()
		s.userRepo.On("FindByID", s.ctx, int64(1)).Return(s.user(1), nil).Once()
		s.reservationRepo.On("Create", s.ctx, mock.MatchedBy(func(r *entity.Reservation) bool {
			return len(r.ReservedSeats) == 0
		})).Return(nil).Once()

		resp, err := s.service.CreateReservation(s.ctx, &request.CreateReservationRequest{
			UserID: 1, ScheduleID: 10, MovieID: "m", TotalAmount: 1, SeatIDs: []int32{},
		})

		s.Require().NoError(err)
		s.NotNil(resp.ReservedSeats)
		s.Empty(resp.ReservedSeats)
	})

	s.Run("publisher failure does not fail the request", func() {
		s.SetupTest()
		s.publisher.err = assert.AnError
		s.userRepo.On("FindByID", s.ctx, int64(1)).Return(s.user(1), nil).Once()
		s.reservationRepo.On("Create", s.ctx, mock.Anything).Return(nil).Once()

		_, err := s.service.CreateReservation(s.ctx, &request.CreateReservationRequest{
			UserID: 1, ScheduleID: 10, MovieID: "m", TotalAmount: 1, SeatIDs: []int32{3},
		})

		s.NoError(err)
	})

	s.Run("same seat twice is not rejected", func() {
		s.SetupTest()
		s.userRepo.On("FindByID", s.ctx, int64(1)).Return(s.user(1), nil).Twice()
		s.reservationRepo.On("Create", s.ctx, mock.Anything).Return(nil).Twice()

		req := &request.CreateReservationRequest{UserID: 1, ScheduleID: 10, MovieID: "m", TotalAmount: 1, SeatIDs: []int32{5}}
		_, first := s.service.CreateReservation(s.ctx, req)
		_, second := s.service.CreateReservation(s.ctx, req)

		s.NoError(first)
		s.NoError(second)
	})
}

func (s *ReservationServiceTestSuite) TestCancelReservation() {
	s.Run("pending becomes cancelled then a second cancel conflicts", func() {
		s.SetupTest()
		reservation := s.pending(3)
		s.reservationRepo.On("FindByID", s.ctx, int64(3)).Return(reservation, nil).Twice()
		s.reservationRepo.On("UpdateStatus", s.ctx, int64(3), entity.ReservationStatusCancelled).Return(nil).Once()
		s.userRepo.On("FindByID", s.ctx, int64(1)).Return(s.user(1), nil).Once()

		resp, err := s.service.CancelReservation(s.ctx, 3)
		s.Require().NoError(err)
		s.Equal(entity.ReservationStatusCancelled, resp.Status)

		_, err = s.service.CancelReservation(s.ctx, 3)
		s.Equal(errs.KindConflict, errs.KindOf(err))
		s.EqualError(err, "Reservation is already cancelled")
		s.Equal([]events.Type{events.ReservationCancelled}, s.publisher.Types())
	})

	s.Run("confirmed reservation can still be cancelled", func() {
		s.SetupTest()
		reservation := s.pending(4)
		reservation.Status = entity.ReservationStatusConfirmed
		s.reservationRepo.On("FindByID", s.ctx, int64(4)).Return(reservation, nil).Once()
		s.reservationRepo.On("UpdateStatus", s.ctx, int64(4), entity.ReservationStatusCancelled).Return(nil).Once()
		s.userRepo.On("FindByID", s.ctx, int64(1)).Return(s.user(1), nil).Once()

		resp, err := s.service.CancelReservation(s.ctx, 4)

		s.Require().NoError(err)
		s.Equal(entity.ReservationStatusCancelled, resp.Status)
	})

	s.Run("missing reservation is not found", func() {
		s.SetupTest()
		s.reservationRepo.On("FindByID", s.ctx, int64(99)).Return(nil, nil).Once()

		_, err := s.service.CancelReservation(s.ctx, 99)

		s.Equal(errs.KindNotFound, errs.KindOf(err))
		s.EqualError(err, "Reservation not found with id: 99")
	})
}

func (s *ReservationServiceTestSuite) TestDeleteReservation() {
	s.Run("missing id is not found", func() {
		s.SetupTest()
		s.reservationRepo.On("Delete", s.ctx, int64(8)).
			Return(errs.NotFound("Reservation not found with id: %d", 8)).Once()

		err := s.service.DeleteReservation(s.ctx, 8)

		s.Equal(errs.KindNotFound, errs.KindOf(err))
	})

	s.Run("deleted reservation is gone afterwards", func() {
		s.SetupTest()
		s.reservationRepo.On("Delete", s.ctx, int64(6)).Return(nil).Once()
		s.reservationRepo.On("FindByID", s.ctx, int64(6)).Return(nil, nil).Once()

		s.Require().NoError(s.service.DeleteReservation(s.ctx, 6))
		_, err := s.service.GetReservation(s.ctx, 6)

		s.Equal(errs.KindNotFound, errs.KindOf(err))
	})
}

func (s *ReservationServiceTestSuite) TestListByUser() {
	s.SetupTest()
	newer := s.pending(2)
	older := s.pending(1)
	older.ReservationDate = s.now.Add(-48 * time.Hour)
	older.Payment = &entity.Payment{
		ID: 9, ReservationID: 1, Amount: 25, PaymentMethod: "card",
		PaymentStatus: entity.PaymentStatusCompleted, PaymentDate: s.now,
	}
	s.reservationRepo.On("FindByUserID", s.ctx, int64(1)).Return([]*entity.Reservation{newer, older}, nil).Once()
	s.userRepo.On("FindByIDs", s.ctx, []int64{1}).Return([]*entity.User{s.user(1)}, nil).Once()

	list, err := s.service.ListByUser(s.ctx, 1)

	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(int64(2), list[0].ID)
	s.Nil(list[0].Payment)
	s.Require().NotNil(list[1].Payment)
	s.Equal(entity.PaymentStatusCompleted, list[1].Payment.Status)
	s.Equal("card", list[1].Payment.PaymentMethod)
	s.Equal("Ada", list[1].User.Name)
}

func (s *ReservationServiceTestSuite) TestListByMovie() {
	s.Run("trims the movie id", func() {
		s.SetupTest()
		s.reservationRepo.On("FindByMovieID", s.ctx, "tt0133093").Return(nil, nil).Once()

		list, err := s.service.ListByMovie(s.ctx, "  tt0133093 ")

		s.Require().NoError(err)
		s.Empty(list)
	})

	s.Run("blank movie id", func() {
		s.SetupTest()

		_, err := s.service.ListByMovie(s.ctx, "   ")

		s.Equal(errs.KindValidationFailed, errs.KindOf(err))
		s.reservationRepo.AssertNotCalled(s.T(), "FindByMovieID", mock.Anything, mock.Anything)
	})
}

func (s *ReservationServiceTestSuite) TestListReservationsEmpty() {
	s.SetupTest()
	s.reservationRepo.On("FindAll", s.ctx, 1000, 0).Return(nil, nil).Once()

	list, err := s.service.ListReservations(s.ctx, request.ListRequest{Limit: 1000})

	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)
	s.userRepo.AssertNotCalled(s.T(), "FindByIDs", mock.Anything, mock.Anything)
}

func (s *ReservationServiceTestSuite) TestExpireStale() {
	s.SetupTest()
	cutoff := s.now.Add(-15 * time.Minute)
	s.reservationRepo.On("ExpirePending", s.ctx, cutoff).Return([]int64{4, 5}, nil).Once()

	n, err := s.service.ExpireStale(s.ctx, 15*time.Minute)

	s.Require().NoError(err)
	s.Equal(2, n)
	s.Equal([]events.Type{events.ReservationExpired, events.ReservationExpired}, s.publisher.Types())
}

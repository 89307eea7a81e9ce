//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/pkg/database"
	"cinema-reservations/pkg/errs"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const (
	testUser     = "test"
	testPassword = "testpass"
	testDB       = "reservations"
)

type RepositoryIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	pool      *pgxpool.Pool
	repo      *Repository
	now       time.Time
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RepositoryIntegrationSuite))
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.now = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

	startCtx, cancel := context.WithTimeout(s.ctx, 3*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(startCtx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       testDB,
			},
			Cmd: []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off"},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return dsn(host, port)
			}).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err, "start postgres container")
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "5432/tcp")
	s.Require().NoError(err)

	s.pool, err = pgxpool.New(s.ctx, dsn(host, port))
	s.Require().NoError(err)

	db := database.NewFromPool(s.pool)
	s.Require().NoError(database.Migrate(s.ctx, db, zap.NewNop()))
	// running twice proves the schema files are idempotent
	s.Require().NoError(database.Migrate(s.ctx, db, zap.NewNop()))

	s.repo = NewRepository(db, zap.NewNop())
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.container.Terminate(ctx)
	}
}

func (s *RepositoryIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE payments, reserved_seats, reservations, users RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func dsn(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		testUser, testPassword, host, port.Port(), testDB)
}

func (s *RepositoryIntegrationSuite) createUser(email string) *entity.User {
	user := &entity.User{
		Base:  entity.Base{CreatedAt: s.now, UpdatedAt: s.now},
		Email: email,
		Name:  "Ada",
	}
	s.Require().NoError(s.repo.User.Create(s.ctx, user))
	return user
}

func (s *RepositoryIntegrationSuite) createReservation(userID int64, date time.Time, seats ...int32) *entity.Reservation {
	reservation := &entity.Reservation{
		UserID:          userID,
		ScheduleID:      10,
		MovieID:         "tt0133093",
		TotalAmount:     25,
		Status:          entity.ReservationStatusPending,
		ReservationDate: date,
	}
	for _, id := range seats {
		reservation.ReservedSeats = append(reservation.ReservedSeats, entity.ReservedSeat{SeatID: id})
	}
	s.Require().NoError(s.repo.Reservation.Create(s.ctx, reservation))
	return reservation
}

func (s *RepositoryIntegrationSuite) TestUserEmailIsUnique() {
	s.createUser("ada@example.com")

	err := s.repo.User.Create(s.ctx, &entity.User{Email: "ada@example.com", Name: "Other"})

	s.Equal(errs.KindConflict, errs.KindOf(err))
}

func (s *RepositoryIntegrationSuite) TestReservationIsStoredWithSeats() {
	user := s.createUser("ada@example.com")
	created := s.createReservation(user.ID, s.now, 5, 12)

	s.NotZero(created.ID)
	for _, seat := range created.ReservedSeats {
		s.NotZero(seat.ID)
		s.Equal(created.ID, seat.ReservationID)
	}

	found, err := s.repo.Reservation.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal([]int32{5, 12}, found.SeatIDs())
	s.Equal(entity.ReservationStatusPending, found.Status)
	s.True(found.ReservationDate.Equal(s.now))
	s.Nil(found.Payment)
}

func (s *RepositoryIntegrationSuite) TestReservationForUnknownUserRollsBack() {
	err := s.repo.Reservation.Create(s.ctx, &entity.Reservation{
		UserID:          999,
		MovieID:         "m",
		TotalAmount:     1,
		Status:          entity.ReservationStatusPending,
		ReservationDate: s.now,
		ReservedSeats:   []entity.ReservedSeat{{SeatID: 1}},
	})

	s.Equal(errs.KindNotFound, errs.KindOf(err))

	var seats int
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT count(*) FROM reserved_seats`).Scan(&seats))
	s.Zero(seats)
}

func (s *RepositoryIntegrationSuite) TestSameSeatCanBeReservedTwice() {
	user := s.createUser("ada@example.com")
	s.createReservation(user.ID, s.now, 5)
	s.createReservation(user.ID, s.now, 5)

	list, err := s.repo.Reservation.FindByScheduleID(s.ctx, 10)

	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *RepositoryIntegrationSuite) TestAttachPayment() {
	user := s.createUser("ada@example.com")
	reservation := s.createReservation(user.ID, s.now, 1)

	payment := &entity.Payment{
		ReservationID: reservation.ID,
		Amount:        25,
		PaymentMethod: "card",
		PaymentStatus: entity.PaymentStatusCompleted,
		TransactionID: "TXN1",
		PaymentDate:   s.now,
	}
	s.Require().NoError(s.repo.Reservation.AttachPayment(s.ctx, payment, entity.ReservationStatusConfirmed))
	s.NotZero(payment.ID)

	found, err := s.repo.Reservation.FindByID(s.ctx, reservation.ID)
	s.Require().NoError(err)
	s.Equal(entity.ReservationStatusConfirmed, found.Status)
	s.Require().NotNil(found.Payment)
	s.Equal("TXN1", found.Payment.TransactionID)

	second := *payment
	second.ID = 0
	second.TransactionID = "TXN2"
	err = s.repo.Reservation.AttachPayment(s.ctx, &second, entity.ReservationStatusConfirmed)
	s.Equal(errs.KindConflict, errs.KindOf(err))
}

func (s *RepositoryIntegrationSuite) TestFailedPaymentLeavesStatus() {
	user := s.createUser("ada@example.com")
	reservation := s.createReservation(user.ID, s.now, 1)

	s.Require().NoError(s.repo.Reservation.AttachPayment(s.ctx, &entity.Payment{
		ReservationID: reservation.ID,
		Amount:        25,
		PaymentMethod: "card",
		PaymentStatus: entity.PaymentStatusFailed,
		TransactionID: "TXN1",
		PaymentDate:   s.now,
	}, ""))

	found, err := s.repo.Reservation.FindByID(s.ctx, reservation.ID)
	s.Require().NoError(err)
	s.Equal(entity.ReservationStatusPending, found.Status)
	s.Equal(entity.PaymentStatusFailed, found.Payment.PaymentStatus)
}

func (s *RepositoryIntegrationSuite) TestDeleteCascades() {
	user := s.createUser("ada@example.com")
	reservation := s.createReservation(user.ID, s.now, 1, 2)
	s.Require().NoError(s.repo.Reservation.AttachPayment(s.ctx, &entity.Payment{
		ReservationID: reservation.ID,
		Amount:        25,
		PaymentMethod: "card",
		PaymentStatus: entity.PaymentStatusCompleted,
		TransactionID: "TXN1",
		PaymentDate:   s.now,
	}, entity.ReservationStatusConfirmed))

	s.Equal(errs.KindConflict, errs.KindOf(s.repo.User.Delete(s.ctx, user.ID)))

	s.Require().NoError(s.repo.Reservation.Delete(s.ctx, reservation.ID))
	s.Equal(errs.KindNotFound, errs.KindOf(s.repo.Reservation.Delete(s.ctx, reservation.ID)))

	seats, err := s.repo.ReservedSeat.FindByReservationIDs(s.ctx, []int64{reservation.ID})
	s.Require().NoError(err)
	s.Empty(seats)
	payments, err := s.repo.Payment.FindByReservationIDs(s.ctx, []int64{reservation.ID})
	s.Require().NoError(err)
	s.Empty(payments)

	s.NoError(s.repo.User.Delete(s.ctx, user.ID))
}

func (s *RepositoryIntegrationSuite) TestFindByUserIDNewestFirst() {
	user := s.createUser("ada@example.com")
	older := s.createReservation(user.ID, s.now.Add(-48*time.Hour))
	newer := s.createReservation(user.ID, s.now)

	list, err := s.repo.Reservation.FindByUserID(s.ctx, user.ID)

	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(newer.ID, list[0].ID)
	s.Equal(older.ID, list[1].ID)
}

func (s *RepositoryIntegrationSuite) TestExpirePending() {
	user := s.createUser("ada@example.com")
	stale := s.createReservation(user.ID, s.now.Add(-time.Hour))
	fresh := s.createReservation(user.ID, s.now)
	paid := s.createReservation(user.ID, s.now.Add(-time.Hour))
	s.Require().NoError(s.repo.Reservation.UpdateStatus(s.ctx, paid.ID, entity.ReservationStatusConfirmed))

	ids, err := s.repo.Reservation.ExpirePending(s.ctx, s.now.Add(-15*time.Minute))

	s.Require().NoError(err)
	s.Equal([]int64{stale.ID}, ids)

	found, err := s.repo.Reservation.FindByID(s.ctx, fresh.ID)
	s.Require().NoError(err)
	s.Equal(entity.ReservationStatusPending, found.Status)
}

func (s *RepositoryIntegrationSuite) TestUpdateStatusOnMissingReservation() {
	err := s.repo.Reservation.UpdateStatus(s.ctx, 404, entity.ReservationStatusCancelled)

	s.Equal(errs.KindNotFound, errs.KindOf(err))
}

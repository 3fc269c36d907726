//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/infra/catalog"
	"slot-booking/internal/infra/store"
	"slot-booking/internal/metrics"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/shared"
	"slot-booking/tests/common/builder"
	commandsmock "slot-booking/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/mock/gomock"
)

// eventMatcher matches a notification by kind and, when set, reservation.
type eventMatcher struct {
	kind commands.EventKind
	id   uuid.UUID
}

func isEvent(kind commands.EventKind, id uuid.UUID) gomock.Matcher {
	return eventMatcher{kind: kind, id: id}
}

func (m eventMatcher) Matches(x any) bool {
	e, ok := x.(commands.Event)
	if !ok || e.Kind != m.kind {
		return false
	}
	return m.id == uuid.Nil || e.ReservationID == m.id
}

func (m eventMatcher) String() string {
	return fmt.Sprintf("event %s for %s", m.kind, m.id)
}

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockNotifier *commandsmock.MockNotifier
	clock        *clock.MockClock
	store        *store.ReservationStore
	cmds         commands.BookingCommands
	ctx          context.Context
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockNotifier = commandsmock.NewMockNotifier(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 6, 6, 10, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	cat, err := catalog.New(builder.NewSlotBuilder().WithCapacity(1).MustBuild())
	s.Require().NoError(err)
	s.store = store.NewReservationStore()

	m, err := metrics.New(noop.NewMeterProvider().Meter("test"))
	s.Require().NoError(err)

	engine := commands.NewReservationEngine(cat, s.store, reservation.NewFactory(20*time.Minute))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.cmds = commands.NewBookingCommands(engine, s.mockNotifier, m, s.clock, logger)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) reserve(name string) *commands.CreateReservationResult {
	req := builder.NewReservationBuilder().WithPlayer(name, 9).BuildCreateRequestDTO()
	result, err := s.cmds.Reserve(s.ctx, "u9-1700", req)
	s.Require().NoError(err)
	return result
}

// ================================================================================
// Reserve
// ================================================================================

func (s *BookingCommandsTestSuite) TestReserve() {
	s.Run("success notifies the guardian", func() {
		s.mockNotifier.EXPECT().Notify(gomock.Any(), isEvent(commands.EventReservationCreated, uuid.Nil)).
			Return(nil).Times(1)

		result := s.reserve("Leo")
		s.NotEqual(uuid.Nil, result.ReservationID)
		s.Equal(s.clock.Now().Add(20*time.Minute), result.PaymentDeadline)
	})

	s.Run("full slot is rejected without notification", func() {
		req := builder.NewReservationBuilder().BuildCreateRequestDTO()
		_, err := s.cmds.Reserve(s.ctx, "u9-1700", req)
		s.ErrorIs(err, commands.ErrSlotFull)
	})
}

func (s *BookingCommandsTestSuite) TestReserve_Validation() {
	cases := []struct {
		name   string
		mutate func(*builder.ReservationBuilder)
		slotID string
		check  func(error) bool
	}{
		{
			name:   "blank player name",
			mutate: func(b *builder.ReservationBuilder) { b.PlayerName = " " },
			slotID: "u9-1700",
			check:  func(err error) bool { return errs.Is(err, commands.ErrDomainValidation) },
		},
		{
			name:   "ineligible age",
			mutate: func(b *builder.ReservationBuilder) { b.PlayerAge = 12 },
			slotID: "u9-1700",
			check:  func(err error) bool { return errors.Is(err, reservation.ErrIneligibleAge) },
		},
		{
			name:   "unknown slot",
			mutate: func(*builder.ReservationBuilder) {},
			slotID: "u99-0000",
			check:  func(err error) bool { return errs.Is(err, shared.ErrSlotNotFound) },
		},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := builder.NewReservationBuilder().With(tc.mutate).BuildCreateRequestDTO()
			_, err := s.cmds.Reserve(s.ctx, tc.slotID, req)
			s.Require().Error(err)
			s.True(tc.check(err), "unexpected error: %v", err)
		})
	}
	s.Equal(0, s.store.Len())
}

func (s *BookingCommandsTestSuite) TestReserve_MissingAge() {
	req := builder.NewReservationBuilder().BuildCreateRequestDTO()
	req.PlayerAge = nil

	_, err := s.cmds.Reserve(s.ctx, "u9-1700", req)
	s.True(errs.Is(err, commands.ErrDomainValidation))
	s.ErrorIs(err, reservation.ErrInvalidAge)
}

func (s *BookingCommandsTestSuite) TestReserve_SweepsStaleHoldsFirst() {
	var first *commands.CreateReservationResult
	s.mockNotifier.EXPECT().Notify(gomock.Any(), isEvent(commands.EventReservationCreated, uuid.Nil)).Return(nil)
	first = s.reserve("Leo")

	s.clock.Add(21 * time.Minute)

	gomock.InOrder(
		s.mockNotifier.EXPECT().Notify(gomock.Any(), isEvent(commands.EventReservationExpired, first.ReservationID)).Return(nil),
		s.mockNotifier.EXPECT().Notify(gomock.Any(), isEvent(commands.EventReservationCreated, uuid.Nil)).Return(nil),
	)
	second := s.reserve("Mia")
	s.NotEqual(first.ReservationID, second.ReservationID)

	expired, err := s.store.Get(first.ReservationID)
	s.Require().NoError(err)
	s.Equal(reservation.StatusExpired, expired.Status())
}

func (s *BookingCommandsTestSuite) TestReserve_NotifierFailureIsNotFatal() {
	s.mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	result := s.reserve("Leo")
	_, err := s.store.Get(result.ReservationID)
	s.NoError(err)
}

// ================================================================================
// Confirm / Cancel / EvictExpired
// ================================================================================

func (s *BookingCommandsTestSuite) TestConfirm() {
	s.mockNotifier.EXPECT().Notify(gomock.Any(), isEvent(commands.EventReservationCreated, uuid.Nil)).Return(nil)
	result := s.reserve("Leo")

	s.Run("after the deadline", func() {
		s.clock.Add(20*time.Minute + time.Second)
		err := s.cmds.Confirm(s.ctx, result.ReservationID)
		s.ErrorIs(err, reservation.ErrExpired)
		s.clock.Add(-(20*time.Minute + time.Second))
	})

	s.Run("within the hold", func() {
		s.mockNotifier.EXPECT().Notify(gomock.Any(), isEvent(commands.EventReservationConfirmed, result.ReservationID)).Return(nil)
		s.clock.Add(5 * time.Minute)
		s.Require().NoError(s.cmds.Confirm(s.ctx, result.ReservationID))
	})
}

func (s *BookingCommandsTestSuite) TestCancel() {
	s.mockNotifier.EXPECT().Notify(gomock.Any(), isEvent(commands.EventReservationCreated, uuid.Nil)).Return(nil)
	result := s.reserve("Leo")

	s.mockNotifier.EXPECT().Notify(gomock.Any(), isEvent(commands.EventReservationCancelled, result.ReservationID)).Return(nil)
	s.Require().NoError(s.cmds.Cancel(s.ctx, result.ReservationID))

	s.Run("cannot cancel twice", func() {
		err := s.cmds.Cancel(s.ctx, result.ReservationID)
		s.ErrorIs(err, reservation.ErrInvalidState)
	})

	s.Run("unknown id", func() {
		err := s.cmds.Cancel(s.ctx, uuid.New())
		s.ErrorIs(err, shared.ErrReservationNotFound)
	})
}

func (s *BookingCommandsTestSuite) TestEvictExpired() {
	s.Run("empty sweep", func() {
		result, err := s.cmds.EvictExpired(s.ctx)
		s.Require().NoError(err)
		s.Equal(0, result.Count())
	})

	s.Run("reports evicted ids", func() {
		s.mockNotifier.EXPECT().Notify(gomock.Any(), isEvent(commands.EventReservationCreated, uuid.Nil)).Return(nil)
		created := s.reserve("Leo")

		s.clock.Add(time.Hour)
		s.mockNotifier.EXPECT().Notify(gomock.Any(), isEvent(commands.EventReservationExpired, created.ReservationID)).Return(nil)

		result, err := s.cmds.EvictExpired(s.ctx)
		s.Require().NoError(err)
		s.Equal([]uuid.UUID{created.ReservationID}, result.Evicted)
	})
}

//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	reqdto "slot-booking/internal/handler/dto/request"
	"slot-booking/internal/handler/dto/response"
	"slot-booking/tests/common/builder"
	"slot-booking/tests/common/httptest"
	"slot-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	slotsURL            = "/api/slots"
	slotURL             = "/api/slots/%s"
	slotReservationsURL = "/api/slots/%s/reservations"
	reservationURL      = "/api/reservations/%s"
	confirmURL          = "/api/reservations/%s/confirm"
	cancelURL           = "/api/reservations/%s/cancel"
	sweepURL            = "/api/admin/reservations/sweep"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) reserve(slotID string, req reqdto.CreateReservationRequest) response.ReservationResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(slotReservationsURL, slotID), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.ReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created
}

func (s *BookingSuite) slot(slotID string) response.SlotResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(slotURL, slotID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view response.SlotResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))
	return view
}

// =============================================================================
// TestCatalog
// =============================================================================

func (s *BookingSuite) TestCatalog() {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, slotsURL, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var slots []response.SlotResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &slots))

	ids := make([]string, 0, len(slots))
	for _, sl := range slots {
		ids = append(ids, sl.ID)
		s.Equal(sl.Capacity, sl.Remaining, "nothing booked yet")
	}
	s.Equal([]string{"u7-1600", "u9-1700", "u11-1800", "u13-1900"}, ids)

	w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(slotURL, "u15-2000"), nil)
	httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Slot not found")
}

// =============================================================================
// TestReservationLifecycle
// =============================================================================

func (s *BookingSuite) TestReservationLifecycle() {
	s.Run("Normal case: reserve then confirm within the hold", func() {
		t := s.T()
		req := builder.NewReservationBuilder().BuildCreateRequestDTO()

		created := s.reserve("u9-1700", req)
		expected := response.ReservationResponse{
			SlotID:           "u9-1700",
			PlayerName:       req.PlayerName,
			PlayerAge:        *req.PlayerAge,
			GuardianName:     req.GuardianName,
			Phone:            req.Phone,
			Email:            req.Email,
			Status:           "pending",
			RemainingSeconds: int64((20 * time.Minute).Seconds()),
		}
		if diff := cmp.Diff(expected, created,
			cmpopts.IgnoreFields(response.ReservationResponse{}, "ID", "CreatedAt", "PaymentDeadline", "UpdatedAt"),
		); diff != "" {
			t.Errorf("created reservation mismatch (-want +got):\n%s", diff)
		}
		s.True(created.PaymentDeadline.Equal(e2e.ActivityStart.Add(20 * time.Minute)))
		s.Equal(1, s.slot("u9-1700").Pending)

		s.Clock.Add(20 * time.Minute) // exactly at the deadline
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		view := s.slot("u9-1700")
		s.Equal(0, view.Pending)
		s.Equal(1, view.Confirmed)
		s.Equal(7, view.Remaining)
	})

	s.Run("Error case: confirm after the deadline is gone", func() {
		t := s.T()
		created := s.reserve("u9-1700", builder.NewReservationBuilder().BuildCreateRequestDTO())

		s.Clock.Add(20*time.Minute + time.Second)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, created.ID), nil)
		httptest.AssertErrorResponse(t, w, http.StatusGone, "Payment deadline passed")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reservationURL, created.ID), nil)
		var got response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		s.Equal("pending", got.Status)
		s.True(got.Overdue)
	})

	s.Run("Error case: cancelled reservation cannot be confirmed", func() {
		t := s.T()
		created := s.reserve("u9-1700", builder.NewReservationBuilder().BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, created.ID), nil)
		detail := httptest.AssertErrorDetail(t, w, http.StatusConflict, "Invalid reservation state")
		s.Equal("cancelled", detail["status"])
	})
}

// =============================================================================
// TestAdmission
// =============================================================================

func (s *BookingSuite) TestAdmission() {
	t := s.T()

	// u11-1800 takes 10 players aged 10-11
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(slotReservationsURL, "u11-1800"),
		builder.NewReservationBuilder().WithPlayer("Leo Martin", 9).BuildCreateRequestDTO())
	detail := httptest.AssertErrorDetail(t, w, http.StatusUnprocessableEntity, "not eligible")
	s.Equal(float64(10), detail["minAge"])
	s.Equal(float64(11), detail["maxAge"])

	var ids []string
	for i := range 10 {
		created := s.reserve("u11-1800", builder.NewReservationBuilder().
			WithPlayer(fmt.Sprintf("Player %d", i), 10+i%2).BuildCreateRequestDTO())
		ids = append(ids, created.ID.String())
	}
	s.True(s.slot("u11-1800").IsFull)

	w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(slotReservationsURL, "u11-1800"),
		builder.NewReservationBuilder().WithPlayer("Late Comer", 10).BuildCreateRequestDTO())
	httptest.AssertErrorResponse(t, w, http.StatusConflict, "Slot is full")

	// holds lapse: the next reserve sweeps and admits
	s.Clock.Add(21 * time.Minute)
	s.reserve("u11-1800", builder.NewReservationBuilder().WithPlayer("Late Comer", 10).BuildCreateRequestDTO())

	w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reservationURL, ids[0]), nil)
	var first response.ReservationResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &first)
	s.Equal("expired", first.Status)
}

func (s *BookingSuite) TestConcurrentReserveNeverOverbooks() {
	t := s.T()
	const contenders = 40

	var wg sync.WaitGroup
	codes := make(chan int, contenders)
	for i := range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := builder.NewReservationBuilder().WithPlayer(fmt.Sprintf("Player %d", i), 8).BuildCreateRequestDTO()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(slotReservationsURL, "u9-1700"), req)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	created, full := 0, 0
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			full++
		}
	}
	s.Equal(8, created)
	s.Equal(contenders-8, full)
	s.Equal(0, s.slot("u9-1700").Remaining)
}

// =============================================================================
// TestSweepAndPagination
// =============================================================================

func (s *BookingSuite) TestSweepAndPagination() {
	t := s.T()

	for i := range 5 {
		s.reserve("u7-1600", builder.NewReservationBuilder().
			WithPlayer(fmt.Sprintf("Player %d", i), 6).BuildCreateRequestDTO())
		s.Clock.Add(time.Second)
	}

	seen := map[string]bool{}
	url := fmt.Sprintf(slotReservationsURL, "u7-1600") + "?limit=2"
	next := ""
	for page := 0; ; page++ {
		require.Less(t, page, 5, "pagination does not terminate")
		target := url
		if next != "" {
			target += "&after=" + next
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, target, nil)
		var list response.ReservationListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		for _, item := range list.Items {
			s.False(seen[item.ID.String()], "duplicate across pages")
			seen[item.ID.String()] = true
		}
		if list.NextCursor == "" {
			break
		}
		next = list.NextCursor
	}
	s.Len(seen, 5)

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(slotReservationsURL, "u7-1600")+"?after=bogus", nil)
	httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid cursor")

	s.Clock.Add(time.Hour)
	w = httptest.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil)
	var swept response.SweepResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &swept)
	s.Equal(5, swept.Count)

	w = httptest.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &swept)
	s.Equal(0, swept.Count, "sweep is idempotent")
}

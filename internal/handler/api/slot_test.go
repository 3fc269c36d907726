//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"slot-booking/internal/handler/api"
	resdto "slot-booking/internal/handler/dto/response"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/queries"
	"slot-booking/internal/usecase/shared"
	"slot-booking/tests/common/httptest"
	queriesmock "slot-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SlotHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockSlotQueries
}

func (s *SlotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	h := api.NewSlotHandler(s.mockQueries)

	s.router.GET("/slots", h.List)
	s.router.GET("/slots/:id", h.Get)
}

func (s *SlotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSlotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SlotHandlerTestSuite))
}

func slotView(id string, start time.Time, remaining int) *queries.SlotView {
	return &queries.SlotView{
		ID: id, Start: start, End: start.Add(time.Hour),
		MinAge: 8, MaxAge: 9, Format: "4-a-side", Capacity: 8,
		Pending: 8 - remaining, Remaining: remaining, IsFull: remaining == 0,
		PriceCents: 1200, Currency: "EUR",
	}
}

func (s *SlotHandlerTestSuite) TestList() {
	start := time.Date(2026, 6, 6, 17, 0, 0, 0, time.UTC)

	s.Run("success: returns every slot in order", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).Return([]*queries.SlotView{
			slotView("u9-1700", start, 3),
			slotView("u11-1800", start.Add(time.Hour), 0),
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots", nil)

		var body []resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal("u9-1700", body[0].ID)
		s.Equal(3, body[0].Remaining)
		s.False(body[0].IsFull)
		s.True(body[1].IsFull)
	})

	s.Run("success: empty catalog renders an empty array", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})
}

func (s *SlotHandlerTestSuite) TestGet() {
	start := time.Date(2026, 6, 6, 17, 0, 0, 0, time.UTC)

	s.Run("success: returns 200 OK with SlotResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), "u9-1700").
			Return(slotView("u9-1700", start, 5), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots/u9-1700", nil)

		var body resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(8, body.MinAge)
		s.Equal(9, body.MaxAge)
		s.Equal(int64(1200), body.PriceCents)
		s.Equal("EUR", body.Currency)
	})

	s.Run("error: 404 Not Found for unknown slot", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), "u99").
			Return(nil, errs.Wrap(shared.ErrSlotNotFound, "u99")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots/u99", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Slot not found")
	})

	s.Run("error: 500 on unexpected failure", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), "u9-1700").
			Return(nil, errors.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots/u9-1700", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"slot-booking/internal/handler/api"
	resdto "slot-booking/internal/handler/dto/response"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/worker"
	"slot-booking/tests/common/httptest"
	commandsmock "slot-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type stubScanner struct {
	stats worker.ExpiryScannerStats
}

func (s stubScanner) Stats() worker.ExpiryScannerStats { return s.stats }

type AdminHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	scanner      *stubScanner
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.scanner = &stubScanner{}
	h := api.NewAdminHandler(s.mockCommands, s.scanner)

	s.router.POST("/admin/reservations/sweep", h.Sweep)
	s.router.GET("/admin/scanner", h.ScannerStats)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestSweep() {
	s.Run("success: returns evicted ids", func() {
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		s.mockCommands.EXPECT().EvictExpired(gomock.Any()).
			Return(&commands.SweepResult{Evicted: ids}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reservations/sweep", nil)

		var body resdto.SweepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(2, body.Count)
		s.ElementsMatch(ids, body.Evicted)
	})

	s.Run("success: nothing to evict renders an empty list", func() {
		s.mockCommands.EXPECT().EvictExpired(gomock.Any()).
			Return(&commands.SweepResult{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reservations/sweep", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"evicted":[],"count":0}`, rec.Body.String())
	})

	s.Run("error: 500 when the sweep is interrupted", func() {
		s.mockCommands.EXPECT().EvictExpired(gomock.Any()).
			Return(&commands.SweepResult{}, errors.New("expiry sweep interrupted: context canceled")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reservations/sweep", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

func (s *AdminHandlerTestSuite) TestScannerStats() {
	s.Run("success: never scanned omits lastScanTime", func() {
		s.scanner.stats = worker.ExpiryScannerStats{IsRunning: true, Interval: time.Minute}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/scanner", nil)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(true, body["isRunning"])
		s.Equal(float64(60), body["intervalSeconds"])
		s.NotContains(body, "lastScanTime")
	})

	s.Run("success: reports totals and last scan", func() {
		last := time.Date(2026, 6, 6, 10, 21, 0, 0, time.UTC)
		s.scanner.stats = worker.ExpiryScannerStats{
			Interval:         30 * time.Second,
			TotalScans:       4,
			TotalEvicted:     3,
			LastScanTime:     last,
			LastEvictedCount: 1,
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/scanner", nil)

		var body resdto.ScannerStatsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(4), body.TotalScans)
		s.Equal(int64(3), body.TotalEvicted)
		s.Equal(1, body.LastEvictedCount)
		s.Require().NotNil(body.LastScanTime)
		s.True(last.Equal(*body.LastScanTime))
	})
}

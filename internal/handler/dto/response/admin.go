package response

import (
	"time"

	"slot-booking/internal/domain/budget"
	"slot-booking/internal/worker"
)

type BudgetValidationResponse struct {
	OK              bool    `json:"ok"`
	Balanced        bool    `json:"balanced"`
	TotalPercentage float64 `json:"totalPercentage"`
	Reason          string  `json:"reason"`
}

func FromBudgetResult(r budget.Result) *BudgetValidationResponse {
	return &BudgetValidationResponse{
		OK:              r.OK,
		Balanced:        r.Balanced,
		TotalPercentage: r.TotalPercentage,
		Reason:          r.Reason,
	}
}

type ScannerStatsResponse struct {
	IsRunning        bool       `json:"isRunning"`
	IntervalSeconds  float64    `json:"intervalSeconds"`
	TotalScans       int64      `json:"totalScans"`
	TotalEvicted     int64      `json:"totalEvicted"`
	LastScanTime     *time.Time `json:"lastScanTime,omitempty"`
	LastEvictedCount int        `json:"lastEvictedCount"`
	LastError        string     `json:"lastError,omitempty"`
}

func FromScannerStats(s worker.ExpiryScannerStats) *ScannerStatsResponse {
	resp := &ScannerStatsResponse{
		IsRunning:        s.IsRunning,
		IntervalSeconds:  s.Interval.Seconds(),
		TotalScans:       s.TotalScans,
		TotalEvicted:     s.TotalEvicted,
		LastEvictedCount: s.LastEvictedCount,
		LastError:        s.LastError,
	}
	if !s.LastScanTime.IsZero() {
		t := s.LastScanTime
		resp.LastScanTime = &t
	}
	return resp
}

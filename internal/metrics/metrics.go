package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const MeterName = "slot-booking"

// BookingMetrics records the reservation lifecycle. A nil receiver is a no-op.
type BookingMetrics struct {
	reserved  metric.Int64Counter
	confirmed metric.Int64Counter
	cancelled metric.Int64Counter
	expired   metric.Int64Counter
	rejected  metric.Int64Counter
	sweeps    metric.Int64Counter
}

func NewBookingMetrics() (*BookingMetrics, error) {
	return New(otel.Meter(MeterName))
}

func New(meter metric.Meter) (*BookingMetrics, error) {
	m := &BookingMetrics{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.reserved, "booking_reservations_total", "Total number of pending reservations created"},
		{&m.confirmed, "booking_confirmations_total", "Total number of reservations confirmed by payment"},
		{&m.cancelled, "booking_cancellations_total", "Total number of reservations cancelled"},
		{&m.expired, "booking_expirations_total", "Total number of pending reservations evicted after the deadline"},
		{&m.rejected, "booking_rejections_total", "Total number of reserve calls rejected"},
		{&m.sweeps, "booking_expiry_sweeps_total", "Total number of expiry sweeps run"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit("1"))
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}
	return m, nil
}

func (m *BookingMetrics) Reserved(ctx context.Context, slotID string) {
	if m == nil {
		return
	}
	m.reserved.Add(ctx, 1, metric.WithAttributes(attribute.String("slot_id", slotID)))
}

func (m *BookingMetrics) Confirmed(ctx context.Context, slotID string) {
	if m == nil {
		return
	}
	m.confirmed.Add(ctx, 1, metric.WithAttributes(attribute.String("slot_id", slotID)))
}

func (m *BookingMetrics) Cancelled(ctx context.Context, slotID string) {
	if m == nil {
		return
	}
	m.cancelled.Add(ctx, 1, metric.WithAttributes(attribute.String("slot_id", slotID)))
}

func (m *BookingMetrics) Expired(ctx context.Context, slotID string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.expired.Add(ctx, int64(n), metric.WithAttributes(attribute.String("slot_id", slotID)))
}

func (m *BookingMetrics) Rejected(ctx context.Context, slotID, reason string) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("slot_id", slotID),
		attribute.String("reason", reason),
	))
}

func (m *BookingMetrics) Swept(ctx context.Context) {
	if m == nil {
		return
	}
	m.sweeps.Add(ctx, 1)
}

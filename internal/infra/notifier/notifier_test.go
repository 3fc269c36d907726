//go:build unit

package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"slot-booking/internal/infra"
	"slot-booking/internal/usecase/commands"
	"slot-booking/tests/common/builder"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishCall struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	calls  []publishCall
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, publishCall{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func expiredEvent(t *testing.T) commands.Event {
	t.Helper()
	r, err := builder.NewReservationBuilder().BuildDomain()
	require.NoError(t, err)
	return commands.NewEvent(commands.EventReservationExpired, r, r.PaymentDeadline().Add(time.Second))
}

func TestAMQPNotifier_Notify(t *testing.T) {
	event := expiredEvent(t)

	t.Run("publishes to the exchange by kind and slot", func(t *testing.T) {
		ch := &fakeChannel{}
		n := newAMQPNotifierWithChannel(ch, "booking.events", slog.Default())

		require.NoError(t, n.Notify(context.Background(), event))
		require.Len(t, ch.calls, 1)

		call := ch.calls[0]
		assert.Equal(t, "booking.events", call.exchange)
		assert.Equal(t, "reservation.expired.u9-1700", call.key)
		assert.Equal(t, "application/json", call.msg.ContentType)
		assert.Equal(t, amqp.Persistent, call.msg.DeliveryMode)
		assert.Equal(t, event.ReservationID.String()+":reservation.expired", call.msg.MessageId)

		var decoded commands.Event
		require.NoError(t, json.Unmarshal(call.msg.Body, &decoded))
		assert.Equal(t, event.ReservationID, decoded.ReservationID)
		assert.Equal(t, commands.EventReservationExpired, decoded.Kind)
	})

	t.Run("wraps broker failures", func(t *testing.T) {
		ch := &fakeChannel{err: errors.New("channel closed")}
		n := newAMQPNotifierWithChannel(ch, "booking.events", nil)

		err := n.Notify(context.Background(), event)
		assert.True(t, infra.IsKind(err, infra.KindPublishFailed))
	})

	t.Run("close releases the channel", func(t *testing.T) {
		ch := &fakeChannel{}
		n := newAMQPNotifierWithChannel(ch, "booking.events", nil)
		require.NoError(t, n.Close())
		assert.True(t, ch.closed)
	})
}

func TestLogNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	event := expiredEvent(t)

	require.NoError(t, NewLogNotifier(logger).Notify(context.Background(), event))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "guardian notification", line["msg"])
	assert.Equal(t, "reservation.expired", line["kind"])
	assert.Equal(t, "u9-1700", line["slot_id"])
	assert.Equal(t, "ana.martin@example.com", line["email"])
}

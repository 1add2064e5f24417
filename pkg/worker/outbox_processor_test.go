package worker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/pkg/messaging"
)

func TestChannelFor(t *testing.T) {
	assert.Equal(t, messaging.ChannelAppointments, channelFor(model.EventAppointmentCreated))
	assert.Equal(t, messaging.ChannelAppointments, channelFor(model.EventAppointmentCancelled))
	assert.Equal(t, messaging.ChannelOrders, channelFor(model.EventOrderCreated))
	assert.Equal(t, messaging.ChannelOrders, channelFor(model.EventOrderDelivered))
}

func TestRetryStopsAfterSuccess(t *testing.T) {
	calls := 0
	err := retry(3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := retry(3, time.Millisecond, func() error {
		calls++
		return errors.New("permanent")
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

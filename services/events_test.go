package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"farm-fresh/models"
)

func TestBroker_FanOut(t *testing.T) {
	b := NewBroker()
	first, cancelFirst := b.Subscribe()
	second, cancelSecond := b.Subscribe()
	defer cancelSecond()

	b.Publish(models.Event{Name: "ping"})

	assert.Equal(t, "ping", (<-first).Name)
	assert.Equal(t, "ping", (<-second).Name)

	cancelFirst()
	cancelFirst()
	assert.Equal(t, 1, b.Subscribers())
}

func TestBroker_PublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	b := NewBroker()
	events, cancel := b.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer*2; i++ {
		b.Publish(models.Event{Name: "tick"})
	}

	assert.Len(t, events, subscriberBuffer)
}

func TestBroker_SubscribeAfterClose(t *testing.T) {
	b := NewBroker()
	b.Close()

	events, cancel := b.Subscribe()
	defer cancel()

	_, open := <-events
	assert.False(t, open)
	b.Publish(models.Event{Name: "dropped"})
}

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamServerPublishDeliversToSubscriber(t *testing.T) {
	s := NewStreamServer()
	sub := &subscriber{ch: make(chan Progress, 4)}
	s.addSubscriber("game-1", sub)

	s.Publish(Progress{GameID: "game-1", Turn: 3, Direction: "up"})

	select {
	case p := <-sub.ch:
		assert.Equal(t, 3, p.Turn)
		assert.Equal(t, "up", p.Direction)
	default:
		t.Fatal("expected a progress frame to be delivered")
	}
}

func TestStreamServerPublishSkipsOtherGames(t *testing.T) {
	s := NewStreamServer()
	sub := &subscriber{ch: make(chan Progress, 4)}
	s.addSubscriber("game-1", sub)

	s.Publish(Progress{GameID: "game-2", Turn: 1})

	assert.Len(t, sub.ch, 0)
}

func TestStreamServerPublishDropsWhenBufferFull(t *testing.T) {
	s := NewStreamServer()
	sub := &subscriber{ch: make(chan Progress, 1)}
	s.addSubscriber("game-1", sub)

	s.Publish(Progress{GameID: "game-1", Turn: 1})
	s.Publish(Progress{GameID: "game-1", Turn: 2})

	require.Len(t, sub.ch, 1)
	p := <-sub.ch
	assert.Equal(t, 1, p.Turn)
}

func TestStreamServerRemoveSubscriberClosesChannelAndCleansUp(t *testing.T) {
	s := NewStreamServer()
	sub := &subscriber{ch: make(chan Progress, 1)}
	s.addSubscriber("game-1", sub)
	s.removeSubscriber("game-1", sub)

	_, open := <-sub.ch
	assert.False(t, open)

	s.mu.Lock()
	_, exists := s.subs["game-1"]
	s.mu.Unlock()
	assert.False(t, exists)
}

package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEmitQueuesFrames(t *testing.T) {
	c := NewClient(nil, nil, logger.NewNopLogger())
	c.Emit(dto.ChatFrame{Type: dto.FrameTyping, Text: "Hel"})

	require.Len(t, c.Send, 1)
	var f dto.ChatFrame
	require.NoError(t, json.Unmarshal(<-c.Send, &f))
	assert.Equal(t, dto.FrameTyping, f.Type)
	assert.Equal(t, "Hel", f.Text)
}

func TestClientEmitAfterCloseIsDropped(t *testing.T) {
	c := NewClient(nil, nil, logger.NewNopLogger())
	c.close()
	c.close()

	assert.NotPanics(t, func() { c.Emit(dto.ChatFrame{Type: dto.FrameMessage}) })
}

func TestClientEmitNeverBlocks(t *testing.T) {
	c := NewClient(nil, nil, logger.NewNopLogger())
	for i := 0; i < sendBuffer+10; i++ {
		c.Emit(dto.ChatFrame{Type: dto.FrameTyping})
	}
	assert.Len(t, c.Send, sendBuffer)
}

func TestHubRegistersAndShutsDown(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	a := NewClient(hub, nil, logger.NewNopLogger())
	a.SessionID = uuid.New()
	hub.add(a)
	assert.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, time.Millisecond)

	hub.remove(a)
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, time.Millisecond)
	_, open := <-a.Send
	assert.False(t, open)

	b := NewClient(hub, nil, logger.NewNopLogger())
	b.SessionID = uuid.New()
	hub.add(b)
	cancel()
	<-stopped

	_, open = <-b.Send
	assert.False(t, open)
	// a stopped hub does not block late unregisters
	hub.remove(b)
}

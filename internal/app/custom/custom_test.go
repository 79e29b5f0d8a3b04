package custom

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedGetter struct {
	mu      sync.Mutex
	calls   int
	offsets []int
	batches [][]tgbotapi.Update
	errs    []error
}

func (g *scriptedGetter) GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.offsets = append(g.offsets, config.Offset)
	i := g.calls
	g.calls++
	if i < len(g.errs) && g.errs[i] != nil {
		return nil, g.errs[i]
	}
	if i < len(g.batches) {
		return g.batches[i], nil
	}
	return nil, nil
}

func TestPollUpdates(t *testing.T) {
	RetryDelay = time.Millisecond
	getter := &scriptedGetter{
		errs: []error{errors.New("bad gateway")},
		batches: [][]tgbotapi.Update{
			nil,
			{{UpdateID: 10}, {UpdateID: 11}},
			{{UpdateID: 11}, {UpdateID: 12}},
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch := PollUpdates(ctx, getter, tgbotapi.NewUpdate(0), 0)

	var ids []int
	for len(ids) < 3 {
		select {
		case u := <-ch:
			ids = append(ids, u.UpdateID)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for updates")
		}
	}
	cancel()
	assert.Equal(t, []int{10, 11, 12}, ids)

	for range ch {
	}

	getter.mu.Lock()
	defer getter.mu.Unlock()
	require.GreaterOrEqual(t, len(getter.offsets), 3)
	assert.Equal(t, []int{0, 0, 0}, getter.offsets[:3])
	if len(getter.offsets) > 3 {
		assert.Equal(t, 12, getter.offsets[3])
	}
}

func TestPollUpdatesStopsOnCancel(t *testing.T) {
	RetryDelay = time.Hour
	getter := &scriptedGetter{errs: []error{errors.New("down")}}
	ctx, cancel := context.WithCancel(context.Background())
	ch := PollUpdates(ctx, getter, tgbotapi.NewUpdate(0), 1)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel was not closed")
	}
}

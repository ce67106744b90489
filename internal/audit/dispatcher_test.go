package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/testutil"
)

type memRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (m *memRecorder) Log(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	rec := &memRecorder{}
	d := NewDispatcher(rec)

	d.Dispatch(Event{Action: "reservation_created"})
	d.Dispatch(Event{Action: "reservation_cancelled"})
	d.Close()

	require.Len(t, rec.events, 2)
	assert.Equal(t, "reservation_created", rec.events[0].Action)
	assert.Equal(t, "reservation_cancelled", rec.events[1].Action)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}

func TestLoggerPersistsMetadata(t *testing.T) {
	db := testutil.NewDB(t)
	l := New(db)

	err := l.Log(context.Background(), Event{
		ActorID:  Ref("u-1"),
		Action:   "stamps_adjusted",
		Entity:   "profile",
		EntityID: Ref("u-2"),
		Metadata: map[string]any{"delta": 2},
	})
	require.NoError(t, err)

	var row models.AuditLog
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "stamps_adjusted", row.Action)
	assert.Equal(t, "u-1", *row.ActorID)
	assert.JSONEq(t, `{"delta":2}`, row.Metadata)
}

func TestRef(t *testing.T) {
	assert.Nil(t, Ref(""))
	assert.Equal(t, "a", *Ref("a"))
}

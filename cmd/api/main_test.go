package main

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
)

type eventLog struct {
	mu     sync.Mutex
	events []audit.Event
}

func (l *eventLog) Log(_ context.Context, ev audit.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

func TestServeDrainsAuditQueueOnShutdown(t *testing.T) {
	rec := &eventLog{}
	d := audit.NewDispatcher(rec)
	d.Dispatch(audit.Event{Action: "reservation_created"})
	d.Dispatch(audit.Event{Action: "reservation_cancelled"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	err := serve(ctx, srv, d.Close)
	require.NoError(t, err)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.events, 2)
}

func TestServeReportsListenErrorAndCleansUp(t *testing.T) {
	cleaned := false
	srv := &http.Server{Addr: "not-an-address", Handler: http.NotFoundHandler()}

	err := serve(context.Background(), srv, func() { cleaned = true })
	require.Error(t, err)
	assert.True(t, cleaned)
}

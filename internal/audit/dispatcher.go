package audit

import (
	"context"
	"log"
	"sync"
)

type Event struct {
	ActorID  *string
	Action   string
	Entity   string
	EntityID *string
	Metadata any
}

type Recorder interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	recorder Recorder
	queue    chan Event
	wg       sync.WaitGroup
	once     sync.Once
}

func NewDispatcher(recorder Recorder) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		queue:    make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		if err := d.recorder.Log(context.Background(), ev); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch never blocks the request: a full queue drops the event. A nil
// dispatcher discards everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event")
	}
}

// Close drains the queue. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// Ref is a small helper for the optional id fields.
func Ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

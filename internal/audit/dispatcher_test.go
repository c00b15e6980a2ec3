package audit

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type recordingSink struct {
	mu      sync.Mutex
	actions []string
	err     error
}

func (s *recordingSink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, ev.Action)
	return s.err
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, zerolog.Nop())

	for _, a := range []string{"schedule_saved", "appointment_booked", "appointment_cancelled"} {
		d.Dispatch(Event{Action: a})
	}
	d.Close()

	want := []string{"schedule_saved", "appointment_booked", "appointment_cancelled"}
	if !slices.Equal(sink.actions, want) {
		t.Errorf("expected %v, got %v", want, sink.actions)
	}
}

func TestDispatcher_SinkErrorsAreSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("db down")}
	d := NewDispatcher(sink, zerolog.Nop())

	d.Dispatch(Event{Action: "costs_saved"})
	d.Dispatch(Event{Action: "schedule_saved"})
	d.Close()

	if len(sink.actions) != 2 {
		t.Errorf("expected both events attempted, got %v", sink.actions)
	}
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "appointment_booked"})
	d.Close()
}

func TestDispatcher_CloseTwice(t *testing.T) {
	d := NewDispatcher(&recordingSink{}, zerolog.Nop())
	d.Close()
	d.Close()
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, zerolog.Nop())
	d.Dispatch(Event{Action: "appointment_booked"})
	d.Close()

	d.Dispatch(Event{Action: "appointment_cancelled"})

	if !slices.Equal(sink.actions, []string{"appointment_booked"}) {
		t.Errorf("expected only the event sent before close, got %v", sink.actions)
	}
}

func TestDispatcher_CloseWhileDispatching(t *testing.T) {
	d := NewDispatcher(&recordingSink{}, zerolog.Nop())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				d.Dispatch(Event{Action: "appointment_booked"})
			}
		}()
	}

	d.Close()
	wg.Wait()
}

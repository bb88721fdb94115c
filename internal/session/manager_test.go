package session

import (
	"sync"
	"testing"

	"github.com/srchub/structbot/internal/flow"
)

func TestStartReplacesPriorSession(t *testing.T) {
	m := NewManager()

	st := m.Start(1, flow.KindSingle)
	st, _, err := flow.Advance(st, flow.Input{Kind: flow.InputText, Text: "0xAAA"})
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	m.Put(1, st)

	// Entering another flow before completion discards everything.
	replaced := m.Start(1, flow.KindHook)
	if replaced.Flow != flow.KindHook || replaced.Step != flow.StepOffset {
		t.Errorf("replacement state = %+v, want fresh hook state", replaced)
	}
	got, ok := m.Get(1)
	if !ok {
		t.Fatal("session missing after Start")
	}
	if len(got.Offsets) != 0 || len(got.Params) != 0 {
		t.Errorf("leftover inputs after replacement: %+v", got)
	}
}

func TestSessionsAreKeyedByIdentity(t *testing.T) {
	m := NewManager()
	m.Start(1, flow.KindSingle)
	m.Start(2, flow.KindHook)

	a, _ := m.Get(1)
	b, _ := m.Get(2)
	if a.Flow != flow.KindSingle || b.Flow != flow.KindHook {
		t.Errorf("sessions interleaved: %v / %v", a.Flow, b.Flow)
	}

	m.Clear(1)
	if m.InProgress(1) {
		t.Error("identity 1 still in progress after Clear")
	}
	if !m.InProgress(2) {
		t.Error("Clear(1) affected identity 2")
	}
}

func TestDoSerializesPerIdentity(t *testing.T) {
	m := NewManager()
	const rounds = 200

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do(7, func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != rounds {
		t.Errorf("counter = %d, want %d", counter, rounds)
	}
}

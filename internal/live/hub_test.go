package live

import (
	"sync"
	"testing"
	"time"
)

func TestHubPublishReachesEverySubscriber(t *testing.T) {
	h := NewHub()
	a := h.Subscribe(4)
	b := h.Subscribe(4)

	h.Publish(Finished{LevelID: "gravity", Player: "ann", Ticks: 410, ElapsedMS: 4100})

	for _, s := range []*Subscriber{a, b} {
		select {
		case got := <-s.Events():
			if got.LevelID != "gravity" || got.ElapsedMS != 4100 {
				t.Errorf("subscriber %d got %+v", s.ID(), got)
			}
			if got.At.IsZero() {
				t.Errorf("subscriber %d: At not stamped", s.ID())
			}
		default:
			t.Errorf("subscriber %d received nothing", s.ID())
		}
	}
}

func TestHubKeepsGivenTimestamp(t *testing.T) {
	h := NewHub()
	s := h.Subscribe(1)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	h.Publish(Finished{LevelID: "gravity", At: at})

	if got := <-s.Events(); !got.At.Equal(at) {
		t.Errorf("At = %v, want %v", got.At, at)
	}
}

func TestSubscriberDropsOldestWhenFull(t *testing.T) {
	h := NewHub()
	s := h.Subscribe(2)

	for i := 1; i <= 5; i++ {
		h.Publish(Finished{Ticks: i})
	}

	var got []int
	for len(s.Events()) > 0 {
		got = append(got, (<-s.Events()).Ticks)
	}
	if len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Errorf("buffered ticks = %v, want [4 5]", got)
	}
}

func TestHubUnsubscribe(t *testing.T) {
	h := NewHub()
	s := h.Subscribe(0)
	if cap(s.events) != DefaultBuffer {
		t.Errorf("buffer = %d, want %d", cap(s.events), DefaultBuffer)
	}

	h.Unsubscribe(s.ID())
	h.Unsubscribe(s.ID())

	if h.Count() != 0 {
		t.Errorf("Count() = %d, want 0", h.Count())
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done() not closed after Unsubscribe")
	}

	h.Publish(Finished{LevelID: "gravity"})
	if len(s.Events()) != 0 {
		t.Error("closed subscriber received a run")
	}
}

func TestHubClose(t *testing.T) {
	h := NewHub()
	a := h.Subscribe(1)
	b := h.Subscribe(1)

	h.Close()

	if h.Count() != 0 {
		t.Errorf("Count() = %d after Close, want 0", h.Count())
	}
	for _, s := range []*Subscriber{a, b} {
		select {
		case <-s.Done():
		default:
			t.Errorf("subscriber %d not closed", s.ID())
		}
	}
}

func TestHubConcurrentPublish(t *testing.T) {
	h := NewHub()
	s := h.Subscribe(1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.Publish(Finished{Ticks: j})
			}
		}()
	}
	wg.Wait()

	if n := len(s.Events()); n != 500 {
		t.Errorf("received %d runs, want 500", n)
	}
}

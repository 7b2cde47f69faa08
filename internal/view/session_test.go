package view

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

func testReadings(n int) []models.Reading {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	rows := make([]models.Reading, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, models.Reading{
			Timestamp: base.Add(time.Duration(i) * 15 * time.Minute),
			Fields:    map[string]any{"Watt Total": float64(i)},
		})
	}
	return rows
}

func newTestManager() *Manager {
	return NewManager(5, time.Hour)
}

func TestStaleLoadDiscarded(t *testing.T) {
	m := newTestManager()
	s := m.Create(nil)
	defer m.Delete(s.ID())

	q := models.ReadingQuery{DateFrom: "10/03/2025", DateTo: "10/03/2025"}
	first := s.BeginLoad(q)
	second := s.BeginLoad(q)

	// The newer load lands first.
	if !s.CompleteLoad(second, testReadings(3)) {
		t.Fatal("newer load should apply")
	}
	// The older one lands late and must be discarded.
	if s.CompleteLoad(first, testReadings(99)) {
		t.Fatal("stale load must be discarded")
	}

	rows, loaded := s.Rows()
	if !loaded || len(rows) != 3 {
		t.Errorf("expected the newer result to stick, got %d rows", len(rows))
	}
}

func TestLoadResetsPagePaginationDoesNot(t *testing.T) {
	m := newTestManager()
	s := m.Create(nil)
	defer m.Delete(s.ID())

	q := models.ReadingQuery{DateFrom: "10/03/2025", DateTo: "10/03/2025"}
	seq := s.BeginLoad(q)
	s.CompleteLoad(seq, testReadings(12)) // 3 pages of 5

	if !s.SetPage(3) {
		t.Fatal("page 3 should exist")
	}
	s.SetOrientation(models.OrientationVertical)
	if st := s.State(); st.Page != 3 {
		t.Errorf("orientation toggle must keep the page, got %d", st.Page)
	}

	// A load with a changed filter resets to page 1.
	q2 := q
	q2.DateTo = "11/03/2025"
	seq = s.BeginLoad(q2)
	s.CompleteLoad(seq, testReadings(12))
	if st := s.State(); st.Page != 1 {
		t.Errorf("changed query must reset to page 1, got %d", st.Page)
	}
	if s.Orientation() != models.OrientationVertical {
		t.Error("orientation survives a reload")
	}
}

func TestRefreshSameQueryKeepsPage(t *testing.T) {
	m := newTestManager()
	s := m.Create(nil)
	defer m.Delete(s.ID())

	q := models.ReadingQuery{DateFrom: "10/03/2025", DateTo: "10/03/2025"}
	seq := s.BeginLoad(q)
	s.CompleteLoad(seq, testReadings(12)) // 3 pages of 5
	s.SetPage(3)

	// A background refresh re-runs the applied query unchanged.
	seq = s.BeginLoad(q)
	s.CompleteLoad(seq, testReadings(12))
	if st := s.State(); st.Page != 3 {
		t.Errorf("refresh of the same query must keep the page, got %d", st.Page)
	}
}

func TestRefreshClampsPageToShrunkResult(t *testing.T) {
	m := newTestManager()
	s := m.Create(nil)
	defer m.Delete(s.ID())

	q := models.ReadingQuery{DateFrom: "10/03/2025", DateTo: "10/03/2025"}
	seq := s.BeginLoad(q)
	s.CompleteLoad(seq, testReadings(12))
	s.SetPage(3)

	// The refreshed result has only one page left.
	seq = s.BeginLoad(q)
	s.CompleteLoad(seq, testReadings(4))
	if st := s.State(); st.Page != 1 || st.TotalPages != 1 {
		t.Errorf("refresh must clamp into the new bounds, got page %d of %d", st.Page, st.TotalPages)
	}
}

func TestPollTickPreservesPage(t *testing.T) {
	m := NewManager(2, 25*time.Millisecond)
	q := models.ReadingQuery{DateFrom: "10/03/2025", DateTo: "10/03/2025"}

	var s *Session
	s = m.Create(func(context.Context) {
		seq := s.BeginLoad(s.Query())
		s.CompleteLoad(seq, testReadings(4))
	})
	defer m.Delete(s.ID())

	seq := s.BeginLoad(q)
	s.CompleteLoad(seq, testReadings(4)) // 2 pages of 2
	if !s.SetPage(2) {
		t.Fatal("page 2 should exist")
	}
	if !s.Poller().Start() {
		t.Fatal("polling should start after a load")
	}
	time.Sleep(90 * time.Millisecond)
	s.Poller().Clear()

	if st := s.State(); st.Page != 2 {
		t.Errorf("poll ticks must not move the user off page 2, got %d", st.Page)
	}
}

func TestSetPageIgnoresOutOfRange(t *testing.T) {
	m := newTestManager()
	s := m.Create(nil)
	defer m.Delete(s.ID())

	seq := s.BeginLoad(models.ReadingQuery{DateFrom: "a", DateTo: "b"})
	s.CompleteLoad(seq, testReadings(7)) // 2 pages of 5

	if s.SetPage(3) {
		t.Error("page beyond the last must be rejected")
	}
	if s.SetPage(0) {
		t.Error("page below the first must be rejected")
	}
	s.SetPage(2)
	if st := s.State(); st.Page != 2 || st.TotalPages != 2 {
		t.Errorf("expected page 2 of 2, got %d of %d", st.Page, st.TotalPages)
	}
}

func TestSetPageSizeClampsPage(t *testing.T) {
	m := newTestManager()
	s := m.Create(nil)
	defer m.Delete(s.ID())

	seq := s.BeginLoad(models.ReadingQuery{DateFrom: "a", DateTo: "b"})
	s.CompleteLoad(seq, testReadings(12))
	s.SetPage(3)

	s.SetPageSize(12) // one page now
	if st := s.State(); st.Page != 1 || st.TotalPages != 1 {
		t.Errorf("expected clamp to page 1 of 1, got %d of %d", st.Page, st.TotalPages)
	}
}

func TestScheduleReloadCoalesces(t *testing.T) {
	m := newTestManager()
	s := m.Create(nil)
	defer m.Delete(s.ID())

	var calls int32
	for i := 0; i < 5; i++ {
		s.ScheduleReload(30*time.Millisecond, func() {
			atomic.AddInt32(&calls, 1)
		})
	}
	time.Sleep(120 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("debounce should coalesce to one reload, got %d", got)
	}
}

func TestCloseStopsDebounce(t *testing.T) {
	m := newTestManager()
	s := m.Create(nil)

	var calls int32
	s.ScheduleReload(30*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})
	m.Delete(s.ID())
	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("closed session must not fire its debounce timer, got %d calls", got)
	}

	// Loads against a closed session are rejected.
	seq := s.BeginLoad(models.ReadingQuery{DateFrom: "a", DateTo: "b"})
	if s.CompleteLoad(seq, testReadings(1)) {
		t.Error("closed session must reject loads")
	}
}

func TestPollerTransitions(t *testing.T) {
	p := NewPoller(time.Hour, func(context.Context) {})
	defer p.Close()

	if p.Start() {
		t.Error("polling must not start from Idle")
	}
	if p.State() != StateIdle {
		t.Errorf("expected Idle, got %v", p.State())
	}

	p.MarkLoaded()
	if p.State() != StateLoaded {
		t.Errorf("expected Loaded, got %v", p.State())
	}
	if !p.Start() {
		t.Error("polling should start from Loaded")
	}
	if p.State() != StatePolling {
		t.Errorf("expected Polling, got %v", p.State())
	}
	// MarkLoaded while polling keeps polling.
	p.MarkLoaded()
	if p.State() != StatePolling {
		t.Error("MarkLoaded must not demote a polling view")
	}

	p.Clear()
	if p.State() != StateIdle {
		t.Errorf("Clear must return to Idle, got %v", p.State())
	}
}

func TestPollerTicks(t *testing.T) {
	var ticks int32
	p := NewPoller(20*time.Millisecond, func(context.Context) {
		atomic.AddInt32(&ticks, 1)
	})
	p.MarkLoaded()
	if !p.Start() {
		t.Fatal("start failed")
	}
	time.Sleep(90 * time.Millisecond)
	p.Clear()
	got := atomic.LoadInt32(&ticks)
	if got < 2 {
		t.Errorf("expected at least 2 refresh ticks, got %d", got)
	}
	time.Sleep(50 * time.Millisecond)
	if after := atomic.LoadInt32(&ticks); after > got+1 {
		t.Errorf("timer must stop after Clear: %d -> %d", got, after)
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := newTestManager()
	s := m.Create(nil)
	if _, ok := m.Get(s.ID()); !ok {
		t.Fatal("created session should be retrievable")
	}
	if !m.Delete(s.ID()) {
		t.Fatal("delete should report success")
	}
	if _, ok := m.Get(s.ID()); ok {
		t.Error("deleted session should be gone")
	}
	if m.Delete(s.ID()) {
		t.Error("double delete should report false")
	}
}

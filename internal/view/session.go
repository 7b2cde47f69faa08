// FilePath: internal/view/session.go
package view

import (
	"context"
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/models"
	"github.com/Kraikuppp/webmeter-hub/internal/report"
)

// Session holds the table-data view state of one dashboard client:
// the active query, the resampled row set, pagination and orientation.
// Loads carry a monotonic sequence number so a slow fetch that lands
// after a newer one cannot overwrite fresher data.
type Session struct {
	mu          sync.Mutex
	id          string
	query       models.ReadingQuery
	rows        []models.Reading
	loaded      bool
	page        int
	pageSize    int
	orientation models.Orientation

	loadSeq      uint64 // last issued load
	appliedSeq   uint64 // last applied load
	appliedQuery models.ReadingQuery

	debounce *time.Timer
	poller   *Poller
	closed   bool
}

// ViewState is the read-only snapshot bound into presentation.
type ViewState struct {
	SessionID   string              `json:"session_id"`
	Query       models.ReadingQuery `json:"query"`
	Loaded      bool                `json:"loaded"`
	TotalRows   int                 `json:"total_rows"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	Orientation models.Orientation  `json:"orientation"`
}

func newSession(id string, pageSize int, poller *Poller) *Session {
	return &Session{
		id:          id,
		page:        1,
		pageSize:    pageSize,
		orientation: models.OrientationHorizontal,
		poller:      poller,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Poller returns the realtime poller owned by this session.
func (s *Session) Poller() *Poller {
	return s.poller
}

// BeginLoad reserves the next load sequence number for a query. The
// caller fetches and resamples outside the lock, then reports the
// outcome via CompleteLoad with the same number.
func (s *Session) BeginLoad(q models.ReadingQuery) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadSeq++
	s.query = q
	return s.loadSeq
}

// CompleteLoad applies a finished load. A result older than the one
// already applied is discarded, closing the last-write-wins race
// between overlapping loads. A load with a changed query (date/filter
// change) resets the page to 1; a load that re-ran the already-applied
// query is a background refresh and keeps the current page, clamped
// into the new row count.
func (s *Session) CompleteLoad(seq uint64, rows []models.Reading) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if seq <= s.appliedSeq {
		nuts.L.Infof("[View] Session %s discarding stale load %d (applied %d)", s.id, seq, s.appliedSeq)
		return false
	}
	refresh := s.loaded && s.query.Equal(s.appliedQuery)
	s.appliedSeq = seq
	s.appliedQuery = s.query
	s.rows = rows
	s.loaded = true
	if refresh {
		_, totalPages := report.Paginate(s.rows, 1, s.pageSize)
		if s.page > totalPages {
			s.page = totalPages
		}
	} else {
		s.page = 1
	}
	if s.poller != nil {
		s.poller.MarkLoaded()
	}
	return true
}

// Rows returns the full resampled row set and whether a load has
// completed.
func (s *Session) Rows() ([]models.Reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows, s.loaded
}

// Query returns the query of the most recent load request.
func (s *Session) Query() models.ReadingQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SetPage moves to the requested page. Out-of-range requests are
// ignored, mirroring pagination controls that disable past the
// boundaries.
func (s *Session) SetPage(page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, totalPages := report.Paginate(s.rows, 1, s.pageSize)
	if page < 1 || page > totalPages {
		return false
	}
	s.page = page
	return true
}

// SetPageSize changes the page size, clamping the current page into
// the new bounds. The page index is otherwise preserved.
func (s *Session) SetPageSize(size int) {
	if size < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = size
	_, totalPages := report.Paginate(s.rows, 1, s.pageSize)
	if s.page > totalPages {
		s.page = totalPages
	}
}

// SetOrientation toggles the table layout. Page and filters are kept.
func (s *Session) SetOrientation(o models.Orientation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o == models.OrientationVertical {
		s.orientation = models.OrientationVertical
		return
	}
	s.orientation = models.OrientationHorizontal
}

// PageRows returns the rows of the current page.
func (s *Session) PageRows() []models.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	pageRows, _ := report.Paginate(s.rows, s.page, s.pageSize)
	return pageRows
}

// State returns the presentation snapshot.
func (s *Session) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, totalPages := report.Paginate(s.rows, 1, s.pageSize)
	return ViewState{
		SessionID:   s.id,
		Query:       s.query,
		Loaded:      s.loaded,
		TotalRows:   len(s.rows),
		Page:        s.page,
		PageSize:    s.pageSize,
		TotalPages:  totalPages,
		Orientation: s.orientation,
	}
}

// Orientation returns the current table layout.
func (s *Session) Orientation() models.Orientation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orientation
}

// ScheduleReload coalesces rapid filter changes: each call resets the
// debounce timer, so fn runs once after the delay has passed without
// further changes.
func (s *Session) ScheduleReload(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(delay, fn)
}

// Close tears down the session's timers. Further loads and reloads
// are rejected.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	s.mu.Unlock()
	if s.poller != nil {
		s.poller.Close()
	}
}

// Manager owns the live view sessions.
type Manager struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	pageSize     int
	pollInterval time.Duration
}

// NewManager creates a session manager with the configured defaults.
func NewManager(defaultPageSize int, pollInterval time.Duration) *Manager {
	if defaultPageSize < 1 {
		defaultPageSize = 25
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		pageSize:     defaultPageSize,
		pollInterval: pollInterval,
	}
}

// Create registers a new session. The refresh callback runs on each
// poll tick while the session's poller is active.
func (m *Manager) Create(refresh func(ctx context.Context)) *Session {
	id := nuts.NID("vs", 12)
	s := newSession(id, m.pageSize, NewPoller(m.pollInterval, refresh))
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s
}

// Get looks up a live session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete closes a session and removes it from the manager.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if ok {
		s.Close()
	}
	return ok
}

// CloseAll tears down every live session, releasing all timers.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}

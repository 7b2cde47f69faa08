// FilePath: internal/hubservice/hubservice.view.go
package hubservice

import (
	"context"
	"fmt"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
	"github.com/Kraikuppp/webmeter-hub/internal/resample"
	"github.com/Kraikuppp/webmeter-hub/internal/view"
)

// ViewService handles table-data view logic
type ViewService interface {
	CreateSession(ctx context.Context) *view.Session
	GetSession(id string) (*view.Session, error)
	DeleteSession(ctx context.Context, id string) error
	LoadTableData(ctx context.Context, sessionID string, q models.ReadingQuery) (view.ViewState, error)
	ScheduleLoad(sessionID string, q models.ReadingQuery) error
	SetPage(sessionID string, page int) (view.ViewState, error)
	SetPageSize(sessionID string, size int) (view.ViewState, error)
	SetOrientation(sessionID string, o models.Orientation) (view.ViewState, error)
	StartPolling(sessionID string) (bool, error)
	StopPolling(sessionID string) error
}

// CreateSession registers a new dashboard view session. The session's
// poller re-runs the last query against the live upstream on each tick.
func (s *HubService) CreateSession(ctx context.Context) *view.Session {
	var sess *view.Session
	sess = s.Views.Create(func(ctx context.Context) {
		s.refreshSession(ctx, sess)
	})
	nuts.L.Infof("[ViewService] Created view session %s", sess.ID())
	s.recordAudit(ctx, "session.created", "session", sess.ID())
	return sess
}

// GetSession looks up a live session.
func (s *HubService) GetSession(id string) (*view.Session, error) {
	sess, ok := s.Views.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("view session not found: "+id, nil)
	}
	return sess, nil
}

// DeleteSession closes a session and releases its timers.
func (s *HubService) DeleteSession(ctx context.Context, id string) error {
	if !s.Views.Delete(id) {
		return errors.NewNotFoundError("view session not found: "+id, nil)
	}
	s.recordAudit(ctx, "session.deleted", "session", id)
	return nil
}

// LoadTableData runs one load: validate, fetch, resample to the
// 15-minute grid, then apply the result to the session. Stale results
// from overlapping loads are discarded by the session's sequence guard.
func (s *HubService) LoadTableData(ctx context.Context, sessionID string, q models.ReadingQuery) (view.ViewState, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return view.ViewState{}, err
	}
	if err := q.Validate(); err != nil {
		return view.ViewState{}, errors.NewValidationError("date range is required", err)
	}
	for _, col := range q.Columns {
		if !models.IsKnownField(col) {
			return view.ViewState{}, errors.NewValidationError("unknown column: "+col, nil)
		}
	}

	seq := sess.BeginLoad(q)
	rows, err := s.fetchResampled(ctx, q, false)
	if err != nil {
		return view.ViewState{}, err
	}
	if !sess.CompleteLoad(seq, rows) {
		return sess.State(), nil
	}
	nuts.L.Infof("[ViewService] Session %s loaded %d rows for %s - %s", sessionID, len(rows), q.DateFrom, q.DateTo)
	return sess.State(), nil
}

// ScheduleLoad coalesces rapid filter changes behind the configured
// debounce delay; only the last query within the window is fetched.
func (s *HubService) ScheduleLoad(sessionID string, q models.ReadingQuery) error {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	if err := q.Validate(); err != nil {
		return errors.NewValidationError("date range is required", err)
	}
	sess.ScheduleReload(s.cfg.DebounceDelay, func() {
		if _, err := s.LoadTableData(context.Background(), sessionID, q); err != nil {
			nuts.L.Warnf("[ViewService] Debounced load for session %s failed: %v", sessionID, err)
		}
	})
	return nil
}

// refreshSession re-runs the session's last query on a poll tick,
// bypassing the cache so the view tracks the live upstream.
func (s *HubService) refreshSession(ctx context.Context, sess *view.Session) {
	q := sess.Query()
	if q.Validate() != nil {
		return
	}
	seq := sess.BeginLoad(q)
	rows, err := s.fetchResampled(ctx, q, true)
	if err != nil {
		nuts.L.Warnf("[ViewService] Poll refresh for session %s failed: %v", sess.ID(), err)
		return
	}
	sess.CompleteLoad(seq, rows)
}

// fetchResampled returns the display row set for a query: cached when
// available, otherwise fetched upstream and aligned to the 15-minute
// bucket grid before caching.
func (s *HubService) fetchResampled(ctx context.Context, q models.ReadingQuery, skipCache bool) ([]models.Reading, error) {
	key := q.CacheKey()
	if !skipCache && s.Cache != nil {
		if rows, ok := s.Cache.GetReadings(ctx, key); ok {
			return rows, nil
		}
	}
	raw, err := s.Meters.FetchReadings(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := resample.Resample(raw)
	if s.Cache != nil {
		s.Cache.SetReadings(ctx, key, rows)
	}
	return rows, nil
}

// SetPage moves the session to the requested page.
func (s *HubService) SetPage(sessionID string, page int) (view.ViewState, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return view.ViewState{}, err
	}
	if !sess.SetPage(page) {
		return view.ViewState{}, errors.NewValidationError(fmt.Sprintf("page %d is out of range", page), nil)
	}
	return sess.State(), nil
}

// SetPageSize changes the page size of a session.
func (s *HubService) SetPageSize(sessionID string, size int) (view.ViewState, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return view.ViewState{}, err
	}
	if size < 1 {
		return view.ViewState{}, errors.NewValidationError("page size must be positive", nil)
	}
	sess.SetPageSize(size)
	return sess.State(), nil
}

// SetOrientation toggles the table layout of a session. Pagination and
// filters are untouched.
func (s *HubService) SetOrientation(sessionID string, o models.Orientation) (view.ViewState, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return view.ViewState{}, err
	}
	if o != models.OrientationHorizontal && o != models.OrientationVertical {
		return view.ViewState{}, errors.NewValidationError("orientation must be horizontal or vertical", nil)
	}
	sess.SetOrientation(o)
	return sess.State(), nil
}

// StartPolling enables the periodic realtime refresh of a session. It
// reports false when no load has completed yet.
func (s *HubService) StartPolling(sessionID string) (bool, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return false, err
	}
	started := sess.Poller().Start()
	if started {
		nuts.L.Infof("[ViewService] Session %s started polling", sessionID)
	}
	return started, nil
}

// StopPolling stops the periodic refresh and returns the poller to Idle.
func (s *HubService) StopPolling(sessionID string) error {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	sess.Poller().Clear()
	return nil
}

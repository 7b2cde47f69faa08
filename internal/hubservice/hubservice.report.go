// FilePath: internal/hubservice/hubservice.report.go
package hubservice

import (
	"context"
	"fmt"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/export"
	"github.com/Kraikuppp/webmeter-hub/internal/format"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
	"github.com/Kraikuppp/webmeter-hub/internal/report"
	"github.com/Kraikuppp/webmeter-hub/internal/view"
)

// ExportResult is one encoded report artifact ready to stream back.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService handles report assembly, export and delivery
type ReportService interface {
	GetTableRows(sessionID string) (*TableGrid, error)
	ExportTableData(ctx context.Context, sessionID string, f models.ExportFormat, scope models.ExportScope, identity report.IdentityInput) (*ExportResult, error)
	SendReport(ctx context.Context, sessionID string, target models.DeliveryTarget, f models.ExportFormat, identity report.IdentityInput) error
	GetGroups(ctx context.Context) (*models.Groups, error)
}

// ExportTableData encodes the session's table in the requested format.
// Scope "page" covers exactly what pagination currently shows, scope
// "filtered" the whole loaded result set. Export is refused before a
// load has completed and on a loaded-but-empty result.
func (s *HubService) ExportTableData(ctx context.Context, sessionID string, f models.ExportFormat, scope models.ExportScope, identity report.IdentityInput) (*ExportResult, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	payload, err := s.buildPayload(sess, scope, identity, format.Report)
	if err != nil {
		return nil, err
	}

	result, err := encodePayload(f, payload, sess.Orientation())
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, "report.exported", "report",
		fmt.Sprintf("%s/%s for %s", f, scope, payload.RangeLabel))
	nuts.L.Infof("[ReportService] Session %s exported %s (%d bytes)", sessionID, result.Filename, len(result.Data))
	return result, nil
}

// SendReport assembles the full filtered report and forwards it to the
// delivery endpoint of the target channel.
func (s *HubService) SendReport(ctx context.Context, sessionID string, target models.DeliveryTarget, f models.ExportFormat, identity report.IdentityInput) error {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	if target.Channel != models.DeliveryEmail && target.Channel != models.DeliveryLine {
		return errors.NewValidationError("delivery channel must be email or line", nil)
	}
	if target.GroupID == "" && len(target.Recipients) == 0 {
		return errors.NewValidationError("delivery target has no group and no recipients", nil)
	}

	// Delivery always covers the whole filtered range, not one page.
	payload, err := s.buildPayload(sess, models.ExportScopeFiltered, identity, format.Report)
	if err != nil {
		return err
	}

	if err := s.Meters.SendReport(ctx, target, f, payload); err != nil {
		return err
	}
	s.recordAudit(ctx, "report.sent", "report",
		fmt.Sprintf("%s via %s for %s", f, target.Channel, payload.RangeLabel))
	nuts.L.Infof("[ReportService] Session %s sent %s report via %s", sessionID, f, target.Channel)
	return nil
}

// GetGroups returns the upstream recipient directory for the delivery
// target picker. Contents are passed through opaque.
func (s *HubService) GetGroups(ctx context.Context) (*models.Groups, error) {
	return s.Meters.FetchGroups(ctx)
}

// TableGrid is the display payload of one view page: the session state
// plus the oriented cell grid, header row first.
type TableGrid struct {
	State view.ViewState `json:"state"`
	Grid  [][]string     `json:"grid"`
}

// GetTableRows returns the current page of a session as display cells.
// The on-screen table uses the live projection, so values carry their
// unit suffixes.
func (s *HubService) GetTableRows(sessionID string) (*TableGrid, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	payload, err := s.buildPayload(sess, models.ExportScopePage, report.IdentityInput{}, format.Live)
	if err != nil {
		return nil, err
	}
	return &TableGrid{
		State: sess.State(),
		Grid:  report.OrientGrid(payload, sess.Orientation()),
	}, nil
}

// buildPayload assembles the normalized report payload from the
// session's current state, mapping the builder's guard sentinels onto
// the API error taxonomy.
func (s *HubService) buildPayload(sess *view.Session, scope models.ExportScope, identity report.IdentityInput, variant format.Variant) (*models.ReportPayload, error) {
	allRows, loaded := sess.Rows()
	rows := allRows
	if scope == models.ExportScopePage {
		rows = sess.PageRows()
	}

	q := sess.Query()
	columns := q.Columns
	if len(columns) == 0 {
		columns = models.FieldNames
	}

	payload, err := report.Build(report.BuildParams{
		Rows:     rows,
		Columns:  columns,
		Loaded:   loaded,
		Identity: identity,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		TimeFrom: q.TimeFrom,
		TimeTo:   q.TimeTo,
	}, report.DefaultFormatters(func(fields map[string]any, fieldName string) string {
		return format.Project(fields, fieldName, variant)
	}))
	switch err {
	case nil:
		return payload, nil
	case models.ErrNotLoaded:
		return nil, errors.NewNotLoadedError("no data loaded yet", err)
	case models.ErrEmptyResult:
		return nil, errors.NewEmptyResultError("no data in the selected range", err)
	default:
		return nil, errors.NewInternalError("report assembly failed", err)
	}
}

// encodePayload runs the encoder for one export format.
func encodePayload(f models.ExportFormat, payload *models.ReportPayload, o models.Orientation) (*ExportResult, error) {
	grid := report.OrientGrid(payload, o)
	stamp := time.Now().Format("20060102-150405")
	title := payload.Identity + " " + payload.RangeLabel

	switch f {
	case models.ExportCSV:
		return &ExportResult{
			Filename:    "webmeter-report-" + stamp + ".csv",
			ContentType: "text/csv",
			Data:        export.EncodeCSV(grid),
		}, nil
	case models.ExportText:
		return &ExportResult{
			Filename:    "webmeter-report-" + stamp + ".txt",
			ContentType: "text/plain; charset=utf-8",
			Data:        export.EncodeText(grid),
		}, nil
	case models.ExportImage:
		data, err := export.EncodeImage(title, grid)
		if err != nil {
			return nil, errors.NewInternalError("image encoding failed", err)
		}
		return &ExportResult{
			Filename:    "webmeter-report-" + stamp + ".png",
			ContentType: "image/png",
			Data:        data,
		}, nil
	case models.ExportPDF:
		data, err := export.EncodePDF(title, payload.RangeLabel, grid)
		if err != nil {
			return nil, errors.NewInternalError("pdf encoding failed", err)
		}
		return &ExportResult{
			Filename:    "webmeter-report-" + stamp + ".pdf",
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, errors.NewValidationError("unknown export format: "+string(f), nil)
	}
}

// FilePath: internal/meterapi/client.go
package meterapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/config"
	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

// timestampKeys are the keys the upstream API uses for the reading
// instant, in the order they are tried.
var timestampKeys = []string{"reading_time", "timestamp", "time"}

// timestampLayouts covers the formats the upstream emits.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
}

// Client talks to the remote WebMeter data API. It is the only
// component that knows the upstream wire format.
type Client struct {
	rest *resty.Client
}

// New creates a meter API client from configuration.
func New(cfg config.MeterAPIConfig) *Client {
	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		rest.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	return &Client{rest: rest}
}

type readingsResponse struct {
	Data []map[string]any `json:"data"`
}

// FetchReadings queries raw readings for a date/time range. Records
// with unparseable timestamps are dropped and counted; the drop count
// is logged rather than failing the query.
func (c *Client) FetchReadings(ctx context.Context, q models.ReadingQuery) ([]models.Reading, error) {
	var out readingsResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"dateFrom": q.DateFrom,
			"dateTo":   q.DateTo,
			"timeFrom": q.TimeFrom,
			"timeTo":   q.TimeTo,
		}).
		SetQueryParamsFromValues(map[string][]string{
			"columns":  q.Columns,
			"meterIds": q.MeterIDs,
		}).
		SetResult(&out).
		Get("/api/table-data")
	if err != nil {
		return nil, errors.NewUpstreamError("meter API unreachable", err)
	}
	if resp.IsError() {
		return nil, errors.NewUpstreamError("meter API returned "+resp.Status(), nil)
	}

	readings, dropped := ParseReadings(out.Data)
	if dropped > 0 {
		nuts.L.Warnf("[MeterAPI] Dropped %d readings with unparseable timestamps", dropped)
	}
	return readings, nil
}

// FetchLatest queries the most recent reading of one meter for the
// realtime snapshot view.
func (c *Client) FetchLatest(ctx context.Context, meterID string) (*models.Reading, error) {
	var out map[string]any
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/realtime-data/" + meterID)
	if err != nil {
		return nil, errors.NewUpstreamError("meter API unreachable", err)
	}
	if resp.IsError() {
		return nil, errors.NewUpstreamError("meter API returned "+resp.Status(), nil)
	}

	readings, dropped := ParseReadings([]map[string]any{out})
	if len(readings) == 0 {
		if dropped > 0 {
			return nil, errors.NewUpstreamError("realtime record has no usable timestamp", nil)
		}
		return nil, errors.NewNotFoundError("no realtime data for meter "+meterID, nil)
	}
	return &readings[0], nil
}

// FetchGroups loads the recipient directory used to populate report
// delivery targets. Contents are passed through opaque.
func (c *Client) FetchGroups(ctx context.Context) (*models.Groups, error) {
	var out models.Groups
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/report-groups")
	if err != nil {
		return nil, errors.NewUpstreamError("meter API unreachable", err)
	}
	if resp.IsError() {
		return nil, errors.NewUpstreamError("meter API returned "+resp.Status(), nil)
	}
	return &out, nil
}

// SendReport forwards an assembled report to the delivery endpoint for
// the target channel. Oversized payloads are reported distinctly from
// generic transport failures.
func (c *Client) SendReport(ctx context.Context, target models.DeliveryTarget, format models.ExportFormat, payload *models.ReportPayload) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"target":  target,
			"format":  format,
			"payload": payload,
		}).
		Post("/api/report/" + string(target.Channel))
	if err != nil {
		return errors.NewDeliveryError("report delivery failed", err)
	}
	if resp.StatusCode() == http.StatusRequestEntityTooLarge {
		return errors.NewPayloadTooLargeError("report payload too large for "+string(target.Channel), nil)
	}
	if resp.IsError() {
		return errors.NewDeliveryError("report delivery returned "+resp.Status(), nil)
	}
	return nil
}

// ParseReadings converts raw upstream records into readings. Every
// non-timestamp key becomes a field; records with a missing or
// unparseable timestamp are excluded and counted.
func ParseReadings(raw []map[string]any) ([]models.Reading, int) {
	readings := make([]models.Reading, 0, len(raw))
	dropped := 0
	for _, rec := range raw {
		ts, key, ok := extractTimestamp(rec)
		if !ok {
			dropped++
			continue
		}
		fields := make(map[string]any, len(rec)-1)
		for k, v := range rec {
			if k == key {
				continue
			}
			fields[k] = v
		}
		readings = append(readings, models.Reading{Timestamp: ts, Fields: fields})
	}
	return readings, dropped
}

func extractTimestamp(rec map[string]any) (time.Time, string, bool) {
	for _, key := range timestampKeys {
		raw, ok := rec[key]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return time.Time{}, key, false
		}
		s = strings.TrimSpace(s)
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, key, true
			}
		}
		return time.Time{}, key, false
	}
	return time.Time{}, "", false
}

// FilePath: internal/hubservice/hubservice.realtime.go
package hubservice

import (
	"context"
	"time"

	"github.com/Kraikuppp/webmeter-hub/internal/format"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

// RealtimeSnapshot is the latest reading of one meter, projected into
// display strings with unit suffixes.
type RealtimeSnapshot struct {
	MeterID   string            `json:"meter_id"`
	Timestamp time.Time         `json:"timestamp"`
	Values    map[string]string `json:"values"`
}

// GetRealtime returns the realtime snapshot of one meter. The snapshot
// cache keeps poll fan-out off the upstream; on a miss the latest
// reading is fetched and cached for the next tick.
func (s *HubService) GetRealtime(ctx context.Context, meterID string) (*RealtimeSnapshot, error) {
	if s.Cache != nil {
		if reading, ok := s.Cache.GetSnapshot(ctx, meterID); ok {
			return projectSnapshot(meterID, reading), nil
		}
	}
	reading, err := s.Meters.FetchLatest(ctx, meterID)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.SetSnapshot(ctx, meterID, reading)
	}
	return projectSnapshot(meterID, reading), nil
}

// projectSnapshot renders every known field of a reading through the
// live projection. Fields the meter did not report render as the
// placeholder so the display grid stays complete.
func projectSnapshot(meterID string, reading *models.Reading) *RealtimeSnapshot {
	values := make(map[string]string, len(models.FieldNames))
	for _, name := range models.FieldNames {
		values[name] = format.Project(reading.Fields, name, format.Live)
	}
	return &RealtimeSnapshot{
		MeterID:   meterID,
		Timestamp: reading.Timestamp,
		Values:    values,
	}
}

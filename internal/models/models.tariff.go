// FilePath: internal/models/models.tariff.go
package models

import "time"

// Holiday is one calendar entry excluded from on-peak billing periods.
type Holiday struct {
	ID        string    `json:"id" db:"id"`
	Date      time.Time `json:"date" db:"date"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"` // "national" or "observance"
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RateConfig is one FT (fuel-adjustment tariff) rate row. The rate is
// expressed in satang per kWh and applies within its effective window.
type RateConfig struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Rate          float64   `json:"rate" db:"rate"`
	EffectiveFrom time.Time `json:"effective_from" db:"effective_from"`
	EffectiveTo   time.Time `json:"effective_to" db:"effective_to"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// AuditEvent records one dashboard action for the system events page.
type AuditEvent struct {
	ID        string    `json:"id" db:"id"`
	Action    string    `json:"action" db:"action"`
	Resource  string    `json:"resource" db:"resource"`
	Detail    string    `json:"detail" db:"detail"`
	Actor     string    `json:"actor" db:"actor"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// DashboardMetric is one daily data point of a tracked figure.
type DashboardMetric struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	MetricType string          `json:"metric_type" gorm:"size:30;not null;uniqueIndex:idx_metric_type_date"`
	Value      decimal.Decimal `json:"value" gorm:"type:decimal(15,2);not null"`
	Date       Date            `json:"date" gorm:"not null;uniqueIndex:idx_metric_type_date"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Validate checks field constraints.
func (m *DashboardMetric) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.MetricType, validation.Required, MetricTypes.Rule()),
		validation.Field(&m.Date, validation.By(func(value interface{}) error {
			if d, ok := value.(Date); ok && d.IsZero() {
				return validation.ErrRequired
			}
			return nil
		})),
	)
}

// ActivityLog records an action a user performed in the admin dashboard.
// Entries are written in batches by the activity recorder.
type ActivityLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      *uint     `json:"user_id" gorm:"index"`
	User        *User     `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Action      string    `json:"action" gorm:"size:20;not null;index"`
	ModelName   string    `json:"model_name" gorm:"size:50;index"`
	ObjectID    *uint     `json:"object_id"`
	Description string    `json:"description" gorm:"type:text;not null"`
	IPAddress   string    `json:"ip_address" gorm:"size:45"`
	UserAgent   string    `json:"user_agent" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// Validate checks field constraints.
func (a *ActivityLog) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Action, validation.Required, ActivityActions.Rule()),
		validation.Field(&a.ModelName, validation.Length(0, 50)),
		validation.Field(&a.Description, validation.Required),
	)
}

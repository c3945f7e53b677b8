package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"sheba-admin/internal/model"
)

type MetricView struct {
	ID                uint            `json:"id"`
	MetricType        string          `json:"metric_type"`
	MetricTypeDisplay string          `json:"metric_type_display"`
	Value             decimal.Decimal `json:"value"`
	Date              model.Date      `json:"date"`
	CreatedAt         time.Time       `json:"created_at"`
}

func NewMetricView(m *model.DashboardMetric) MetricView {
	return MetricView{
		ID:                m.ID,
		MetricType:        m.MetricType,
		MetricTypeDisplay: model.MetricTypes.Label(m.MetricType),
		Value:             m.Value,
		Date:              m.Date,
		CreatedAt:         m.CreatedAt,
	}
}

type ActivityView struct {
	ID            uint         `json:"id"`
	User          *UserProfile `json:"user"`
	UserID        *uint        `json:"user_id"`
	Action        string       `json:"action"`
	ActionDisplay string       `json:"action_display"`
	ModelName     string       `json:"model_name"`
	ObjectID      *uint        `json:"object_id"`
	Description   string       `json:"description"`
	IPAddress     string       `json:"ip_address"`
	UserAgent     string       `json:"user_agent"`
	CreatedAt     time.Time    `json:"created_at"`
}

func NewActivityView(a *model.ActivityLog) ActivityView {
	return ActivityView{
		ID:            a.ID,
		User:          NewUserProfile(a.User),
		UserID:        a.UserID,
		Action:        a.Action,
		ActionDisplay: model.ActivityActions.Label(a.Action),
		ModelName:     a.ModelName,
		ObjectID:      a.ObjectID,
		Description:   a.Description,
		IPAddress:     a.IPAddress,
		UserAgent:     a.UserAgent,
		CreatedAt:     a.CreatedAt,
	}
}

// Views converts a slice with fn.
func Views[T, V any](rows []T, fn func(*T) V) []V {
	out := make([]V, 0, len(rows))
	for i := range rows {
		out = append(out, fn(&rows[i]))
	}
	return out
}

type MetricInput struct {
	MetricType *string          `json:"metric_type" validate:"required"`
	Value      *decimal.Decimal `json:"value" validate:"required"`
	Date       *model.Date      `json:"date" validate:"required"`
}

func (in MetricInput) Apply(m *model.DashboardMetric) {
	set(&m.MetricType, in.MetricType)
	set(&m.Value, in.Value)
	set(&m.Date, in.Date)
}

type ActivityInput struct {
	UserID      Nullable[uint] `json:"user_id"`
	Action      *string        `json:"action" validate:"required"`
	ModelName   *string        `json:"model_name" validate:"omitempty,max=50"`
	ObjectID    Nullable[uint] `json:"object_id"`
	Description *string        `json:"description" validate:"required"`
	IPAddress   *string        `json:"ip_address" validate:"omitempty,ip"`
	UserAgent   *string        `json:"user_agent"`
}

func (in ActivityInput) Apply(a *model.ActivityLog) {
	setNullable(&a.UserID, in.UserID)
	set(&a.Action, in.Action)
	set(&a.ModelName, in.ModelName)
	setNullable(&a.ObjectID, in.ObjectID)
	set(&a.Description, in.Description)
	set(&a.IPAddress, in.IPAddress)
	set(&a.UserAgent, in.UserAgent)
}

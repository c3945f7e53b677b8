package audit

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"sheba-admin/internal/model"
)

type requestKey struct{}

// Request describes the HTTP caller an entry is attributed to.
type Request struct {
	UserID    *uint
	IPAddress string
	UserAgent string
	Path      string
}

// WithRequest attaches caller details to ctx.
func WithRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFrom returns the caller details attached to ctx, if any.
func RequestFrom(ctx context.Context) Request {
	req, _ := ctx.Value(requestKey{}).(Request)
	return req
}

// Log records user activity and system events.
type Log struct {
	activities *Recorder[model.ActivityLog]
	system     *Recorder[model.SystemLog]
}

// NewLog starts recorders for activity and system log rows.
func NewLog(activities Writer[model.ActivityLog], system Writer[model.SystemLog], opts ...Option) *Log {
	return &Log{
		activities: NewRecorder(activities, opts...),
		system:     NewRecorder(system, opts...),
	}
}

// Activity records that the caller in ctx performed action on a row.
// A nil Log discards the entry.
func (l *Log) Activity(ctx context.Context, action, modelName string, objectID uint, description string) {
	if l == nil {
		return
	}
	req := RequestFrom(ctx)
	entry := model.ActivityLog{
		UserID:      req.UserID,
		Action:      action,
		ModelName:   modelName,
		Description: description,
		IPAddress:   req.IPAddress,
		UserAgent:   req.UserAgent,
	}
	if objectID != 0 {
		id := objectID
		entry.ObjectID = &id
	}
	l.activities.Record(ctx, entry)
}

// UserActivity records an action of a user that is not yet in ctx, such as a login.
func (l *Log) UserActivity(ctx context.Context, userID uint, action, description string) {
	if l == nil {
		return
	}
	req := RequestFrom(ctx)
	req.UserID = &userID
	l.Activity(WithRequest(ctx, req), action, "User", userID, description)
}

// System records an operational event for administrators.
func (l *Log) System(ctx context.Context, level, module, message string, extra map[string]interface{}) {
	if l == nil {
		return
	}
	req := RequestFrom(ctx)
	if module == "" {
		module = req.Path
	}
	entry := model.SystemLog{
		Level:     level,
		Message:   message,
		Module:    module,
		UserID:    req.UserID,
		IPAddress: req.IPAddress,
		ExtraData: datatypes.JSONMap(extra),
	}
	l.system.Record(ctx, entry)
}

// Close flushes both recorders.
func (l *Log) Close() {
	if l == nil {
		return
	}
	l.activities.Close()
	l.system.Close()
}

// Describe builds the description stored for a create, update or delete.
func Describe(action, modelName string, id uint) string {
	verb := map[string]string{
		"create": "Created",
		"update": "Updated",
		"delete": "Deleted",
	}[action]
	if verb == "" {
		verb = action
	}
	return fmt.Sprintf("%s %s #%d", verb, modelName, id)
}

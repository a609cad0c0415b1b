package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/drizz21/car-rent-new/internal/models"
)

type Store interface {
	Create(ctx context.Context, l *models.AuditLog) error
}

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Recorder writes audit logs. A failed write is logged and swallowed so it
// never fails the request that triggered it.
type Recorder struct {
	store Store
	log   *slog.Logger
}

func NewRecorder(store Store, log *slog.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

func (r *Recorder) WriteLog(ctx context.Context, opts LogOptions) {
	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		// jsonb rejects empty strings
		BeforeData: marshalOrNull(opts.Before),
		AfterData:  marshalOrNull(opts.After),
	}

	if err := r.store.Create(ctx, &entry); err != nil {
		r.log.WarnContext(ctx, "audit log not written",
			slog.String("entity_type", opts.EntityType),
			slog.Uint64("entity_id", uint64(opts.EntityID)),
			slog.String("action", string(opts.Action)),
			slog.Any("err", err),
		)
	}
}

func marshalOrNull(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// Writer is implemented by *Recorder.
type Writer interface {
	WriteLog(ctx context.Context, opts LogOptions)
}

package repository

import (
	"context"
	"time"

	"table-reserve/internal/infra"
	"table-reserve/internal/infra/db"

	"github.com/google/uuid"
)

// NotificationRepository enqueues outbox rows for the external sync and
// messaging pipelines. Rows are written inside the same transaction as the
// state change that produced them.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const insertJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, payload, run_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())`

func (r *NotificationRepository) CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := dbtx.Exec(ctx, insertJobSQL, uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

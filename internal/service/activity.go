package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/logging"
)

// Activity appends to and reads the account activity log. The log is an
// audit trail only; ranking and suggestion logic never reads it.
type Activity struct {
	store  ActivityStore
	logger *zap.Logger
}

// NewActivity creates the activity service
func NewActivity(store ActivityStore) *Activity {
	return &Activity{
		store:  store,
		logger: logging.GetLogger().With(zap.String("component", "activity-service")),
	}
}

// Record appends an activity record for an account
func (a *Activity) Record(ctx context.Context, accountID int64, kind string, data map[string]interface{}) error {
	if !models.ValidActivityKind(kind) {
		return apperror.Validation("kind", fmt.Sprintf("unknown activity kind: %s", kind))
	}

	payload := "{}"
	if len(data) > 0 {
		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("encoding activity data: %w", err)
		}
		payload = string(encoded)
	}

	activity := &models.Activity{
		AccountID: accountID,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		Data:      payload,
	}
	if err := a.store.Create(ctx, activity); err != nil {
		return fmt.Errorf("recording activity: %w", err)
	}
	return nil
}

// record appends an activity as a side effect of another operation.
// Failures are logged, never propagated, so the audit trail cannot affect
// business-rule outcomes.
func (a *Activity) record(ctx context.Context, accountID int64, kind string, data map[string]interface{}) {
	if err := a.Record(ctx, accountID, kind, data); err != nil {
		a.logger.Warn("failed to record activity",
			zap.Int64("account_id", accountID),
			zap.String("kind", kind),
			zap.Error(err))
	}
}

// List returns the caller's activity history, newest first
func (a *Activity) List(ctx context.Context, callerID int64, page, limit int) ([]ActivityView, Page, error) {
	page, limit, offset := clampPaging(page, limit)

	activities, total, err := a.store.ListByAccount(ctx, callerID, limit, offset)
	if err != nil {
		return nil, Page{}, fmt.Errorf("listing activity: %w", err)
	}

	views := make([]ActivityView, 0, len(activities))
	for _, activity := range activities {
		data := map[string]interface{}{}
		// Stored payloads are write-validated; tolerate corruption on read
		_ = json.Unmarshal([]byte(activity.Data), &data)
		views = append(views, ActivityView{
			ID:        activity.ID,
			Kind:      activity.Kind,
			CreatedAt: activity.CreatedAt,
			Data:      data,
		})
	}

	return views, newPage(page, limit, total), nil
}

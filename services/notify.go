package services

import (
	"context"

	"github.com/LovationAdmin/spendwise-api/models"
)

// AlertPublisher delivers budget alerts to downstream consumers.
type AlertPublisher interface {
	PublishBudgetAlert(ctx context.Context, alert models.BudgetAlert) error
}

// Notifier pushes change signals to a user's live dashboard sessions.
type Notifier interface {
	NotifyDashboardChanged(userID, resource, action string)
}

type NoopNotifier struct{}

func (NoopNotifier) NotifyDashboardChanged(userID, resource, action string) {}

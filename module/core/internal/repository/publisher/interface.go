package publisher

import (
	"context"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
)

type NotificationPublisher interface {
	PublishEmergency(ctx context.Context, notification *domain.EmergencyNotification) error
}

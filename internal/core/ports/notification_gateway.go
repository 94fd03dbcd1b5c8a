package ports

import (
	"context"

	"procurement/internal/core/domain/model/order"
)

// NotificationGateway defines the outbound contract for operator
// notifications. Notification delivery is best-effort: failures are logged
// by callers and never roll back the business transaction that triggered
// them.
type NotificationGateway interface {
	// NotifyAdmins sends a message to all administrators.
	NotifyAdmins(ctx context.Context, subject, message string) error

	// NotifyRole sends a message to every actor holding the given role.
	NotifyRole(ctx context.Context, role order.Role, subject, message string) error
}

// Package notify provides the outbound notification adapter. The current
// implementation writes structured log records; a mail or messaging backend
// can replace it behind the same port.
package notify

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/order"
)

// SlogNotificationGateway delivers notifications as structured log records.
type SlogNotificationGateway struct {
	logger *slog.Logger
}

// NewSlogNotificationGateway creates a notification gateway backed by the given logger.
func NewSlogNotificationGateway(logger *slog.Logger) *SlogNotificationGateway {
	return &SlogNotificationGateway{
		logger: logger.With("component", "notifications"),
	}
}

// NotifyAdmins sends a message to all administrators.
func (g *SlogNotificationGateway) NotifyAdmins(ctx context.Context, subject, message string) error {
	return g.NotifyRole(ctx, order.RoleAdmin, subject, message)
}

// NotifyRole sends a message to every actor holding the given role.
func (g *SlogNotificationGateway) NotifyRole(ctx context.Context, role order.Role, subject, message string) error {
	g.logger.InfoContext(ctx, "notification",
		"role", role.String(),
		"subject", subject,
		"message", message,
	)
	return nil
}

package service

import (
	"context"

	"go.uber.org/zap"

	"healthconnect/internal/domain"
)

// Notifier доставляет уведомления пользователю. Реализация по умолчанию
// пишет их в лог: внешние каналы доставки подключаются отдельно.
type Notifier interface {
	Notify(ctx context.Context, userID int64, notification domain.Notification)
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, userID int64, notification domain.Notification) {
	n.logger.Info("уведомление пользователю",
		zap.Int64("userId", userID),
		zap.String("title", notification.Title),
		zap.String("description", notification.Description),
		zap.String("variant", string(notification.Variant)),
	)
}

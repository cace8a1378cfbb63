package service

import (
	"context"

	"github.com/kuramaOn/Full-stack-Net/internal/apperr"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Límite de notificaciones que devuelve el listado (el cliente hace polling).
const notificationListLimit = 50

type NotificationService struct {
	notifications NotificationStore
}

func NewNotificationService(notifications NotificationStore) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List devuelve las notificaciones más nuevas primero + cuántas hay sin leer.
func (s *NotificationService) List(ctx context.Context, userID primitive.ObjectID) ([]models.NotificationDoc, int64, error) {
	items, err := s.notifications.ListByUser(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []models.NotificationDoc{}
	}
	return items, unread, nil
}

// MarkRead marca una notificación propia como leída.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	matched, err := s.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

package services

import (
	"fmt"
	"time"

	"github.com/NasiChan/lab2life-webapp/models"

	"gorm.io/gorm"
)

type notificationDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _notify notificationDeps

func InitNotificationDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_notify = notificationDeps{db: db, rt: rt, ps: ps}
}

// EmitNotification persists the notification and fans it out over websocket
// and push. Safe to call from the scheduler or any handler.
func EmitNotification(userID uint, typ, title, message string) {
	if _notify.db == nil {
		return // not initialized
	}
	n := &models.Notification{UserID: userID, Type: typ, Title: title, Message: message, CreatedAt: time.Now()}
	_ = _notify.db.Create(n).Error

	if _notify.rt != nil {
		_notify.rt.Broadcast(userID, map[string]any{
			"kind":         "notification.created",
			"notification": n,
		})
	}
	if _notify.ps != nil {
		_notify.ps.PushToUser(userID, title, message, map[string]string{
			"type": typ, "notificationId": fmt.Sprintf("%d", n.ID),
		})
	}
}

func ListNotifications(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []models.Notification
	err := _notify.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

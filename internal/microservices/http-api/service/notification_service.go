package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bookplanner/internal/metrics"
	"bookplanner/internal/microservices/http-api/dto"
	"bookplanner/internal/microservices/http-api/models"
	"bookplanner/internal/microservices/http-api/repository"
	"bookplanner/internal/microservices/reminder"
	"bookplanner/internal/stats"
)

// Broadcaster delivers a typed message to every connected client.
type Broadcaster interface {
	Broadcast(msgType string, data any)
	ClientCount() int
}

const notificationMessageType = "notification"

type NotificationService interface {
	Status(ctx context.Context) (*dto.NotificationStatusResponse, error)
	SetEnabled(ctx context.Context, enabled bool) (*dto.NotificationStatusResponse, error)
	SendTest(ctx context.Context) (*models.Notification, error)
	SendDailyReminder(ctx context.Context) (bool, error)
}

type notificationService struct {
	settings  repository.SettingsRepository
	snapshots *Snapshots
	hub       Broadcaster
	schedule  reminder.Schedule
	now       Clock
	logger    *slog.Logger
}

func NewNotificationService(settings repository.SettingsRepository, snapshots *Snapshots, hub Broadcaster, schedule reminder.Schedule, now Clock, logger *slog.Logger) NotificationService {
	return &notificationService{
		settings:  settings,
		snapshots: snapshots,
		hub:       hub,
		schedule:  schedule,
		now:       now,
		logger:    logger,
	}
}

func (s *notificationService) Status(ctx context.Context) (*dto.NotificationStatusResponse, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	goals, _, err := s.snapshots.Goals(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationStatusResponse{
		Enabled:    settings.NotificationsEnabled,
		DailyPages: stats.DailyTarget(goals).Pages,
		Clients:    s.hub.ClientCount(),
	}
	if settings.NotificationsEnabled && s.schedule.Enabled {
		resp.NextReminder = s.schedule.NextRun(s.now()).Format(time.RFC3339)
	}
	return resp, nil
}

// SetEnabled stores the preference; turning notifications on greets the user.
func (s *notificationService) SetEnabled(ctx context.Context, enabled bool) (*dto.NotificationStatusResponse, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.settings.Save(ctx, models.Settings{NotificationsEnabled: enabled}); err != nil {
		return nil, err
	}
	if enabled && !current.NotificationsEnabled {
		s.send(models.Notification{
			Title: "Reading reminders are on! 📚",
			Body:  "You will now get a daily reading reminder.",
			Tag:   models.TagWelcome,
		})
	}
	s.logger.Info("notifications_toggled", slog.Bool("enabled", enabled))
	return s.Status(ctx)
}

func (s *notificationService) SendTest(ctx context.Context) (*models.Notification, error) {
	if err := s.requireEnabled(ctx); err != nil {
		return nil, err
	}
	n := s.send(models.Notification{
		Title: "Test notification 🧪",
		Body:  "Notifications are working. We will remind you when it is time to read.",
		Tag:   models.TagTest,
	})
	return &n, nil
}

// SendDailyReminder reports false without error when reminders are off.
func (s *notificationService) SendDailyReminder(ctx context.Context) (bool, error) {
	if err := s.requireEnabled(ctx); err != nil {
		if errors.Is(err, ErrNotificationsDisabled) {
			return false, nil
		}
		return false, err
	}
	goals, _, err := s.snapshots.Goals(ctx)
	if err != nil {
		return false, err
	}
	pages := stats.DailyTarget(goals).Pages
	s.send(models.Notification{
		Title:              "Time for today's reading! 📚",
		Body:               fmt.Sprintf("Your goal today is %d pages. Which book will you pick up?", pages),
		Tag:                models.TagDailyReminder,
		RequireInteraction: true,
	})
	return true, nil
}

func (s *notificationService) requireEnabled(ctx context.Context) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		return ErrNotificationsDisabled
	}
	return nil
}

func (s *notificationService) send(n models.Notification) models.Notification {
	n.ID = uuid.NewString()
	n.CreatedAt = s.now()
	s.hub.Broadcast(notificationMessageType, n)
	metrics.NotificationsSentTotal.WithLabelValues(n.Tag).Inc()
	s.logger.Info("notification_sent", slog.String("tag", n.Tag), slog.Int("clients", s.hub.ClientCount()))
	return n
}

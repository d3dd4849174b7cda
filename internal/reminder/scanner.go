package reminder

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cleanora-services/cleany-scheduler/internal/clock"
	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/logger"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

// Scanner walks upcoming appointments and emails the customer three days,
// one day and three hours ahead of each one. Every window has its own flag
// on the appointment so a reminder goes out at most once.
type Scanner struct {
	db       *gorm.DB
	notifier domain.Notifier
	clk      clock.Clock
	cron     *cron.Cron
}

func NewScanner(db *gorm.DB, notifier domain.Notifier, clk clock.Clock) *Scanner {
	return &Scanner{
		db:       db,
		notifier: notifier,
		clk:      clk,
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
	}
}

func (s *Scanner) Start() error {
	if _, err := s.cron.AddFunc("*/15 * * * *", s.scan); err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("reminder scanner started")
	return nil
}

func (s *Scanner) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logger.Info("reminder scanner stopped")
	}
}

type window struct {
	flag    string // column holding the sent marker
	horizon time.Duration
	subject string
}

func (s *Scanner) scan() {
	windows := []window{
		{flag: "three_day_reminder", horizon: 72 * time.Hour, subject: "Your cleaning is in three days"},
		{flag: "one_day_reminder", horizon: 24 * time.Hour, subject: "Your cleaning is tomorrow"},
		{flag: "three_hour_reminder", horizon: 3 * time.Hour, subject: "Your cleaning starts soon"},
	}

	for _, w := range windows {
		s.sendWindow(w)
	}
}

func (s *Scanner) sendWindow(w window) {
	now := s.clk.Now()

	var due []models.Appointment
	err := s.db.
		Preload("Order").
		Preload("Order.ContactInfo").
		Where(w.flag+" = ?", false).
		Where("is_cancelled = ?", false).
		Where("status NOT IN ('complete', 'cancelled')").
		Where("appointment_date_time > ? AND appointment_date_time <= ?", now, now.Add(w.horizon)).
		Find(&due).Error
	if err != nil {
		logger.Error("reminder scan failed", zap.String("window", w.flag), zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}

	ids := make([]uint, 0, len(due))
	for _, ap := range due {
		ap := ap
		s.notifier.Notify(domain.Event{
			OrderID:       &ap.OrderID,
			AppointmentID: &ap.ID,
			UserID:        ap.Order.UserID,
			Title:         "Booking Reminder",
			Email:         ap.Order.ContactInfo.Email,
			Subject:       w.subject,
			Body: "Reminder: your cleaning is scheduled for " +
				ap.AppointmentDateTime.Format("Jan 2, 2006 at 15:04") + ".",
		})
		ids = append(ids, ap.ID)
	}

	// One bulk flip per window after the sends are queued.
	err = s.db.Model(&models.Appointment{}).
		Where("id IN ?", ids).
		Update(w.flag, true).Error
	if err != nil {
		logger.Error("reminder flag update failed", zap.String("window", w.flag), zap.Error(err))
		return
	}

	logger.Info("reminders queued",
		zap.String("window", w.flag), zap.Int("count", len(due)))
}

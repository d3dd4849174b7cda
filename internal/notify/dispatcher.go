package notify

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/logger"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

// Dispatcher fans notifications out of the request path: each event becomes
// a persisted in-app notification row plus, when an address is present, an
// email. Delivery failures are logged and never reach the caller.
type Dispatcher struct {
	db     *gorm.DB
	mailer Mailer
	queue  chan domain.Event
}

func NewDispatcher(db *gorm.DB, mailer Mailer) *Dispatcher {
	d := &Dispatcher{
		db:     db,
		mailer: mailer,
		queue:  make(chan domain.Event, 100),
	}

	go d.worker()
	return d
}

var _ domain.Notifier = (*Dispatcher)(nil)

func (d *Dispatcher) Notify(ev domain.Event) {
	select {
	case d.queue <- ev:
	default:
		logger.Warn("notification queue full, dropping event",
			zap.String("title", ev.Title))
	}
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev domain.Event) {
	row := models.Notification{
		OrderID:       ev.OrderID,
		AppointmentID: ev.AppointmentID,
		UserID:        ev.UserID,
		Title:         ev.Title,
	}
	if err := d.db.Create(&row).Error; err != nil {
		logger.Error("notification write failed",
			zap.String("title", ev.Title), zap.Error(err))
	}

	if ev.Email == "" {
		return
	}

	if err := d.mailer.Send(ev.Email, ev.Subject, ev.Body); err != nil {
		logger.Error("notification mail failed",
			zap.String("email", ev.Email), zap.Error(err))
		return
	}

	entry := models.EmailLog{
		UserID: ev.UserID,
		Email:  ev.Email,
		Title:  ev.Subject,
	}
	if err := d.db.Create(&entry).Error; err != nil {
		logger.Error("email log write failed", zap.Error(err))
	}
}

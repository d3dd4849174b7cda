package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/httpresp"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
	"github.com/cleanora-services/cleany-scheduler/internal/timezone"
	usecase "github.com/cleanora-services/cleany-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db         *gorm.DB
	reschedule *usecase.Reschedule
	cancel     *usecase.CancelAppointment
	complete   *usecase.CompleteAppointment
	dispatch   *usecase.DispatchAppointment
	charge     *usecase.ChargeSale
	tz         string
}

func NewAppointmentHandler(
	db *gorm.DB,
	reschedule *usecase.Reschedule,
	cancel *usecase.CancelAppointment,
	complete *usecase.CompleteAppointment,
	dispatch *usecase.DispatchAppointment,
	charge *usecase.ChargeSale,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		reschedule: reschedule,
		cancel:     cancel,
		complete:   complete,
		dispatch:   dispatch,
		charge:     charge,
		tz:         tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RescheduleRequest struct {
	Scope string `json:"scope" binding:"required,oneof=single all"`
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
}

type CancelRequest struct {
	CancelAll bool `json:"cancel_all"`
}

type CompleteRequest struct {
	SendNotify   bool `json:"send_notify"`
	SendFeedback bool `json:"send_feedback"`
	SendTip      bool `json:"send_tip"`
}

type DispatchRequest struct {
	ProviderID uint `json:"provider_id" binding:"required"`
}

type ChargeRequest struct {
	Mode   string  `json:"mode" binding:"required,oneof=cash card"`
	Amount float64 `json:"amount"`
}

// ======================================================
// LIST (by day, dashboard calendar)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), timezone.Location(h.tz))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "expected date=YYYY-MM-DD")
		return
	}

	start := date
	end := start.Add(24 * time.Hour)

	var appointments []models.Appointment
	if err := h.db.
		Preload("ServiceLocation").
		Preload("Order").
		Preload("Order.ContactInfo").
		Where("appointment_date_time >= ? AND appointment_date_time < ?", start, end).
		Order("appointment_date_time ASC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list appointments")
		return
	}

	httpresp.List(c, appointments)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), usecase.RescheduleInput{
		AppointmentID: id,
		Scope:         req.Scope,
		Date:          req.Date,
		Time:          req.Time,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), usecase.CancelInput{
		AppointmentID: id,
		CancelAll:     req.CancelAll,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), usecase.CompleteInput{
		AppointmentID: id,
		SendNotify:    req.SendNotify,
		SendFeedback:  req.SendFeedback,
		SendTip:       req.SendTip,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Dispatch(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.dispatch.Execute(c.Request.Context(), id, req.ProviderID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Charge(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sale, err := h.charge.Execute(c.Request.Context(), usecase.ChargeInput{
		AppointmentID: id,
		Mode:          req.Mode,
		Amount:        req.Amount,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, sale)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "invalid appointment id")
		return 0, false
	}
	return uint(id), true
}

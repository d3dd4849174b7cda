package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/httpresp"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
	usecase "github.com/cleanora-services/cleany-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	db       *gorm.DB
	place    *usecase.PlaceOrder
	schedule *usecase.ScheduleOrder
}

func NewOrderHandler(
	db *gorm.DB,
	place *usecase.PlaceOrder,
	schedule *usecase.ScheduleOrder,
) *OrderHandler {
	return &OrderHandler{
		db:       db,
		place:    place,
		schedule: schedule,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type OrderLineRequest struct {
	ID       uint `json:"id" binding:"required"`
	Quantity uint `json:"quantity"`
}

type PlaceOrderRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`

	HowToEnterOnPremise  string `json:"how_to_enter_on_premise"`
	HasParkingSpot       bool   `json:"has_parking_spot"`
	HasPets              bool   `json:"has_pets"`
	HowDidYouHearAboutUs string `json:"how_did_you_hear_about_us"`

	StreetAddress string `json:"street_address" binding:"required"`
	AptSuite      string `json:"apt_suite"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state" binding:"required"`
	ZipCode       string `json:"zip_code" binding:"required"`
	LatLong       string `json:"lat_long"`

	ServiceID      uint   `json:"service_id" binding:"required"`
	RecurrenceType string `json:"recurrence_type" binding:"required"`
	StartDate      string `json:"start_date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`

	Items  []OrderLineRequest `json:"items" binding:"required"`
	Extras []OrderLineRequest `json:"extras"`

	AdditionalInfo string `json:"additional_info"`

	// When present, the order is expanded right after placement.
	CardToken string `json:"card_token"`
}

type ScheduleOrderRequest struct {
	CardToken string `json:"card_token" binding:"required"`
}

// ======================================================
// PLACE (public booking form)
// ======================================================

func (h *OrderHandler) Place(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := usecase.PlaceOrderInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,

		HowToEnterOnPremise:  req.HowToEnterOnPremise,
		HasParkingSpot:       req.HasParkingSpot,
		HasPets:              req.HasPets,
		HowDidYouHearAboutUs: req.HowDidYouHearAboutUs,

		StreetAddress: req.StreetAddress,
		AptSuite:      req.AptSuite,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		LatLong:       req.LatLong,

		ServiceID:      req.ServiceID,
		RecurrenceType: req.RecurrenceType,
		StartDate:      req.StartDate,
		StartTime:      req.StartTime,

		AdditionalInfo: req.AdditionalInfo,
	}
	for _, line := range req.Items {
		in.Items = append(in.Items, usecase.OrderLine{ID: line.ID, Quantity: line.Quantity})
	}
	for _, line := range req.Extras {
		in.Extras = append(in.Extras, usecase.OrderLine{ID: line.ID, Quantity: line.Quantity})
	}

	order, err := h.place.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if req.CardToken != "" {
		order, err = h.schedule.Execute(c.Request.Context(), order.ID, req.CardToken)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
	}

	c.JSON(201, order)
}

// ======================================================
// SCHEDULE (expand a placed order)
// ======================================================

func (h *OrderHandler) Schedule(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_order_id", "invalid order id")
		return
	}

	var req ScheduleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	order, err := h.schedule.Execute(c.Request.Context(), uint(orderID), req.CardToken)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, order)
}

// ======================================================
// LIST / DETAIL (dashboard)
// ======================================================

func (h *OrderHandler) List(c *gin.Context) {
	q := h.db.
		Preload("ContactInfo").
		Preload("RecurrenceRule").
		Preload("ServiceLocation").
		Order("id DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list orders")
		return
	}

	httpresp.List(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_order_id", "invalid order id")
		return
	}

	var order models.Order
	if err := h.db.
		Preload("ContactInfo").
		Preload("RecurrenceRule").
		Preload("ServiceLocation").
		First(&order, uint(orderID)).Error; err != nil {
		httperr.NotFound(c, "order_not_found", "order not found")
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Where("order_id = ?", order.ID).
		Order("id ASC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not load appointments")
		return
	}

	httpresp.OK(c, gin.H{
		"order":        order,
		"appointments": appointments,
	})
}

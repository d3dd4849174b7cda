package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/httpresp"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
	"github.com/cleanora-services/cleany-scheduler/internal/storage"
)

const maxAttachmentSize = 10 << 20 // 10 MiB

// ======================================================
// HANDLER
// ======================================================

type AttachmentHandler struct {
	db    *gorm.DB
	store *storage.S3Store
}

func NewAttachmentHandler(db *gorm.DB, store *storage.S3Store) *AttachmentHandler {
	return &AttachmentHandler{
		db:    db,
		store: store,
	}
}

// ======================================================
// UPLOAD (multipart)
// ======================================================

func (h *AttachmentHandler) Upload(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "invalid appointment id")
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, uint(appointmentID)).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "appointment not found")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "multipart field 'file' is required")
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		httperr.BadRequest(c, "file_too_large", "attachment exceeds 10 MiB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "could not read upload")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	key, err := h.store.Put(
		c.Request.Context(),
		ap.ID,
		fileHeader.Filename,
		contentType,
		file,
	)
	if err != nil {
		httperr.Internal(c, "upload_failed", "could not store attachment")
		return
	}

	attachment := models.Attachment{
		AppointmentID:     ap.ID,
		FileKey:           key,
		FileName:          fileHeader.Filename,
		ContentType:       contentType,
		ShareWithCustomer: c.PostForm("share_with_customer") == "true",
		ShareWithCleaner:  c.PostForm("share_with_cleaner") == "true",
	}
	if err := h.db.Create(&attachment).Error; err != nil {
		httperr.Internal(c, "upload_failed", "could not record attachment")
		return
	}

	c.JSON(201, attachment)
}

// ======================================================
// LIST
// ======================================================

func (h *AttachmentHandler) List(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "invalid appointment id")
		return
	}

	var attachments []models.Attachment
	if err := h.db.
		Where("appointment_id = ?", uint(appointmentID)).
		Order("id ASC").
		Find(&attachments).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list attachments")
		return
	}

	httpresp.List(c, attachments)
}

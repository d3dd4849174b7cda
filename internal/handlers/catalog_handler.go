package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	"github.com/cleanora-services/cleany-scheduler/internal/httpresp"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// CatalogHandler is the thin admin surface over the pricing catalog. The
// booking flow only reads these rows; price math lives in the billing domain.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTaxRequest struct {
	Name         string `json:"name"`
	TaxCode      string `json:"tax_code" binding:"required"`
	TaxCodeShort string `json:"tax_code_short"`
	Rate         uint   `json:"rate" binding:"required"`
}

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TaxID       *uint  `json:"tax_id"`
}

type CreatePackageRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
}

type CreateItemRequest struct {
	PackageID       uint    `json:"package_id" binding:"required"`
	Title           string  `json:"title" binding:"required"`
	TimeHrs         float64 `json:"time_hrs" binding:"required"`
	Price           float64 `json:"price" binding:"required"`
	DiscountPercent uint    `json:"discount_percent"`
}

type CreateExtraRequest struct {
	ServiceID uint    `json:"service_id" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	TimeHrs   float64 `json:"time_hrs" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	ToolTip   string  `json:"tool_tip"`
}

// ======================================================
// TAX
// ======================================================

func (h *CatalogHandler) CreateTax(c *gin.Context) {
	var req CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	tax := models.Tax{
		Name:         req.Name,
		TaxCode:      req.TaxCode,
		TaxCodeShort: req.TaxCodeShort,
		Rate:         req.Rate,
	}
	if err := h.db.Create(&tax).Error; err != nil {
		httperr.Internal(c, "create_failed", "could not create tax")
		return
	}

	c.JSON(201, tax)
}

func (h *CatalogHandler) ListTaxes(c *gin.Context) {
	var taxes []models.Tax
	if err := h.db.Order("id ASC").Find(&taxes).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list taxes")
		return
	}
	httpresp.List(c, taxes)
}

// ======================================================
// SERVICE
// ======================================================

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Service{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "slug already exists")
		return
	}

	svc := models.Service{
		Name:        req.Name,
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		TaxID:       req.TaxID,
	}
	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "create_failed", "could not create service")
		return
	}

	c.JSON(201, svc)
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Preload("Tax").Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list services")
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) GetServiceBySlug(c *gin.Context) {
	slug := strings.ToLower(c.Param("slug"))

	var svc models.Service
	if err := h.db.Preload("Tax").Where("slug = ?", slug).First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "service not found")
		return
	}

	var packages []models.Package
	if err := h.db.Where("service_id = ?", svc.ID).Find(&packages).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not load packages")
		return
	}

	packageIDs := make([]uint, 0, len(packages))
	for _, p := range packages {
		packageIDs = append(packageIDs, p.ID)
	}

	var items []models.Item
	if len(packageIDs) > 0 {
		if err := h.db.Where("package_id IN ?", packageIDs).Find(&items).Error; err != nil {
			httperr.Internal(c, "list_failed", "could not load items")
			return
		}
	}

	var extras []models.Extra
	if err := h.db.Where("service_id = ?", svc.ID).Find(&extras).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not load extras")
		return
	}

	httpresp.OK(c, gin.H{
		"service":  svc,
		"packages": packages,
		"items":    items,
		"extras":   extras,
	})
}

// ======================================================
// PACKAGE / ITEM / EXTRA
// ======================================================

func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	pkg := models.Package{
		ServiceID: req.ServiceID,
		Title:     req.Title,
	}
	if err := h.db.Create(&pkg).Error; err != nil {
		httperr.Internal(c, "create_failed", "could not create package")
		return
	}

	c.JSON(201, pkg)
}

func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	item := models.Item{
		PackageID:       req.PackageID,
		Title:           req.Title,
		TimeHrs:         req.TimeHrs,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
	}
	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "create_failed", "could not create item")
		return
	}

	c.JSON(201, item)
}

func (h *CatalogHandler) CreateExtra(c *gin.Context) {
	var req CreateExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	extra := models.Extra{
		ServiceID: req.ServiceID,
		Title:     req.Title,
		TimeHrs:   req.TimeHrs,
		Price:     req.Price,
		ToolTip:   req.ToolTip,
	}
	if err := h.db.Create(&extra).Error; err != nil {
		httperr.Internal(c, "create_failed", "could not create extra")
		return
	}

	c.JSON(201, extra)
}

func (h *CatalogHandler) ListItems(c *gin.Context) {
	q := h.db.Order("id ASC")
	if pkg := c.Query("package_id"); pkg != "" {
		if id, err := strconv.ParseUint(pkg, 10, 32); err == nil {
			q = q.Where("package_id = ?", uint(id))
		}
	}

	var items []models.Item
	if err := q.Find(&items).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list items")
		return
	}
	httpresp.List(c, items)
}

func (h *CatalogHandler) ListExtras(c *gin.Context) {
	q := h.db.Order("id ASC")
	if svc := c.Query("service_id"); svc != "" {
		if id, err := strconv.ParseUint(svc, 10, 32); err == nil {
			q = q.Where("service_id = ?", uint(id))
		}
	}

	var extras []models.Extra
	if err := q.Find(&extras).Error; err != nil {
		httperr.Internal(c, "list_failed", "could not list extras")
		return
	}
	httpresp.List(c, extras)
}

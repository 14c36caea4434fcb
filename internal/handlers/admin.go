// internal/handlers/admin.go
package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/services"
	"github.com/javajoker/perfume-store/internal/utils"
)

type AdminHandler struct {
	orderService   *services.OrderService
	catalogService *services.CatalogService
	storageService *services.StorageService
	exportService  *services.ExportService
	cfg            *config.Config
}

func NewAdminHandler(
	orderService *services.OrderService,
	catalogService *services.CatalogService,
	storageService *services.StorageService,
	exportService *services.ExportService,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{
		orderService:   orderService,
		catalogService: catalogService,
		storageService: storageService,
		exportService:  exportService,
		cfg:            cfg,
	}
}

// GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	page, err := utils.ParsePage(c)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "page"), gin.H{"page": "A valid integer is required."})
		return
	}

	completed, ok := parseCompletedFilter(c)
	if !ok {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "completed"), gin.H{"completed": "Must be true or false."})
		return
	}

	pageSize := h.cfg.Catalog.PageSize
	result, err := h.orderService.ListAllOrders(services.OrderListParams{
		Completed: completed,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		respondError(c, err, "order")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(
		result.Orders,
		result.Count,
		utils.PaginationParams{Page: page, PageSize: pageSize},
		c.Request.URL,
	))
}

// POST /admin/orders/:id/complete
func (h *AdminHandler) CompleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		utils.NotFoundResponse(c, "order")
		return
	}

	order, changed, err := h.orderService.CompleteOrder(orderID)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order":   order,
		"changed": changed,
	})
}

// DELETE /admin/orders/:id
func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		utils.NotFoundResponse(c, "order")
		return
	}

	if err := h.orderService.DeleteOrder(orderID); err != nil {
		respondError(c, err, "order")
		return
	}
	utils.NoContentResponse(c)
}

// GET /admin/orders/export
func (h *AdminHandler) ExportOrders(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	completed, ok := parseCompletedFilter(c)
	if !ok {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "completed"), gin.H{"completed": "Must be true or false."})
		return
	}

	result, err := h.orderService.ListAllOrders(services.OrderListParams{Completed: completed, Page: 1})
	if err != nil {
		respondError(c, err, "order")
		return
	}

	file, err := h.exportService.OrdersWorkbook(result.Orders)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().UTC().Format("20060102_150405"))

	// Set response headers for download
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		logrus.WithError(err).Error("Failed to write orders workbook")
	}
}

// POST /admin/brands
func (h *AdminHandler) CreateBrand(c *gin.Context) {
	var req services.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	brand, err := h.catalogService.CreateBrand(&req)
	if err != nil {
		respondError(c, err, "brand")
		return
	}
	utils.CreatedResponse(c, brand)
}

// POST /admin/groups
func (h *AdminHandler) CreateGroup(c *gin.Context) {
	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	group, err := h.catalogService.CreateGroup(&req)
	if err != nil {
		respondError(c, err, "group")
		return
	}
	utils.CreatedResponse(c, group)
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalogService.CreateProduct(&req)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	utils.CreatedResponse(c, product)
}

// POST /admin/products/:id/image
func (h *AdminHandler) UploadProductImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		utils.NotFoundResponse(c, "product")
		return
	}

	exists, err := h.catalogService.ProductExists(productID)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	if !exists {
		utils.NotFoundResponse(c, "product")
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		utils.ValidationErrorResponse(c, map[string]string{"image": i18n.T(lang, i18n.KeyValidationRequired)})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err, "product")
		return
	}
	defer file.Close()

	upload, err := h.storageService.UploadProductImage(c.Request.Context(), file, header.Filename, header.Size)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	previous, err := h.catalogService.SetProductImage(productID, upload.URL)
	if err != nil {
		if delErr := h.storageService.DeleteByURL(c.Request.Context(), upload.URL); delErr != nil {
			logrus.WithError(delErr).WithField("product_id", productID).Warn("Failed to delete orphaned product image")
		}
		respondError(c, err, "product")
		return
	}

	if previous != "" && previous != upload.URL {
		if err := h.storageService.DeleteByURL(c.Request.Context(), previous); err != nil {
			logrus.WithError(err).WithField("product_id", productID).Warn("Failed to delete previous product image")
		}
	}

	utils.CreatedResponse(c, upload)
}

func parseCompletedFilter(c *gin.Context) (*bool, bool) {
	raw := c.Query("completed")
	if raw == "" {
		return nil, true
	}
	completed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &completed, true
}

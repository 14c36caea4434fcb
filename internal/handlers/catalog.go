// internal/handlers/catalog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/services"
	"github.com/javajoker/perfume-store/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /brands
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.catalogService.ListBrands()
	if err != nil {
		respondError(c, err, "brand")
		return
	}
	utils.SuccessResponse(c, brands)
}

// GET /groups
func (h *CatalogHandler) ListGroups(c *gin.Context) {
	groups, err := h.catalogService.ListGroups()
	if err != nil {
		respondError(c, err, "group")
		return
	}
	utils.SuccessResponse(c, groups)
}

// GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	page, err := utils.ParsePage(c)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "page"), gin.H{"page": "A valid integer is required."})
		return
	}

	omitPage, _ := strconv.ParseBool(c.Query("omit_page"))
	userID, _ := utils.GetUserIDFromContext(c)

	result, err := h.catalogService.ListProducts(userID, services.ProductListParams{
		ProductFilter: productFilter(c),
		Page:          page,
		OmitPage:      omitPage,
	})
	if err != nil {
		respondError(c, err, "product")
		return
	}

	if omitPage {
		utils.SuccessResponseWithMeta(c, result.Products, gin.H{"count": result.Count})
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(
		result.Products,
		result.Count,
		utils.PaginationParams{Page: result.Page, PageSize: result.PageSize},
		c.Request.URL,
	))
}

// GET /products/count
func (h *CatalogHandler) CountProducts(c *gin.Context) {
	count, err := h.catalogService.CountProducts(productFilter(c))
	if err != nil {
		respondError(c, err, "product")
		return
	}
	utils.SuccessResponse(c, gin.H{"count": count})
}

// GET /products/:ref
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	product, err := h.catalogService.GetProduct(userID, c.Param("ref"))
	if err != nil {
		respondError(c, err, "product")
		return
	}
	utils.SuccessResponse(c, product)
}

// GET /products/:ref/groups
func (h *CatalogHandler) GetProductGroups(c *gin.Context) {
	groups, err := h.catalogService.ProductGroups(c.Param("ref"))
	if err != nil {
		respondError(c, err, "product")
		return
	}
	utils.SuccessResponse(c, groups)
}

func productFilter(c *gin.Context) services.ProductFilter {
	return services.ProductFilter{
		Brands:   c.QueryArray("brands"),
		Groups:   c.QueryArray("groups"),
		Gender:   c.Query("gender"),
		Season:   c.Query("season"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
}

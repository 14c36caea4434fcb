// internal/handlers/favorite.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/perfume-store/internal/services"
	"github.com/javajoker/perfume-store/internal/utils"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// GET /favorites
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	favorites, err := h.favoriteService.ListFavorites(userID)
	if err != nil {
		respondError(c, err, "favorite")
		return
	}
	utils.SuccessResponse(c, favorites)
}

// POST /favorites
func (h *FavoriteHandler) CreateFavorite(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	var req services.CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	favorite, err := h.favoriteService.CreateFavorite(userID, &req)
	if err != nil {
		respondError(c, err, "favorite")
		return
	}
	utils.CreatedResponse(c, favorite)
}

// DELETE /favorites/:id
func (h *FavoriteHandler) DeleteFavorite(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	favoriteID, ok := parseIDParam(c, "id")
	if !ok {
		utils.NotFoundResponse(c, "favorite")
		return
	}

	if err := h.favoriteService.DeleteFavorite(userID, favoriteID); err != nil {
		respondError(c, err, "favorite")
		return
	}
	utils.NoContentResponse(c)
}

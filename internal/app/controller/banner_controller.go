package controller

import (
	"errors"
	"net/http"

	"github.com/arteliving/arteliving-backend/internal/app/service"
	apperrors "github.com/arteliving/arteliving-backend/internal/errors"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type BannerController struct {
	bannerService service.BannerService
}

func NewBannerController(bannerService service.BannerService) *BannerController {
	return &BannerController{
		bannerService: bannerService,
	}
}

type BannerRequest struct {
	Title    string `json:"title" binding:"required"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url" binding:"required"`
	LinkURL  string `json:"link_url"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

func (r BannerRequest) toInput() service.BannerInput {
	return service.BannerInput{
		Title:    r.Title,
		Subtitle: r.Subtitle,
		ImageURL: r.ImageURL,
		LinkURL:  r.LinkURL,
		Position: r.Position,
		Active:   r.Active,
	}
}

// ListActiveBanners returns the banners shown on the storefront
// GET /api/v1/banners
func (ctrl *BannerController) ListActiveBanners(c *gin.Context) {
	banners, err := ctrl.bannerService.ListActiveBanners()
	if err != nil {
		apperrors.InternalError(c, "failed to fetch banners")
		return
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// ListBanners returns every banner, active or not (Admin only)
// GET /api/v1/admin/banners
func (ctrl *BannerController) ListBanners(c *gin.Context) {
	banners, err := ctrl.bannerService.ListBanners()
	if err != nil {
		apperrors.InternalError(c, "failed to fetch banners")
		return
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// CreateBanner creates a banner (Admin only)
// POST /api/v1/admin/banners
func (ctrl *BannerController) CreateBanner(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	banner, err := ctrl.bannerService.CreateBanner(req.toInput())
	if err != nil {
		ctrl.respondError(c, err, "failed to create banner")
		return
	}

	log.Info("Banner created", map[string]interface{}{
		"banner_id": banner.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"banner": banner})
}

// UpdateBanner updates a banner (Admin only)
// PUT /api/v1/admin/banners/:id
func (ctrl *BannerController) UpdateBanner(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	banner, err := ctrl.bannerService.UpdateBanner(id, req.toInput())
	if err != nil {
		ctrl.respondError(c, err, "failed to update banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{"banner": banner})
}

// DeleteBanner removes a banner (Admin only)
// DELETE /api/v1/admin/banners/:id
func (ctrl *BannerController) DeleteBanner(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.bannerService.DeleteBanner(id); err != nil {
		ctrl.respondError(c, err, "failed to delete banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "banner deleted"})
}

func (ctrl *BannerController) respondError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrBannerNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "banner not found")
	case errors.Is(err, service.ErrBannerInvalid):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "banner title and image are required")
	default:
		log.Error(fallback, err, nil)
		apperrors.InternalError(c, fallback)
	}
}

package controller

import (
	"errors"
	"net/http"

	"github.com/arteliving/arteliving-backend/internal/app/service"
	apperrors "github.com/arteliving/arteliving-backend/internal/errors"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SettingController struct {
	settingService service.SettingService
}

func NewSettingController(settingService service.SettingService) *SettingController {
	return &SettingController{
		settingService: settingService,
	}
}

type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// GetSettings returns all store settings
// GET /api/v1/settings
func (ctrl *SettingController) GetSettings(c *gin.Context) {
	settings, err := ctrl.settingService.GetSettings(c.Request.Context())
	if err != nil {
		apperrors.InternalError(c, "failed to fetch settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetSetting returns one setting by key
// GET /api/v1/settings/:key
func (ctrl *SettingController) GetSetting(c *gin.Context) {
	setting, err := ctrl.settingService.GetSetting(c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrSettingNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "setting not found")
			return
		}
		apperrors.InternalError(c, "failed to fetch setting")
		return
	}

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

// UpdateSetting upserts a setting (Admin only)
// PUT /api/v1/admin/settings/:key
func (ctrl *SettingController) UpdateSetting(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	setting, err := ctrl.settingService.UpdateSetting(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		log.Error("Failed to update setting", err, map[string]interface{}{
			"key": c.Param("key"),
		})
		apperrors.InternalError(c, "failed to update setting")
		return
	}

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

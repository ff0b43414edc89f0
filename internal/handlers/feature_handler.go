package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
)

// FeatureHandler reports which sections of the module are enabled.
type FeatureHandler struct {
	visibility engine.Visibility
}

// NewFeatureHandler creates a new FeatureHandler.
func NewFeatureHandler(visibility engine.Visibility) *FeatureHandler {
	return &FeatureHandler{visibility: visibility}
}

// GetFeatures handles listing the feature visibility map.
// @Summary     Get features
// @Description List every feature of the budget module with its enabled state
// @Tags        features
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  engine.FeatureState "Features"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /features [get]
func (h *FeatureHandler) GetFeatures(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"features": h.visibility.States()})
}

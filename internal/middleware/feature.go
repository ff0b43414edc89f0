package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
	apperrors "github.com/cyril-numerily/dashboard-numerily-sub000/internal/errors"
)

// RequireFeature aborts with FEATURE_DISABLED when feature is switched off.
func RequireFeature(visibility engine.Visibility, feature engine.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !visibility.Enabled(feature) {
			abortWithError(c, apperrors.ErrFeatureDisabled)
			return
		}
		c.Next()
	}
}

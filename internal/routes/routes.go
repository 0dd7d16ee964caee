package routes

import (
	"net/http"
	"strings"

	"skillboard_backend/internal/handlers"
	"skillboard_backend/internal/middleware"
	"skillboard_backend/internal/models"
	"skillboard_backend/internal/services/dto"
	"skillboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the whole HTTP surface under /api/v1 plus the
// landing redirect at /.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(methodNotAllowed)

	r.GET("/", middleware.OptionalAuthMiddleware(), landingRedirect)

	api := r.Group("/api/v1")

	// Public browsing and endorsing. Optional auth lets owners and admins
	// see hidden profiles; the session cookie identifies anonymous
	// endorsers.
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware())
	public.Use(middleware.SessionMiddleware())
	{
		h.StudentHandler.RegisterRoutes(public)
		h.EndorsementHandler.RegisterRoutes(public)
		h.FileHandler.RegisterRoutes(public)
	}

	h.AuthHandler.RegisterRoutes(api)
	h.AdminHandler.RegisterRoutes(api)

	private := api.Group("")
	private.Use(middleware.AuthMiddleware())
	{
		h.ProfileHandler.RegisterRoutes(private)
	}
}

// landingRedirect sends each visitor to their home surface.
func landingRedirect(c *gin.Context) {
	switch middleware.GetRole(c) {
	case string(models.UserRoleAdmin):
		c.Redirect(http.StatusFound, "/api/v1/admin/dashboard")
	case string(models.UserRoleStudent):
		c.Redirect(http.StatusFound, "/api/v1/profile")
	default:
		c.Redirect(http.StatusFound, "/api/v1/students")
	}
}

// methodNotAllowed answers 405. The endorse endpoint keeps its own wire
// shape even for wrong-method requests.
func methodNotAllowed(c *gin.Context) {
	if strings.HasSuffix(c.Request.URL.Path, "/endorse") {
		c.JSON(http.StatusMethodNotAllowed, dto.EndorseResponse{OK: false, Error: "POST required"})
		return
	}
	apperrors.HandleError(c, apperrors.ErrMethodNotAllowed)
}

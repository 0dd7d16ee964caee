package handlers

import (
	"net/http"

	"skillboard_backend/internal/middleware"
	"skillboard_backend/internal/models"
	"skillboard_backend/internal/services"
	"skillboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	authService        services.AuthService
	adminService       services.AdminService
	studentService     services.StudentService
	endorsementService services.EndorsementService
}

func NewAdminHandler(
	base *BaseHandler,
	authService services.AuthService,
	adminService services.AdminService,
	studentService services.StudentService,
	endorsementService services.EndorsementService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:        base,
		authService:        authService,
		adminService:       adminService,
		studentService:     studentService,
		endorsementService: endorsementService,
	}
}

// RegisterRoutes registers the admin subtree. Signup is open; everything
// else requires an authenticated admin.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")

	admin.POST("/signup", h.Signup)

	protected := admin.Group("")
	protected.Use(middleware.AuthMiddleware())
	protected.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		protected.GET("/dashboard", h.Dashboard)
		protected.GET("/students", h.ListStudents)
		protected.GET("/students/:id", h.GetStudent)
		protected.DELETE("/students/:id", h.DeleteStudent)
		protected.POST("/skills/:skillId/endorse", h.OverrideEndorse)
		protected.GET("/skills/:skillId/endorsements/audit", h.AuditEndorsements)
		protected.POST("/skills/:skillId/endorsements/repair", h.RepairEndorsements)
	}
}

func (h *AdminHandler) Signup(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.RegisterAdmin(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	db := h.GetDB(c)

	response, err := h.adminService.Dashboard(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) ListStudents(c *gin.Context) {
	db := h.GetDB(c)

	response, err := h.adminService.ListStudents(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) GetStudent(c *gin.Context) {
	db := h.GetDB(c)
	ident := middleware.GetIdentity(c)

	response, err := h.studentService.GetStudent(c.Request.Context(), db, c.Param("id"), ident)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) DeleteStudent(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.adminService.DeleteStudent(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Student deleted",
	})
}

// OverrideEndorse bumps the counter directly without recording an
// endorsement row. Visibility and dedupe checks do not apply.
func (h *AdminHandler) OverrideEndorse(c *gin.Context) {
	db := h.GetDB(c)

	count, err := h.endorsementService.AdminEndorse(db, c.Param("skillId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EndorseResponse{OK: true, Count: &count})
}

func (h *AdminHandler) AuditEndorsements(c *gin.Context) {
	db := h.GetDB(c)

	response, err := h.endorsementService.Audit(db, c.Param("skillId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AdminHandler) RepairEndorsements(c *gin.Context) {
	db := h.GetDB(c)

	count, err := h.endorsementService.Repair(db, c.Param("skillId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EndorseResponse{OK: true, Count: &count})
}

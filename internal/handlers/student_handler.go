package handlers

import (
	"net/http"

	"skillboard_backend/internal/middleware"
	"skillboard_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	*BaseHandler
	studentService     services.StudentService
	leaderboardService services.LeaderboardService
}

func NewStudentHandler(
	base *BaseHandler,
	studentService services.StudentService,
	leaderboardService services.LeaderboardService,
) *StudentHandler {
	return &StudentHandler{
		BaseHandler:        base,
		studentService:     studentService,
		leaderboardService: leaderboardService,
	}
}

// RegisterRoutes registers the public browsing routes. They are mounted
// behind OptionalAuthMiddleware so owners and admins can see hidden
// profiles.
func (h *StudentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/students", h.ListStudents)
	rg.GET("/students/:id", h.GetStudent)
	rg.GET("/leaderboard", h.Leaderboard)
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	db := h.GetDB(c)

	response, err := h.leaderboardService.PublicStudents(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	db := h.GetDB(c)
	ident := middleware.GetIdentity(c)

	response, err := h.studentService.GetStudent(c.Request.Context(), db, c.Param("id"), ident)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *StudentHandler) Leaderboard(c *gin.Context) {
	db := h.GetDB(c)

	response, err := h.leaderboardService.Leaderboard(db, c.Query("by"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

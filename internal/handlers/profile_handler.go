package handlers

import (
	"net/http"

	"skillboard_backend/internal/services"
	"skillboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	studentService services.StudentService
}

func NewProfileHandler(base *BaseHandler, studentService services.StudentService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		studentService: studentService,
	}
}

// RegisterRoutes registers the profile editor routes. Mounted behind
// AuthMiddleware.
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	{
		profile.GET("", h.GetOwnProfile)
		profile.PUT("", h.EditProfile)
	}
}

func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	response, err := h.studentService.GetOwnProfile(c.Request.Context(), db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) EditProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ProfileEditRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	// An uploaded portfolio file rides along in the multipart body.
	if fileHeader, err := c.FormFile("portfolio_file"); err == nil && fileHeader != nil {
		f, err := fileHeader.Open()
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		defer f.Close()

		req.PortfolioFile = &dto.UploadedFile{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Reader:      f,
		}
	}

	db := h.GetDB(c)

	response, err := h.studentService.EditProfile(c.Request.Context(), db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if len(response.Errors) > 0 {
		// Partial success still answers 200; only a fully failed cycle is
		// a client error.
		if !response.ProfileUpdated && !response.SkillAdded && !response.ProjectAdded &&
			!response.AwardAdded && !response.PortfolioItemAdded {
			status = http.StatusBadRequest
		}
	}

	c.JSON(status, response)
}

package handlers

import (
	"net/http"

	"skillboard_backend/internal/logger"
	"skillboard_backend/internal/middleware"
	"skillboard_backend/internal/services"
	"skillboard_backend/internal/services/dto"
	"skillboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type EndorsementHandler struct {
	*BaseHandler
	endorsementService services.EndorsementService
}

func NewEndorsementHandler(base *BaseHandler, endorsementService services.EndorsementService) *EndorsementHandler {
	return &EndorsementHandler{
		BaseHandler:        base,
		endorsementService: endorsementService,
	}
}

// RegisterRoutes registers the public endorsement route. Mounted behind
// OptionalAuthMiddleware and SessionMiddleware; anonymous visitors endorse
// with their session key alone.
func (h *EndorsementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/skills/:skillId/endorse", h.Endorse)
}

func (h *EndorsementHandler) Endorse(c *gin.Context) {
	db := h.GetDB(c)
	ident := middleware.GetIdentity(c)

	count, err := h.endorsementService.Endorse(db, c.Param("skillId"), ident)
	if err != nil {
		h.writeEndorseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EndorseResponse{OK: true, Count: &count})
}

// writeEndorseError keeps the endpoint's wire shape: {ok: false, error: msg}
// with the status carried by the error.
func (h *EndorsementHandler) writeEndorseError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		logger.CtxWithError(ctx, "endorsement failed", err, "path", c.Request.URL.Path)
		appErr = apperrors.InternalError(err)
	} else {
		logger.CtxWarn(ctx, "endorsement rejected", "error", appErr.Message, "path", c.Request.URL.Path)
	}

	c.JSON(appErr.HTTPCode, dto.EndorseResponse{OK: false, Error: appErr.Message})
}

package dashboard

import (
	"net/http"

	"nexushr/internal/scope"
	"nexushr/internal/shared/apperror"
	"nexushr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetStats(c *gin.Context) {
	viewer := scope.Resolve(c.GetString("user_id"), c.GetString("role"))

	resp, err := h.service.GetStats(c.Request.Context(), viewer)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

package payroll

import (
	"net/http"
	"strconv"

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

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetMe returns the caller's settled previous-month report, or the running
// month-to-date projection when ?period=current.
func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var (
		resp PayrollReport
		err  error
	)
	if c.Query("period") == "current" {
		resp, err = h.service.ComputeMonthToDate(c.Request.Context(), userID)
	} else {
		resp, err = h.service.ComputePreviousMonth(c.Request.Context(), userID)
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) RequestPayslip(c *gin.Context) {
	userID := c.GetString("user_id")

	resp, err := h.service.RequestPayslip(c.Request.Context(), userID, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, resp, nil)
}

func (h *Handler) DownloadPayslip(c *gin.Context) {
	userID := c.GetString("user_id")

	pdf, err := h.service.DownloadPayslip(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="payslip.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

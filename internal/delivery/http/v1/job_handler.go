package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Job listings are readable without authentication
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.Get)
		publicJobs.GET("/users/:user_id", handler.ListByUser)
	}

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
	}
}

type JobCreateRequest struct {
	Title       string           `json:"title" binding:"required,notblank"`
	Description string           `json:"description" binding:"required,notblank"`
	SalaryFrom  *decimal.Decimal `json:"salary_from"`
	SalaryTo    *decimal.Decimal `json:"salary_to"`
	IsActive    bool             `json:"is_active"`
}

// JobUpdateRequest carries the target id in the body. Pointer fields
// distinguish "absent" from an explicit zero value, so is_active can be
// set to false through an update.
type JobUpdateRequest struct {
	ID          int64            `json:"id" binding:"required"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	SalaryFrom  *decimal.Decimal `json:"salary_from"`
	SalaryTo    *decimal.Decimal `json:"salary_to"`
	IsActive    *bool            `json:"is_active"`
}

func (h *JobHandler) Create(c *gin.Context) {
	var req JobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Unprocessable(err.Error()))
		return
	}
	actorID := c.GetInt64(string(domain.KeyUserID))

	job := &domain.Job{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.SalaryFrom != nil {
		job.SalaryFrom = *req.SalaryFrom
	}
	if req.SalaryTo != nil {
		job.SalaryTo = *req.SalaryTo
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), actorID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job created", job)
}

func (h *JobHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	jobs, err := h.jobUC.ListJobs(c.Request.Context(), limit, skip)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", jobs)
}

func (h *JobHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	jobs, err := h.jobUC.ListJobsByUser(c.Request.Context(), userID, limit, skip)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

func (h *JobHandler) Update(c *gin.Context) {
	var req JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Unprocessable(err.Error()))
		return
	}
	actorID := c.GetInt64(string(domain.KeyUserID))

	patch := domain.JobPatch{
		Title:       req.Title,
		Description: req.Description,
		SalaryFrom:  req.SalaryFrom,
		SalaryTo:    req.SalaryTo,
		IsActive:    req.IsActive,
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), actorID, req.ID, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}
	actorID := c.GetInt64(string(domain.KeyUserID))

	job, err := h.jobUC.DeleteJob(c.Request.Context(), actorID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted", job)
}

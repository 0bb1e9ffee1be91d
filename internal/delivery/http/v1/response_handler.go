package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	responseUC domain.ResponseUsecase
}

func NewResponseHandler(protected *gin.RouterGroup, responseUC domain.ResponseUsecase) {
	handler := &ResponseHandler{responseUC: responseUC}

	responses := protected.Group("/responses")
	{
		responses.GET("", handler.List)
		responses.GET("/:id", handler.Get)
		responses.GET("/users/:user_id", handler.ListByUser)
		responses.GET("/jobs/:job_id", handler.ListByJob)
		responses.POST("", handler.Create)
		responses.PUT("", handler.Update)
		responses.DELETE("/:id", handler.Delete)
	}
}

type ResponseCreateRequest struct {
	JobID   int64  `json:"job_id" binding:"required"`
	Message string `json:"message" binding:"required,notblank"`
}

type ResponseUpdateRequest struct {
	ID      int64   `json:"id" binding:"required"`
	Message *string `json:"message"`
}

func (h *ResponseHandler) Create(c *gin.Context) {
	var req ResponseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Unprocessable(err.Error()))
		return
	}
	actorID := c.GetInt64(string(domain.KeyUserID))

	resp, err := h.responseUC.CreateResponse(c.Request.Context(), actorID, req.JobID, req.Message)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Response created", resp)
}

// List returns responses the actor may see: their own plus responses to
// jobs they own.
func (h *ResponseHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	actorID := c.GetInt64(string(domain.KeyUserID))

	responses, err := h.responseUC.ListVisible(c.Request.Context(), actorID, limit, skip)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Response list", responses)
}

func (h *ResponseHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}
	actorID := c.GetInt64(string(domain.KeyUserID))

	resp, err := h.responseUC.GetResponse(c.Request.Context(), actorID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Response details", resp)
}

func (h *ResponseHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	actorID := c.GetInt64(string(domain.KeyUserID))

	responses, err := h.responseUC.ListByUserID(c.Request.Context(), actorID, userID, limit, skip)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Response list", responses)
}

func (h *ResponseHandler) ListByJob(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("job_id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	actorID := c.GetInt64(string(domain.KeyUserID))

	responses, err := h.responseUC.ListByJobID(c.Request.Context(), actorID, jobID, limit, skip)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Response list", responses)
}

func (h *ResponseHandler) Update(c *gin.Context) {
	var req ResponseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Unprocessable(err.Error()))
		return
	}
	actorID := c.GetInt64(string(domain.KeyUserID))

	resp, err := h.responseUC.UpdateResponse(c.Request.Context(), actorID, req.ID, domain.ResponsePatch{
		Message: req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Response updated", resp)
}

func (h *ResponseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}
	actorID := c.GetInt64(string(domain.KeyUserID))

	resp, err := h.responseUC.DeleteResponse(c.Request.Context(), actorID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Response deleted", resp)
}

package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
	authUC domain.AuthUsecase
}

func NewUserHandler(public *gin.RouterGroup, protected *gin.RouterGroup, userUC domain.UserUsecase, authUC domain.AuthUsecase) {
	handler := &UserHandler{userUC: userUC, authUC: authUC}

	// Registration is the only public user route
	public.POST("/users", handler.Register)

	users := protected.Group("/users")
	{
		users.GET("", handler.List)
		users.GET("/:id", handler.Get)
		users.PUT("", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}
}

type UserCreateRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Password2 string `json:"password2" binding:"required,eqfield=Password"`
	IsCompany bool   `json:"is_company"`
}

type UserUpdateRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	IsCompany *bool   `json:"is_company"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Unprocessable(err.Error()))
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.IsCompany)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User registered", user)
}

func (h *UserHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	actorID := c.GetInt64(string(domain.KeyUserID))

	users, err := h.userUC.ListVisible(c.Request.Context(), actorID, limit, skip)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User list", users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}
	actorID := c.GetInt64(string(domain.KeyUserID))

	user, err := h.userUC.GetProfile(c.Request.Context(), actorID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User details", user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Unprocessable(err.Error()))
		return
	}
	actorID := c.GetInt64(string(domain.KeyUserID))

	patch := domain.UserPatch{
		Name:      req.Name,
		Email:     req.Email,
		IsCompany: req.IsCompany,
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), actorID, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User updated", user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}
	actorID := c.GetInt64(string(domain.KeyUserID))

	user, err := h.userUC.DeleteProfile(c.Request.Context(), actorID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted", user)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/services"
	"github.com/phone_inventory/pkg/utils"
)

// UserHandler 封装了用户管理相关的 HTTP 处理逻辑（仅管理员可用）
type UserHandler struct {
	service services.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例
func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// UserListData 是用户列表的响应数据
type UserListData struct {
	Items []models.User `json:"items"`
	Total int           `json:"total"`
}

// ListUsers godoc
// @Summary 获取用户列表
// @Description 返回全部用户，待审批用户排在最前
// @Tags Users
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=UserListData}
// @Failure 403 {object} utils.APIErrorResponse "仅管理员可执行此操作"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /admin/users [get]
// @Security BearerAuth
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers()
	if err != nil {
		utils.RespondInternalServerError(c, "获取用户列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, UserListData{Items: users, Total: len(users)}, "用户列表获取成功")
}

// UpdateRolePayload 是变更用户角色请求的绑定结构体
type UpdateRolePayload struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole godoc
// @Summary 变更用户角色
// @Description 管理员把用户设为 admin 或 user。管理员不能变更自己的角色。
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "用户ID"
// @Param payload body UpdateRolePayload true "目标角色"
// @Success 200 {object} utils.SuccessResponse{data=models.User}
// @Failure 400 {object} utils.APIErrorResponse "无效的角色值"
// @Failure 403 {object} utils.APIErrorResponse "仅管理员可执行此操作，或试图修改自己"
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /admin/users/{id}/role [patch]
// @Security BearerAuth
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	var payload UpdateRolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, err := h.service.UpdateUserRole(c.GetString("userID"), c.Param("id"), payload.Role)
	if err != nil {
		h.respondUserUpdateError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, user, "用户角色已更新")
}

// UpdateStatusPayload 是变更用户审批状态请求的绑定结构体
type UpdateStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// UpdateUserStatus godoc
// @Summary 审批用户
// @Description 管理员把用户审批状态设为 approved/rejected/pending。管理员不能变更自己的审批状态。
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "用户ID"
// @Param payload body UpdateStatusPayload true "目标审批状态"
// @Success 200 {object} utils.SuccessResponse{data=models.User}
// @Failure 400 {object} utils.APIErrorResponse "无效的审批状态值"
// @Failure 403 {object} utils.APIErrorResponse "仅管理员可执行此操作，或试图修改自己"
// @Failure 404 {object} utils.APIErrorResponse "用户未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /admin/users/{id}/status [patch]
// @Security BearerAuth
func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	var payload UpdateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, err := h.service.UpdateUserStatus(c.GetString("userID"), c.Param("id"), payload.Status)
	if err != nil {
		h.respondUserUpdateError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, user, "用户审批状态已更新")
}

// respondUserUpdateError 把用户管理的业务错误映射为 HTTP 响应
func (h *UserHandler) respondUserUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.RespondNotFoundError(c, "用户")
	case errors.Is(err, services.ErrSelfModification):
		utils.RespondAPIError(c, http.StatusForbidden, services.ErrSelfModification.Error(), nil)
	case errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrInvalidUserStatus):
		utils.RespondValidationError(c, err.Error())
	default:
		utils.RespondInternalServerError(c, "更新用户失败", err.Error())
	}
}

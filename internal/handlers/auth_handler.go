package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/phone_inventory/configs"
	"github.com/phone_inventory/internal/auth"
	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/services"
	"github.com/phone_inventory/pkg/idp"
	"github.com/phone_inventory/pkg/utils"
)

// AuthHandler 封装了认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	userService services.UserService
	verifier    idp.Verifier
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(userService services.UserService, verifier idp.Verifier) *AuthHandler {
	return &AuthHandler{userService: userService, verifier: verifier}
}

type LoginRequest struct {
	// AccessToken 是前端完成身份提供方授权后拿到的访问令牌
	AccessToken string `json:"accessToken" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login godoc
// @Summary 登录
// @Description 校验身份提供方访问令牌，登记（或刷新）用户档案并返回本服务的 JWT。系统首个用户自动成为已批准的管理员。
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body LoginRequest true "身份提供方访问令牌"
// @Success 200 {object} utils.SuccessResponse{data=LoginResponse} "登录成功，返回 Token 和用户信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "访问令牌无效"
// @Failure 500 {object} utils.APIErrorResponse "无法生成Token"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	profile, err := h.verifier.Verify(req.AccessToken)
	if err != nil {
		if errors.Is(err, idp.ErrTokenRejected) {
			utils.RespondUnauthorizedError(c, idp.ErrTokenRejected.Error())
			return
		}
		utils.RespondInternalServerError(c, "身份提供方校验失败", err.Error())
		return
	}

	user, err := h.userService.SignIn(*profile)
	if err != nil {
		utils.RespondInternalServerError(c, "用户登记失败", err.Error())
		return
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		Status: string(user.Status),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Issuer:    "phone_inventory",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(configs.AppConfig.JWTSecret))
	if err != nil {
		utils.RespondInternalServerError(c, "无法生成Token", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, LoginResponse{Token: tokenString, User: *user}, "登录成功")
}

// Me godoc
// @Summary 获取当前用户
// @Description 返回当前登录用户的最新档案（角色与审批状态以数据库为准）
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.SuccessResponse{data=models.User}
// @Failure 401 {object} utils.APIErrorResponse "未认证或 Token 无效/过期"
// @Failure 404 {object} utils.APIErrorResponse "用户不存在"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondNotFoundError(c, "用户")
			return
		}
		utils.RespondInternalServerError(c, "获取用户信息失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, user, "")
}

// Logout godoc
// @Summary 登出
// @Description 将当前 Token 加入拒绝列表使其失效
// @Tags auth
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Success 200 {object} utils.SuccessResponse "成功登出"
// @Failure 400 {object} utils.APIErrorResponse "错误的请求 (例如，上下文中缺少JTI或EXP)"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jtiVal, jtiExists := c.Get("jti")
	expVal, expExists := c.Get("exp")

	if !jtiExists || !expExists {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: JTI or EXP not found in context", nil)
		return
	}

	jti, okJTI := jtiVal.(string)
	exp, okEXP := expVal.(time.Time)

	if !okJTI || jti == "" {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: Invalid JTI", nil)
		return
	}
	if !okEXP {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: Invalid EXP", nil)
		return
	}

	auth.AddToDenylist(jti, exp)
	utils.RespondSuccess(c, http.StatusOK, nil, "成功登出")
}

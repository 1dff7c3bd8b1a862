package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/repositories"
	"github.com/phone_inventory/internal/services"
	"github.com/phone_inventory/pkg/utils"
)

// PhoneNumberHandler 封装了电话号码相关的 HTTP 处理逻辑
type PhoneNumberHandler struct {
	service services.PhoneNumberService
}

// NewPhoneNumberHandler 创建一个新的 PhoneNumberHandler 实例
func NewPhoneNumberHandler(service services.PhoneNumberService) *PhoneNumberHandler {
	return &PhoneNumberHandler{service: service}
}

// 定义号码列表的分页响应结构
type PagedPhoneNumbersData struct {
	Items      []models.PhoneNumber `json:"items"`
	Pagination PaginationInfo       `json:"pagination"`
}

// GetPhoneNumbers godoc
// @Summary 获取号码列表
// @Description 根据查询参数获取号码列表，支持分页、搜索、状态和号段过滤
// @Tags PhoneNumbers
// @Accept json
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(50)
// @Param search query string false "搜索关键词 (匹配号码或客户名)"
// @Param status query string false "号码状态过滤 (FREE 或 IN_USE)"
// @Param prefix query string false "号段前缀过滤 (可带 XX 后缀)"
// @Param includeHistory query bool false "是否附带使用历史" default(false)
// @Success 200 {object} utils.SuccessResponse{data=PagedPhoneNumbersData} "成功响应，包含号码列表和分页信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /phones [get]
// @Security BearerAuth
func (h *PhoneNumberHandler) GetPhoneNumbers(c *gin.Context) {
	type GetPhoneNumbersQuery struct {
		Page           int    `form:"page,default=1"`
		Limit          int    `form:"limit,default=50"`
		Search         string `form:"search"`
		Status         string `form:"status"`
		Prefix         string `form:"prefix"`
		IncludeHistory bool   `form:"includeHistory"`
	}

	var queryParams GetPhoneNumbersQuery
	if err := c.ShouldBindQuery(&queryParams); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if queryParams.Limit <= 0 {
		queryParams.Limit = 50
	}
	if queryParams.Page <= 0 {
		queryParams.Page = 1
	}
	if queryParams.Status != "" && !models.IsValidPhoneStatus(queryParams.Status) {
		utils.RespondValidationError(c, "无效的状态值: "+queryParams.Status)
		return
	}

	phones, totalItems, err := h.service.GetPhoneNumbers(repositories.ListPhoneNumbersParams{
		Search:      queryParams.Search,
		Status:      queryParams.Status,
		Prefix:      queryParams.Prefix,
		Limit:       queryParams.Limit,
		Offset:      (queryParams.Page - 1) * queryParams.Limit,
		WithHistory: queryParams.IncludeHistory,
	})
	if err != nil {
		utils.RespondInternalServerError(c, "获取号码列表失败", err.Error())
		return
	}

	totalPages := (totalItems + int64(queryParams.Limit) - 1) / int64(queryParams.Limit)

	pagedData := PagedPhoneNumbersData{
		Items: phones,
		Pagination: PaginationInfo{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: queryParams.Page,
			PageSize:    queryParams.Limit,
		},
	}

	utils.RespondSuccess(c, http.StatusOK, pagedData, "号码列表获取成功")
}

// GetPhoneNumberByID godoc
// @Summary 获取号码详情
// @Description 根据ID获取单个号码及其按时间排序的完整使用历史
// @Tags PhoneNumbers
// @Produce json
// @Param id path string true "号码ID"
// @Success 200 {object} utils.SuccessResponse{data=models.PhoneNumber}
// @Failure 404 {object} utils.APIErrorResponse "号码未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /phones/{id} [get]
// @Security BearerAuth
func (h *PhoneNumberHandler) GetPhoneNumberByID(c *gin.Context) {
	phone, err := h.service.GetPhoneNumberByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrPhoneNumberNotFound) {
			utils.RespondNotFoundError(c, "号码")
			return
		}
		utils.RespondInternalServerError(c, "获取号码详情失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, phone, "")
}

// 定义使用历史的分页响应结构
type PagedHistoryData struct {
	Items      []models.UsageHistoryEntry `json:"items"`
	Pagination PaginationInfo             `json:"pagination"`
}

// GetPhoneNumberHistory godoc
// @Summary 获取号码使用历史
// @Description 分页获取某号码的使用历史，按事件时间升序
// @Tags PhoneNumbers
// @Produce json
// @Param id path string true "号码ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(50)
// @Success 200 {object} utils.SuccessResponse{data=PagedHistoryData}
// @Failure 404 {object} utils.APIErrorResponse "号码未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /phones/{id}/history [get]
// @Security BearerAuth
func (h *PhoneNumberHandler) GetPhoneNumberHistory(c *gin.Context) {
	type HistoryQuery struct {
		Page  int `form:"page,default=1"`
		Limit int `form:"limit,default=50"`
	}
	var queryParams HistoryQuery
	if err := c.ShouldBindQuery(&queryParams); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if queryParams.Limit <= 0 {
		queryParams.Limit = 50
	}
	if queryParams.Page <= 0 {
		queryParams.Page = 1
	}

	entries, totalItems, err := h.service.GetPhoneNumberHistory(
		c.Request.Context(),
		c.Param("id"),
		queryParams.Limit,
		(queryParams.Page-1)*queryParams.Limit,
	)
	if err != nil {
		if errors.Is(err, services.ErrPhoneNumberNotFound) {
			utils.RespondNotFoundError(c, "号码")
			return
		}
		utils.RespondInternalServerError(c, "获取使用历史失败", err.Error())
		return
	}

	totalPages := (totalItems + int64(queryParams.Limit) - 1) / int64(queryParams.Limit)
	utils.RespondSuccess(c, http.StatusOK, PagedHistoryData{
		Items: entries,
		Pagination: PaginationInfo{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: queryParams.Page,
			PageSize:    queryParams.Limit,
		},
	}, "使用历史获取成功")
}

// TransitionPayload 是单号码状态变更请求的绑定结构体
type TransitionPayload struct {
	Action     string `json:"action" binding:"required,oneof=assign deassign reassign"`
	ClientName string `json:"clientName"`
	Notes      string `json:"notes"`
}

// UpdatePhoneNumber godoc
// @Summary 变更单个号码的状态
// @Description 对单个号码执行 assign/deassign/reassign 操作。回收时历史记录会保留变更前的客户名。
// @Tags PhoneNumbers
// @Accept json
// @Produce json
// @Param id path string true "号码ID"
// @Param transition body TransitionPayload true "状态变更请求"
// @Success 200 {object} utils.SuccessResponse{data=models.PhoneNumber} "变更后的号码及其历史"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或数据校验失败"
// @Failure 403 {object} utils.APIErrorResponse "仅管理员可执行此操作"
// @Failure 404 {object} utils.APIErrorResponse "号码未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /phones/{id} [put]
// @Security BearerAuth
func (h *PhoneNumberHandler) UpdatePhoneNumber(c *gin.Context) {
	var payload TransitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	phone, err := h.service.ApplyTransition(c.Param("id"), services.TransitionRequest{
		Action:     services.TransitionAction(payload.Action),
		ClientName: payload.ClientName,
		Notes:      payload.Notes,
	})
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, phone, "号码状态变更成功")
}

// BulkTransitionPayload 是批量状态变更请求的绑定结构体
type BulkTransitionPayload struct {
	IDs        []string `json:"ids" binding:"required,min=1"`
	Action     string   `json:"action" binding:"required,oneof=assign deassign reassign"`
	ClientName string   `json:"clientName"`
	Notes      string   `json:"notes"`
}

// BulkTransitionResult 是批量状态变更的响应数据
type BulkTransitionResult struct {
	UpdatedCount int `json:"updatedCount"`
}

// BulkTransition godoc
// @Summary 批量变更号码状态
// @Description 对一批号码执行同一操作，全部成功或全部失败。批量回收的历史记录不保留前任客户名。
// @Tags PhoneNumbers
// @Accept json
// @Produce json
// @Param transition body BulkTransitionPayload true "批量状态变更请求"
// @Success 200 {object} utils.SuccessResponse{data=BulkTransitionResult}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或数据校验失败"
// @Failure 403 {object} utils.APIErrorResponse "仅管理员可执行此操作"
// @Failure 404 {object} utils.APIErrorResponse "存在未知的号码ID，整批已回滚"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /phones/bulk [post]
// @Security BearerAuth
func (h *PhoneNumberHandler) BulkTransition(c *gin.Context) {
	var payload BulkTransitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	count, err := h.service.BulkTransition(payload.IDs, services.TransitionRequest{
		Action:     services.TransitionAction(payload.Action),
		ClientName: payload.ClientName,
		Notes:      payload.Notes,
	})
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, BulkTransitionResult{UpdatedCount: count}, "批量变更成功")
}

// respondTransitionError 把状态变更的业务错误映射为 HTTP 响应
func (h *PhoneNumberHandler) respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPhoneNumberNotFound):
		utils.RespondNotFoundError(c, "号码")
	case errors.Is(err, services.ErrClientNameRequired),
		errors.Is(err, services.ErrEmptyIDSet),
		errors.Is(err, services.ErrInvalidAction):
		utils.RespondValidationError(c, err.Error())
	default:
		utils.RespondInternalServerError(c, "号码状态变更失败", err.Error())
	}
}

// EditHistoryDatePayload 是修正历史事件时间请求的绑定结构体
type EditHistoryDatePayload struct {
	EventDate string `json:"eventDate" binding:"required"`
}

// EditHistoryDate godoc
// @Summary 修正历史记录的事件时间
// @Description 管理员覆盖某条使用历史的事件时间（日期格式 YYYY-MM-DD 或 RFC3339）
// @Tags PhoneNumbers
// @Accept json
// @Produce json
// @Param historyId path string true "历史记录ID"
// @Param payload body EditHistoryDatePayload true "新的事件时间"
// @Success 200 {object} utils.SuccessResponse{data=models.UsageHistoryEntry} "更新后的历史记录"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 403 {object} utils.APIErrorResponse "仅管理员可执行此操作"
// @Failure 404 {object} utils.APIErrorResponse "历史记录未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /phones/history/{historyId} [patch]
// @Security BearerAuth
func (h *PhoneNumberHandler) EditHistoryDate(c *gin.Context) {
	var payload EditHistoryDatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	eventDate, err := parseEventDate(payload.EventDate)
	if err != nil {
		utils.RespondValidationError(c, "事件时间格式无效: "+err.Error())
		return
	}

	entry, err := h.service.EditHistoryDate(c.Request.Context(), c.Param("historyId"), eventDate)
	if err != nil {
		if errors.Is(err, repositories.ErrHistoryEntryNotFound) {
			utils.RespondNotFoundError(c, "历史记录")
			return
		}
		utils.RespondInternalServerError(c, "修正事件时间失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, entry, "事件时间已更新")
}

// DeletePhoneNumber godoc
// @Summary 删除单个号码
// @Description 删除号码并级联删除其全部使用历史
// @Tags PhoneNumbers
// @Produce json
// @Param id path string true "号码ID"
// @Success 200 {object} utils.SuccessResponse "删除成功"
// @Failure 403 {object} utils.APIErrorResponse "仅管理员可执行此操作"
// @Failure 404 {object} utils.APIErrorResponse "号码未找到"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /phones/{id} [delete]
// @Security BearerAuth
func (h *PhoneNumberHandler) DeletePhoneNumber(c *gin.Context) {
	if err := h.service.DeletePhoneNumber(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrPhoneNumberNotFound) {
			utils.RespondNotFoundError(c, "号码")
			return
		}
		utils.RespondInternalServerError(c, "删除号码失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "号码删除成功")
}

// parseEventDate 解析事件时间，兼容日期和 RFC3339 两种格式
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return utils.ParseDate(s)
}

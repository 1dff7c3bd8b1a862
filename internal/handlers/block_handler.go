package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/repositories"
	"github.com/phone_inventory/internal/services"
	"github.com/phone_inventory/pkg/utils"
)

// BlockHandler 封装了号段相关的 HTTP 处理逻辑
type BlockHandler struct {
	service      services.BlockService
	phoneService services.PhoneNumberService
}

// NewBlockHandler 创建一个新的 BlockHandler 实例
func NewBlockHandler(service services.BlockService, phoneService services.PhoneNumberService) *BlockHandler {
	return &BlockHandler{service: service, phoneService: phoneService}
}

// BlockListData 是号段列表的响应数据
type BlockListData struct {
	Items []models.BlockSummary `json:"items"`
	Total int                   `json:"total"`
}

// ListBlocks godoc
// @Summary 获取号段列表
// @Description 按前缀（号码去掉末尾两位）分组统计全部号码：总数、在用数、可用数和最早开通时间
// @Tags Blocks
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=BlockListData}
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /blocks [get]
// @Security BearerAuth
func (h *BlockHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.service.ListBlocks()
	if err != nil {
		utils.RespondInternalServerError(c, "获取号段列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, BlockListData{Items: blocks, Total: len(blocks)}, "号段列表获取成功")
}

// SetActivationPayload 是设置号段开通时间请求的绑定结构体
type SetActivationPayload struct {
	Prefix         string `json:"prefix" binding:"required"`
	ActivationDate string `json:"activationDate" binding:"required"`
}

// SetActivationResult 是设置号段开通时间的响应数据
type SetActivationResult struct {
	AffectedCount int  `json:"affectedCount"`
	Updated       bool `json:"updated"` // true 表示改写了已有记录，false 表示新插入
}

// SetActivationDate godoc
// @Summary 设置号段开通时间
// @Description 为号段内全部号码设置开通时间：已有 ACTIVATION 记录则改写其事件时间，否则为每个号码插入一条
// @Tags Blocks
// @Accept json
// @Produce json
// @Param payload body SetActivationPayload true "号段前缀与开通日期 (YYYY-MM-DD)"
// @Success 200 {object} utils.SuccessResponse{data=SetActivationResult}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 403 {object} utils.APIErrorResponse "仅管理员可执行此操作"
// @Failure 404 {object} utils.APIErrorResponse "该号段内没有任何号码"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /blocks/activation [put]
// @Security BearerAuth
func (h *BlockHandler) SetActivationDate(c *gin.Context) {
	var payload SetActivationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	date, err := utils.ParseDate(payload.ActivationDate)
	if err != nil {
		utils.RespondValidationError(c, "开通日期格式无效: "+err.Error())
		return
	}

	count, updated, err := h.service.SetActivationDate(c.Request.Context(), payload.Prefix, date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPrefix):
			utils.RespondValidationError(c, err.Error())
		case errors.Is(err, services.ErrBlockNotFound):
			utils.RespondNotFoundError(c, "号段")
		default:
			utils.RespondInternalServerError(c, "设置开通时间失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, SetActivationResult{AffectedCount: count, Updated: updated}, "开通时间设置成功")
}

// GeneratePayload 是批量生成请求的绑定结构体。
// Range 非空时走范围模式，否则按 Prefix 生成整百号段。
type GeneratePayload struct {
	Prefix string `json:"prefix"`
	Range  string `json:"range"`
}

// GenerateResult 是批量生成的响应数据
type GenerateResult struct {
	CreatedCount int `json:"createdCount"`
}

// Generate godoc
// @Summary 批量生成号码
// @Description 按前缀（XX 通配，生成整百号段）或显式范围（等长数字串 "start - end"，上限 10000 个）批量创建号码，每个号码附带一条 ACTIVATION 历史记录。与现有号码冲突时整批回滚。
// @Tags Blocks
// @Accept json
// @Produce json
// @Param payload body GeneratePayload true "生成方式"
// @Success 201 {object} utils.SuccessResponse{data=GenerateResult}
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误或范围超限"
// @Failure 403 {object} utils.APIErrorResponse "仅管理员可执行此操作"
// @Failure 409 {object} utils.APIErrorResponse "范围内存在已有号码，整批已回滚"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /blocks/generate [post]
// @Security BearerAuth
func (h *BlockHandler) Generate(c *gin.Context) {
	var payload GeneratePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	count, err := h.service.Generate(services.GenerateRequest{
		Prefix: payload.Prefix,
		Range:  payload.Range,
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNumberConflict):
			utils.RespondConflictError(c, err.Error())
		case errors.Is(err, services.ErrGenerateSpecRequired),
			errors.Is(err, services.ErrInvalidPrefix),
			errors.Is(err, services.ErrInvalidRangeFormat),
			errors.Is(err, services.ErrRangeTooLarge):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "批量生成号码失败", err.Error())
		}
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, GenerateResult{CreatedCount: count}, "号码生成成功")
}

// DeleteBlockResult 是删除号段的响应数据
type DeleteBlockResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// DeleteBlock godoc
// @Summary 删除号段
// @Description 删除某前缀下的全部号码并级联删除其使用历史
// @Tags Blocks
// @Produce json
// @Param prefix path string true "号段前缀 (可带 XX 后缀)"
// @Success 200 {object} utils.SuccessResponse{data=DeleteBlockResult}
// @Failure 400 {object} utils.APIErrorResponse "无效的号段前缀"
// @Failure 403 {object} utils.APIErrorResponse "仅管理员可执行此操作"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /blocks/{prefix} [delete]
// @Security BearerAuth
func (h *BlockHandler) DeleteBlock(c *gin.Context) {
	deleted, err := h.phoneService.DeleteBlock(c.Param("prefix"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidPrefix) {
			utils.RespondValidationError(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "删除号段失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, DeleteBlockResult{DeletedCount: deleted}, "号段删除成功")
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/services"
	"github.com/phone_inventory/pkg/utils"
)

// CustomerHandler 封装了客户视图相关的 HTTP 处理逻辑
type CustomerHandler struct {
	service services.CustomerService
}

// NewCustomerHandler 创建一个新的 CustomerHandler 实例
func NewCustomerHandler(service services.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// CustomerListData 是客户列表的响应数据
type CustomerListData struct {
	Items []models.CustomerSummary `json:"items"`
	Total int                      `json:"total"`
}

// ListCustomers godoc
// @Summary 获取客户列表
// @Description 返回全部客户：当前持有号码的客户（active）与仅出现在回收/改配历史中的客户（inactive），同一客户只出现一次
// @Tags Customers
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=CustomerListData}
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers()
	if err != nil {
		utils.RespondInternalServerError(c, "获取客户列表失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, CustomerListData{Items: customers, Total: len(customers)}, "客户列表获取成功")
}

// CustomerPhonesData 是客户号码列表的响应数据
type CustomerPhonesData struct {
	Items []models.CustomerPhone `json:"items"`
	Total int                    `json:"total"`
}

// GetCustomerPhones godoc
// @Summary 获取客户名下的号码
// @Description 返回客户当前持有及曾经持有的号码；曾经持有的号码附带归还时间
// @Tags Customers
// @Produce json
// @Param client query string true "客户名"
// @Success 200 {object} utils.SuccessResponse{data=CustomerPhonesData}
// @Failure 400 {object} utils.APIErrorResponse "缺少客户名"
// @Failure 500 {object} utils.APIErrorResponse "服务器内部错误"
// @Router /customers/phones [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomerPhones(c *gin.Context) {
	phones, err := h.service.CustomerPhones(c.Query("client"))
	if err != nil {
		if errors.Is(err, services.ErrCustomerNameRequired) {
			utils.RespondValidationError(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "获取客户号码失败", err.Error())
		return
	}
	utils.RespondSuccess(c, http.StatusOK, CustomerPhonesData{Items: phones, Total: len(phones)}, "客户号码获取成功")
}

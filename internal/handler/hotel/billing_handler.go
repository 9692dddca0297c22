// Package hotel 提供酒店预订相关的 HTTP Handler
package hotel

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management-backend/internal/common/handler"
	"github.com/dumeirei/hotel-management-backend/internal/common/response"
	hotelService "github.com/dumeirei/hotel-management-backend/internal/service/hotel"
)

// BillingHandler 账单处理器
type BillingHandler struct {
	billingService *hotelService.BillingService
}

// NewBillingHandler 创建账单处理器
func NewBillingHandler(billingSvc *hotelService.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingSvc,
	}
}

// GetBilling 获取预订账单
// @Summary 获取预订账单
// @Tags 账单
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=hotelService.BillingInfo}
// @Router /api/v1/reservations/{id}/billing [get]
func (h *BillingHandler) GetBilling(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	billing, err := h.billingService.GetBillingByReservation(c.Request.Context(), reservationID)
	handler.MustSucceed(c, err, billing)
}

// ListServiceItems 获取预订服务明细
// @Summary 获取预订服务明细
// @Tags 账单
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=[]hotelService.ServiceItemInfo}
// @Router /api/v1/reservations/{id}/services [get]
func (h *BillingHandler) ListServiceItems(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	items, err := h.billingService.ListServiceItems(c.Request.Context(), reservationID)
	handler.MustSucceed(c, err, items)
}

// AddServiceRequest 追加服务请求
type AddServiceRequest struct {
	ServiceID   int64  `json:"service_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	ServiceDate string `json:"service_date"`
}

// AddService 为预订追加服务
// @Summary 为预订追加服务
// @Tags 账单
// @Accept json
// @Produce json
// @Param id path int true "预订ID"
// @Param request body AddServiceRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.BillingInfo}
// @Router /api/v1/reservations/{id}/services [post]
func (h *BillingHandler) AddService(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	serviceReq := &hotelService.AddServiceRequest{
		ServiceID: req.ServiceID,
		Quantity:  req.Quantity,
	}
	if req.ServiceDate != "" {
		serviceDate, err := handler.ParseDate(req.ServiceDate)
		if err != nil {
			response.BadRequest(c, "服务日期格式错误")
			return
		}
		serviceReq.ServiceDate = serviceDate
	}

	billing, err := h.billingService.AddService(c.Request.Context(), reservationID, serviceReq)
	handler.MustSucceed(c, err, billing)
}

// RemoveService 移除预订的服务明细
// @Summary 移除预订的服务明细
// @Tags 账单
// @Produce json
// @Param id path int true "预订ID"
// @Param item_id path int true "明细ID"
// @Success 200 {object} response.Response{data=hotelService.BillingInfo}
// @Router /api/v1/reservations/{id}/services/{item_id} [delete]
func (h *BillingHandler) RemoveService(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}
	itemID, ok := handler.ParseParamID(c, "item_id", "明细")
	if !ok {
		return
	}

	billing, err := h.billingService.RemoveService(c.Request.Context(), reservationID, itemID)
	handler.MustSucceed(c, err, billing)
}

// RecomputeServiceCharges 重算预订服务费用
// @Summary 重算预订服务费用
// @Tags 账单
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=hotelService.BillingInfo}
// @Router /api/v1/reservations/{id}/billing/recompute [post]
func (h *BillingHandler) RecomputeServiceCharges(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	billing, err := h.billingService.RecomputeServiceCharges(c.Request.Context(), reservationID)
	handler.MustSucceed(c, err, billing)
}

// CheckoutRequest 结账请求
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// ProcessCheckout 办理结账
// @Summary 办理结账
// @Tags 账单
// @Accept json
// @Produce json
// @Param id path int true "预订ID"
// @Param request body CheckoutRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.BillingInfo}
// @Router /api/v1/reservations/{id}/checkout [post]
func (h *BillingHandler) ProcessCheckout(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	billing, err := h.billingService.ProcessCheckout(c.Request.Context(), reservationID, &hotelService.CheckoutRequest{
		PaymentMethod: req.PaymentMethod,
	})
	handler.MustSucceed(c, err, billing)
}

// ListCheckoutCandidates 获取待结账列表
// @Summary 获取待结账列表
// @Tags 账单
// @Produce json
// @Success 200 {object} response.Response{data=[]hotelService.CheckoutCandidateInfo}
// @Router /api/v1/billings/pending [get]
func (h *BillingHandler) ListCheckoutCandidates(c *gin.Context) {
	list, err := h.billingService.ListCheckoutCandidates(c.Request.Context())
	handler.MustSucceed(c, err, list)
}

// Package hotel 提供酒店预订相关的 HTTP Handler
package hotel

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management-backend/internal/common/handler"
	"github.com/dumeirei/hotel-management-backend/internal/common/response"
	hotelService "github.com/dumeirei/hotel-management-backend/internal/service/hotel"
)

// GuestHandler 住客处理器
type GuestHandler struct {
	guestService *hotelService.GuestService
}

// NewGuestHandler 创建住客处理器
func NewGuestHandler(guestSvc *hotelService.GuestService) *GuestHandler {
	return &GuestHandler{
		guestService: guestSvc,
	}
}

// CreateGuest 创建住客
// @Summary 创建住客
// @Tags 住客
// @Accept json
// @Produce json
// @Param request body hotelService.GuestRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.GuestInfo}
// @Router /api/v1/guests [post]
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	var req hotelService.GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	guest, err := h.guestService.CreateGuest(c.Request.Context(), &req)
	handler.MustSucceed(c, err, guest)
}

// GetGuestDetail 获取住客详情
// @Summary 获取住客详情
// @Tags 住客
// @Produce json
// @Param id path int true "住客ID"
// @Success 200 {object} response.Response{data=hotelService.GuestInfo}
// @Router /api/v1/guests/{id} [get]
func (h *GuestHandler) GetGuestDetail(c *gin.Context) {
	guestID, ok := handler.ParseID(c, "住客")
	if !ok {
		return
	}

	guest, err := h.guestService.GetGuest(c.Request.Context(), guestID)
	handler.MustSucceed(c, err, guest)
}

// ListGuests 获取住客列表
// @Summary 获取住客列表
// @Tags 住客
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param city query string false "城市"
// @Param gender query string false "性别"
// @Param keyword query string false "关键词"
// @Success 200 {object} response.Response{data=[]hotelService.GuestInfo}
// @Router /api/v1/guests [get]
func (h *GuestHandler) ListGuests(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := map[string]interface{}{}
	if city := c.Query("city"); city != "" {
		filters["city"] = city
	}
	if gender := c.Query("gender"); gender != "" {
		filters["gender"] = gender
	}
	if keyword := c.Query("keyword"); keyword != "" {
		filters["keyword"] = keyword
	}

	guests, total, err := h.guestService.ListGuests(c.Request.Context(), p.Page, p.PageSize, filters)
	handler.MustSucceedPage(c, err, guests, total, p.Page, p.PageSize)
}

// UpdateGuest 更新住客
// @Summary 更新住客
// @Tags 住客
// @Accept json
// @Produce json
// @Param id path int true "住客ID"
// @Param request body hotelService.GuestRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.GuestInfo}
// @Router /api/v1/guests/{id} [put]
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	guestID, ok := handler.ParseID(c, "住客")
	if !ok {
		return
	}

	var req hotelService.GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	guest, err := h.guestService.UpdateGuest(c.Request.Context(), guestID, &req)
	handler.MustSucceed(c, err, guest)
}

// DeleteGuest 删除住客
// @Summary 删除住客
// @Tags 住客
// @Produce json
// @Param id path int true "住客ID"
// @Success 200 {object} response.Response
// @Router /api/v1/guests/{id} [delete]
func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	guestID, ok := handler.ParseID(c, "住客")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.guestService.DeleteGuest(c.Request.Context(), guestID), nil)
}

// Package hotel 提供酒店预订相关的 HTTP Handler
package hotel

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management-backend/internal/common/handler"
	"github.com/dumeirei/hotel-management-backend/internal/common/response"
	hotelService "github.com/dumeirei/hotel-management-backend/internal/service/hotel"
)

// ReservationHandler 预订处理器
type ReservationHandler struct {
	reservationService *hotelService.ReservationService
}

// NewReservationHandler 创建预订处理器
func NewReservationHandler(reservationSvc *hotelService.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationSvc,
	}
}

// CreateReservationRequest 创建预订请求
type CreateReservationRequest struct {
	GuestID  int64  `json:"guest_id" binding:"required"`
	RoomNo   int64  `json:"room_no" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Adults   int    `json:"adults" binding:"required,min=1"`
	Children int    `json:"children" binding:"min=0"`
}

// CreateReservation 创建预订
// @Summary 创建预订
// @Tags 预订
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.ReservationInfo}
// @Router /api/v1/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	checkIn, err := handler.ParseDate(req.CheckIn)
	if err != nil {
		response.BadRequest(c, "入住日期格式错误")
		return
	}
	checkOut, err := handler.ParseDate(req.CheckOut)
	if err != nil {
		response.BadRequest(c, "退房日期格式错误")
		return
	}

	serviceReq := &hotelService.CreateReservationRequest{
		GuestID:  req.GuestID,
		RoomNo:   req.RoomNo,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Adults:   req.Adults,
		Children: req.Children,
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), serviceReq)
	handler.MustSucceed(c, err, reservation)
}

// GetReservationDetail 获取预订详情
// @Summary 获取预订详情
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=hotelService.ReservationInfo}
// @Router /api/v1/reservations/{id} [get]
func (h *ReservationHandler) GetReservationDetail(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservation(c.Request.Context(), reservationID)
	handler.MustSucceed(c, err, reservation)
}

// ListReservations 获取预订列表
// @Summary 获取预订列表
// @Tags 预订
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param guest_id query int false "住客ID"
// @Param room_no query int false "房间号"
// @Param start_date query string false "开始日期"
// @Param end_date query string false "结束日期"
// @Success 200 {object} response.Response{data=[]hotelService.ReservationInfo}
// @Router /api/v1/reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := map[string]interface{}{}
	if guestID, ok := handler.ParseQueryID(c, "guest_id", "住客"); !ok {
		return
	} else if guestID != nil {
		filters["guest_id"] = *guestID
	}
	if roomNo, ok := handler.ParseQueryID(c, "room_no", "房间"); !ok {
		return
	} else if roomNo != nil {
		filters["room_no"] = *roomNo
	}

	startDate, endDate, ok := handler.ParseQueryDateRange(c)
	if !ok {
		return
	}
	if startDate != nil {
		filters["start_date"] = *startDate
	}
	if endDate != nil {
		filters["end_date"] = *endDate
	}

	reservations, total, err := h.reservationService.ListReservations(c.Request.Context(), p.Page, p.PageSize, filters)
	handler.MustSucceedPage(c, err, reservations, total, p.Page, p.PageSize)
}

// ListCurrentReservations 获取今日在住预订列表
// @Summary 获取今日在住预订列表
// @Tags 预订
// @Produce json
// @Success 200 {object} response.Response{data=[]hotelService.ReservationInfo}
// @Router /api/v1/reservations/current [get]
func (h *ReservationHandler) ListCurrentReservations(c *gin.Context) {
	reservations, err := h.reservationService.ListCurrentReservations(c.Request.Context())
	handler.MustSucceed(c, err, reservations)
}

// CheckAvailability 检查房间可订性
// @Summary 检查房间可订性
// @Tags 预订
// @Produce json
// @Param room_no query int true "房间号"
// @Param start_date query string true "入住日期"
// @Param end_date query string true "退房日期"
// @Success 200 {object} response.Response{data=AvailabilityResult}
// @Router /api/v1/reservations/availability [get]
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	roomNo, ok := handler.ParseRequiredQueryID(c, "room_no", "房间")
	if !ok {
		return
	}
	checkIn, checkOut, ok := handler.ParseRequiredQueryDateRange(c)
	if !ok {
		return
	}

	available, err := h.reservationService.CheckAvailability(c.Request.Context(), roomNo, checkIn, checkOut)
	handler.MustSucceed(c, err, &AvailabilityResult{
		RoomNo:    roomNo,
		Available: available,
	})
}

// AvailabilityResult 可订性检查结果
type AvailabilityResult struct {
	RoomNo    int64 `json:"room_no"`
	Available bool  `json:"available"`
}

// DeleteReservation 删除预订
// @Summary 删除预订
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response
// @Router /api/v1/reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	reservationID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.reservationService.DeleteReservation(c.Request.Context(), reservationID), nil)
}

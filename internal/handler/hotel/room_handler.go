// Package hotel 提供酒店预订相关的 HTTP Handler
package hotel

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management-backend/internal/common/handler"
	"github.com/dumeirei/hotel-management-backend/internal/common/response"
	hotelService "github.com/dumeirei/hotel-management-backend/internal/service/hotel"
)

// RoomHandler 房间处理器
type RoomHandler struct {
	roomService *hotelService.RoomService
}

// NewRoomHandler 创建房间处理器
func NewRoomHandler(roomSvc *hotelService.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomSvc,
	}
}

// CreateRoomType 创建房型
// @Summary 创建房型
// @Tags 房间
// @Accept json
// @Produce json
// @Param request body hotelService.CreateRoomTypeRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.RoomTypeInfo}
// @Router /api/v1/room-types [post]
func (h *RoomHandler) CreateRoomType(c *gin.Context) {
	var req hotelService.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	roomType, err := h.roomService.CreateRoomType(c.Request.Context(), &req)
	handler.MustSucceed(c, err, roomType)
}

// ListRoomTypes 获取房型列表
// @Summary 获取房型列表
// @Tags 房间
// @Produce json
// @Success 200 {object} response.Response{data=[]hotelService.RoomTypeInfo}
// @Router /api/v1/room-types [get]
func (h *RoomHandler) ListRoomTypes(c *gin.Context) {
	roomTypes, err := h.roomService.ListRoomTypes(c.Request.Context())
	handler.MustSucceed(c, err, roomTypes)
}

// CreateRoom 创建房间
// @Summary 创建房间
// @Tags 房间
// @Accept json
// @Produce json
// @Param request body hotelService.CreateRoomRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.RoomInfo}
// @Router /api/v1/rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req hotelService.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), &req)
	handler.MustSucceed(c, err, room)
}

// GetRoomDetail 获取房间详情
// @Summary 获取房间详情
// @Tags 房间
// @Produce json
// @Param room_no path int true "房间号"
// @Success 200 {object} response.Response{data=hotelService.RoomInfo}
// @Router /api/v1/rooms/{room_no} [get]
func (h *RoomHandler) GetRoomDetail(c *gin.Context) {
	roomNo, ok := handler.ParseParamID(c, "room_no", "房间")
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), roomNo)
	handler.MustSucceed(c, err, room)
}

// ListRooms 获取房间列表
// @Summary 获取房间列表
// @Tags 房间
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param type_id query int false "房型ID"
// @Param status query string false "状态"
// @Success 200 {object} response.Response{data=[]hotelService.RoomInfo}
// @Router /api/v1/rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	p := handler.BindPagination(c)

	filters := map[string]interface{}{}
	if typeID, ok := handler.ParseQueryID(c, "type_id", "房型"); !ok {
		return
	} else if typeID != nil {
		filters["type_id"] = *typeID
	}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}

	rooms, total, err := h.roomService.ListRooms(c.Request.Context(), p.Page, p.PageSize, filters)
	handler.MustSucceedPage(c, err, rooms, total, p.Page, p.PageSize)
}

// ListAvailableRooms 获取可订房间列表
// @Summary 获取可订房间列表
// @Tags 房间
// @Produce json
// @Param start_date query string true "入住日期"
// @Param end_date query string true "退房日期"
// @Param type_id query int false "房型ID"
// @Success 200 {object} response.Response{data=[]hotelService.RoomInfo}
// @Router /api/v1/rooms/available [get]
func (h *RoomHandler) ListAvailableRooms(c *gin.Context) {
	checkIn, checkOut, ok := handler.ParseRequiredQueryDateRange(c)
	if !ok {
		return
	}

	var typeID int64
	if id, ok := handler.ParseQueryID(c, "type_id", "房型"); !ok {
		return
	} else if id != nil {
		typeID = *id
	}

	rooms, err := h.roomService.ListAvailableRooms(c.Request.Context(), checkIn, checkOut, typeID)
	handler.MustSucceed(c, err, rooms)
}

// GetOccupancy 获取今日入住率
// @Summary 获取今日入住率
// @Tags 房间
// @Produce json
// @Success 200 {object} response.Response{data=hotelService.OccupancyInfo}
// @Router /api/v1/rooms/occupancy [get]
func (h *RoomHandler) GetOccupancy(c *gin.Context) {
	info, err := h.roomService.GetOccupancy(c.Request.Context())
	handler.MustSucceed(c, err, info)
}

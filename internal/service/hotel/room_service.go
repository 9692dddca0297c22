// Package hotel 提供酒店预订服务
package hotel

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management-backend/internal/common/cache"
	"github.com/dumeirei/hotel-management-backend/internal/common/errors"
	"github.com/dumeirei/hotel-management-backend/internal/common/logger"
	"github.com/dumeirei/hotel-management-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-management-backend/internal/common/utils"
	"github.com/dumeirei/hotel-management-backend/internal/models"
	"github.com/dumeirei/hotel-management-backend/internal/repository"
)

// RoomService 房间服务
type RoomService struct {
	db              *gorm.DB
	roomRepo        *repository.RoomRepository
	reservationRepo *repository.ReservationRepository
}

// NewRoomService 创建房间服务
func NewRoomService(
	db *gorm.DB,
	roomRepo *repository.RoomRepository,
	reservationRepo *repository.ReservationRepository,
) *RoomService {
	return &RoomService{
		db:              db,
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
	}
}

// CreateRoomTypeRequest 创建房型请求
type CreateRoomTypeRequest struct {
	TypeName  string  `json:"type_name" binding:"required"`
	BasePrice float64 `json:"base_price" binding:"required,gt=0"`
}

// CreateRoomRequest 创建房间请求
type CreateRoomRequest struct {
	RoomNo int64 `json:"room_no" binding:"required"`
	TypeID int64 `json:"type_id" binding:"required"`
}

// RoomInfo 房间信息
type RoomInfo struct {
	RoomNo    int64   `json:"room_no"`
	TypeID    int64   `json:"type_id"`
	TypeName  string  `json:"type_name,omitempty"`
	BasePrice float64 `json:"base_price,omitempty"`
	Status    string  `json:"status"`
}

// RoomTypeInfo 房型信息
type RoomTypeInfo struct {
	ID        int64   `json:"id"`
	TypeName  string  `json:"type_name"`
	BasePrice float64 `json:"base_price"`
}

// OccupancyInfo 入住率信息
type OccupancyInfo struct {
	TotalRooms    int64   `json:"total_rooms"`
	OccupiedRooms int64   `json:"occupied_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// CreateRoomType 创建房型
func (s *RoomService) CreateRoomType(ctx context.Context, req *CreateRoomTypeRequest) (*RoomTypeInfo, error) {
	roomType := &models.RoomType{
		TypeName:  req.TypeName,
		BasePrice: req.BasePrice,
	}
	if err := s.roomRepo.CreateRoomType(ctx, roomType); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertRoomTypeInfo(roomType), nil
}

// ListRoomTypes 获取房型列表
func (s *RoomService) ListRoomTypes(ctx context.Context) ([]*RoomTypeInfo, error) {
	roomTypes, err := s.roomRepo.ListRoomTypes(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*RoomTypeInfo, 0, len(roomTypes))
	for _, roomType := range roomTypes {
		result = append(result, convertRoomTypeInfo(roomType))
	}
	return result, nil
}

// CreateRoom 创建房间
func (s *RoomService) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*RoomInfo, error) {
	if _, err := s.roomRepo.GetRoomTypeByID(ctx, req.TypeID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomTypeNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	room := &models.Room{
		RoomNo: req.RoomNo,
		TypeID: req.TypeID,
		Status: models.RoomStatusVacant,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("创建房间成功", logger.RoomNo(room.RoomNo))
	full, err := s.roomRepo.GetByNo(ctx, room.RoomNo)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertRoomInfo(full), nil
}

// GetRoom 获取房间详情
func (s *RoomService) GetRoom(ctx context.Context, roomNo int64) (*RoomInfo, error) {
	room, err := s.roomRepo.GetByNo(ctx, roomNo)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertRoomInfo(room), nil
}

// ListRooms 获取房间列表
func (s *RoomService) ListRooms(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]*RoomInfo, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	rooms, total, err := s.roomRepo.List(ctx, offset, pageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, convertRoomInfo(room))
	}
	return result, total, nil
}

// ListAvailableRooms 获取指定区间可订的房间列表
func (s *RoomService) ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, typeID int64) ([]*RoomInfo, error) {
	checkIn = utils.DateOnly(checkIn)
	checkOut = utils.DateOnly(checkOut)
	if !checkOut.After(checkIn) {
		return nil, errors.ErrCheckOutBeforeCheckIn
	}

	rooms, err := s.roomRepo.ListAvailable(ctx, checkIn, checkOut, typeID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, convertRoomInfo(room))
	}
	return result, nil
}

// occupancyCacheTTL 入住率缓存时长
const occupancyCacheTTL = 30 * time.Second

// occupancyCacheKey 入住率缓存键
func occupancyCacheKey() string {
	return cache.BuildKey(cache.KeyPrefixRoomStatus, "occupancy")
}

// GetOccupancy 获取今日入住率
//
// 以当日预订区间为准, 不依赖房间状态字段。结果短期缓存,
// 房间状态同步时失效。
func (s *RoomService) GetOccupancy(ctx context.Context) (*OccupancyInfo, error) {
	if cache.GetClient() != nil {
		var cached OccupancyInfo
		if err := cache.Get(ctx, occupancyCacheKey(), &cached); err == nil {
			return &cached, nil
		}
	}

	total, err := s.roomRepo.Count(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	occupied, err := s.reservationRepo.CountOccupiedRooms(ctx, utils.Today())
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	info := &OccupancyInfo{
		TotalRooms:    total,
		OccupiedRooms: occupied,
	}
	if total > 0 {
		info.OccupancyRate = float64(occupied) / float64(total)
	}

	if cache.GetClient() != nil {
		if err := cache.Set(ctx, occupancyCacheKey(), info, occupancyCacheTTL); err != nil {
			logger.Warn("写入入住率缓存失败", logger.Err(err))
		}
	}
	return info, nil
}

// SyncRoomStatuses 按当日预订区间同步房间状态
//
// 定时任务调用, 同时刷新入住率指标。
func (s *RoomService) SyncRoomStatuses(ctx context.Context) error {
	today := utils.Today()

	occupiedNos, err := s.reservationRepo.ListOccupiedRoomNos(ctx, today)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	if err := s.roomRepo.UpdateStatuses(ctx, occupiedNos, models.RoomStatusOccupied); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if err := s.roomRepo.UpdateStatusesExcept(ctx, occupiedNos, models.RoomStatusVacant); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	if m := metrics.GetMetrics(); m != nil {
		total, err := s.roomRepo.Count(ctx)
		if err == nil {
			m.SetOccupiedRooms(float64(len(occupiedNos)))
			if total > 0 {
				m.SetOccupancyRate(float64(len(occupiedNos)) / float64(total))
			}
		}
	}

	if cache.GetClient() != nil {
		if err := cache.Delete(ctx, occupancyCacheKey()); err != nil {
			logger.Warn("失效入住率缓存失败", logger.Err(err))
		}
	}

	logger.Debug("同步房间状态完成", logger.Int("occupied", len(occupiedNos)))
	return nil
}

// convertRoomInfo 转换房间信息
func convertRoomInfo(room *models.Room) *RoomInfo {
	info := &RoomInfo{
		RoomNo: room.RoomNo,
		TypeID: room.TypeID,
		Status: room.Status,
	}
	if room.RoomType != nil {
		info.TypeName = room.RoomType.TypeName
		info.BasePrice = room.RoomType.BasePrice
	}
	return info
}

// convertRoomTypeInfo 转换房型信息
func convertRoomTypeInfo(roomType *models.RoomType) *RoomTypeInfo {
	return &RoomTypeInfo{
		ID:        roomType.ID,
		TypeName:  roomType.TypeName,
		BasePrice: roomType.BasePrice,
	}
}

// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management-backend/internal/models"
)

// RoomRepository 房间仓储
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房间仓储
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create 创建房间
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByNo 根据房间号获取房间
func (r *RoomRepository) GetByNo(ctx context.Context, roomNo int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("RoomType").
		Where("room_no = ?", roomNo).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List 获取房间列表
func (r *RoomRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Room, int64, error) {
	var rooms []*models.Room
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Room{})

	// 应用过滤条件
	if typeID, ok := filters["type_id"].(int64); ok && typeID > 0 {
		query = query.Where("type_id = ?", typeID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.
		Preload("RoomType").
		Order("room_no ASC").
		Offset(offset).Limit(limit).
		Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// ListAvailable 获取指定时段无预订的房间列表
//
// 区间按左闭右开比较, 退房当日即可再次入住。
func (r *RoomRepository) ListAvailable(ctx context.Context, checkIn, checkOut time.Time, typeID int64) ([]*models.Room, error) {
	var rooms []*models.Room
	query := r.db.WithContext(ctx).
		Preload("RoomType").
		Where("NOT EXISTS (?)", r.db.Model(&models.Reservation{}).
			Select("1").
			Where("reservations.room_no = rooms.room_no").
			Where("check_in < ? AND check_out > ?", checkOut, checkIn))
	if typeID > 0 {
		query = query.Where("type_id = ?", typeID)
	}
	err := query.Order("room_no ASC").Find(&rooms).Error
	return rooms, err
}

// Count 统计房间总数
func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).Count(&count).Error
	return count, err
}

// UpdateStatuses 批量更新房间状态
func (r *RoomRepository) UpdateStatuses(ctx context.Context, roomNos []int64, status string) error {
	if len(roomNos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Room{}).
		Where("room_no IN ?", roomNos).
		Update("status", status).Error
}

// UpdateStatusesExcept 将不在列表中的房间更新为指定状态
func (r *RoomRepository) UpdateStatusesExcept(ctx context.Context, roomNos []int64, status string) error {
	query := r.db.WithContext(ctx).Model(&models.Room{})
	if len(roomNos) > 0 {
		query = query.Where("room_no NOT IN ?", roomNos)
	}
	return query.Update("status", status).Error
}

// CreateRoomType 创建房型
func (r *RoomRepository) CreateRoomType(ctx context.Context, roomType *models.RoomType) error {
	return r.db.WithContext(ctx).Create(roomType).Error
}

// GetRoomTypeByID 根据 ID 获取房型
func (r *RoomRepository) GetRoomTypeByID(ctx context.Context, id int64) (*models.RoomType, error) {
	var roomType models.RoomType
	err := r.db.WithContext(ctx).First(&roomType, id).Error
	if err != nil {
		return nil, err
	}
	return &roomType, nil
}

// ListRoomTypes 获取房型列表
func (r *RoomRepository) ListRoomTypes(ctx context.Context) ([]*models.RoomType, error) {
	var roomTypes []*models.RoomType
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&roomTypes).Error
	return roomTypes, err
}

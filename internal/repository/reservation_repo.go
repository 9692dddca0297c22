// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management-backend/internal/models"
)

// ReservationRepository 预订仓储
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建预订仓储
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create 创建预订
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// GetByID 根据 ID 获取预订
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetByIDWithDetails 根据 ID 获取预订（包含关联信息）
func (r *ReservationRepository) GetByIDWithDetails(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Room.RoomType").
		Preload("Billing").
		Preload("Services.Service").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// List 获取预订列表
func (r *ReservationRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Reservation, int64, error) {
	var reservations []*models.Reservation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Reservation{})

	// 应用过滤条件
	if guestID, ok := filters["guest_id"].(int64); ok && guestID > 0 {
		query = query.Where("guest_id = ?", guestID)
	}
	if roomNo, ok := filters["room_no"].(int64); ok && roomNo > 0 {
		query = query.Where("room_no = ?", roomNo)
	}
	if startDate, ok := filters["start_date"].(time.Time); ok {
		query = query.Where("check_in >= ?", startDate)
	}
	if endDate, ok := filters["end_date"].(time.Time); ok {
		query = query.Where("check_in <= ?", endDate)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.
		Preload("Guest").
		Preload("Room.RoomType").
		Preload("Billing").
		Order("check_in DESC").
		Offset(offset).Limit(limit).
		Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// ExistsOverlapping 检查房间在指定区间是否已有预订
//
// 区间按左闭右开比较: check_in < 退房日 且 check_out > 入住日 即为冲突,
// 首尾相接的两条预订不冲突。
func (r *ReservationRepository) ExistsOverlapping(ctx context.Context, roomNo int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("room_no = ?", roomNo).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// ListCurrent 获取当前在住的预订列表
//
// 在住判定: check_in <= 今日 且 check_out > 今日。
func (r *ReservationRepository) ListCurrent(ctx context.Context, today time.Time) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Room.RoomType").
		Preload("Billing").
		Where("check_in <= ? AND check_out > ?", today, today).
		Order("room_no ASC").
		Find(&reservations).Error
	return reservations, err
}

// ListByDateRange 获取入住日落在区间内的预订列表
func (r *ReservationRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Room.RoomType").
		Preload("Billing").
		Where("check_in >= ? AND check_in <= ?", start, end).
		Order("check_in ASC").
		Find(&reservations).Error
	return reservations, err
}

// ListOccupiedRoomNos 获取今日有在住预订的房间号列表
func (r *ReservationRepository) ListOccupiedRoomNos(ctx context.Context, today time.Time) ([]int64, error) {
	var roomNos []int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Distinct("room_no").
		Where("check_in <= ? AND check_out > ?", today, today).
		Pluck("room_no", &roomNos).Error
	return roomNos, err
}

// CountOccupiedRooms 统计今日在住房间数
func (r *ReservationRepository) CountOccupiedRooms(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Distinct("room_no").
		Where("check_in <= ? AND check_out > ?", today, today).
		Count(&count).Error
	return count, err
}

// CountActiveByGuest 统计住客未退房的预订数量
//
// 判定: check_out >= 今日, 含今日退房的预订。
func (r *ReservationRepository) CountActiveByGuest(ctx context.Context, guestID int64, today time.Time) (int64, error) {
	return r.CountActiveByGuestTx(ctx, r.db, guestID, today)
}

// CountActiveByGuestTx 在指定事务内统计住客未退房的预订数量, 供删除门槛复用
func (r *ReservationRepository) CountActiveByGuestTx(ctx context.Context, tx *gorm.DB, guestID int64, today time.Time) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.Reservation{}).
		Where("guest_id = ?", guestID).
		Where("check_out >= ?", today).
		Count(&count).Error
	return count, err
}

// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management-backend/internal/models"
)

// ReservationServiceRepository 预订服务明细仓储
type ReservationServiceRepository struct {
	db *gorm.DB
}

// NewReservationServiceRepository 创建预订服务明细仓储
func NewReservationServiceRepository(db *gorm.DB) *ReservationServiceRepository {
	return &ReservationServiceRepository{db: db}
}

// Create 创建明细
func (r *ReservationServiceRepository) Create(ctx context.Context, item *models.ReservationService) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID 根据 ID 获取明细
func (r *ReservationServiceRepository) GetByID(ctx context.Context, id int64) (*models.ReservationService, error) {
	var item models.ReservationService
	err := r.db.WithContext(ctx).
		Preload("Service").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByReservation 获取预订的服务明细列表
func (r *ReservationServiceRepository) ListByReservation(ctx context.Context, reservationID int64) ([]*models.ReservationService, error) {
	var items []*models.ReservationService
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("reservation_id = ?", reservationID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// CountByReservation 统计预订的服务明细数量
func (r *ReservationServiceRepository) CountByReservation(ctx context.Context, reservationID int64) (int64, error) {
	return r.CountByReservationTx(ctx, r.db, reservationID)
}

// CountByReservationTx 在指定事务内统计服务明细数量, 供删除门槛复用
func (r *ReservationServiceRepository) CountByReservationTx(ctx context.Context, tx *gorm.DB, reservationID int64) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.ReservationService{}).
		Where("reservation_id = ?", reservationID).
		Count(&count).Error
	return count, err
}

// SumCharges 汇总预订的服务费用
//
// 按目录单价乘以数量求和, 明细为空时返回 0。
func (r *ReservationServiceRepository) SumCharges(ctx context.Context, reservationID int64) (float64, error) {
	return r.SumChargesTx(ctx, r.db, reservationID)
}

// SumChargesTx 在指定事务内汇总服务费用, 供账单重算的事务内变体复用
func (r *ReservationServiceRepository) SumChargesTx(ctx context.Context, tx *gorm.DB, reservationID int64) (float64, error) {
	var sum float64
	err := tx.WithContext(ctx).Model(&models.ReservationService{}).
		Select("COALESCE(SUM(services.service_price * reservation_services.quantity), 0)").
		Joins("JOIN services ON services.id = reservation_services.service_id").
		Where("reservation_services.reservation_id = ?", reservationID).
		Scan(&sum).Error
	return sum, err
}

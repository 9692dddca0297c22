// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management-backend/internal/models"
)

// BillingRepository 账单仓储
type BillingRepository struct {
	db *gorm.DB
}

// NewBillingRepository 创建账单仓储
func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

// Create 创建账单
func (r *BillingRepository) Create(ctx context.Context, billing *models.Billing) error {
	return r.db.WithContext(ctx).Create(billing).Error
}

// GetByID 根据 ID 获取账单
func (r *BillingRepository) GetByID(ctx context.Context, id int64) (*models.Billing, error) {
	var billing models.Billing
	err := r.db.WithContext(ctx).First(&billing, id).Error
	if err != nil {
		return nil, err
	}
	return &billing, nil
}

// GetByReservationID 根据预订 ID 获取账单
func (r *BillingRepository) GetByReservationID(ctx context.Context, reservationID int64) (*models.Billing, error) {
	var billing models.Billing
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		First(&billing).Error
	if err != nil {
		return nil, err
	}
	return &billing, nil
}

// Update 更新账单
func (r *BillingRepository) Update(ctx context.Context, billing *models.Billing) error {
	return r.db.WithContext(ctx).Save(billing).Error
}

// ListPendingDue 获取待结账的账单列表
//
// 待结账判定: 账单为 pending 且对应预订 check_out <= 今日。
func (r *BillingRepository) ListPendingDue(ctx context.Context, today time.Time) ([]*models.Billing, error) {
	var billings []*models.Billing
	err := r.db.WithContext(ctx).
		Preload("Reservation.Guest").
		Preload("Reservation.Room").
		Joins("JOIN reservations ON reservations.id = billings.reservation_id").
		Where("billings.payment_status = ?", models.PaymentStatusPending).
		Where("reservations.check_out <= ?", today).
		Order("reservations.check_out ASC").
		Find(&billings).Error
	return billings, err
}

// SumPaidByDateRange 统计区间内已支付账单的收入
//
// 按支付日期归属区间。
func (r *BillingRepository) SumPaidByDateRange(ctx context.Context, start, end time.Time) (roomCharges, serviceCharges, total float64, err error) {
	row := struct {
		RoomCharges    float64
		ServiceCharges float64
		Total          float64
	}{}
	err = r.db.WithContext(ctx).Model(&models.Billing{}).
		Select("COALESCE(SUM(room_charges), 0) AS room_charges, COALESCE(SUM(service_charges), 0) AS service_charges, COALESCE(SUM(total), 0) AS total").
		Where("payment_status = ?", models.PaymentStatusPaid).
		Where("payment_date >= ? AND payment_date <= ?", start, end).
		Scan(&row).Error
	return row.RoomCharges, row.ServiceCharges, row.Total, err
}

// CountByStatus 统计指定状态的账单数量
func (r *BillingRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Billing{}).
		Where("payment_status = ?", status).
		Count(&count).Error
	return count, err
}

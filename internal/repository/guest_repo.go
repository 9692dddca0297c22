// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management-backend/internal/models"
)

// GuestRepository 住客仓储
type GuestRepository struct {
	db *gorm.DB
}

// NewGuestRepository 创建住客仓储
func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// Create 创建住客
func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

// GetByID 根据 ID 获取住客
func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).First(&guest, id).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// GetByEmail 根据邮箱获取住客
func (r *GuestRepository) GetByEmail(ctx context.Context, email string) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// Update 更新住客
func (r *GuestRepository) Update(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}

// List 获取住客列表
func (r *GuestRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Guest, int64, error) {
	var guests []*models.Guest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Guest{})

	// 应用过滤条件
	if city, ok := filters["city"].(string); ok && city != "" {
		query = query.Where("city = ?", city)
	}
	if gender, ok := filters["gender"].(string); ok && gender != "" {
		query = query.Where("gender = ?", gender)
	}
	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&guests).Error; err != nil {
		return nil, 0, err
	}

	return guests, total, nil
}

// ExistsByEmail 检查邮箱是否已存在（排除指定 ID）
func (r *GuestRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Guest{}).
		Where("email = ?", email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// ExistsByNationalID 检查证件号是否已存在（排除指定 ID）
func (r *GuestRepository) ExistsByNationalID(ctx context.Context, nationalID string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Guest{}).
		Where("national_id = ?", nationalID)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management-backend/internal/models"
)

// ServiceRepository 服务目录仓储
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository 创建服务目录仓储
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Create 创建服务
func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

// GetByID 根据 ID 获取服务
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// List 获取服务列表
func (r *ServiceRepository) List(ctx context.Context) ([]*models.Service, error) {
	var services []*models.Service
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&services).Error
	return services, err
}

// Update 更新服务
func (r *ServiceRepository) Update(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

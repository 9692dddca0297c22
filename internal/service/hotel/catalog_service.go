// Package hotel 提供酒店预订服务
package hotel

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management-backend/internal/common/errors"
	"github.com/dumeirei/hotel-management-backend/internal/models"
	"github.com/dumeirei/hotel-management-backend/internal/repository"
)

// CatalogService 服务目录服务
type CatalogService struct {
	serviceRepo *repository.ServiceRepository
}

// NewCatalogService 创建服务目录服务
func NewCatalogService(serviceRepo *repository.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// CatalogItemRequest 服务目录写入请求
type CatalogItemRequest struct {
	ServiceName  string  `json:"service_name" binding:"required"`
	ServicePrice float64 `json:"service_price" binding:"required,gt=0"`
}

// CatalogItemInfo 服务目录信息
type CatalogItemInfo struct {
	ID           int64   `json:"id"`
	ServiceName  string  `json:"service_name"`
	ServicePrice float64 `json:"service_price"`
}

// CreateItem 创建服务目录项
func (s *CatalogService) CreateItem(ctx context.Context, req *CatalogItemRequest) (*CatalogItemInfo, error) {
	service := &models.Service{
		ServiceName:  req.ServiceName,
		ServicePrice: req.ServicePrice,
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertCatalogItemInfo(service), nil
}

// ListItems 获取服务目录列表
func (s *CatalogService) ListItems(ctx context.Context) ([]*CatalogItemInfo, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*CatalogItemInfo, 0, len(services))
	for _, service := range services {
		result = append(result, convertCatalogItemInfo(service))
	}
	return result, nil
}

// UpdateItem 更新服务目录项
//
// 改价只影响之后的追加与重算, 已结账账单不受影响。
func (s *CatalogService) UpdateItem(ctx context.Context, id int64, req *CatalogItemRequest) (*CatalogItemInfo, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrServiceNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	service.ServiceName = req.ServiceName
	service.ServicePrice = req.ServicePrice
	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertCatalogItemInfo(service), nil
}

// convertCatalogItemInfo 转换服务目录信息
func convertCatalogItemInfo(service *models.Service) *CatalogItemInfo {
	return &CatalogItemInfo{
		ID:           service.ID,
		ServiceName:  service.ServiceName,
		ServicePrice: service.ServicePrice,
	}
}

// Package hotel 提供酒店预订服务
package hotel

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dumeirei/hotel-management-backend/internal/common/errors"
	"github.com/dumeirei/hotel-management-backend/internal/common/logger"
	"github.com/dumeirei/hotel-management-backend/internal/common/utils"
	"github.com/dumeirei/hotel-management-backend/internal/models"
	"github.com/dumeirei/hotel-management-backend/internal/repository"
)

// 住客年龄限制
const (
	guestMinAge = 18
	guestMaxAge = 100
)

// GuestService 住客服务
type GuestService struct {
	db              *gorm.DB
	guestRepo       *repository.GuestRepository
	reservationRepo *repository.ReservationRepository
}

// NewGuestService 创建住客服务
func NewGuestService(
	db *gorm.DB,
	guestRepo *repository.GuestRepository,
	reservationRepo *repository.ReservationRepository,
) *GuestService {
	return &GuestService{
		db:              db,
		guestRepo:       guestRepo,
		reservationRepo: reservationRepo,
	}
}

// GuestRequest 住客写入请求
type GuestRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
	Age        int    `json:"age" binding:"required"`
	Gender     string `json:"gender" binding:"required"`
	City       string `json:"city" binding:"required"`
}

// GuestInfo 住客信息
type GuestInfo struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	NationalID string    `json:"national_id"`
	Age        int       `json:"age"`
	Gender     string    `json:"gender"`
	City       string    `json:"city"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateGuest 创建住客
func (s *GuestService) CreateGuest(ctx context.Context, req *GuestRequest) (*GuestInfo, error) {
	if err := s.validateGuest(ctx, req, 0); err != nil {
		return nil, err
	}

	guest := &models.Guest{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		NationalID: req.NationalID,
		Age:        req.Age,
		Gender:     req.Gender,
		City:       req.City,
	}
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("创建住客成功", logger.GuestID(guest.ID))
	return convertGuestInfo(guest), nil
}

// GetGuest 获取住客详情
func (s *GuestService) GetGuest(ctx context.Context, id int64) (*GuestInfo, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertGuestInfo(guest), nil
}

// ListGuests 获取住客列表
func (s *GuestService) ListGuests(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]*GuestInfo, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	guests, total, err := s.guestRepo.List(ctx, offset, pageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*GuestInfo, 0, len(guests))
	for _, guest := range guests {
		result = append(result, convertGuestInfo(guest))
	}
	return result, total, nil
}

// UpdateGuest 更新住客
func (s *GuestService) UpdateGuest(ctx context.Context, id int64, req *GuestRequest) (*GuestInfo, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if err := s.validateGuest(ctx, req, id); err != nil {
		return nil, err
	}

	guest.FirstName = req.FirstName
	guest.LastName = req.LastName
	guest.Email = req.Email
	guest.NationalID = req.NationalID
	guest.Age = req.Age
	guest.Gender = req.Gender
	guest.City = req.City
	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("更新住客成功", logger.GuestID(guest.ID))
	return convertGuestInfo(guest), nil
}

// DeleteGuest 删除住客
//
// 名下仍有未退房预订的住客不允许删除, 门槛检查与删除在同一事务内完成。
func (s *GuestService) DeleteGuest(ctx context.Context, id int64) error {
	today := utils.Today()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&guest, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrGuestNotFound
			}
			return errors.ErrDatabaseError.WithError(err)
		}

		count, err := s.reservationRepo.CountActiveByGuestTx(ctx, tx, id, today)
		if err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
		if count > 0 {
			return errors.ErrGuestHasReservations
		}

		if err := tx.Delete(&models.Guest{}, id).Error; err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
		return nil
	})

	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("删除住客成功", logger.GuestID(id))
	return nil
}

// validateGuest 校验住客字段与唯一性
func (s *GuestService) validateGuest(ctx context.Context, req *GuestRequest, excludeID int64) error {
	if !utils.ValidateEmail(req.Email) {
		return errors.ErrGuestEmailInvalid
	}
	if !utils.ValidateNationalID(req.NationalID) {
		return errors.ErrGuestNationalIDInvalid
	}
	if req.Age < guestMinAge || req.Age > guestMaxAge {
		return errors.ErrGuestAgeInvalid
	}
	if req.Gender != models.GenderMale && req.Gender != models.GenderFemale && req.Gender != models.GenderOther {
		return errors.ErrGuestGenderInvalid
	}

	exists, err := s.guestRepo.ExistsByEmail(ctx, req.Email, excludeID)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return errors.ErrGuestEmailExists
	}

	exists, err = s.guestRepo.ExistsByNationalID(ctx, req.NationalID, excludeID)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return errors.ErrGuestNationalIDExists
	}
	return nil
}

// convertGuestInfo 转换住客信息
func convertGuestInfo(guest *models.Guest) *GuestInfo {
	return &GuestInfo{
		ID:         guest.ID,
		FirstName:  guest.FirstName,
		LastName:   guest.LastName,
		Email:      guest.Email,
		NationalID: guest.NationalID,
		Age:        guest.Age,
		Gender:     guest.Gender,
		City:       guest.City,
		CreatedAt:  guest.CreatedAt,
	}
}

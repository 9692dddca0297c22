// Package hotel 提供酒店预订服务
package hotel

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dumeirei/hotel-management-backend/internal/common/errors"
	"github.com/dumeirei/hotel-management-backend/internal/common/logger"
	"github.com/dumeirei/hotel-management-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-management-backend/internal/common/utils"
	"github.com/dumeirei/hotel-management-backend/internal/models"
	"github.com/dumeirei/hotel-management-backend/internal/repository"
)

// ReservationService 预订服务
type ReservationService struct {
	db              *gorm.DB
	reservationRepo *repository.ReservationRepository
	roomRepo        *repository.RoomRepository
	guestRepo       *repository.GuestRepository
	billingRepo     *repository.BillingRepository
	itemRepo        *repository.ReservationServiceRepository
}

// NewReservationService 创建预订服务
func NewReservationService(
	db *gorm.DB,
	reservationRepo *repository.ReservationRepository,
	roomRepo *repository.RoomRepository,
	guestRepo *repository.GuestRepository,
	billingRepo *repository.BillingRepository,
	itemRepo *repository.ReservationServiceRepository,
) *ReservationService {
	return &ReservationService{
		db:              db,
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		guestRepo:       guestRepo,
		billingRepo:     billingRepo,
		itemRepo:        itemRepo,
	}
}

// CreateReservationRequest 创建预订请求
type CreateReservationRequest struct {
	GuestID  int64     `json:"guest_id"`
	RoomNo   int64     `json:"room_no"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Adults   int       `json:"adults"`
	Children int       `json:"children"`
}

// ReservationInfo 预订信息
type ReservationInfo struct {
	ID              int64        `json:"id"`
	ReservationDate time.Time    `json:"reservation_date"`
	GuestID         int64        `json:"guest_id"`
	GuestName       string       `json:"guest_name,omitempty"`
	RoomNo          int64        `json:"room_no"`
	RoomTypeName    string       `json:"room_type_name,omitempty"`
	CheckIn         time.Time    `json:"check_in"`
	CheckOut        time.Time    `json:"check_out"`
	Nights          int          `json:"nights"`
	Adults          int          `json:"adults"`
	Children        int          `json:"children"`
	Billing         *BillingInfo `json:"billing,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// CheckAvailability 检查房间在指定区间是否可订
//
// 区间按左闭右开比较, 退房当日即可再次入住。
func (s *ReservationService) CheckAvailability(ctx context.Context, roomNo int64, checkIn, checkOut time.Time) (bool, error) {
	checkIn = utils.DateOnly(checkIn)
	checkOut = utils.DateOnly(checkOut)
	if !checkOut.After(checkIn) {
		return false, errors.ErrCheckOutBeforeCheckIn
	}

	if _, err := s.roomRepo.GetByNo(ctx, roomNo); err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, errors.ErrRoomNotFound
		}
		return false, errors.ErrDatabaseError.WithError(err)
	}

	exists, err := s.reservationRepo.ExistsOverlapping(ctx, roomNo, checkIn, checkOut, 0)
	if err != nil {
		return false, errors.ErrDatabaseError.WithError(err)
	}
	return !exists, nil
}

// CreateReservation 创建预订
//
// 锁定房间行后在同一事务内复查区间冲突, 再写入预订与账单,
// 保证并发下同一房间不会出现相交区间。
func (s *ReservationService) CreateReservation(ctx context.Context, req *CreateReservationRequest) (*ReservationInfo, error) {
	checkIn := utils.DateOnly(req.CheckIn)
	checkOut := utils.DateOnly(req.CheckOut)

	if !checkOut.After(checkIn) {
		return nil, errors.ErrCheckOutBeforeCheckIn
	}
	if req.Adults < 1 {
		return nil, errors.ErrAdultsInvalid
	}
	if req.Children < 0 {
		return nil, errors.ErrChildrenInvalid
	}

	// 住客必须存在
	if _, err := s.guestRepo.GetByID(ctx, req.GuestID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	var reservation *models.Reservation
	var billing *models.Billing

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 锁定房间行, 串行化同一房间的并发下单
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("RoomType").
			Where("room_no = ?", req.RoomNo).
			First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrRoomNotFound
			}
			return errors.ErrDatabaseError.WithError(err)
		}
		if room.RoomType == nil {
			return errors.ErrRoomTypeNotFound
		}

		// 持锁复查区间冲突
		var count int64
		if err := tx.Model(&models.Reservation{}).
			Where("room_no = ?", req.RoomNo).
			Where("check_in < ? AND check_out > ?", checkOut, checkIn).
			Count(&count).Error; err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
		if count > 0 {
			return errors.ErrRoomConflict
		}

		reservation = &models.Reservation{
			ReservationDate: utils.Today(),
			GuestID:         req.GuestID,
			RoomNo:          req.RoomNo,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Adults:          req.Adults,
			Children:        req.Children,
		}
		if err := tx.Create(reservation).Error; err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}

		// 房费 = 间夜数 × 房型基础价, 账单与预订同事务落库
		nights := utils.NightsBetween(checkIn, checkOut)
		roomCharges := float64(nights) * room.RoomType.BasePrice
		billing = &models.Billing{
			ReservationID:  reservation.ID,
			RoomCharges:    roomCharges,
			ServiceCharges: 0,
			Total:          roomCharges,
			PaymentStatus:  models.PaymentStatusPending,
		}
		if err := tx.Create(billing).Error; err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}

		return nil
	})

	if err != nil {
		if m := metrics.GetMetrics(); m != nil {
			m.RecordReservation("create", "failed")
		}
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordReservation("create", "success")
	}
	logger.Info("创建预订成功",
		logger.ReservationID(reservation.ID),
		logger.GuestID(reservation.GuestID),
		logger.RoomNo(reservation.RoomNo),
	)

	full, err := s.reservationRepo.GetByIDWithDetails(ctx, reservation.ID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertReservationInfo(full), nil
}

// GetReservation 获取预订详情
func (s *ReservationService) GetReservation(ctx context.Context, id int64) (*ReservationInfo, error) {
	reservation, err := s.reservationRepo.GetByIDWithDetails(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	// 预订必须带账单, 缺失说明数据已损坏
	if reservation.Billing == nil {
		return nil, errors.ErrBillingIntegrity
	}
	return convertReservationInfo(reservation), nil
}

// ListReservations 获取预订列表
func (s *ReservationService) ListReservations(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]*ReservationInfo, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	reservations, total, err := s.reservationRepo.List(ctx, offset, pageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*ReservationInfo, 0, len(reservations))
	for _, reservation := range reservations {
		result = append(result, convertReservationInfo(reservation))
	}
	return result, total, nil
}

// ListCurrentReservations 获取今日在住预订列表
func (s *ReservationService) ListCurrentReservations(ctx context.Context) ([]*ReservationInfo, error) {
	reservations, err := s.reservationRepo.ListCurrent(ctx, utils.Today())
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*ReservationInfo, 0, len(reservations))
	for _, reservation := range reservations {
		result = append(result, convertReservationInfo(reservation))
	}
	return result, nil
}

// DeleteReservation 删除预订
//
// 仍挂有服务明细的预订不允许删除; 账单与预订在同一事务内删除,
// 删除门槛检查也在该事务内完成。
func (s *ReservationService) DeleteReservation(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reservation, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrReservationNotFound
			}
			return errors.ErrDatabaseError.WithError(err)
		}

		itemCount, err := s.itemRepo.CountByReservationTx(ctx, tx, id)
		if err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
		if itemCount > 0 {
			return errors.ErrReservationHasServices
		}

		// 先删账单再删预订
		if err := tx.Where("reservation_id = ?", id).
			Delete(&models.Billing{}).Error; err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
		if err := tx.Delete(&models.Reservation{}, id).Error; err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
		return nil
	})

	if err != nil {
		if m := metrics.GetMetrics(); m != nil {
			m.RecordReservation("delete", "failed")
		}
		if errors.IsAppError(err) {
			return err
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordReservation("delete", "success")
	}
	logger.Info("删除预订成功", logger.ReservationID(id))
	return nil
}

// convertReservationInfo 转换预订信息
func convertReservationInfo(reservation *models.Reservation) *ReservationInfo {
	info := &ReservationInfo{
		ID:              reservation.ID,
		ReservationDate: reservation.ReservationDate,
		GuestID:         reservation.GuestID,
		RoomNo:          reservation.RoomNo,
		CheckIn:         reservation.CheckIn,
		CheckOut:        reservation.CheckOut,
		Nights:          reservation.Nights(),
		Adults:          reservation.Adults,
		Children:        reservation.Children,
		CreatedAt:       reservation.CreatedAt,
	}

	if reservation.Guest != nil {
		info.GuestName = reservation.Guest.FirstName + " " + reservation.Guest.LastName
	}
	if reservation.Room != nil && reservation.Room.RoomType != nil {
		info.RoomTypeName = reservation.Room.RoomType.TypeName
	}
	if reservation.Billing != nil {
		info.Billing = convertBillingInfo(reservation.Billing)
	}

	return info
}

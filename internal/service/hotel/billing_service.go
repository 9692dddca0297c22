// Package hotel 提供酒店预订服务
package hotel

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dumeirei/hotel-management-backend/internal/common/config"
	"github.com/dumeirei/hotel-management-backend/internal/common/errors"
	"github.com/dumeirei/hotel-management-backend/internal/common/logger"
	"github.com/dumeirei/hotel-management-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-management-backend/internal/common/utils"
	"github.com/dumeirei/hotel-management-backend/internal/models"
	"github.com/dumeirei/hotel-management-backend/internal/repository"
)

// BillingService 账单服务
type BillingService struct {
	db              *gorm.DB
	business        *config.BusinessConfig
	billingRepo     *repository.BillingRepository
	reservationRepo *repository.ReservationRepository
	serviceRepo     *repository.ServiceRepository
	itemRepo        *repository.ReservationServiceRepository
}

// NewBillingService 创建账单服务
func NewBillingService(
	db *gorm.DB,
	business *config.BusinessConfig,
	billingRepo *repository.BillingRepository,
	reservationRepo *repository.ReservationRepository,
	serviceRepo *repository.ServiceRepository,
	itemRepo *repository.ReservationServiceRepository,
) *BillingService {
	return &BillingService{
		db:              db,
		business:        business,
		billingRepo:     billingRepo,
		reservationRepo: reservationRepo,
		serviceRepo:     serviceRepo,
		itemRepo:        itemRepo,
	}
}

// BillingInfo 账单信息
type BillingInfo struct {
	ID             int64      `json:"id"`
	ReservationID  int64      `json:"reservation_id"`
	RoomCharges    float64    `json:"room_charges"`
	ServiceCharges float64    `json:"service_charges"`
	Total          float64    `json:"total"`
	PaymentStatus  string     `json:"payment_status"`
	PaymentMethod  *string    `json:"payment_method,omitempty"`
	PaymentDate    *time.Time `json:"payment_date,omitempty"`
}

// ServiceItemInfo 预订服务明细信息
type ServiceItemInfo struct {
	ID           int64     `json:"id"`
	ServiceID    int64     `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	ServicePrice float64   `json:"service_price"`
	Quantity     int       `json:"quantity"`
	Subtotal     float64   `json:"subtotal"`
	ServiceDate  time.Time `json:"service_date"`
}

// AddServiceRequest 追加服务请求
type AddServiceRequest struct {
	ServiceID   int64     `json:"service_id"`
	Quantity    int       `json:"quantity"`
	ServiceDate time.Time `json:"service_date"`
}

// CheckoutRequest 结账请求
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// CheckoutCandidateInfo 待结账账单信息
type CheckoutCandidateInfo struct {
	BillingID     int64     `json:"billing_id"`
	ReservationID int64     `json:"reservation_id"`
	GuestName     string    `json:"guest_name,omitempty"`
	RoomNo        int64     `json:"room_no"`
	CheckOut      time.Time `json:"check_out"`
	Total         float64   `json:"total"`
}

// GetBillingByReservation 获取预订账单
//
// 预订存在而账单缺失属于数据损坏, 直接报错, 不做静默修补。
func (s *BillingService) GetBillingByReservation(ctx context.Context, reservationID int64) (*BillingInfo, error) {
	if _, err := s.reservationRepo.GetByID(ctx, reservationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	billing, err := s.billingRepo.GetByReservationID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.Error("预订账单缺失", logger.ReservationID(reservationID))
			return nil, errors.ErrBillingIntegrity
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertBillingInfo(billing), nil
}

// ListServiceItems 获取预订的服务明细列表
func (s *BillingService) ListServiceItems(ctx context.Context, reservationID int64) ([]*ServiceItemInfo, error) {
	if _, err := s.reservationRepo.GetByID(ctx, reservationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	items, err := s.itemRepo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*ServiceItemInfo, 0, len(items))
	for _, item := range items {
		result = append(result, convertServiceItemInfo(item))
	}
	return result, nil
}

// AddService 为预订追加服务
//
// 明细写入与账单重算在同一事务内完成, 已结账的预订拒绝修改。
func (s *BillingService) AddService(ctx context.Context, reservationID int64, req *AddServiceRequest) (*BillingInfo, error) {
	if req.Quantity < 1 {
		return nil, errors.ErrServiceQuantityInvalid
	}

	serviceDate := utils.DateOnly(req.ServiceDate)
	if serviceDate.IsZero() {
		serviceDate = utils.Today()
	}

	var billing *models.Billing
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockBillingTx(tx, reservationID)
		if err != nil {
			return err
		}
		if locked.PaymentStatus == models.PaymentStatusPaid {
			return errors.ErrReservationCheckedOut
		}

		var service models.Service
		if err := tx.First(&service, req.ServiceID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrServiceNotFound
			}
			return errors.ErrDatabaseError.WithError(err)
		}

		item := &models.ReservationService{
			ReservationID: reservationID,
			ServiceID:     service.ID,
			Quantity:      req.Quantity,
			ServiceDate:   serviceDate,
		}
		if err := tx.Create(item).Error; err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}

		billing, err = s.recomputeTx(ctx, tx, locked)
		return err
	})

	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("追加预订服务",
		logger.ReservationID(reservationID),
		logger.BillingID(billing.ID),
	)
	return convertBillingInfo(billing), nil
}

// RemoveService 移除预订的服务明细
func (s *BillingService) RemoveService(ctx context.Context, reservationID, itemID int64) (*BillingInfo, error) {
	var billing *models.Billing
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockBillingTx(tx, reservationID)
		if err != nil {
			return err
		}
		if locked.PaymentStatus == models.PaymentStatusPaid {
			return errors.ErrReservationCheckedOut
		}

		var item models.ReservationService
		if err := tx.Where("id = ? AND reservation_id = ?", itemID, reservationID).
			First(&item).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrServiceItemNotFound
			}
			return errors.ErrDatabaseError.WithError(err)
		}

		if err := tx.Delete(&models.ReservationService{}, item.ID).Error; err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}

		billing, err = s.recomputeTx(ctx, tx, locked)
		return err
	})

	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("移除预订服务",
		logger.ReservationID(reservationID),
		logger.BillingID(billing.ID),
	)
	return convertBillingInfo(billing), nil
}

// RecomputeServiceCharges 重算预订的服务费用
//
// 以明细表为准重算, 幂等, 可用于修复走样的账单金额。
func (s *BillingService) RecomputeServiceCharges(ctx context.Context, reservationID int64) (*BillingInfo, error) {
	var billing *models.Billing
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockBillingTx(tx, reservationID)
		if err != nil {
			return err
		}
		billing, err = s.recomputeTx(ctx, tx, locked)
		return err
	})

	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertBillingInfo(billing), nil
}

// ProcessCheckout 办理结账
//
// 仅允许 pending 到 paid 的单向流转, 默认须到退房日才能结账,
// 可通过 business.checkout.allow_early 放开提前结账。
func (s *BillingService) ProcessCheckout(ctx context.Context, reservationID int64, req *CheckoutRequest) (*BillingInfo, error) {
	if !utils.Contains(models.ValidPaymentMethods, req.PaymentMethod) {
		return nil, errors.ErrPaymentMethodError
	}

	today := utils.Today()
	var billing *models.Billing

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockBillingTx(tx, reservationID)
		if err != nil {
			return err
		}
		if locked.PaymentStatus == models.PaymentStatusPaid {
			return errors.ErrAlreadyPaid
		}

		var reservation models.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}

		allowEarly := s.business != nil && s.business.Checkout.AllowEarly
		if utils.DateOnly(reservation.CheckOut).After(today) && !allowEarly {
			return errors.ErrCheckoutNotDue
		}

		method := req.PaymentMethod
		locked.PaymentStatus = models.PaymentStatusPaid
		locked.PaymentMethod = &method
		locked.PaymentDate = &today
		if err := tx.Save(locked).Error; err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
		billing = locked
		return nil
	})

	if err != nil {
		if m := metrics.GetMetrics(); m != nil {
			m.RecordCheckout(req.PaymentMethod, "failed")
		}
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordCheckout(req.PaymentMethod, "success")
	}
	logger.Info("结账成功",
		logger.ReservationID(reservationID),
		logger.BillingID(billing.ID),
	)
	return convertBillingInfo(billing), nil
}

// ListCheckoutCandidates 获取待结账列表
//
// 已到退房日且账单未支付的预订。
func (s *BillingService) ListCheckoutCandidates(ctx context.Context) ([]*CheckoutCandidateInfo, error) {
	billings, err := s.billingRepo.ListPendingDue(ctx, utils.Today())
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*CheckoutCandidateInfo, 0, len(billings))
	for _, billing := range billings {
		info := &CheckoutCandidateInfo{
			BillingID:     billing.ID,
			ReservationID: billing.ReservationID,
			Total:         billing.Total,
		}
		if billing.Reservation != nil {
			info.RoomNo = billing.Reservation.RoomNo
			info.CheckOut = billing.Reservation.CheckOut
			if billing.Reservation.Guest != nil {
				info.GuestName = billing.Reservation.Guest.FirstName + " " + billing.Reservation.Guest.LastName
			}
		}
		result = append(result, info)
	}
	return result, nil
}

// lockBillingTx 在事务内锁定预订账单
//
// 预订不存在返回 ErrReservationNotFound, 账单缺失返回 ErrBillingIntegrity。
func (s *BillingService) lockBillingTx(tx *gorm.DB, reservationID int64) (*models.Billing, error) {
	var reservation models.Reservation
	if err := tx.First(&reservation, reservationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	var billing models.Billing
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reservation_id = ?", reservationID).
		First(&billing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.Error("预订账单缺失", logger.ReservationID(reservationID))
			return nil, errors.ErrBillingIntegrity
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return &billing, nil
}

// recomputeTx 在事务内按明细重算账单
func (s *BillingService) recomputeTx(ctx context.Context, tx *gorm.DB, billing *models.Billing) (*models.Billing, error) {
	sum, err := s.itemRepo.SumChargesTx(ctx, tx, billing.ReservationID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	billing.ServiceCharges = sum
	billing.Total = billing.RoomCharges + sum
	if err := tx.Save(billing).Error; err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return billing, nil
}

// convertBillingInfo 转换账单信息
func convertBillingInfo(billing *models.Billing) *BillingInfo {
	return &BillingInfo{
		ID:             billing.ID,
		ReservationID:  billing.ReservationID,
		RoomCharges:    billing.RoomCharges,
		ServiceCharges: billing.ServiceCharges,
		Total:          billing.Total,
		PaymentStatus:  billing.PaymentStatus,
		PaymentMethod:  billing.PaymentMethod,
		PaymentDate:    billing.PaymentDate,
	}
}

// convertServiceItemInfo 转换服务明细信息
func convertServiceItemInfo(item *models.ReservationService) *ServiceItemInfo {
	info := &ServiceItemInfo{
		ID:          item.ID,
		ServiceID:   item.ServiceID,
		Quantity:    item.Quantity,
		ServiceDate: item.ServiceDate,
	}
	if item.Service != nil {
		info.ServiceName = item.Service.ServiceName
		info.ServicePrice = item.Service.ServicePrice
		info.Subtotal = item.Service.ServicePrice * float64(item.Quantity)
	}
	return info
}

// Package hotel 提供酒店预订服务
package hotel

import (
	"context"
	"time"

	"github.com/dumeirei/hotel-management-backend/internal/common/errors"
	"github.com/dumeirei/hotel-management-backend/internal/common/utils"
	"github.com/dumeirei/hotel-management-backend/internal/models"
	"github.com/dumeirei/hotel-management-backend/internal/repository"
)

// ReportService 报表服务
type ReportService struct {
	reservationRepo *repository.ReservationRepository
	billingRepo     *repository.BillingRepository
	roomRepo        *repository.RoomRepository
}

// NewReportService 创建报表服务
func NewReportService(
	reservationRepo *repository.ReservationRepository,
	billingRepo *repository.BillingRepository,
	roomRepo *repository.RoomRepository,
) *ReportService {
	return &ReportService{
		reservationRepo: reservationRepo,
		billingRepo:     billingRepo,
		roomRepo:        roomRepo,
	}
}

// RevenueSummary 收入汇总
type RevenueSummary struct {
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	RoomCharges    float64   `json:"room_charges"`
	ServiceCharges float64   `json:"service_charges"`
	Total          float64   `json:"total"`
}

// DashboardInfo 仪表盘信息
type DashboardInfo struct {
	TotalRooms          int64              `json:"total_rooms"`
	OccupiedRooms       int64              `json:"occupied_rooms"`
	OccupancyRate       float64            `json:"occupancy_rate"`
	PendingBillings     int64              `json:"pending_billings"`
	CurrentReservations []*ReservationInfo `json:"current_reservations"`
}

// ReservationReport 获取入住日落在区间内的预订报表
func (s *ReportService) ReservationReport(ctx context.Context, start, end time.Time) ([]*ReservationInfo, error) {
	start = utils.DateOnly(start)
	end = utils.DateOnly(end)
	if end.Before(start) {
		return nil, errors.ErrInvalidDateRange
	}

	reservations, err := s.reservationRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*ReservationInfo, 0, len(reservations))
	for _, reservation := range reservations {
		result = append(result, convertReservationInfo(reservation))
	}
	return result, nil
}

// GetRevenueSummary 获取区间收入汇总
//
// 只统计已支付账单, 按支付日期归属区间。
func (s *ReportService) GetRevenueSummary(ctx context.Context, start, end time.Time) (*RevenueSummary, error) {
	start = utils.DateOnly(start)
	end = utils.DateOnly(end)
	if end.Before(start) {
		return nil, errors.ErrInvalidDateRange
	}

	roomCharges, serviceCharges, total, err := s.billingRepo.SumPaidByDateRange(ctx, start, end)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return &RevenueSummary{
		StartDate:      start,
		EndDate:        end,
		RoomCharges:    roomCharges,
		ServiceCharges: serviceCharges,
		Total:          total,
	}, nil
}

// GetDashboard 获取仪表盘信息
func (s *ReportService) GetDashboard(ctx context.Context) (*DashboardInfo, error) {
	today := utils.Today()

	total, err := s.roomRepo.Count(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	occupied, err := s.reservationRepo.CountOccupiedRooms(ctx, today)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	pending, err := s.billingRepo.CountByStatus(ctx, models.PaymentStatusPending)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	current, err := s.reservationRepo.ListCurrent(ctx, today)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	currentInfos := make([]*ReservationInfo, 0, len(current))
	for _, reservation := range current {
		currentInfos = append(currentInfos, convertReservationInfo(reservation))
	}

	info := &DashboardInfo{
		TotalRooms:          total,
		OccupiedRooms:       occupied,
		PendingBillings:     pending,
		CurrentReservations: currentInfos,
	}
	if total > 0 {
		info.OccupancyRate = float64(occupied) / float64(total)
	}
	return info, nil
}

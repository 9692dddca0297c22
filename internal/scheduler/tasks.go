// Package scheduler 提供定时任务
package scheduler

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management-backend/internal/common/config"
	"github.com/dumeirei/hotel-management-backend/internal/common/logger"
	hotelService "github.com/dumeirei/hotel-management-backend/internal/service/hotel"
)

// TaskHandler 任务处理器
type TaskHandler struct {
	db          *gorm.DB
	roomService *hotelService.RoomService
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(db *gorm.DB, roomSvc *hotelService.RoomService) *TaskHandler {
	return &TaskHandler{
		db:          db,
		roomService: roomSvc,
	}
}

// SyncRoomStatuses 按在住预订刷新房间状态
func (h *TaskHandler) SyncRoomStatuses(ctx context.Context) error {
	return h.roomService.SyncRoomStatuses(ctx)
}

// AuditBillingIntegrity 巡检缺失账单的预订
//
// 只记录告警, 不自动补建账单, 修复需要人工介入。
func (h *TaskHandler) AuditBillingIntegrity(ctx context.Context) error {
	var count int64
	err := h.db.WithContext(ctx).
		Table("reservations").
		Joins("LEFT JOIN billings ON billings.reservation_id = reservations.id").
		Where("billings.id IS NULL").
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		logger.Error("发现缺失账单的预订", logger.Int64("count", count))
	}

	return nil
}

// SetupTasks 设置所有任务
func SetupTasks(scheduler *Scheduler, handler *TaskHandler, business *config.BusinessConfig) {
	syncInterval := time.Duration(business.Occupancy.SyncInterval) * time.Minute
	if syncInterval <= 0 {
		syncInterval = 30 * time.Minute
	}

	// 按配置间隔同步房态
	scheduler.AddTask("SyncRoomStatuses", syncInterval, handler.SyncRoomStatuses)

	// 每小时巡检账单完整性
	scheduler.AddTask("AuditBillingIntegrity", 1*time.Hour, handler.AuditBillingIntegrity)
}

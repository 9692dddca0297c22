package models

import (
	"time"
)

// Service 服务目录模型
type Service struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ServiceName  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"service_name"`
	ServicePrice float64   `gorm:"type:decimal(10,2);not null" json:"service_price"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (Service) TableName() string {
	return "services"
}

// ReservationService 预订服务明细模型
//
// 不变量: 同一预订所有明细的 quantity × service_price 之和
// 等于该预订账单的 service_charges。
type ReservationService struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationID int64     `gorm:"index;not null" json:"reservation_id"`
	ServiceID     int64     `gorm:"index;not null" json:"service_id"`
	Quantity      int       `gorm:"not null;default:1" json:"quantity"`
	ServiceDate   time.Time `gorm:"type:date;not null" json:"service_date"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Reservation *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	Service     *Service     `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// TableName 表名
func (ReservationService) TableName() string {
	return "reservation_services"
}

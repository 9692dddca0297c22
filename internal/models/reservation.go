package models

import (
	"time"
)

// Reservation 预订模型
//
// CheckIn/CheckOut 均为日期, 区间含义为左闭右开 [check_in, check_out),
// 同一房间任意两条预订的区间不得相交, 首尾相接不算冲突。
type Reservation struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationDate time.Time `gorm:"type:date;not null" json:"reservation_date"`
	GuestID         int64     `gorm:"index;not null" json:"guest_id"`
	RoomNo          int64     `gorm:"index;not null" json:"room_no"`
	CheckIn         time.Time `gorm:"type:date;not null;index" json:"check_in"`
	CheckOut        time.Time `gorm:"type:date;not null;index" json:"check_out"`
	Adults          int       `gorm:"not null;default:1" json:"adults"`
	Children        int       `gorm:"not null;default:0" json:"children"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Guest    *Guest               `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Room     *Room                `gorm:"foreignKey:RoomNo;references:RoomNo" json:"room,omitempty"`
	Billing  *Billing             `gorm:"foreignKey:ReservationID" json:"billing,omitempty"`
	Services []ReservationService `gorm:"foreignKey:ReservationID" json:"services,omitempty"`
}

// TableName 表名
func (Reservation) TableName() string {
	return "reservations"
}

// Nights 间夜数
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

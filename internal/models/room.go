package models

import (
	"time"
)

// RoomType 房型模型
type RoomType struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TypeName  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"type_name"`
	BasePrice float64   `gorm:"type:decimal(10,2);not null" json:"base_price"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Rooms []Room `gorm:"foreignKey:TypeID" json:"rooms,omitempty"`
}

// TableName 表名
func (RoomType) TableName() string {
	return "room_types"
}

// Room 房间模型
//
// Status 为派生字段, 由定时任务根据当日预订区间同步,
// 仅供仪表盘展示使用; 可用性判断只看预订区间, 不读该字段。
type Room struct {
	RoomNo    int64     `gorm:"primaryKey;column:room_no" json:"room_no"`
	TypeID    int64     `gorm:"index;not null" json:"type_id"`
	Status    string    `gorm:"type:varchar(20);not null;default:'vacant'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	RoomType     *RoomType     `gorm:"foreignKey:TypeID" json:"room_type,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:RoomNo;references:RoomNo" json:"reservations,omitempty"`
}

// TableName 表名
func (Room) TableName() string {
	return "rooms"
}

// RoomStatus 房间状态
const (
	RoomStatusVacant   = "vacant"   // 空闲
	RoomStatusOccupied = "occupied" // 入住中
)

package models

import (
	"time"
)

// Guest 住客模型
type Guest struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName  string    `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName   string    `gorm:"type:varchar(50);not null" json:"last_name"`
	Email      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	NationalID string    `gorm:"type:varchar(13);uniqueIndex;not null" json:"national_id"`
	Age        int       `gorm:"not null" json:"age"`
	Gender     string    `gorm:"type:varchar(1);not null" json:"gender"`
	City       string    `gorm:"type:varchar(50);not null" json:"city"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Reservations []Reservation `gorm:"foreignKey:GuestID" json:"reservations,omitempty"`
}

// TableName 表名
func (Guest) TableName() string {
	return "guests"
}

// Gender 性别
const (
	GenderMale   = "M" // 男
	GenderFemale = "F" // 女
	GenderOther  = "O" // 其他
)

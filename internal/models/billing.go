package models

import (
	"time"
)

// Billing 账单模型
//
// 与预订一一对应, 随预订在同一事务内创建。
// 不变量: Total == RoomCharges + ServiceCharges。
type Billing struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationID  int64      `gorm:"uniqueIndex;not null" json:"reservation_id"`
	RoomCharges    float64    `gorm:"type:decimal(10,2);not null" json:"room_charges"`
	ServiceCharges float64    `gorm:"type:decimal(10,2);not null;default:0" json:"service_charges"`
	Total          float64    `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentStatus  string     `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod  *string    `gorm:"type:varchar(30)" json:"payment_method,omitempty"`
	PaymentDate    *time.Time `gorm:"type:date" json:"payment_date,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Reservation *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
}

// TableName 表名
func (Billing) TableName() string {
	return "billings"
}

// PaymentStatus 支付状态
const (
	PaymentStatusPending = "pending" // 待支付
	PaymentStatusPaid    = "paid"    // 已支付
)

// PaymentMethod 支付方式
const (
	PaymentMethodCash         = "Cash"          // 现金
	PaymentMethodCreditCard   = "Credit Card"   // 信用卡
	PaymentMethodDebitCard    = "Debit Card"    // 借记卡
	PaymentMethodBankTransfer = "Bank Transfer" // 银行转账
)

// ValidPaymentMethods 支持的支付方式
var ValidPaymentMethods = []string{
	PaymentMethodCash,
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodBankTransfer,
}

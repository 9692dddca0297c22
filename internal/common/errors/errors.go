// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown         = New(1000, "未知错误")
	ErrInvalidParams   = New(1001, "参数错误")
	ErrNotFound        = New(1002, "资源不存在")
	ErrAlreadyExists   = New(1003, "资源已存在")
	ErrDatabaseError   = New(1004, "数据库错误")
	ErrCacheError      = New(1005, "缓存错误")
	ErrInternalError   = New(1006, "内部错误")
	ErrRateLimitExceed = New(1008, "请求过于频繁")
	ErrOperationFailed = New(1009, "操作失败")
	ErrInvalidDateRange = New(1010, "日期区间无效")
)

// 住客错误码 (3000-3999)
var (
	ErrGuestNotFound        = New(3000, "住客不存在")
	ErrGuestEmailExists     = New(3001, "邮箱已被注册")
	ErrGuestNationalIDExists = New(3002, "证件号已被注册")
	ErrGuestEmailInvalid    = New(3003, "无效的邮箱")
	ErrGuestNationalIDInvalid = New(3004, "证件号须为13位数字")
	ErrGuestAgeInvalid      = New(3005, "年龄须在18至100之间")
	ErrGuestGenderInvalid   = New(3006, "无效的性别")
	ErrGuestHasReservations = New(3007, "住客存在未结束的预订, 无法删除")
)

// 房间错误码 (4000-4999)
var (
	ErrRoomNotFound     = New(4000, "房间不存在")
	ErrRoomTypeNotFound = New(4001, "房型不存在")
)

// 账单错误码 (6000-6999)
var (
	ErrBillingNotFound    = New(6000, "账单不存在")
	ErrAlreadyPaid        = New(6001, "账单已支付")
	ErrCheckoutNotDue     = New(6002, "未到退房日期, 无法结账")
	ErrPaymentMethodError = New(6003, "支付方式错误")
	ErrBillingIntegrity   = New(6004, "预订缺少账单记录")
)

// 服务错误码 (7000-7999)
var (
	ErrServiceNotFound        = New(7000, "服务项目不存在")
	ErrServiceQuantityInvalid = New(7001, "服务数量须大于0")
	ErrServiceItemNotFound    = New(7002, "服务明细不存在")
	ErrReservationCheckedOut  = New(7003, "预订已结账, 无法变更服务")
)

// 预订错误码 (8000-8999)
var (
	ErrReservationNotFound    = New(8000, "预订不存在")
	ErrRoomConflict           = New(8001, "该时段房间已被预订")
	ErrCheckOutBeforeCheckIn  = New(8002, "退房日期须晚于入住日期")
	ErrAdultsInvalid          = New(8003, "成人数须至少为1")
	ErrChildrenInvalid        = New(8004, "儿童数不能为负")
	ErrReservationHasServices = New(8005, "预订存在服务明细, 无法删除")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}

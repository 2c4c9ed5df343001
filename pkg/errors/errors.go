package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 稳定的、机器可读的错误类别
// 客户端应依赖Kind判断错误类型，Message只用于展示
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindStore             Kind = "store"
	KindLogging           Kind = "logging"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，Kind是稳定的错误类别
// 2. Status是对应的HTTP状态码
// 3. Message是用户友好的提示信息
// 4. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Status  int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同一错误码视为同一错误
// 包装后的错误（WithCause）仍然可以用errors.Is匹配预定义错误
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithCause 复制一份错误并附加内部原因
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// New 创建新的AppError，Kind与Status由错误码推导
func New(code int, message string) *AppError {
	kind, status := classify(code)
	return &AppError{
		Code:    code,
		Kind:    kind,
		Status:  status,
		Message: message,
	}
}

// NewWithStatus 创建指定HTTP状态码的AppError
// 用于接口约定的状态码与默认推导不一致的场景（如插入失败返回400）
func NewWithStatus(code int, status int, message string) *AppError {
	e := New(code, message)
	e.Status = status
	return e
}

// Wrap 包装系统错误（如数据库错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeDatabaseError,
		Kind:    KindStore,
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、审计日志写入失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeLogError      = 50003 // 库存日志写入失败

	// 资源错误（40400-40499）
	ErrCodeNotFound        = 40400 // 资源不存在(通用)
	ErrCodeProductNotFound = 40402 // 商品不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError     = 40000 // 业务错误(通用)
	ErrCodeInsufficientStock = 40001 // 库存不足
	ErrCodeStockLimit        = 40002 // 库存超出上限
	ErrCodeProductCreate     = 40010 // 商品写入失败
	ErrCodeRestock           = 40011 // 补货写入失败

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败

	// 幂等冲突（40910）
	ErrCodeRequestInProgress = 40910 // 同一幂等键的请求正在处理
)

// classify 错误码 → (Kind, HTTP状态码)
func classify(code int) (Kind, int) {
	switch {
	case code == ErrCodeInsufficientStock:
		return KindInsufficientStock, http.StatusBadRequest
	case code == ErrCodeLogError:
		return KindLogging, http.StatusInternalServerError
	case code == ErrCodeProductCreate, code == ErrCodeRestock:
		return KindStore, http.StatusBadRequest
	case code >= 40400 && code < 40500:
		return KindNotFound, http.StatusNotFound
	case code >= 40000 && code < 50000:
		return KindValidation, http.StatusBadRequest
	default:
		return KindStore, http.StatusInternalServerError
	}
}

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal = New(ErrCodeInternal, "Error interno del servidor")

	ErrRequestInProgress = NewWithStatus(ErrCodeRequestInProgress, http.StatusConflict, "La solicitud ya se está procesando")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成数据库/内部错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	e := ErrInternal.WithCause(err)
	return e
}

// KindOf 返回错误类别，非AppError视为store
func KindOf(err error) Kind {
	return GetAppError(err).Kind
}

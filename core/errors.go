package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - Registry 错误：UNAVAILABLE（模型族未就绪）
//   - 输入错误：INVALID_INPUT（结构性非法请求，区别于可默认的缺字段）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "UNAVAILABLE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "registry", "infer"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误（或其包装链）是否为 DomainError 类型
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError 从错误链中取出 DomainError，没有则返回 nil
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleStore    = "store"    // 存储模块
	ModuleFeature  = "feature"  // 特征模块
	ModuleRegistry = "registry" // 模型注册表模块
	ModuleInfer    = "infer"    // 推理模块
	ModuleService  = "service"  // 服务模块
)

// ErrModelsUnavailable 表示生产族与 Fallback 族均不可用，推理无法进行。
// 调用方应改用规则启发式策略，而不是把该错误抛给终端用户。
var ErrModelsUnavailable = NewDomainError(ModuleInfer, ErrorCodeUnavailable, "infer: no usable model population")

// ErrInvalidInput 表示结构性非法请求（如空请求体），与可默认的缺字段不同，
// 这类请求会被拒绝而不是被默认值填充。
var ErrInvalidInput = NewDomainError(ModuleService, ErrorCodeInvalidInput, "service: structurally invalid request")

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}

package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 请求类错误 400xx
	ErrInvalidParam    = 40001 // 参数校验失败
	ErrUnauthenticated = 40101 // 需要登录
	ErrTokenInvalid    = 40102 // Token 无效或过期
	ErrForbidden       = 40301 // 已登录但不是资源所有者
	ErrNotFound        = 40401 // 资源不存在
	ErrConflict        = 40901 // 唯一性冲突
	ErrTooManyRequests = 42901 // 触发限流

	// 系统错误 500xx
	ErrServerInternal = 50001
)

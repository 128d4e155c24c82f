package apperr

import "errors"

// 全站统一的错误分类，handler层用errors.Is映射成HTTP状态码
// service层用fmt.Errorf("...: %w", ErrXxx)附加具体原因
var (
	ErrNotFound     = errors.New("资源不存在")     // 实体不存在，或对当前观看者不可见
	ErrBadRequest   = errors.New("非法请求")      // 参数格式错误，或违反业务规则（自我订阅、回复的回复）
	ErrUnauthorized = errors.New("未认证")       // 写操作缺少可解析的身份
	ErrForbidden    = errors.New("无权限")       // 身份有效但不是资源所有者
)

package errors

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)

// 上游协作服务错误码 (600-699)
const (
	CodeUpstreamError   = 600 // 上游微服务调用失败
	CodeUpstreamTimeout = 601 // 上游微服务超时
	CodeBadUpstreamData = 602 // 上游返回数据格式异常
)

package models

// PropertyView 展示用的房产行：房产本体加上当前用户的申请状态
//
// 由富集器把房产列表与当前代申请映射做联接得到，每次刷新/过滤
// 重新计算，不做持久化。
type PropertyView struct {
	Property
	HasRequested  bool           `json:"hasRequested"`
	RequestStatus *RequestStatus `json:"requestStatus,omitempty"`
	RequestID     *int64         `json:"requestId,omitempty"`
}

// AuthContext 认证上下文
//
// 角色、用户名、令牌从会话存储的隐式读取改为显式传参，
// 核心组件不接触任何环境态。
type AuthContext struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Token    string `json:"-"`
}

// IsTenant 当前主体是否为租户
func (a AuthContext) IsTenant() bool {
	return a.Role == "tenant"
}

// IsOwner 当前主体是否为业主
func (a AuthContext) IsOwner() bool {
	return a.Role == "owner"
}

// IsAdmin 当前主体是否为管理员
func (a AuthContext) IsAdmin() bool {
	return a.Role == "admin"
}

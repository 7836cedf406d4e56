package services

import (
	"sync"
	"time"

	"plmc/internal/models"
	"plmc/pkg/logger"

	"github.com/google/uuid"
)

// ConsoleSession 单个用户的控制台视图状态
//
// 对应浏览器里一个列表视图实例：两代申请快照（经由调和器）、
// 房产快照、通知队列、loading/错误/成功消息。所有内部状态由mu保护，
// 调和器实例归本会话独占。
type ConsoleSession struct {
	ID   string
	Auth models.AuthContext

	mu            sync.Mutex
	reconciler    *RequestReconciler
	allProperties []models.Property
	propertyIndex map[int64]models.Property
	tenantID      int64
	loading       bool
	errorMsg      string
	successMsg    string

	notifications      []models.Notification
	nextNotificationID int64

	// 刷新周期编号：提交结果时编号不等于最新值的周期直接丢弃，
	// 消除并发刷新交错的竞态（last-cycle-wins显式化）
	cycleID uint64

	lastActive    time.Time
	lastRefreshed time.Time
}

// TenantID 当前会话解析到的租户ID，0表示无租户上下文
func (s *ConsoleSession) TenantID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenantID
}

// RequestFor 查询current代中指定房产的申请（用于重复申请守卫和撤回）
func (s *ConsoleSession) RequestFor(propertyID int64) (models.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconciler.Lookup(propertyID)
}

// PropertyByID 从会话快照中查询房产
func (s *ConsoleSession) PropertyByID(propertyID int64) (models.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	property, ok := s.propertyIndex[propertyID]
	return property, ok
}

// SetSuccess 设置一次性成功消息（覆盖旧值）
func (s *ConsoleSession) SetSuccess(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successMsg = message
}

// SetError 设置一次性错误消息（覆盖旧值）
func (s *ConsoleSession) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorMsg = message
}

func (s *ConsoleSession) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// SessionService 控制台会话注册表
//
// 按 角色:用户名 维度懒创建会话，空闲超时后由扫除器回收。
type SessionService struct {
	mu          sync.RWMutex
	sessions    map[string]*ConsoleSession
	idleTimeout time.Duration
}

// NewSessionService 创建会话注册表
func NewSessionService(idleTimeout time.Duration) *SessionService {
	return &SessionService{
		sessions:    make(map[string]*ConsoleSession),
		idleTimeout: idleTimeout,
	}
}

// GetOrCreate 获取或创建认证主体对应的会话
func (s *SessionService) GetOrCreate(auth models.AuthContext) *ConsoleSession {
	key := auth.Role + ":" + auth.Username

	s.mu.RLock()
	session, ok := s.sessions[key]
	s.mu.RUnlock()
	if ok {
		session.touch()
		return session
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[key]; ok {
		session.touch()
		return session
	}

	session = &ConsoleSession{
		ID:            uuid.NewString(),
		Auth:          auth,
		reconciler:    NewRequestReconciler(),
		propertyIndex: make(map[int64]models.Property),
		lastActive:    time.Now(),
	}
	s.sessions[key] = session
	logger.GetLogger().Infof("创建控制台会话 %s（%s）", session.ID, key)
	return session
}

// Active 返回当前全部会话
func (s *SessionService) Active() []*ConsoleSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*ConsoleSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

// Sweep 回收空闲超时的会话，返回回收数量
func (s *SessionService) Sweep() int {
	deadline := time.Now().Add(-s.idleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, session := range s.sessions {
		session.mu.Lock()
		idle := session.lastActive.Before(deadline)
		session.mu.Unlock()
		if idle {
			delete(s.sessions, key)
			removed++
		}
	}
	if removed > 0 {
		logger.GetLogger().Infof("回收空闲控制台会话 %d 个", removed)
	}
	return removed
}

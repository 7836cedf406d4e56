package jwt

import (
	"errors"
	"plmc/pkg/config"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// 控制台识别的角色（令牌由远端认证服务签发，本服务只做验签和角色判定）
const (
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
	RoleTenant = "tenant"
)

// JWTClaims JWT声明（sub为用户名，roles为角色列表）
type JWTClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Username 取令牌主体作为用户名
func (c *JWTClaims) Username() string {
	return c.Subject
}

// HasRole 判断是否具有指定角色（忽略大小写）
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// PrimaryRole 返回控制台使用的主角色，admin优先
func (c *JWTClaims) PrimaryRole() string {
	switch {
	case c.HasRole(RoleAdmin):
		return RoleAdmin
	case c.HasRole(RoleOwner):
		return RoleOwner
	case c.HasRole(RoleTenant):
		return RoleTenant
	default:
		return ""
	}
}

// JWTManager JWT管理器
type JWTManager struct {
	secretKey string
}

// NewJWTManager 创建JWT管理器
func NewJWTManager(secretKey string) *JWTManager {
	return &JWTManager{
		secretKey: secretKey,
	}
}

// VerifyToken 验证JWT令牌
func (manager *JWTManager) VerifyToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// 验证签名方法
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("意外的签名方法")
			}
			return []byte(manager.secretKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, errors.New("无法解析token声明")
	}

	return claims, nil
}

// 单例实现
var (
	defaultManager *JWTManager
	once           sync.Once
)

// GetJWTManager 获取全局JWT管理器实例
func GetJWTManager() *JWTManager {
	once.Do(func() {
		cfg := config.GetConfig()
		defaultManager = NewJWTManager(cfg.JWT.SecretKey)
	})
	return defaultManager
}

package middleware

import (
	"strings"

	"plmc/internal/models"
	"plmc/pkg/jwt"
	"plmc/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 认证中间件
//
// 令牌由远端认证服务签发，这里只验签并把认证上下文放进请求上下文，
// 后续处理器一律通过显式的AuthContext取角色和用户名。
type AuthMiddleware struct {
	jwtManager *jwt.JWTManager
}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwt.GetJWTManager(),
	}
}

// OptionalAuth 尝试解析令牌但不强制登录（列表视图允许匿名浏览）
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, token, ok := m.parseToken(c); ok {
			c.Set("auth", models.AuthContext{
				Role:     claims.PrimaryRole(),
				Username: claims.Username(),
				Token:    token,
			})
			c.Set("claims", claims)
		}
		c.Next()
	}
}

// RequireLogin 要求有效令牌
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "认证头格式错误")
			c.Abort()
			return
		}

		claims, err := m.jwtManager.VerifyToken(authHeader[7:])
		if err != nil {
			response.Unauthorized(c, "Token无效或已过期")
			c.Abort()
			return
		}

		role := claims.PrimaryRole()
		if role == "" {
			response.Forbidden(c, "令牌未携带控制台角色")
			c.Abort()
			return
		}

		c.Set("auth", models.AuthContext{
			Role:     role,
			Username: claims.Username(),
			Token:    authHeader[7:],
		})
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireRole 要求指定角色，admin放行所有角色限制
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := GetAuth(c)
		if !ok {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}
		if auth.Role != role && !auth.IsAdmin() {
			response.Forbidden(c, "权限不足：需要 "+role+" 角色")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin 仅限管理员
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := GetAuth(c)
		if !ok {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}
		if !auth.IsAdmin() {
			response.Forbidden(c, "权限不足：仅限管理员")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAuth 从请求上下文取认证上下文
func GetAuth(c *gin.Context) (models.AuthContext, bool) {
	value, exists := c.Get("auth")
	if !exists {
		return models.AuthContext{}, false
	}
	auth, ok := value.(models.AuthContext)
	return auth, ok
}

func (m *AuthMiddleware) parseToken(c *gin.Context) (*jwt.JWTClaims, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, "", false
	}
	token := authHeader[7:]
	claims, err := m.jwtManager.VerifyToken(token)
	if err != nil {
		return nil, "", false
	}
	return claims, token, true
}

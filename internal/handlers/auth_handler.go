package handlers

import (
	"plmc/internal/clients"
	"plmc/internal/middleware"
	"plmc/pkg/logger"
	"plmc/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证信息接口（令牌签发在远端认证服务，这里只做解析）
type AuthHandler struct {
	owners  *clients.OwnerClient
	tenants *clients.TenantClient
}

func NewAuthHandler(owners *clients.OwnerClient, tenants *clients.TenantClient) *AuthHandler {
	return &AuthHandler{
		owners:  owners,
		tenants: tenants,
	}
}

// MeResponse 当前主体信息
type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	OwnerID  int64  `json:"ownerId,omitempty"`
	TenantID int64  `json:"tenantId,omitempty"`
}

// Me 返回令牌对应的角色、用户名及目录ID
func (h *AuthHandler) Me(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	me := MeResponse{
		Username: auth.Username,
		Role:     auth.Role,
	}

	// 目录ID解析失败不阻塞基础信息返回
	switch {
	case auth.IsOwner():
		if id, err := h.owners.IDByName(c.Request.Context(), auth.Username); err == nil {
			me.OwnerID = id
		} else {
			logger.GetLogger().Debugf("解析业主ID失败（%s）: %v", auth.Username, err)
		}
	case auth.IsTenant():
		if id, err := h.tenants.IDByName(c.Request.Context(), auth.Username); err == nil {
			me.TenantID = id
		} else {
			logger.GetLogger().Debugf("解析租户ID失败（%s）: %v", auth.Username, err)
		}
	}

	response.Success(c, me)
}

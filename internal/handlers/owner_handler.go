package handlers

import (
	"strconv"

	"plmc/internal/clients"
	"plmc/internal/middleware"
	"plmc/internal/models"
	"plmc/pkg/logger"
	"plmc/pkg/pagination"
	"plmc/pkg/response"

	"github.com/gin-gonic/gin"
)

// OwnerHandler 业主目录接口
type OwnerHandler struct {
	owners *clients.OwnerClient
}

func NewOwnerHandler(owners *clients.OwnerClient) *OwnerHandler {
	return &OwnerHandler{owners: owners}
}

// GetAll 业主列表（管理员，本地分页）
func (h *OwnerHandler) GetAll(c *gin.Context) {
	owners, err := h.owners.FetchAll(c.Request.Context())
	if err != nil {
		response.UpstreamError(c, "查询业主列表失败")
		return
	}

	pageParams := pagination.ParsePageParams(c)
	start, end := pageParams.Bounds(len(owners))
	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, int64(len(owners)))
	response.SuccessWithPage(c, owners[start:end], pageInfo)
}

// GetByID 业主详情（列表视图的"查看业主"弹窗数据源）
func (h *OwnerHandler) GetByID(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	owner, err := h.owners.FetchByID(c.Request.Context(), ownerID)
	if err != nil {
		response.UpstreamError(c, "查询业主失败")
		return
	}
	response.Success(c, owner)
}

// Update 更新业主资料（业主改自己，管理员改任何人）
func (h *OwnerHandler) Update(c *gin.Context) {
	auth, _ := middleware.GetAuth(c)

	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if auth.IsOwner() {
		selfID, err := h.owners.IDByName(c.Request.Context(), auth.Username)
		if err != nil || selfID != ownerID {
			response.Forbidden(c, "只能修改自己的资料")
			return
		}
	}

	var payload models.OwnerUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	if err := h.owners.Update(c.Request.Context(), ownerID, &payload); err != nil {
		logger.GetLogger().Warnf("更新业主失败（id=%d）: %v", ownerID, err)
		response.UpstreamError(c, "更新业主失败")
		return
	}
	response.SuccessWithMessage(c, "更新成功", nil)
}

// Delete 删除业主并级联删除其名下房产（管理员）
func (h *OwnerHandler) Delete(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.owners.DeleteWithProperties(c.Request.Context(), ownerID); err != nil {
		logger.GetLogger().Warnf("删除业主失败（id=%d）: %v", ownerID, err)
		response.UpstreamError(c, "删除业主失败")
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

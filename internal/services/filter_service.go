package services

import (
	"strconv"
	"strings"

	"plmc/internal/models"
)

// 过滤相关的用户可见提示，文案与控制台前端一致
const (
	msgNoTenantContext = "Please log in as a tenant to view your requested properties."
	msgNoRequested     = "You have no requested properties matching current filters."
	msgNoMatches       = "No properties found matching your criteria."
	msgNoData          = "No properties available."
)

// PropertyFilter 列表过滤条件
//
// 文本字段为空、数字字段解析失败、状态为Any时对应步骤跳过（恒等）。
// 租金界限保留原始字符串，解析规则归过滤管线管。
type PropertyFilter struct {
	PropertyName       string `form:"propertyName"`
	Address            string `form:"address"`
	MinRent            string `form:"minRent"`
	MaxRent            string `form:"maxRent"`
	AvailabilityStatus string `form:"availabilityStatus"`
	RequestedOnly      bool   `form:"requestedOnly"`
}

// Active 是否有任一过滤条件生效（用于区分"无匹配"和"无数据"）
func (f PropertyFilter) Active() bool {
	return strings.TrimSpace(f.PropertyName) != "" ||
		strings.TrimSpace(f.Address) != "" ||
		f.MinRent != "" ||
		f.MaxRent != "" ||
		(f.AvailabilityStatus != "" && f.AvailabilityStatus != models.StatusAny) ||
		f.RequestedOnly
}

// FilterResult 过滤结果
type FilterResult struct {
	Rows    []models.PropertyView
	Message string // 用户可见提示，空串表示无提示
}

// FilterPipeline 过滤管线
//
// 按固定顺序应用各步骤，全部为合取，顺序只影响性能不影响结果集。
// 输入永不被修改，每次产出新切片。
type FilterPipeline struct{}

// NewFilterPipeline 创建过滤管线
func NewFilterPipeline() *FilterPipeline {
	return &FilterPipeline{}
}

// Apply 过滤展示行
//
// tenantID<=0 表示没有租户上下文；此时激活"只看已申请"本身是一种
// 错误条件，返回空集和登录提示，而不是静默跳过该步骤。
func (p *FilterPipeline) Apply(rows []models.PropertyView, filter PropertyFilter, tenantID int64) FilterResult {
	hadData := len(rows) > 0
	filtered := make([]models.PropertyView, 0, len(rows))
	filtered = append(filtered, rows...)

	// 1. 名称子串匹配（忽略大小写，去首尾空白）
	if name := strings.TrimSpace(filter.PropertyName); name != "" {
		needle := strings.ToLower(name)
		filtered = keep(filtered, func(row models.PropertyView) bool {
			return strings.Contains(strings.ToLower(row.PropertyName), needle)
		})
	}

	// 2. 地址子串匹配（同上）
	if address := strings.TrimSpace(filter.Address); address != "" {
		needle := strings.ToLower(address)
		filtered = keep(filtered, func(row models.PropertyView) bool {
			return strings.Contains(strings.ToLower(row.Address), needle)
		})
	}

	// 3/4. 租金上下界：解析失败或为负时跳过，不报错
	if minRent, ok := parseRentBound(filter.MinRent); ok {
		filtered = keep(filtered, func(row models.PropertyView) bool {
			return row.RentAmount >= minRent
		})
	}
	if maxRent, ok := parseRentBound(filter.MaxRent); ok {
		filtered = keep(filtered, func(row models.PropertyView) bool {
			return row.RentAmount <= maxRent
		})
	}

	// 5. 状态等值匹配（Any为哨兵值，表示不过滤）
	if filter.AvailabilityStatus != "" && filter.AvailabilityStatus != models.StatusAny {
		status := models.AvailabilityStatus(filter.AvailabilityStatus)
		filtered = keep(filtered, func(row models.PropertyView) bool {
			return row.AvailabilityStatus == status
		})
	}

	// 6. 只看已申请：依赖租户上下文
	if filter.RequestedOnly {
		if tenantID <= 0 {
			return FilterResult{Rows: []models.PropertyView{}, Message: msgNoTenantContext}
		}
		filtered = keep(filtered, func(row models.PropertyView) bool {
			return row.HasRequested
		})
		if len(filtered) == 0 {
			return FilterResult{Rows: filtered, Message: msgNoRequested}
		}
	}

	if len(filtered) == 0 {
		if filter.Active() && hadData {
			return FilterResult{Rows: filtered, Message: msgNoMatches}
		}
		return FilterResult{Rows: filtered, Message: msgNoData}
	}

	return FilterResult{Rows: filtered}
}

func keep(rows []models.PropertyView, predicate func(models.PropertyView) bool) []models.PropertyView {
	result := rows[:0]
	for _, row := range rows {
		if predicate(row) {
			result = append(result, row)
		}
	}
	return result
}

// parseRentBound 解析租金界限，非数字或负数视为未设置
func parseRentBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

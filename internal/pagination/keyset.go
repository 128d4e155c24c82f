package pagination

import (
	"fmt"

	"Vega_Tube/internal/apperr"

	"gorm.io/gorm"
)

const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 20
)

// CheckLimit 校验每页条数。0表示调用方未传，取默认值
func CheckLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultLimit, nil
	}
	if limit < MinLimit || limit > MaxLimit {
		return 0, fmt.Errorf("%w: limit必须在%d到%d之间", apperr.ErrBadRequest, MinLimit, MaxLimit)
	}
	return limit, nil
}

// Order 描述一次键集分页的排序：主排序列表达式 + id决胜列。
// 本系统全部倒序（最新/最热在前）。SortExpr可以是列名，也可以是
// 热门流那样的标量子查询——MySQL的WHERE里不能引用select别名，所以整个表达式会被原样重复
type Order struct {
	SortExpr string
	IDExpr   string
}

// Scope 生成本页查询的WHERE/ORDER/LIMIT。
// 有游标时限定 sort < v OR (sort = v AND id < lastID)，严格小于保证既不重复也不跳行；
// 无游标时从序列顶端开始。LIMIT取limit+1，多取的一行只用来判断还有没有下一页。
// 已翻过的行如果排序键被改大（比如转码完成刷新了updated_at），会在后续页面重新出现，
// 这是键集分页在可变排序键上的既定取舍，不做掩盖
func (o Order) Scope(cur *Cursor, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cur != nil {
			cond := fmt.Sprintf("(%s < ? OR (%s = ? AND %s < ?))", o.SortExpr, o.SortExpr, o.IDExpr)
			db = db.Where(cond, cur.sortValue(), cur.sortValue(), cur.ID)
		}
		return db.
			Order(fmt.Sprintf("%s DESC, %s DESC", o.SortExpr, o.IDExpr)).
			Limit(limit + 1)
	}
}

// Cut 把limit+1行截断成一页，并报告是否还有更多。
// 空结果不是错误，表示Feed已经翻到底
func Cut[T any](rows []T, limit int) ([]T, bool) {
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}

package pagination

import (
	"errors"
	"strings"
	"testing"
	"time"

	"Vega_Tube/internal/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("打开DryRun连接失败: %v", err)
	}
	return db
}

type pageRow struct {
	ID string
}

func TestScopeWithoutCursor(t *testing.T) {
	db := dryRunDB(t)
	o := Order{SortExpr: "videos.updated_at", IDExpr: "videos.id"}

	var rows []pageRow
	stmt := db.Table("videos").Scopes(o.Scope(nil, 20)).Find(&rows).Statement
	sql := stmt.SQL.String()

	// 无游标时不应有边界条件，从序列顶端取limit+1行
	if strings.Contains(sql, "<") {
		t.Errorf("无游标不应出现边界条件: %s", sql)
	}
	if !strings.Contains(sql, "ORDER BY videos.updated_at DESC, videos.id DESC") {
		t.Errorf("排序子句不对: %s", sql)
	}
	// GORM把LIMIT作为绑定参数下发
	if !strings.Contains(sql, "LIMIT ?") {
		t.Errorf("缺少LIMIT子句: %s", sql)
	}
	if last := stmt.Vars[len(stmt.Vars)-1]; last != 21 {
		t.Errorf("应取limit+1行, got %v", last)
	}
}

func TestScopeWithTimeCursor(t *testing.T) {
	db := dryRunDB(t)
	o := Order{SortExpr: "videos.updated_at", IDExpr: "videos.id"}
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cur := TimeCursor("5f6d1c3a-8f7e-4b2a-9c1d-2e3f4a5b6c7d", at)

	var rows []pageRow
	stmt := db.Table("videos").Scopes(o.Scope(cur, 2)).Find(&rows).Statement
	sql := stmt.SQL.String()

	// 决胜规则：先严格小于主排序值，相等时退回到严格小于id
	want := "(videos.updated_at < ? OR (videos.updated_at = ? AND videos.id < ?))"
	if !strings.Contains(sql, want) {
		t.Errorf("边界条件不对: %s", sql)
	}
	// 参数依次为：排序值、排序值、游标ID、limit+1
	if len(stmt.Vars) != 4 {
		t.Fatalf("应绑定4个参数, got %d: %v", len(stmt.Vars), stmt.Vars)
	}
	if stmt.Vars[2] != cur.ID {
		t.Errorf("决胜参数应是游标ID: %v", stmt.Vars[2])
	}
	if stmt.Vars[3] != 3 {
		t.Errorf("应取limit+1行, got %v", stmt.Vars[3])
	}
}

func TestScopeWithCountCursorRepeatsExpr(t *testing.T) {
	db := dryRunDB(t)
	// 热门流的排序键是标量子查询，MySQL的WHERE里不能用select别名，表达式整体重复
	expr := "(SELECT COUNT(*) FROM video_views WHERE video_views.video_id = videos.id)"
	o := Order{SortExpr: expr, IDExpr: "videos.id"}
	cur := CountCursor("5f6d1c3a-8f7e-4b2a-9c1d-2e3f4a5b6c7d", 7)

	var rows []pageRow
	stmt := db.Table("videos").Scopes(o.Scope(cur, 10)).Find(&rows).Statement
	sql := stmt.SQL.String()

	if strings.Count(sql, expr) < 2 {
		t.Errorf("WHERE和ORDER BY都应包含子查询表达式: %s", sql)
	}
	if stmt.Vars[0] != int64(7) {
		t.Errorf("主排序参数应是观看数: %v", stmt.Vars[0])
	}
}

func TestCut(t *testing.T) {
	cases := []struct {
		name     string
		rows     []int
		limit    int
		wantLen  int
		wantMore bool
	}{
		{"满页加一", []int{1, 2, 3}, 2, 2, true},
		{"正好一页", []int{1, 2}, 2, 2, false},
		{"不足一页", []int{1}, 2, 1, false},
		{"空结果", nil, 2, 0, false},
	}
	for _, tc := range cases {
		items, hasMore := Cut(tc.rows, tc.limit)
		if len(items) != tc.wantLen || hasMore != tc.wantMore {
			t.Errorf("%s: got (%d, %v), want (%d, %v)", tc.name, len(items), hasMore, tc.wantLen, tc.wantMore)
		}
	}
}

func TestCheckLimit(t *testing.T) {
	if got, err := CheckLimit(0); err != nil || got != DefaultLimit {
		t.Errorf("缺省limit应取%d, got (%d, %v)", DefaultLimit, got, err)
	}
	if got, err := CheckLimit(100); err != nil || got != 100 {
		t.Errorf("上界100应合法, got (%d, %v)", got, err)
	}
	for _, bad := range []int{-1, 101} {
		if _, err := CheckLimit(bad); !errors.Is(err, apperr.ErrBadRequest) {
			t.Errorf("limit=%d应返回ErrBadRequest, got %v", bad, err)
		}
	}
}

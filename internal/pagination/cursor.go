package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"Vega_Tube/internal/apperr"

	"github.com/google/uuid"
)

// 游标是 (主排序值, id) 二元组：主排序值是上一页最后一项的排序列取值，
// id只用于排序值相同时的确定性决胜。对客户端完全不透明，原样传回即可
type Kind string

const (
	// 按updated_at倒序的Feed（全局流、订阅流、评论流）
	KindTime Kind = "time"
	// 按观看数倒序的热门流
	KindCount Kind = "count"
)

const cursorVersion = 1

type Cursor struct {
	Kind  Kind
	ID    string
	Time  time.Time // Kind == KindTime 时有效
	Count int64     // Kind == KindCount 时有效
}

// 线上编码格式，带版本号，排序键变更时靠版本号拒绝旧游标
type wireCursor struct {
	V  int    `json:"v"`
	K  string `json:"k"`
	ID string `json:"id"`
	T  int64  `json:"t,omitempty"` // Unix毫秒，和MySQL datetime(3)精度一致，保证往返相等
	C  int64  `json:"c,omitempty"`
}

// TimeCursor 从最后一行构造时间型游标
func TimeCursor(id string, t time.Time) *Cursor {
	return &Cursor{Kind: KindTime, ID: id, Time: t}
}

// CountCursor 从最后一行构造计数型游标
func CountCursor(id string, count int64) *Cursor {
	return &Cursor{Kind: KindCount, ID: id, Count: count}
}

// Encode 序列化成base64url(JSON)的不透明token
func (c *Cursor) Encode() (string, error) {
	w := wireCursor{V: cursorVersion, K: string(c.Kind), ID: c.ID}
	switch c.Kind {
	case KindTime:
		w.T = c.Time.UnixMilli()
	case KindCount:
		w.C = c.Count
	default:
		return "", fmt.Errorf("未知的游标类型: %s", c.Kind)
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode 解析客户端传回的token。raw为空串返回(nil, nil)，表示从头开始；
// 版本不符、类型和本Feed不符、id不是UUID，统统按BadRequest处理
func Decode(raw string, want Kind) (*Cursor, error) {
	if raw == "" {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: 游标无法解析", apperr.ErrBadRequest)
	}
	var w wireCursor
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: 游标无法解析", apperr.ErrBadRequest)
	}
	if w.V != cursorVersion {
		return nil, fmt.Errorf("%w: 游标版本不受支持", apperr.ErrBadRequest)
	}
	if Kind(w.K) != want {
		return nil, fmt.Errorf("%w: 游标类型和当前Feed不匹配", apperr.ErrBadRequest)
	}
	if _, err := uuid.Parse(w.ID); err != nil {
		return nil, fmt.Errorf("%w: 游标ID非法", apperr.ErrBadRequest)
	}
	c := &Cursor{Kind: want, ID: w.ID}
	switch want {
	case KindTime:
		c.Time = time.UnixMilli(w.T).UTC()
	case KindCount:
		c.Count = w.C
	}
	return c, nil
}

// sortValue 返回拼进SQL占位符的主排序值
func (c *Cursor) sortValue() interface{} {
	if c.Kind == KindCount {
		return c.Count
	}
	return c.Time
}

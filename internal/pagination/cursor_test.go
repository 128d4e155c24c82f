package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"Vega_Tube/internal/apperr"
)

func TestTimeCursorRoundTrip(t *testing.T) {
	id := "5f6d1c3a-8f7e-4b2a-9c1d-2e3f4a5b6c7d"
	at := time.Date(2025, 6, 1, 12, 30, 45, 123_000_000, time.UTC)

	token, err := TimeCursor(id, at).Encode()
	if err != nil {
		t.Fatalf("Encode失败: %v", err)
	}

	got, err := Decode(token, KindTime)
	if err != nil {
		t.Fatalf("Decode失败: %v", err)
	}
	if got.ID != id {
		t.Errorf("ID往返不一致: got %s, want %s", got.ID, id)
	}
	if !got.Time.Equal(at) {
		t.Errorf("时间往返不一致: got %v, want %v", got.Time, at)
	}
}

func TestCountCursorRoundTrip(t *testing.T) {
	id := "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	token, err := CountCursor(id, 42).Encode()
	if err != nil {
		t.Fatalf("Encode失败: %v", err)
	}
	got, err := Decode(token, KindCount)
	if err != nil {
		t.Fatalf("Decode失败: %v", err)
	}
	if got.ID != id || got.Count != 42 {
		t.Errorf("往返不一致: %+v", got)
	}
}

func TestDecodeEmptyMeansFirstPage(t *testing.T) {
	cur, err := Decode("", KindTime)
	if err != nil || cur != nil {
		t.Errorf("空游标应返回(nil, nil)，got (%v, %v)", cur, err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"非base64":  "???!!!",
		"非JSON":   base64.RawURLEncoding.EncodeToString([]byte("not json")),
		"ID非UUID": mustEncode(t, wireCursor{V: 1, K: "time", ID: "123", T: 1}),
		"版本不符":    mustEncode(t, wireCursor{V: 2, K: "time", ID: "5f6d1c3a-8f7e-4b2a-9c1d-2e3f4a5b6c7d", T: 1}),
	}
	for name, token := range cases {
		if _, err := Decode(token, KindTime); !errors.Is(err, apperr.ErrBadRequest) {
			t.Errorf("%s: 应返回ErrBadRequest, got %v", name, err)
		}
	}
}

func TestDecodeRejectsKindMismatch(t *testing.T) {
	token, err := TimeCursor("5f6d1c3a-8f7e-4b2a-9c1d-2e3f4a5b6c7d", time.Now()).Encode()
	if err != nil {
		t.Fatalf("Encode失败: %v", err)
	}
	// 时间型游标传给热门流，应拒绝
	if _, err := Decode(token, KindCount); !errors.Is(err, apperr.ErrBadRequest) {
		t.Errorf("类型不匹配应返回ErrBadRequest, got %v", err)
	}
}

// Encode会强制写入当前版本号，构造异常token要绕过它直接序列化线上格式
func mustEncode(t *testing.T, w wireCursor) string {
	t.Helper()
	raw, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("序列化wireCursor失败: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

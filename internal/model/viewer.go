package model

// Viewer 表示本次请求的观看者身份。零值即匿名观看者。
// 读接口对匿名观看者一律返回空的个性化列（我的反应、是否已订阅），而不是报错
type Viewer struct {
	UserID string
}

// Identified 构造一个已登录的观看者
func Identified(userID string) Viewer {
	return Viewer{UserID: userID}
}

// Anonymous 构造匿名观看者
func Anonymous() Viewer {
	return Viewer{}
}

// SignedIn 判断观看者是否已解析出内部用户ID
func (v Viewer) SignedIn() bool {
	return v.UserID != ""
}

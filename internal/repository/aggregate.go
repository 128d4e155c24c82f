package repository

import "Vega_Tube/internal/model"

// 聚合列一律用关联标量子查询现算，不读任何物化计数器，
// 数据库可以走(target_id)索引做计数，也不存在写路径的计数簿记

// 视频观看数子查询。热门流把它同时用作排序键和游标键，所以单独导出一个常量
const videoViewCountExpr = "(SELECT COUNT(*) FROM video_views WHERE video_views.video_id = videos.id)"

// 视频行的与观看者无关的聚合列
func videoAggregateColumns() string {
	return videoViewCountExpr + ` AS view_count,
(SELECT COUNT(*) FROM video_reactions WHERE video_reactions.video_id = videos.id AND video_reactions.type = 'like') AS like_count,
(SELECT COUNT(*) FROM video_reactions WHERE video_reactions.video_id = videos.id AND video_reactions.type = 'dislike') AS dislike_count`
}

// 视频行的观看者个性化列：我的反应、是否订阅了作者。
// 匿名观看者恒为NULL/false，绝不报错
func videoViewerColumns(viewer model.Viewer) (string, []interface{}) {
	if !viewer.SignedIn() {
		return "NULL AS viewer_reaction, FALSE AS viewer_subscribed", nil
	}
	expr := `(SELECT type FROM video_reactions WHERE video_reactions.video_id = videos.id AND video_reactions.user_id = ?) AS viewer_reaction,
EXISTS(SELECT 1 FROM subscriptions WHERE subscriptions.viewer_id = ? AND subscriptions.creator_id = videos.user_id) AS viewer_subscribed`
	return expr, []interface{}{viewer.UserID, viewer.UserID}
}

// 评论行的与观看者无关的聚合列
func commentAggregateColumns() string {
	return `(SELECT COUNT(*) FROM comment_reactions WHERE comment_reactions.comment_id = comments.id AND comment_reactions.type = 'like') AS like_count,
(SELECT COUNT(*) FROM comment_reactions WHERE comment_reactions.comment_id = comments.id AND comment_reactions.type = 'dislike') AS dislike_count,
(SELECT COUNT(*) FROM comments AS replies WHERE replies.parent_id = comments.id) AS reply_count`
}

func commentViewerColumns(viewer model.Viewer) (string, []interface{}) {
	if !viewer.SignedIn() {
		return "NULL AS viewer_reaction", nil
	}
	expr := "(SELECT type FROM comment_reactions WHERE comment_reactions.comment_id = comments.id AND comment_reactions.user_id = ?) AS viewer_reaction"
	return expr, []interface{}{viewer.UserID}
}

// 作者行的订阅者数，detail接口返回作者时附带
const userSubscriberCountExpr = "(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.creator_id = users.id) AS subscriber_count"

package i18n

type texts struct {
	ko string
	en string
}

// Ключи сообщений, которые формирует бэкенд (push-уведомления и т.п.).
const (
	MsgChargeConfirmedTitle = "charge.confirmed.title"
	MsgChargeConfirmedBody  = "charge.confirmed.body"
	MsgChargeRejectedTitle  = "charge.rejected.title"
	MsgChargeRejectedBody   = "charge.rejected.body"
	MsgChargeRequestedTitle = "charge.requested.title"
	MsgChargeRequestedBody  = "charge.requested.body"
	MsgMatchCanceledTitle   = "match.canceled.title"
	MsgMatchCanceledBody    = "match.canceled.body"
	MsgMatchConfirmedTitle  = "match.confirmed.title"
	MsgMatchConfirmedBody   = "match.confirmed.body"
	MsgChatNewMessageTitle  = "chat.new_message.title"
	MsgClubApplyTitle       = "club.apply.title"
	MsgClubApplyBody        = "club.apply.body"
	MsgClubReviewedTitle    = "club.reviewed.title"
	MsgClubApprovedBody     = "club.approved.body"
	MsgClubRejectedBody     = "club.rejected.body"
	MsgAuditTitle           = "audit.title"
	MsgAuditPointsAdjusted  = "audit.points_adjusted"
	MsgAuditRoleChanged     = "audit.user_role_changed"
	MsgAuditUserDeleted     = "audit.user_deleted"
	MsgAuditMatchCanceled   = "audit.match_canceled"
	MsgAuditGeneric         = "audit.generic"
	MsgPositionFW           = "position.FW"
	MsgPositionDF           = "position.DF"
	MsgPositionG            = "position.G"
)

var messages = map[string]texts{
	MsgChargeConfirmedTitle: {"포인트 충전 완료", "Points charged"},
	MsgChargeConfirmedBody:  {"%d 포인트가 충전되었습니다. 현재 잔액: %d", "%d points were added. Balance: %d"},
	MsgChargeRejectedTitle:  {"포인트 충전 거절", "Charge rejected"},
	MsgChargeRejectedBody:   {"%d 포인트 충전 요청이 거절되었습니다.", "Your request to charge %d points was rejected."},
	MsgChargeRequestedTitle: {"새 충전 요청", "New charge request"},
	MsgChargeRequestedBody:  {"%s님이 %d 포인트 충전을 요청했습니다.", "%s requested %d points."},
	MsgMatchCanceledTitle:   {"경기 취소", "Match canceled"},
	MsgMatchCanceledBody:    {"%s 경기가 취소되었습니다.", "The match on %s was canceled."},
	MsgMatchConfirmedTitle:  {"참가 확정", "Registration confirmed"},
	MsgMatchConfirmedBody:   {"%s 경기 참가가 확정되었습니다.", "You are confirmed for the match on %s."},
	MsgChatNewMessageTitle:  {"%s님의 새 메시지", "New message from %s"},
	MsgClubApplyTitle:       {"가입 신청", "Join request"},
	MsgClubApplyBody:        {"%s님이 %s 가입을 신청했습니다.", "%s asked to join %s."},
	MsgClubReviewedTitle:    {"클럽 가입 결과", "Club membership"},
	MsgClubApprovedBody:     {"%s 가입이 승인되었습니다.", "Your membership in %s was approved."},
	MsgClubRejectedBody:     {"%s 가입이 거절되었습니다.", "Your membership in %s was rejected."},
	MsgAuditTitle:           {"관리자 알림", "Admin notice"},
	MsgAuditPointsAdjusted:  {"사용자 #%d 포인트가 수동 조정되었습니다.", "Points of user #%d were adjusted manually."},
	MsgAuditRoleChanged:     {"사용자 #%d 권한이 변경되었습니다.", "Role of user #%d was changed."},
	MsgAuditUserDeleted:     {"사용자 #%d 계정이 삭제되었습니다.", "User #%d was deleted."},
	MsgAuditMatchCanceled:   {"경기 #%d 이(가) 취소되었습니다.", "Match #%d was canceled."},
	MsgAuditGeneric:         {"%s (#%d)", "%s (#%d)"},
	MsgPositionFW:           {"공격수", "Forward"},
	MsgPositionDF:           {"수비수", "Defense"},
	MsgPositionG:            {"골리", "Goalie"},
}

package cache

import "time"

// 列表快照键集中定义：API 端读写、后台端封禁都要动它们
const (
	KeyUsersAll       = "users:all"
	KeyMentorshipsAll = "mentorships:all"

	ListTTL = 10 * time.Second
)

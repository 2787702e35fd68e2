package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword cost 越界时 bcrypt 自己会回落到默认值
func HashPassword(pw string, cost int) string {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

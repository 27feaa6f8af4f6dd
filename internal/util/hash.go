package util

import "golang.org/x/crypto/bcrypt"

// 登录口令和挑战答案共用同一套"验证密文"能力：
// 系统里任何机密都只落库慢哈希摘要，明文不出网关。

// HashSecret 用 bcrypt 生成加盐慢哈希。
func HashSecret(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifySecret 按字节逐一比对原文与摘要，区分大小写，不做任何归一化。
func VerifySecret(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}

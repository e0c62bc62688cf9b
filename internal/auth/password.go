package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong はbcryptの入力上限（72バイト）を超えるパスワードを示す。
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// HashPassword はパスワードをbcryptでハッシュ化する。
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword はハッシュとパスワードが一致するかを返す。
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// dummyHash は存在しないユーザーのログイン試行でも比較処理を行うためのハッシュ。
// 応答時間からユーザー名の存在を推測されないようにする。
var dummyHash = sync.OnceValue(func() string {
	hash, _ := bcrypt.GenerateFromPassword([]byte("quiz-api-dummy-password"), bcrypt.DefaultCost)
	return string(hash)
})

// Package auth はベアラートークンの発行・検証とパスワード認証を提供する。
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// トークン検証失敗の理由。
var (
	ErrMalformedToken   = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token is expired or not yet valid")
	ErrMissingExpiry    = errors.New("token has no expiry")
	ErrInvalidIssuer    = errors.New("token issuer mismatch")
	ErrInvalidAudience  = errors.New("token audience mismatch")
	ErrInvalidSubject   = errors.New("token subject is not a taker id")
)

// TokenConfig はトークンの発行・検証に使用する設定。
type TokenConfig struct {
	Issuer   string
	Audience string
	Key      string // HS256の共有鍵（UTF-8バイト列として使用）
	TTL      time.Duration
}

// Claims はアクセストークンのクレーム。SubjectにテイカーIDを格納する。
type Claims struct {
	jwt.StandardClaims
}

// TakerID はSubjectからテイカーIDを取り出す。
func (c *Claims) TakerID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidSubject
	}
	return id, nil
}

// TokenService はHS256署名のアクセストークンを発行・検証する。
// 署名、発行者、対象者、有効期限の4項目をすべて検証する。
type TokenService struct {
	issuer   string
	audience string
	key      []byte
	ttl      time.Duration
}

// NewTokenService はTokenServiceを生成する。
// 発行者、対象者、鍵のいずれかが空の場合はエラーを返す。
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Issuer == "" || cfg.Audience == "" || cfg.Key == "" {
		return nil, errors.New("token issuer, audience and key are required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token TTL must be positive, got %s", cfg.TTL)
	}
	return &TokenService{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		key:      []byte(cfg.Key),
		ttl:      cfg.TTL,
	}, nil
}

// Issue は指定テイカーのアクセストークンを発行し、トークン文字列と有効期限を返す。
func (s *TokenService) Issue(takerID int64) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Issuer:    s.issuer,
			Audience:  s.audience,
			Subject:   strconv.FormatInt(takerID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, time.Unix(expiresAt.Unix(), 0), nil
}

// Validate はトークン文字列を検証し、有効な場合はクレームを返す。
// 失敗時は失敗理由を表すエラー（ErrInvalidSignature等）をラップして返す。
func (s *TokenService) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidSignature
	}

	// StandardClaims.Validはexp未設定を許容するため、明示的に拒否する
	if claims.ExpiresAt == 0 {
		return nil, ErrMissingExpiry
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrInvalidIssuer
	}
	if !claims.VerifyAudience(s.audience, true) {
		return nil, ErrInvalidAudience
	}
	if _, err := claims.TakerID(); err != nil {
		return nil, err
	}

	return claims, nil
}

// classifyParseError はjwtライブラリのエラーを失敗理由に変換する。
// 署名不正は期限切れより優先する。
func classifyParseError(err error) error {
	var vErr *jwt.ValidationError
	if !errors.As(err, &vErr) {
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	switch {
	case vErr.Errors&jwt.ValidationErrorMalformed != 0:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case vErr.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case vErr.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet|jwt.ValidationErrorIssuedAt) != 0:
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}

// FailureReason はトークン検証エラーをメトリクス・ログ用の短いラベルに変換する。
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidSignature):
		return "signature"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrMissingExpiry):
		return "missing_exp"
	case errors.Is(err, ErrInvalidIssuer):
		return "issuer"
	case errors.Is(err, ErrInvalidAudience):
		return "audience"
	case errors.Is(err, ErrInvalidSubject):
		return "subject"
	default:
		return "malformed"
	}
}

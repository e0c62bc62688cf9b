package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// クライアントに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, resource, system
	Action   string // クライアント向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeTakerNotFound      = "TAKER_NOT_FOUND"
	ErrCodeTopicNotFound      = "TOPIC_NOT_FOUND"
	ErrCodeQuizNotFound       = "QUIZ_NOT_FOUND"
	ErrCodeQuestionNotFound   = "QUESTION_NOT_FOUND"
	ErrCodeDuplicateUsername  = "DUPLICATE_USERNAME"
	ErrCodeDuplicateTopic     = "DUPLICATE_TOPIC"
	ErrCodeReferenceNotFound  = "REFERENCE_NOT_FOUND"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeInvalidID          = "INVALID_ID"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewTakerNotFoundError はテイカー未検出エラーを生成する。
func NewTakerNotFoundError(key string) *APIError {
	return &APIError{
		Code:     ErrCodeTakerNotFound,
		Message:  fmt.Sprintf("指定されたテイカーが見つかりません: %s", key),
		Category: "resource",
		Action:   "テイカーIDまたはユーザー名を確認してください。",
	}
}

// NewTopicNotFoundError はトピック未検出エラーを生成する。
func NewTopicNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodeTopicNotFound,
		Message:  fmt.Sprintf("指定されたトピックが見つかりません: %d", id),
		Category: "resource",
		Action:   "トピックIDを確認してください。",
	}
}

// NewQuizNotFoundError はクイズ未検出エラーを生成する。
func NewQuizNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodeQuizNotFound,
		Message:  fmt.Sprintf("指定されたクイズが見つかりません: %d", id),
		Category: "resource",
		Action:   "クイズIDを確認してください。",
	}
}

// NewQuestionNotFoundError は設問未検出エラーを生成する。
func NewQuestionNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodeQuestionNotFound,
		Message:  fmt.Sprintf("指定された設問が見つかりません: %d", id),
		Category: "resource",
		Action:   "設問IDを確認してください。",
	}
}

// NewDuplicateUsernameError はユーザー名重複エラーを生成する。
func NewDuplicateUsernameError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateUsername,
		Message:  fmt.Sprintf("ユーザー名は既に使用されています: %s", username),
		Category: "validation",
		Action:   "別のユーザー名を指定してください。",
	}
}

// NewDuplicateTopicError はトピック名重複エラーを生成する。
func NewDuplicateTopicError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateTopic,
		Message:  fmt.Sprintf("トピック名は既に登録されています: %s", name),
		Category: "validation",
		Action:   "別のトピック名を指定してください。",
	}
}

// NewReferenceNotFoundError は参照先（テイカー、トピック、クイズ）が存在しない場合のエラーを生成する。
func NewReferenceNotFoundError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeReferenceNotFound,
		Message:  fmt.Sprintf("参照先が存在しません: %s", field),
		Category: "validation",
		Action:   "参照するIDが存在することを確認してください。",
	}
}

// NewValidationError は入力値バリデーションエラーを生成する。
func NewValidationError(field, reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("%s が不正です: %s", field, reason),
		Category: "validation",
		Action:   "入力内容を確認してください。",
	}
}

// NewInvalidRequestError はリクエストボディ解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}

// NewInvalidIDError はパスパラメータのID不正エラーを生成する。
func NewInvalidIDError(raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("無効なIDです: %s", raw),
		Category: "validation",
		Action:   "IDには正の整数を指定してください。",
	}
}

// NewUnauthorizedError は認証情報なしエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "Authorization: Bearer ヘッダーにトークンを指定してください。",
	}
}

// NewInvalidTokenError はトークン検証失敗エラーを生成する。
func NewInvalidTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidToken,
		Message:  "トークンが無効か、有効期限が切れています。",
		Category: "auth",
		Action:   "再度ログインしてトークンを取得してください。",
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// ユーザー名とパスワードのどちらが誤っているかは区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "ユーザー名またはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度ログインしてください。",
	}
}

// NewForbiddenError は権限不足エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作を行う権限がありません。",
		Category: "auth",
		Action:   "自分自身のテイカー情報のみ変更できます。",
	}
}

// NewNotQuizOwnerError は他のテイカーが所有するクイズ（またはその設問）を操作しようとした場合のエラーを生成する。
func NewNotQuizOwnerError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "このクイズを操作する権限がありません。",
		Category: "auth",
		Action:   "自分が所有するクイズとその設問のみ作成・変更・削除できます。",
	}
}

// NewRateLimitError はレート制限超過エラーを生成する。
func NewRateLimitError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimitExceeded,
		Message:  "リクエストが多すぎます。",
		Category: "system",
		Action:   "Retry-Afterヘッダーの秒数が経過してから再度お試しください。",
	}
}

// NewInternalError は内部エラーを生成する。
// 詳細はログのみに記録し、クライアントには一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

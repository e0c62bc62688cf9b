// Package dto はAPI境界を越えるデータ転送オブジェクトと、
// 永続化行との相互変換関数を定義する。
// JSONフィールド名は既存フロントエンドとの互換のためcamelCaseとする。
package dto

import (
	"time"

	"github.com/quizwizards/quizapi/internal/model"
)

// TakerUserNameDTO は認証情報を含むテイカーの完全な表現。
// 登録・更新リクエストのボディとして受け取る。
// Passwordは入力専用であり、レスポンスには含めない（TakerDTOを使用する）。
type TakerUserNameDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Password    string    `json:"password,omitempty"`
	TakerType   string    `json:"takerType"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
	Quizzes     []QuizDTO `json:"quizzes"`
}

// NewTakerUserNameDTO は作成日時を現在時刻で初期化したTakerUserNameDTOを返す。
// CreatedDateはここで一度だけ設定され、以降の更新で変更されない。
func NewTakerUserNameDTO() TakerUserNameDTO {
	return TakerUserNameDTO{
		CreatedDate: time.Now(),
		Quizzes:     []QuizDTO{},
	}
}

// TakerDTO はレスポンス用のテイカー表現。パスワード関連の情報は持たない。
type TakerDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	TakerType   string    `json:"takerType"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
	Quizzes     []QuizDTO `json:"quizzes"`
}

// TakerFromRow は永続化行をレスポンスDTOに変換する。
// quizzesがnilの場合は空スライスとしてシリアライズされる。
func TakerFromRow(row *model.Taker, quizzes []QuizDTO) TakerDTO {
	if quizzes == nil {
		quizzes = []QuizDTO{}
	}
	return TakerDTO{
		ID:          row.ID,
		Name:        row.Name,
		Address:     row.Address,
		Email:       row.Email,
		Username:    row.Username,
		TakerType:   row.TakerType,
		CreatedDate: row.CreatedDate,
		UpdatedDate: row.UpdatedDate,
		Quizzes:     quizzes,
	}
}

// TakersFromRows は複数の永続化行をレスポンスDTOに変換する。
// 一覧ではクイズを展開しない。
func TakersFromRows(rows []*model.Taker) []TakerDTO {
	results := make([]TakerDTO, len(rows))
	for i, row := range rows {
		results[i] = TakerFromRow(row, nil)
	}
	return results
}

// TakerRowFromDTO はリクエストDTOを永続化行に変換する。
// passwordHashはハッシュ化済みの値を渡すこと。
func TakerRowFromDTO(in TakerUserNameDTO, passwordHash string) *model.Taker {
	return &model.Taker{
		ID:           in.ID,
		Name:         in.Name,
		Address:      in.Address,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: passwordHash,
		TakerType:    in.TakerType,
		CreatedDate:  in.CreatedDate,
		UpdatedDate:  in.UpdatedDate,
	}
}

// Package repository はデータ永続化のインターフェースとPostgreSQL実装を提供する。
package repository

import (
	"context"

	"github.com/quizwizards/quizapi/internal/model"
)

// TakerRepository はテイカーデータの永続化インターフェース。
type TakerRepository interface {
	// FindByID は指定IDのテイカーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Taker, error)

	// FindByUsername はユーザー名でテイカーを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.Taker, error)

	// List は全テイカーをID昇順で返す。
	List(ctx context.Context) ([]*model.Taker, error)

	// Create はテイカーを作成し、採番されたIDをtaker.IDに設定する。
	// ユーザー名が重複する場合はErrDuplicateを返す。
	Create(ctx context.Context, taker *model.Taker) error

	// Update はテイカー情報を更新する。created_dateは更新しない。
	// 対象が存在しない場合はErrNotFoundを返す。
	Update(ctx context.Context, taker *model.Taker) error

	// Delete は指定IDのテイカーを削除する。所有するクイズと設問はCASCADE削除される。
	// 対象が存在しない場合はErrNotFoundを返す。
	Delete(ctx context.Context, id int64) error
}

// TopicRepository はトピックデータの永続化インターフェース。
type TopicRepository interface {
	// FindByID は指定IDのトピックを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Topic, error)

	// List は全トピックを名前順で返す。
	List(ctx context.Context) ([]*model.Topic, error)

	// Create はトピックを作成する。名前が重複する場合はErrDuplicateを返す。
	Create(ctx context.Context, topic *model.Topic) error

	// Update はトピック情報を更新する。
	Update(ctx context.Context, topic *model.Topic) error

	// Delete は指定IDのトピックを削除する。参照しているクイズのtopic_idはNULLになる。
	Delete(ctx context.Context, id int64) error
}

// QuizRepository はクイズデータの永続化インターフェース。
type QuizRepository interface {
	// FindByID は指定IDのクイズを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Quiz, error)

	// List は全クイズをID昇順で返す。
	List(ctx context.Context) ([]*model.Quiz, error)

	// ListByTakerID はテイカーが所有するクイズを返す。
	ListByTakerID(ctx context.Context, takerID int64) ([]*model.Quiz, error)

	// Create はクイズを作成する。
	// taker_idまたはtopic_idの参照先が存在しない場合はErrReferenceNotFoundを返す。
	Create(ctx context.Context, quiz *model.Quiz) error

	// Update はクイズ情報を更新する。
	Update(ctx context.Context, quiz *model.Quiz) error

	// Delete は指定IDのクイズを削除する。設問はCASCADE削除される。
	Delete(ctx context.Context, id int64) error
}

// QuestionRepository は設問データの永続化インターフェース。
type QuestionRepository interface {
	// FindByID は指定IDの設問を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Question, error)

	// List は全設問をID昇順で返す。
	List(ctx context.Context) ([]*model.Question, error)

	// ListByQuizID はクイズに属する設問をID昇順で返す。
	ListByQuizID(ctx context.Context, quizID int64) ([]*model.Question, error)

	// Create は設問を作成する。quiz_idの参照先が存在しない場合はErrReferenceNotFoundを返す。
	Create(ctx context.Context, question *model.Question) error

	// Update は設問を更新する。
	Update(ctx context.Context, question *model.Question) error

	// Delete は指定IDの設問を削除する。
	Delete(ctx context.Context, id int64) error
}

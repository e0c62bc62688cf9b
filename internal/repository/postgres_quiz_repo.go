package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quizwizards/quizapi/internal/model"
)

const quizColumns = `id, taker_id, topic_id, title, description, created_date, updated_date`

// PostgresQuizRepo はPostgreSQLを使用したクイズリポジトリ。
type PostgresQuizRepo struct {
	db *sql.DB
}

// NewPostgresQuizRepo はPostgresQuizRepoを生成する。
func NewPostgresQuizRepo(db *sql.DB) *PostgresQuizRepo {
	return &PostgresQuizRepo{db: db}
}

// FindByID は指定IDのクイズを取得する。見つからない場合はnilを返す。
func (r *PostgresQuizRepo) FindByID(ctx context.Context, id int64) (*model.Quiz, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = $1`,
		id,
	)
	quiz, err := scanQuiz(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find quiz by ID: %w", err)
	}
	return quiz, nil
}

// List は全クイズをID昇順で返す。
func (r *PostgresQuizRepo) List(ctx context.Context) ([]*model.Quiz, error) {
	return r.query(ctx, "failed to list quizzes",
		`SELECT `+quizColumns+` FROM quizzes ORDER BY id`,
	)
}

// ListByTakerID はテイカーが所有するクイズをID昇順で返す。
func (r *PostgresQuizRepo) ListByTakerID(ctx context.Context, takerID int64) ([]*model.Quiz, error) {
	return r.query(ctx, "failed to list quizzes by taker",
		`SELECT `+quizColumns+` FROM quizzes WHERE taker_id = $1 ORDER BY id`,
		takerID,
	)
}

// Create はクイズを作成し、採番されたIDをquiz.IDに設定する。
func (r *PostgresQuizRepo) Create(ctx context.Context, quiz *model.Quiz) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO quizzes (taker_id, topic_id, title, description, created_date, updated_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		quiz.TakerID, nullInt64(quiz.TopicID), quiz.Title, quiz.Description,
		quiz.CreatedDate, quiz.UpdatedDate,
	).Scan(&quiz.ID)
	if err != nil {
		return translateError("failed to insert quiz", err)
	}
	return nil
}

// Update はクイズ情報を更新する。所有者（taker_id）は変更しない。
func (r *PostgresQuizRepo) Update(ctx context.Context, quiz *model.Quiz) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quizzes SET topic_id = $2, title = $3, description = $4, updated_date = $5 WHERE id = $1`,
		quiz.ID, nullInt64(quiz.TopicID), quiz.Title, quiz.Description, quiz.UpdatedDate,
	)
	if err != nil {
		return translateError("failed to update quiz", err)
	}
	return requireAffected("failed to update quiz", result)
}

// Delete は指定IDのクイズを削除する。
func (r *PostgresQuizRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete quiz", err)
	}
	return requireAffected("failed to delete quiz", result)
}

func (r *PostgresQuizRepo) query(ctx context.Context, op, query string, args ...any) ([]*model.Quiz, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var quizzes []*model.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan quiz: %w", op, err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return quizzes, nil
}

func scanQuiz(s rowScanner) (*model.Quiz, error) {
	q := &model.Quiz{}
	var topicID sql.NullInt64
	err := s.Scan(&q.ID, &q.TakerID, &topicID, &q.Title, &q.Description, &q.CreatedDate, &q.UpdatedDate)
	if err != nil {
		return nil, err
	}
	if topicID.Valid {
		id := topicID.Int64
		q.TopicID = &id
	}
	return q, nil
}

// nullInt64 はnil許容のIDをSQLパラメータに変換する。
func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// compile-time interface check
var _ QuizRepository = (*PostgresQuizRepo)(nil)

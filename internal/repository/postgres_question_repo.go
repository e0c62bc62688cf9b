package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/quizwizards/quizapi/internal/model"
)

const questionColumns = `id, quiz_id, text, choices, answer, points, created_date, updated_date`

// PostgresQuestionRepo はPostgreSQLを使用した設問リポジトリ。
// 選択肢はtext[]カラムにpq.Arrayで格納する。
type PostgresQuestionRepo struct {
	db *sql.DB
}

// NewPostgresQuestionRepo はPostgresQuestionRepoを生成する。
func NewPostgresQuestionRepo(db *sql.DB) *PostgresQuestionRepo {
	return &PostgresQuestionRepo{db: db}
}

// FindByID は指定IDの設問を取得する。見つからない場合はnilを返す。
func (r *PostgresQuestionRepo) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`,
		id,
	)
	question, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find question by ID: %w", err)
	}
	return question, nil
}

// List は全設問をID昇順で返す。
func (r *PostgresQuestionRepo) List(ctx context.Context) ([]*model.Question, error) {
	return r.query(ctx, "failed to list questions",
		`SELECT `+questionColumns+` FROM questions ORDER BY id`,
	)
}

// ListByQuizID はクイズに属する設問をID昇順で返す。
func (r *PostgresQuestionRepo) ListByQuizID(ctx context.Context, quizID int64) ([]*model.Question, error) {
	return r.query(ctx, "failed to list questions by quiz",
		`SELECT `+questionColumns+` FROM questions WHERE quiz_id = $1 ORDER BY id`,
		quizID,
	)
}

// Create は設問を作成し、採番されたIDをquestion.IDに設定する。
func (r *PostgresQuestionRepo) Create(ctx context.Context, question *model.Question) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO questions (quiz_id, text, choices, answer, points, created_date, updated_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		question.QuizID, question.Text, pq.Array(question.Choices), question.Answer,
		question.Points, question.CreatedDate, question.UpdatedDate,
	).Scan(&question.ID)
	if err != nil {
		return translateError("failed to insert question", err)
	}
	return nil
}

// Update は設問を更新する。
func (r *PostgresQuestionRepo) Update(ctx context.Context, question *model.Question) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE questions
		 SET quiz_id = $2, text = $3, choices = $4, answer = $5, points = $6, updated_date = $7
		 WHERE id = $1`,
		question.ID, question.QuizID, question.Text, pq.Array(question.Choices),
		question.Answer, question.Points, question.UpdatedDate,
	)
	if err != nil {
		return translateError("failed to update question", err)
	}
	return requireAffected("failed to update question", result)
}

// Delete は指定IDの設問を削除する。
func (r *PostgresQuestionRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete question", err)
	}
	return requireAffected("failed to delete question", result)
}

func (r *PostgresQuestionRepo) query(ctx context.Context, op, query string, args ...any) ([]*model.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var questions []*model.Question
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan question: %w", op, err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return questions, nil
}

func scanQuestion(s rowScanner) (*model.Question, error) {
	q := &model.Question{}
	err := s.Scan(&q.ID, &q.QuizID, &q.Text, pq.Array(&q.Choices), &q.Answer,
		&q.Points, &q.CreatedDate, &q.UpdatedDate)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// compile-time interface check
var _ QuestionRepository = (*PostgresQuestionRepo)(nil)

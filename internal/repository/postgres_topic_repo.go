package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quizwizards/quizapi/internal/model"
)

// PostgresTopicRepo はPostgreSQLを使用したトピックリポジトリ。
type PostgresTopicRepo struct {
	db *sql.DB
}

// NewPostgresTopicRepo はPostgresTopicRepoを生成する。
func NewPostgresTopicRepo(db *sql.DB) *PostgresTopicRepo {
	return &PostgresTopicRepo{db: db}
}

// FindByID は指定IDのトピックを取得する。見つからない場合はnilを返す。
func (r *PostgresTopicRepo) FindByID(ctx context.Context, id int64) (*model.Topic, error) {
	topic := &model.Topic{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_date, updated_date FROM topics WHERE id = $1`,
		id,
	).Scan(&topic.ID, &topic.Name, &topic.Description, &topic.CreatedDate, &topic.UpdatedDate)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find topic by ID: %w", err)
	}
	return topic, nil
}

// List は全トピックを名前順で返す。
func (r *PostgresTopicRepo) List(ctx context.Context) ([]*model.Topic, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_date, updated_date FROM topics ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	var topics []*model.Topic
	for rows.Next() {
		topic := &model.Topic{}
		if err := rows.Scan(&topic.ID, &topic.Name, &topic.Description, &topic.CreatedDate, &topic.UpdatedDate); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}
	return topics, nil
}

// Create はトピックを作成し、採番されたIDをtopic.IDに設定する。
func (r *PostgresTopicRepo) Create(ctx context.Context, topic *model.Topic) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO topics (name, description, created_date, updated_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		topic.Name, topic.Description, topic.CreatedDate, topic.UpdatedDate,
	).Scan(&topic.ID)
	if err != nil {
		return translateError("failed to insert topic", err)
	}
	return nil
}

// Update はトピック情報を更新する。
func (r *PostgresTopicRepo) Update(ctx context.Context, topic *model.Topic) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE topics SET name = $2, description = $3, updated_date = $4 WHERE id = $1`,
		topic.ID, topic.Name, topic.Description, topic.UpdatedDate,
	)
	if err != nil {
		return translateError("failed to update topic", err)
	}
	return requireAffected("failed to update topic", result)
}

// Delete は指定IDのトピックを削除する。
func (r *PostgresTopicRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete topic", err)
	}
	return requireAffected("failed to delete topic", result)
}

// compile-time interface check
var _ TopicRepository = (*PostgresTopicRepo)(nil)

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quizwizards/quizapi/internal/model"
)

const takerColumns = `id, name, address, email, username, password_hash, taker_type, created_date, updated_date`

// PostgresTakerRepo はPostgreSQLを使用したテイカーリポジトリ。
type PostgresTakerRepo struct {
	db *sql.DB
}

// NewPostgresTakerRepo はPostgresTakerRepoを生成する。
func NewPostgresTakerRepo(db *sql.DB) *PostgresTakerRepo {
	return &PostgresTakerRepo{db: db}
}

// FindByID は指定IDのテイカーを取得する。見つからない場合はnilを返す。
func (r *PostgresTakerRepo) FindByID(ctx context.Context, id int64) (*model.Taker, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+takerColumns+` FROM takers WHERE id = $1`,
		id,
	)
	taker, err := scanTaker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find taker by ID: %w", err)
	}
	return taker, nil
}

// FindByUsername はユーザー名でテイカーを取得する。見つからない場合はnilを返す。
func (r *PostgresTakerRepo) FindByUsername(ctx context.Context, username string) (*model.Taker, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+takerColumns+` FROM takers WHERE username = $1`,
		username,
	)
	taker, err := scanTaker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find taker by username: %w", err)
	}
	return taker, nil
}

// List は全テイカーをID昇順で返す。
func (r *PostgresTakerRepo) List(ctx context.Context) ([]*model.Taker, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+takerColumns+` FROM takers ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list takers: %w", err)
	}
	defer rows.Close()

	var takers []*model.Taker
	for rows.Next() {
		taker, err := scanTaker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan taker: %w", err)
		}
		takers = append(takers, taker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate takers: %w", err)
	}
	return takers, nil
}

// Create はテイカーを作成し、採番されたIDをtaker.IDに設定する。
func (r *PostgresTakerRepo) Create(ctx context.Context, taker *model.Taker) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO takers (name, address, email, username, password_hash, taker_type, created_date, updated_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		taker.Name, taker.Address, taker.Email, taker.Username, taker.PasswordHash,
		taker.TakerType, taker.CreatedDate, taker.UpdatedDate,
	).Scan(&taker.ID)
	if err != nil {
		return translateError("failed to insert taker", err)
	}
	return nil
}

// Update はテイカー情報を更新する。created_dateは書き換えない。
func (r *PostgresTakerRepo) Update(ctx context.Context, taker *model.Taker) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE takers
		 SET name = $2, address = $3, email = $4, username = $5,
		     password_hash = $6, taker_type = $7, updated_date = $8
		 WHERE id = $1`,
		taker.ID, taker.Name, taker.Address, taker.Email, taker.Username,
		taker.PasswordHash, taker.TakerType, taker.UpdatedDate,
	)
	if err != nil {
		return translateError("failed to update taker", err)
	}
	return requireAffected("failed to update taker", result)
}

// Delete は指定IDのテイカーを削除する。
func (r *PostgresTakerRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM takers WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete taker", err)
	}
	return requireAffected("failed to delete taker", result)
}

// rowScanner は*sql.Rowと*sql.Rowsの共通インターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTaker(s rowScanner) (*model.Taker, error) {
	t := &model.Taker{}
	err := s.Scan(&t.ID, &t.Name, &t.Address, &t.Email, &t.Username,
		&t.PasswordHash, &t.TakerType, &t.CreatedDate, &t.UpdatedDate)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// compile-time interface check
var _ TakerRepository = (*PostgresTakerRepo)(nil)

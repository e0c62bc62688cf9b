package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound は更新・削除対象の行が存在しないことを示す。
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate は一意制約違反を示す。
	ErrDuplicate = errors.New("duplicate record")

	// ErrReferenceNotFound は外部キー制約違反（参照先の不在）を示す。
	ErrReferenceNotFound = errors.New("referenced record not found")
)

// PostgreSQLのSQLSTATEコード
const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
)

// translateError はドライバのエラーをリポジトリのセンチネルエラーに変換する。
// 変換対象外のエラーはopの説明を付けてラップする。
func translateError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, ErrDuplicate, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w (%s)", op, ErrReferenceNotFound, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// requireAffected は更新・削除で1行以上影響したことを検証する。
func requireAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

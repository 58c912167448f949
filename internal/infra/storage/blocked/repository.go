package blocked

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/dbmetrics"
	"github.com/m04kA/rental-guide-service/pkg/psqlbuilder"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

const table = "blocked_date_ranges"

var columns = []string{
	"id",
	"property_id",
	"start_date",
	"end_date",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с блокировками дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет блокировку с уже назначенным id
func (r *Repository) Create(ctx context.Context, block *domain.BlockedDateRange) (*domain.BlockedDateRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "property_id", "start_date", "end_date", "reason").
		Values(block.ID, block.PropertyID, block.StartDate, block.EndDate, block.Reason).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.BlockedDateRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	return block, nil
}

// List возвращает блокировки, заканчивающиеся не раньше from.
// propertyID = nil - по всем объектам.
func (r *Repository) List(ctx context.Context, from types.Date, propertyID *string) ([]domain.BlockedDateRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"end_date": from}).
		OrderBy("start_date ASC", "id ASC")

	if propertyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"property_id": *propertyID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.BlockedDateRange, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, *block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// CountOverlapping считает блокировки объекта, задевающие проживание stay.
// Блокировка включает обе границы, проживание - без дня выезда.
func (r *Repository) CountOverlapping(ctx context.Context, propertyID string, stay domain.Interval) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.Lt{"start_date": stay.End}).
		Where(squirrel.GtOrEq{"end_date": stay.Start}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.BlockedDateRange, error) {
	var block domain.BlockedDateRange
	var reason sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&block.ID,
		&block.PropertyID,
		&block.StartDate,
		&block.EndDate,
		&reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if reason.Valid {
		block.Reason = &reason.String
	}
	block.CreatedAt = createdAt.Time

	return &block, nil
}

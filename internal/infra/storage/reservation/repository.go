package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/pkg/dbmetrics"
	"github.com/m04kA/rental-guide-service/pkg/psqlbuilder"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

const table = "reservations"

var columns = []string{
	"id",
	"property_id",
	"guest_name",
	"status",
	"check_in",
	"checkout",
	"internal_note",
	"details",
	"created_at",
	"updated_at",
}

// patchColumn связывает поле частичного обновления с колонкой таблицы
type patchColumn struct {
	column string
	value  func(p *domain.ReservationPatch) (interface{}, bool)
}

// patchColumns явная таблица соответствия полей ReservationPatch колонкам.
// Поле details обновляется отдельно слиянием jsonb.
var patchColumns = []patchColumn{
	{column: "guest_name", value: func(p *domain.ReservationPatch) (interface{}, bool) {
		if p.GuestName == nil {
			return nil, false
		}
		return strings.TrimSpace(*p.GuestName), true
	}},
	{column: "status", value: func(p *domain.ReservationPatch) (interface{}, bool) {
		if p.Status == nil {
			return nil, false
		}
		return string(*p.Status), true
	}},
	{column: "check_in", value: func(p *domain.ReservationPatch) (interface{}, bool) {
		if p.CheckIn == nil {
			return nil, false
		}
		return *p.CheckIn, true
	}},
	{column: "checkout", value: func(p *domain.ReservationPatch) (interface{}, bool) {
		if p.Checkout == nil {
			return nil, false
		}
		return *p.Checkout, true
	}},
	{column: "property_id", value: func(p *domain.ReservationPatch) (interface{}, bool) {
		if p.PropertyID == nil {
			return nil, false
		}
		return *p.PropertyID, true
	}},
	{column: "internal_note", value: func(p *domain.ReservationPatch) (interface{}, bool) {
		if p.InternalNote == nil {
			return nil, false
		}
		return *p.InternalNote, true
	}},
}

// Page страница архива
type Page struct {
	Items      []domain.Reservation
	NextCursor string
	HasMore    bool
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование с уже назначенным id.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	details, err := encodeDetails(res.Details)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrDetails, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"property_id",
			"guest_name",
			"status",
			"check_in",
			"checkout",
			"internal_note",
			"details",
		).
		Values(
			res.ID,
			res.PropertyID,
			res.GuestName,
			string(res.Status),
			res.CheckIn,
			res.Checkout,
			res.InternalNote,
			details,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - %v", ErrScanRow, err)
	}

	return res, nil
}

// Update применяет частичное обновление и возвращает сохраненную версию
func (r *Repository) Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	for _, pc := range patchColumns {
		if v, ok := pc.value(&patch); ok {
			updateBuilder = updateBuilder.Set(pc.column, v)
		}
	}

	if len(patch.Details) > 0 {
		set, removed := splitDetails(patch.Details)
		encoded, err := encodeDetails(set)
		if err != nil {
			return nil, fmt.Errorf("%w: Update - %v", ErrDetails, err)
		}
		updateBuilder = updateBuilder.Set("details",
			squirrel.Expr("(COALESCE(details, '{}'::jsonb) || ?::jsonb) - ?::text[]", encoded, pq.Array(removed)))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return res, nil
}

// Delete удаляет бронирование
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
		return ErrReservationNotFound
	}

	return nil
}

// ListActive возвращает бронирования с выездом сегодня или позже, включая отмененные.
// propertyID = nil - по всем объектам.
func (r *Repository) ListActive(ctx context.Context, today types.Date, propertyID *string) ([]domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"checkout": today}).
		OrderBy("check_in ASC", "id ASC")

	if propertyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"property_id": *propertyID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListHistoryPage возвращает страницу архива (выезд раньше today), новые выезды первыми.
// Пустой cursor - первая страница.
func (r *Repository) ListHistoryPage(ctx context.Context, today types.Date, cursor string, limit int) (*Page, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Lt{"checkout": today}).
		OrderBy("checkout DESC", "id DESC").
		Limit(uint64(limit) + 1)

	if cursor != "" {
		after, err := DecodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		selectBuilder = selectBuilder.Where(squirrel.Expr("(checkout, id) < (?, ?)", after.Checkout, after.ID))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHistoryPage - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHistoryPage - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items, err := scanReservations(rows)
	if err != nil {
		return nil, err
	}

	return newPage(items, limit), nil
}

// CountOverlapping считает неотмененные бронирования объекта, пересекающиеся с проживанием stay.
// excludeID исключает само изменяемое бронирование.
func (r *Repository) CountOverlapping(ctx context.Context, propertyID string, stay domain.Interval, excludeID string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		Where(squirrel.Lt{"check_in": stay.End}).
		Where(squirrel.Gt{"checkout": stay.Start})

	if excludeID != "" {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// newPage отрезает лишнюю запись, запрошенную для определения hasMore
func newPage(items []domain.Reservation, limit int) *Page {
	page := &Page{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		page.HasMore = true
		last := page.Items[len(page.Items)-1]
		page.NextCursor = EncodeCursor(Cursor{Checkout: last.Checkout, ID: last.ID})
	}
	return page
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var status string
	var details []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.PropertyID,
		&res.GuestName,
		&status,
		&res.CheckIn,
		&res.Checkout,
		&res.InternalNote,
		&details,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Status = domain.ReservationStatus(status)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	if res.Details, err = decodeDetails(details); err != nil {
		return nil, fmt.Errorf("%w: reservation %s: %v", ErrDetails, res.ID, err)
	}

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	list := make([]domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		list = append(list, *res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return list, nil
}

func encodeDetails(details map[string]string) ([]byte, error) {
	if details == nil {
		details = map[string]string{}
	}
	return json.Marshal(details)
}

func decodeDetails(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var details map[string]string
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, nil
	}
	return details, nil
}

// splitDetails разделяет слияние на устанавливаемые и удаляемые (пустое значение) ключи
func splitDetails(patch map[string]string) (set map[string]string, removed []string) {
	set = make(map[string]string, len(patch))
	removed = make([]string, 0)
	for k, v := range patch {
		if v == "" {
			removed = append(removed, k)
			continue
		}
		set[k] = v
	}
	return set, removed
}

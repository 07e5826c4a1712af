package repository // repository defines data access for layouts

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel checks
	"strings"      // strings for query building

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// insertChunk caps the rows of a single multi-values INSERT so large bulk
// layouts stay well below the placeholder limit.
const insertChunk = 500

// mysqlDuplicateEntry is the server error number for a unique key clash.
const mysqlDuplicateEntry = 1062

// ListFilter narrows ListByOwner. Empty fields do not filter.
type ListFilter struct {
	Name       string // substring match on layouts.name
	ActiveOnly bool   // only layouts with is_active = 1
}

// LayoutRepo persists layouts together with their categories and items.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo constructs a LayoutRepo with the given DB handle.
func NewLayoutRepo(db *sql.DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// Create inserts the layout, its categories and its items in one
// transaction. On success ID and the timestamps are populated.
func (r *LayoutRepo) Create(ctx context.Context, l *model.Layout) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const qInsert = `INSERT INTO layouts (owner_id, name, canvas_w, canvas_h, is_active)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, qInsert, l.OwnerID, l.Name, l.CanvasW, l.CanvasH, l.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if err = insertCategories(ctx, tx, uint64(id), l.Categories); err != nil {
		return err
	}
	if err = insertItems(ctx, tx, uint64(id), l.Items); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	l.ID = uint64(id)

	// read back the server generated timestamps
	return r.loadTimestamps(ctx, l)
}

// GetByIDAndOwner loads a full layout. It returns ErrLayoutNotFound when the
// id is unknown and ErrForbidden when another owner holds it.
func (r *LayoutRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Layout, error) {
	const q = `SELECT id, owner_id, name, canvas_w, canvas_h, is_active, created_at, updated_at
	           FROM layouts WHERE id = ?`
	var l model.Layout
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&l.ID, &l.OwnerID, &l.Name, &l.CanvasW, &l.CanvasH, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	if l.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	if l.Categories, err = r.categories(ctx, id); err != nil {
		return nil, err
	}
	if l.Items, err = r.items(ctx, id); err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateByIDAndOwner overwrites the layout row and replaces its categories
// and items. Collection order is stored in the position column.
func (r *LayoutRepo) UpdateByIDAndOwner(ctx context.Context, l *model.Layout) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockOwned(ctx, tx, l.ID, l.OwnerID); err != nil {
		return err
	}
	const qUpdate = `UPDATE layouts
	                 SET name = ?, canvas_w = ?, canvas_h = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	                 WHERE id = ? AND owner_id = ?`
	if _, err = tx.ExecContext(ctx, qUpdate, l.Name, l.CanvasW, l.CanvasH, l.IsActive, l.ID, l.OwnerID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM layout_items WHERE layout_id = ?`, l.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM seat_categories WHERE layout_id = ?`, l.ID); err != nil {
		return err
	}
	if err = insertCategories(ctx, tx, l.ID, l.Categories); err != nil {
		return err
	}
	if err = insertItems(ctx, tx, l.ID, l.Items); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return r.loadTimestamps(ctx, l)
}

// DeleteByIDAndOwner removes a layout. Categories and items go with it
// through the ON DELETE CASCADE foreign keys.
func (r *LayoutRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockOwned(ctx, tx, id, ownerID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM layouts WHERE id = ? AND owner_id = ?`, id, ownerID); err != nil {
		return err
	}
	return tx.Commit()
}

// ListByOwner returns layout summaries for the owner, most recently
// updated first.
func (r *LayoutRepo) ListByOwner(ctx context.Context, ownerID uint64, f ListFilter) ([]model.LayoutSummary, error) {
	query := sq.Select(
		"l.id", "l.owner_id", "l.name", "l.canvas_w", "l.canvas_h", "l.is_active",
		"(SELECT COUNT(*) FROM layout_items i WHERE i.layout_id = l.id) AS item_count",
		"(SELECT COUNT(*) FROM layout_items i WHERE i.layout_id = l.id AND i.item_type = '"+string(model.ItemSeat)+"') AS seat_count",
		"l.created_at", "l.updated_at",
	).
		From("layouts l").
		Where(sq.Eq{"l.owner_id": ownerID})
	if name := strings.TrimSpace(f.Name); name != "" {
		query = query.Where(sq.Like{"l.name": "%" + likeEscaper.Replace(name) + "%"})
	}
	if f.ActiveOnly {
		query = query.Where(sq.Eq{"l.is_active": true})
	}
	query = query.OrderBy("l.updated_at DESC", "l.id DESC")

	q, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.LayoutSummary, 0)
	for rows.Next() {
		var s model.LayoutSummary
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.CanvasW, &s.CanvasH, &s.IsActive,
			&s.ItemCount, &s.SeatCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// lockOwned verifies existence and ownership, holding a row lock until the
// transaction ends.
func lockOwned(ctx context.Context, tx *sql.Tx, id, ownerID uint64) error {
	var dbOwnerID uint64
	err := tx.QueryRowContext(ctx, `SELECT owner_id FROM layouts WHERE id = ? FOR UPDATE`, id).Scan(&dbOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLayoutNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	return nil
}

func (r *LayoutRepo) loadTimestamps(ctx context.Context, l *model.Layout) error {
	const q = `SELECT created_at, updated_at FROM layouts WHERE id = ?`
	return r.db.QueryRowContext(ctx, q, l.ID).Scan(&l.CreatedAt, &l.UpdatedAt)
}

func (r *LayoutRepo) categories(ctx context.Context, layoutID uint64) ([]model.SeatCategory, error) {
	const q = `SELECT id, name, color, price FROM seat_categories
	           WHERE layout_id = ?
	           ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q, layoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SeatCategory, 0)
	for rows.Next() {
		var c model.SeatCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Price); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *LayoutRepo) items(ctx context.Context, layoutID uint64) ([]model.LayoutItem, error) {
	const q = `SELECT id, item_type, x, y, w, h, rotation, label, category_id, shape, table_seats, row_label, seat_number
	           FROM layout_items
	           WHERE layout_id = ?
	           ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q, layoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.LayoutItem, 0)
	for rows.Next() {
		var (
			it                            model.LayoutItem
			typ                           string
			label, catID, shape, rowLabel sql.NullString
			tableSeats, seatNumber        sql.NullInt64
		)
		if err := rows.Scan(&it.ID, &typ, &it.X, &it.Y, &it.W, &it.H, &it.Rotation,
			&label, &catID, &shape, &tableSeats, &rowLabel, &seatNumber); err != nil {
			return nil, err
		}
		it.Type = model.ItemType(typ)
		it.Label = label.String
		it.CategoryID = catID.String
		it.Shape = model.TableShape(shape.String)
		it.TableSeats = int(tableSeats.Int64)
		it.RowLabel = rowLabel.String
		if seatNumber.Valid {
			n := int(seatNumber.Int64)
			it.SeatNumber = &n
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// insertCategories writes categories with a single multi-values INSERT.
func insertCategories(ctx context.Context, tx *sql.Tx, layoutID uint64, cats []model.SeatCategory) error {
	if len(cats) == 0 {
		return nil
	}
	query := `INSERT INTO seat_categories (layout_id, id, position, name, color, price) VALUES `
	args := make([]interface{}, 0, len(cats)*6)
	for i, c := range cats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, layoutID, c.ID, i, c.Name, c.Color, c.Price)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return mapWriteErr(err)
}

// insertItems writes items in chunks of insertChunk rows, preserving
// collection order in the position column.
func insertItems(ctx context.Context, tx *sql.Tx, layoutID uint64, items []model.LayoutItem) error {
	const row = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	for start := 0; start < len(items); start += insertChunk {
		end := min(start+insertChunk, len(items))
		chunk := items[start:end]

		var b strings.Builder
		b.WriteString(`INSERT INTO layout_items (layout_id, id, position, item_type, x, y, w, h, rotation,
		               label, category_id, shape, table_seats, row_label, seat_number) VALUES `)
		args := make([]interface{}, 0, len(chunk)*15)
		for i, it := range chunk {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(row)
			var seatNumber interface{}
			if it.SeatNumber != nil {
				seatNumber = *it.SeatNumber
			}
			args = append(args, layoutID, it.ID, start+i, string(it.Type), it.X, it.Y, it.W, it.H, it.Rotation,
				nullString(it.Label), nullString(it.CategoryID), nullString(string(it.Shape)),
				nullInt(it.TableSeats), nullString(it.RowLabel), seatNumber)
		}
		if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
			return mapWriteErr(err)
		}
	}
	return nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

// mapWriteErr turns a duplicate key failure into ErrConflict.
func mapWriteErr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return ErrConflict
	}
	return err
}

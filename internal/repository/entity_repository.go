package repository

import (
	"coa-backend/internal/models"
	"context"

	"github.com/jmoiron/sqlx"
)

// EntityRepository runs the schema-derived statements shared by every
// chart-of-accounts table.
type EntityRepository struct {
	db *sqlx.DB
}

func NewEntityRepository(db *sqlx.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// List loads the whole table ordered by its code into dest, a pointer to a
// slice of the entity model.
func (r *EntityRepository) List(ctx context.Context, schema *models.EntitySchema, dest interface{}) error {
	return r.db.SelectContext(ctx, dest, schema.SelectQuery())
}

// ListRecords loads the whole table as records in import column order.
func (r *EntityRepository) ListRecords(ctx context.Context, schema *models.EntitySchema) ([]models.Record, error) {
	rows, err := r.db.QueryxContext(ctx, schema.SelectQuery())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		rec := make(models.Record, len(row))
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			rec[k] = v
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Insert creates one row from a model struct or record and returns its id.
func (r *EntityRepository) Insert(ctx context.Context, schema *models.EntitySchema, arg interface{}) (int64, error) {
	if rec, ok := arg.(models.Record); ok {
		arg = map[string]interface{}(rec)
	}
	result, err := r.db.NamedExecContext(ctx, schema.InsertQuery(), arg)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Upsert inserts the record or updates the row holding the same unique key.
func (r *EntityRepository) Upsert(ctx context.Context, schema *models.EntitySchema, rec models.Record) error {
	_, err := r.db.NamedExecContext(ctx, schema.UpsertQuery(), map[string]interface{}(rec))
	return err
}

package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrDuplicateClassification is returned when the classification name is taken.
	ErrDuplicateClassification = errors.New("classification already exists")
	// ErrVehicleNotFound is returned when no vehicle matches the lookup.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrClassificationNotFound is returned when no classification matches the lookup.
	ErrClassificationNotFound = errors.New("classification not found")
)

// ClassificationRecord is one storefront vehicle category.
type ClassificationRecord struct {
	ID   int64  `json:"classification_id"`
	Name string `json:"classification_name"`
}

// VehicleRecord is one inventory row.
type VehicleRecord struct {
	ID               int64
	ClassificationID int64
	Make             string
	Model            string
	Year             int
	Description      string
	Image            string
	Thumbnail        string
	Price            int64
	Miles            int64
	Color            string
}

// InventoryRepository defines persistence operations for the inventory surface.
type InventoryRepository interface {
	Classifications(ctx context.Context) ([]ClassificationRecord, error)
	ClassificationByName(ctx context.Context, name string) (ClassificationRecord, error)
	CreateClassification(ctx context.Context, name string) (int64, error)
	VehiclesByClassification(ctx context.Context, classificationID int64) ([]VehicleRecord, error)
	VehicleByID(ctx context.Context, id int64) (VehicleRecord, error)
	CreateVehicle(ctx context.Context, v VehicleRecord) (int64, error)
}

// PgInventoryRepository implements InventoryRepository using pgxpool.
type PgInventoryRepository struct {
	db *pgxpool.Pool
}

func NewPgInventoryRepository(db *pgxpool.Pool) *PgInventoryRepository {
	return &PgInventoryRepository{db: db}
}

func (r *PgInventoryRepository) Classifications(ctx context.Context) ([]ClassificationRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT classification_id, classification_name FROM classification ORDER BY classification_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ClassificationRecord
	for rows.Next() {
		var c ClassificationRecord
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *PgInventoryRepository) ClassificationByName(ctx context.Context, name string) (ClassificationRecord, error) {
	const q = `SELECT classification_id, classification_name FROM classification WHERE classification_name=$1`
	var c ClassificationRecord
	if err := r.db.QueryRow(ctx, q, name).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ClassificationRecord{}, ErrClassificationNotFound
		}
		return ClassificationRecord{}, err
	}
	return c, nil
}

func (r *PgInventoryRepository) CreateClassification(ctx context.Context, name string) (int64, error) {
	const q = `INSERT INTO classification (classification_name) VALUES ($1) RETURNING classification_id`
	var id int64
	if err := r.db.QueryRow(ctx, q, name).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateClassification
		}
		return 0, err
	}
	return id, nil
}

func (r *PgInventoryRepository) VehiclesByClassification(ctx context.Context, classificationID int64) ([]VehicleRecord, error) {
	const q = `SELECT inv_id, classification_id, inv_make, inv_model, inv_year, inv_description,
		inv_image, inv_thumbnail, inv_price, inv_miles, inv_color
		FROM inventory WHERE classification_id=$1 ORDER BY inv_make, inv_model`
	rows, err := r.db.Query(ctx, q, classificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []VehicleRecord
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (r *PgInventoryRepository) VehicleByID(ctx context.Context, id int64) (VehicleRecord, error) {
	const q = `SELECT inv_id, classification_id, inv_make, inv_model, inv_year, inv_description,
		inv_image, inv_thumbnail, inv_price, inv_miles, inv_color
		FROM inventory WHERE inv_id=$1`
	v, err := scanVehicle(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VehicleRecord{}, ErrVehicleNotFound
		}
		return VehicleRecord{}, err
	}
	return v, nil
}

func (r *PgInventoryRepository) CreateVehicle(ctx context.Context, v VehicleRecord) (int64, error) {
	const q = `INSERT INTO inventory (classification_id, inv_make, inv_model, inv_year, inv_description,
		inv_image, inv_thumbnail, inv_price, inv_miles, inv_color)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING inv_id`
	var id int64
	err := r.db.QueryRow(ctx, q, v.ClassificationID, v.Make, v.Model, v.Year, v.Description,
		v.Image, v.Thumbnail, v.Price, v.Miles, v.Color).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func scanVehicle(row pgx.Row) (VehicleRecord, error) {
	var v VehicleRecord
	err := row.Scan(&v.ID, &v.ClassificationID, &v.Make, &v.Model, &v.Year, &v.Description,
		&v.Image, &v.Thumbnail, &v.Price, &v.Miles, &v.Color)
	return v, err
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, code, name, packing_warehouse_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Code, p.Name, nullable(p.PackingWarehouseID), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByCode obtiene un producto por código. nil si no existe.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	return r.getOne(`WHERE code = $1`, code)
}

func (r *ProductRepo) getOne(where string, arg any) (*entity.Product, error) {
	query := `
		SELECT id, code, name, packing_warehouse_id, created_at, updated_at
		FROM products ` + where
	var p entity.Product
	var packing *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Code, &p.Name, &packing, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if packing != nil {
		p.PackingWarehouseID = *packing
	}
	return &p, nil
}

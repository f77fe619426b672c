package service

import (
	"context"
	"errors"

	"go-warehouse-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Lookup fetches entities by id or uuid and reports absence as *NotFoundError,
// so every workflow shares the same 404 semantics.
type Lookup struct {
	db *gorm.DB
}

func NewLookup(db *gorm.DB) *Lookup {
	return &Lookup{db: db}
}

// fetch loads one T matching query, translating gorm.ErrRecordNotFound.
func fetch[T any](tx *gorm.DB, entity string, identifier any, query string, args ...any) (*T, error) {
	var out T
	err := tx.Where(query, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: entity, Identifier: identifier}
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *Lookup) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return l.db.WithContext(ctx)
}

// Product resolves ref as a numeric id first, then as a uuid.
func (l *Lookup) Product(ctx context.Context, tx *gorm.DB, ref model.Ref) (*model.Product, error) {
	db := l.conn(ctx, tx)
	if id, ok := ref.ID(); ok {
		return fetch[model.Product](db, "Product", ref.String(), "id = ?", id)
	}
	if u, ok := ref.UUID(); ok {
		return fetch[model.Product](db, "Product", ref.String(), "product_uuid = ?", u)
	}
	return nil, &NotFoundError{Entity: "Product", Identifier: ref.String()}
}

// BatchForUpdate loads a batch and holds its row lock until the transaction ends.
func (l *Lookup) BatchForUpdate(tx *gorm.DB, id uint) (*model.ProductionBatch, error) {
	return fetch[model.ProductionBatch](tx.Clauses(clause.Locking{Strength: "UPDATE"}), "ProductionBatch", id, "id = ?", id)
}

func (l *Lookup) Shipment(ctx context.Context, tx *gorm.DB, id uint) (*model.Shipment, error) {
	return fetch[model.Shipment](l.conn(ctx, tx), "Shipment", id, "id = ?", id)
}

func (l *Lookup) ShipmentForUpdate(tx *gorm.DB, id uint) (*model.Shipment, error) {
	return fetch[model.Shipment](tx.Clauses(clause.Locking{Strength: "UPDATE"}), "Shipment", id, "id = ?", id)
}

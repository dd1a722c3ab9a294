package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Fury174k/pharmstock/internal/common"
	"github.com/Fury174k/pharmstock/internal/server/models"
)

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func fltPtr(f float64) *float64 { return &f }

func productInput(sku, name string, stock, reorder int) *ProductInput {
	return &ProductInput{
		SKU:          strPtr(sku),
		Name:         strPtr(name),
		Price:        fltPtr(9.99),
		Stock:        intPtr(stock),
		ReorderLevel: intPtr(reorder),
	}
}

func TestProductCreate_RecordsInitialStockMovement(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	s := NewProductService(db, rm)

	p, err := s.Create(context.Background(), productInput("AMOX-500", "Amoxicillin 500mg", 40, 10))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("missing product ID")
	}
	if len(rm.movements.movements) != 1 {
		t.Fatalf("want 1 movement, got %d", len(rm.movements.movements))
	}
	m := rm.movements.movements[0]
	if m.Direction != models.MovementIn || m.Quantity != 40 {
		t.Fatalf("unexpected movement: %+v", m)
	}
	if len(rm.alerts.alerts) != 0 {
		t.Fatalf("unexpected alert for healthy stock")
	}
}

func TestProductCreate_LowStockOpensAlert(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	s := NewProductService(db, rm)

	if _, err := s.Create(context.Background(), productInput("IBU-200", "Ibuprofen 200mg", 5, 10)); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if len(rm.alerts.alerts) != 1 {
		t.Fatalf("want 1 alert, got %d", len(rm.alerts.alerts))
	}
	a := rm.alerts.alerts[0]
	if a.Stock != 5 || a.ReorderLevel != 10 {
		t.Fatalf("unexpected alert: %+v", a)
	}
}

func TestProductCreate_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := NewProductService(db, rm)

	_, err := s.Create(context.Background(), &ProductInput{SKU: strPtr(""), Name: strPtr("")})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want ErrorValidation, got %v", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want *ValidationError, got %T", err)
	}
	if _, ok := ve.Fields["sku"]; !ok {
		t.Fatalf("missing sku field error: %+v", ve.Fields)
	}
	if _, ok := ve.Fields["name"]; !ok {
		t.Fatalf("missing name field error: %+v", ve.Fields)
	}
}

func TestProductUpdate_StockDeltaMovementAndAlertDedup(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	s := NewProductService(db, rm)

	p, err := s.Create(context.Background(), productInput("PARA-500", "Paracetamol 500mg", 20, 10))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Drop below the reorder level: one "out" movement, one alert.
	if _, err := s.Update(context.Background(), p.ID, &ProductInput{Stock: intPtr(8)}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if len(rm.alerts.alerts) != 1 {
		t.Fatalf("want 1 alert, got %d", len(rm.alerts.alerts))
	}
	last := rm.movements.movements[len(rm.movements.movements)-1]
	if last.Direction != models.MovementOut || last.Quantity != 12 {
		t.Fatalf("unexpected movement: %+v", last)
	}

	// Still low: no duplicate alert for the same product.
	if _, err := s.Update(context.Background(), p.ID, &ProductInput{Stock: intPtr(6)}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if len(rm.alerts.alerts) != 1 {
		t.Fatalf("alert duplicated: got %d", len(rm.alerts.alerts))
	}
}

func TestProductUpdate_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := newFakeRepoManager()
	s := NewProductService(db, rm)

	_, err := s.Update(context.Background(), "missing", &ProductInput{Stock: intPtr(1)})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestProductDelete(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	s := NewProductService(db, rm)

	p, err := s.Create(context.Background(), productInput("DEL-1", "To delete", 0, 0))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := s.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Delete(context.Background(), p.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Fury174k/pharmstock/internal/common"
	"github.com/Fury174k/pharmstock/internal/dbx"
	"github.com/Fury174k/pharmstock/internal/server/models"
	alertsrepo "github.com/Fury174k/pharmstock/internal/server/repositories/alerts"
	movementsrepo "github.com/Fury174k/pharmstock/internal/server/repositories/movements"
	productsrepo "github.com/Fury174k/pharmstock/internal/server/repositories/products"
	refreshtokensrepo "github.com/Fury174k/pharmstock/internal/server/repositories/refreshtokens"
	salesrepo "github.com/Fury174k/pharmstock/internal/server/repositories/sales"
	usersrepo "github.com/Fury174k/pharmstock/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- in-memory repositories ---

type fakeUsersRepo struct {
	seq    int
	byName map[string]*models.User
	byID   map[string]*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.byName[u.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.seq++
	u.ID = fmt.Sprintf("u%d", f.seq)
	u.CreatedAt = time.Now()
	f.byName[u.Username] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeRefreshRepo struct {
	tokens    map[string]*models.RefreshToken
	createErr error
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return rt, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeProductsRepo struct {
	seq  int
	byID map[string]*models.Product
}

func newFakeProductsRepo() *fakeProductsRepo {
	return &fakeProductsRepo{byID: map[string]*models.Product{}}
}

func (f *fakeProductsRepo) add(p *models.Product) *models.Product {
	f.seq++
	p.ID = fmt.Sprintf("p%d", f.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.byID[p.ID] = &cp
	return p
}

func (f *fakeProductsRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	for _, existing := range f.byID {
		if existing.SKU == p.SKU {
			return nil, common.ErrorAlreadyExists
		}
	}
	return f.add(p), nil
}

func (f *fakeProductsRepo) List(ctx context.Context) ([]*models.Product, error) {
	var result []*models.Product
	for _, p := range f.byID {
		cp := *p
		result = append(result, &cp)
	}
	return result, nil
}

func (f *fakeProductsRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductsRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	for _, p := range f.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProductsRepo) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	if _, ok := f.byID[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	p.UpdatedAt = time.Now()
	cp := *p
	f.byID[p.ID] = &cp
	return p, nil
}

func (f *fakeProductsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeSalesRepo struct {
	seq   int
	sales []*models.Sale
}

func (f *fakeSalesRepo) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	f.seq++
	sale.ID = fmt.Sprintf("s%d", f.seq)
	sale.CreatedAt = time.Now()
	f.sales = append(f.sales, sale)
	return sale, nil
}

func (f *fakeSalesRepo) List(ctx context.Context) ([]*models.Sale, error) {
	return f.sales, nil
}

func (f *fakeSalesRepo) ListByDay(ctx context.Context, day time.Time) ([]*models.Sale, error) {
	var result []*models.Sale
	for _, s := range f.sales {
		if s.CreatedAt.Format("2006-01-02") == day.Format("2006-01-02") {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeSalesRepo) Trend(ctx context.Context, bucket string) ([]*models.TrendPoint, error) {
	return []*models.TrendPoint{{Total: 10, Count: 1}}, nil
}

type fakeAlertsRepo struct {
	seq    int
	alerts []*models.Alert
}

func (f *fakeAlertsRepo) Create(ctx context.Context, a *models.Alert) (*models.Alert, error) {
	f.seq++
	a.ID = fmt.Sprintf("a%d", f.seq)
	a.CreatedAt = time.Now()
	f.alerts = append(f.alerts, a)
	return a, nil
}

func (f *fakeAlertsRepo) ListOpen(ctx context.Context) ([]*models.Alert, error) {
	var result []*models.Alert
	for _, a := range f.alerts {
		if !a.Acknowledged {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeAlertsRepo) ListAll(ctx context.Context) ([]*models.Alert, error) {
	return f.alerts, nil
}

func (f *fakeAlertsRepo) HasOpenForProduct(ctx context.Context, productID string) (bool, error) {
	for _, a := range f.alerts {
		if a.ProductID == productID && !a.Acknowledged {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAlertsRepo) Acknowledge(ctx context.Context, ids []string) (int, error) {
	count := 0
	for _, a := range f.alerts {
		for _, id := range ids {
			if a.ID == id && !a.Acknowledged {
				now := time.Now()
				a.Acknowledged = true
				a.AcknowledgedAt = &now
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeAlertsRepo) AcknowledgeAll(ctx context.Context) (int, error) {
	count := 0
	for _, a := range f.alerts {
		if !a.Acknowledged {
			now := time.Now()
			a.Acknowledged = true
			a.AcknowledgedAt = &now
			count++
		}
	}
	return count, nil
}

type fakeMovementsRepo struct {
	seq       int
	movements []*models.StockMovement
}

func (f *fakeMovementsRepo) Create(ctx context.Context, m *models.StockMovement) (*models.StockMovement, error) {
	f.seq++
	m.ID = fmt.Sprintf("m%d", f.seq)
	m.CreatedAt = time.Now()
	f.movements = append(f.movements, m)
	return m, nil
}

func (f *fakeMovementsRepo) List(ctx context.Context) ([]*models.StockMovement, error) {
	return f.movements, nil
}

// fakeRepoManager hands out the same in-memory repositories regardless of
// the DBTX, which keeps transactional service code testable with sqlmock.
type fakeRepoManager struct {
	users     *fakeUsersRepo
	refresh   *fakeRefreshRepo
	products  *fakeProductsRepo
	sales     *fakeSalesRepo
	alerts    *fakeAlertsRepo
	movements *fakeMovementsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:     newFakeUsersRepo(),
		refresh:   newFakeRefreshRepo(),
		products:  newFakeProductsRepo(),
		sales:     &fakeSalesRepo{},
		alerts:    &fakeAlertsRepo{},
		movements: &fakeMovementsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.users }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.refresh }
func (m *fakeRepoManager) Products(db dbx.DBTX) productsrepo.Repository           { return m.products }
func (m *fakeRepoManager) Sales(db dbx.DBTX) salesrepo.Repository                 { return m.sales }
func (m *fakeRepoManager) Alerts(db dbx.DBTX) alertsrepo.Repository               { return m.alerts }
func (m *fakeRepoManager) Movements(db dbx.DBTX) movementsrepo.Repository         { return m.movements }

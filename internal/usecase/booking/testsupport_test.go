package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cleanora-services/cleany-scheduler/internal/audit"
	dbpkg "github.com/cleanora-services/cleany-scheduler/internal/db"
	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/httperr"
	infraRepo "github.com/cleanora-services/cleany-scheduler/internal/infra/repository"
	"github.com/cleanora-services/cleany-scheduler/internal/models"
)

// --------------------------------------------------
// In-memory DB
// --------------------------------------------------

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second conn would see its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func newTestRepo(t *testing.T) (domain.Repository, *gorm.DB) {
	db := newTestDB(t)
	return infraRepo.NewBookingGormRepository(db), db
}

func newTestAudit(db *gorm.DB) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(db))
}

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakeGateway struct {
	failAuthorize bool
	failCapture   bool
	failCharge    bool

	authorized []float64
	captured   []string
	charged    []float64
	nextID     int
}

func (g *fakeGateway) Authorize(_ context.Context, _ string, amount float64, _ string) (string, string, error) {
	if g.failAuthorize {
		return "", "", fmt.Errorf("declined")
	}
	g.nextID++
	g.authorized = append(g.authorized, amount)
	return fmt.Sprintf("auth-%d", g.nextID), fmt.Sprintf("cust-%d", g.nextID), nil
}

func (g *fakeGateway) Capture(_ context.Context, authRef string) error {
	if g.failCapture {
		return fmt.Errorf("declined")
	}
	g.captured = append(g.captured, authRef)
	return nil
}

func (g *fakeGateway) Charge(_ context.Context, _ string, amount float64) (string, error) {
	if g.failCharge {
		return "", fmt.Errorf("declined")
	}
	g.nextID++
	g.charged = append(g.charged, amount)
	return fmt.Sprintf("charge-%d", g.nextID), nil
}

type fakeNotifier struct {
	events []domain.Event
}

func (n *fakeNotifier) Notify(ev domain.Event) {
	n.events = append(n.events, ev)
}

func (n *fakeNotifier) titled(title string) []domain.Event {
	var out []domain.Event
	for _, ev := range n.events {
		if ev.Title == title {
			out = append(out, ev)
		}
	}
	return out
}

type fakeLocker struct {
	held map[uint]bool
}

func (l *fakeLocker) AcquireOrder(_ context.Context, orderID uint) (func(), error) {
	if l.held == nil {
		l.held = map[uint]bool{}
	}
	if l.held[orderID] {
		return nil, httperr.ErrConflict("order_locked")
	}
	l.held[orderID] = true
	return func() { delete(l.held, orderID) }, nil
}

// --------------------------------------------------
// Seed data
// --------------------------------------------------

// seedCatalog creates a service taxed at 13% with one 100.00 / 3h item,
// one 40.00 / 1h item at 25% off, and a 25.00 / 0.5h extra.
func seedCatalog(t *testing.T, db *gorm.DB) (*models.Service, []models.Item, []models.Extra) {
	t.Helper()

	tax := models.Tax{TaxCode: "HST-ON", Rate: 13}
	require.NoError(t, db.Create(&tax).Error)

	svc := models.Service{Name: "Home Cleaning", Slug: "home-cleaning", TaxID: &tax.ID}
	require.NoError(t, db.Create(&svc).Error)

	pkg := models.Package{ServiceID: svc.ID, Title: "Standard"}
	require.NoError(t, db.Create(&pkg).Error)

	items := []models.Item{
		{PackageID: pkg.ID, Title: "Deep Clean", TimeHrs: 3, Price: 100},
		{PackageID: pkg.ID, Title: "Windows", TimeHrs: 1, Price: 40, DiscountPercent: 25},
	}
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}

	extras := []models.Extra{
		{ServiceID: svc.ID, Title: "Inside Fridge", TimeHrs: 0.5, Price: 25},
	}
	for i := range extras {
		require.NoError(t, db.Create(&extras[i]).Error)
	}

	return &svc, items, extras
}

func placeTestOrder(
	t *testing.T,
	db *gorm.DB,
	repo domain.Repository,
	recurrence string,
) *models.Order {
	t.Helper()

	svc, items, extras := seedCatalog(t, db)

	uc := NewPlaceOrder(repo, newTestAudit(db), "UTC")
	order, err := uc.Execute(context.Background(), PlaceOrderInput{
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "dana@example.com",
		Phone:     "555-0100",

		StreetAddress: "12 Main St",
		City:          "Toronto",
		State:         "ON",
		ZipCode:       "M5V 1A1",

		ServiceID:      svc.ID,
		RecurrenceType: recurrence,
		StartDate:      "2026-09-07",
		StartTime:      "10:00",

		Items: []OrderLine{
			{ID: items[0].ID, Quantity: 1},
			{ID: items[1].ID, Quantity: 1},
		},
		Extras: []OrderLine{
			{ID: extras[0].ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	return order
}

func scheduleTestOrder(
	t *testing.T,
	db *gorm.DB,
	repo domain.Repository,
	recurrence string,
) (*models.Order, *fakeGateway, *fakeNotifier) {
	t.Helper()

	order := placeTestOrder(t, db, repo, recurrence)

	gw := &fakeGateway{}
	notifier := &fakeNotifier{}
	uc := NewScheduleOrder(
		repo, gw, &fakeLocker{}, notifier, newTestAudit(db),
		domain.DefaultHorizons(), "UTC",
	)

	order, err := uc.Execute(context.Background(), order.ID, "tok_visa")
	require.NoError(t, err)
	return order, gw, notifier
}

func mustParseUTC(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.UTC)
	require.NoError(t, err)
	return ts
}

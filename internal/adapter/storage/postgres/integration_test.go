//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/lib/pq"

	"github.com/aniket045123/craftmyresume/internal/domain"
	"github.com/aniket045123/craftmyresume/pkg/config"
)

var (
	testDB  *gorm.DB
	testDSN string
)

// TestMain starts a throwaway Postgres unless DATABASE_URL points at one.
func TestMain(m *testing.M) {
	ctx := context.Background()
	logger, _ := zap.NewDevelopment()

	var container testcontainers.Container
	testDSN = os.Getenv("DATABASE_URL")
	if testDSN == "" {
		pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
			tcpostgres.WithDatabase("craftmyresume_test"),
			tcpostgres.WithUsername("craft"),
			tcpostgres.WithPassword("craft_test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			logger.Fatal("Failed to start postgres container", zap.Error(err))
		}
		container = pg

		testDSN, err = pg.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			logger.Fatal("Failed to get connection string", zap.Error(err))
		}
	}

	db, err := NewConnection(config.DatabaseConfig{URL: testDSN, MaxOpenConns: 5}, logger)
	if err != nil {
		logger.Fatal("Failed to connect", zap.Error(err))
	}
	if err := RunMigrations(db); err != nil {
		logger.Fatal("Failed to migrate", zap.Error(err))
	}
	testDB = db

	code := m.Run()

	Close(db)
	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			logger.Warn("Failed to terminate postgres container", zap.Error(err))
		}
	}
	os.Exit(code)
}

// cleanDatabase truncates all tables
func cleanDatabase(t *testing.T) {
	t.Helper()
	for _, table := range []string{"leads", "resume_updates", "resume_builds", "admin_users", "admin_settings"} {
		if err := testDB.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			t.Fatalf("Failed to truncate %s: %v", table, err)
		}
	}
}

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestLeadRepository_SaveAndFindAll(t *testing.T) {
	cleanDatabase(t)
	ctx := context.Background()
	repo := NewLeadRepository(testDB, newTestLogger())

	email := "lead@example.com"
	withEmail := &domain.Lead{ID: uuid.New().String(), Name: "Asha", Email: &email, CreatedAt: time.Now().Add(-time.Hour)}
	phoneOnly := &domain.Lead{ID: uuid.New().String(), Name: "Ravi", Phone: domain.OptionalString("+91 99999 00000")}

	for _, l := range []*domain.Lead{withEmail, phoneOnly} {
		if err := repo.Save(ctx, l); err != nil {
			t.Fatalf("Failed to save lead: %v", err)
		}
	}

	leads, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("Failed to list leads: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("Expected 2 leads, got %d", len(leads))
	}
	if leads[0].Name != "Ravi" {
		t.Errorf("Expected newest lead first, got %s", leads[0].Name)
	}
	if leads[0].Email != nil {
		t.Errorf("Expected phone-only lead to keep a nil email")
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 2 {
		t.Errorf("Expected count 2, got %d (%v)", n, err)
	}
}

func TestOrderRepositories_StatusLifecycle(t *testing.T) {
	cleanDatabase(t)
	ctx := context.Background()
	updates := NewResumeUpdateRepository(testDB, newTestLogger())
	builds := NewResumeBuildRepository(testDB, newTestLogger())

	now := time.Now()
	upd := &domain.ResumeUpdate{OrderID: domain.NewUpdateOrderID(now), CustomerName: "Asha", Email: "asha@example.com", Status: domain.RequestStatusPending}
	if err := updates.Save(ctx, upd); err != nil {
		t.Fatalf("Failed to save update order: %v", err)
	}
	bld := &domain.ResumeBuild{OrderID: domain.NewBuildOrderID(now), FullName: "Ravi", Email: "ravi@example.com", Status: domain.RequestStatusPending}
	if err := builds.Save(ctx, bld); err != nil {
		t.Fatalf("Failed to save build order: %v", err)
	}

	if err := updates.UpdateStatus(ctx, upd.ID, domain.RequestStatusCompleted); err != nil {
		t.Fatalf("Failed to update status: %v", err)
	}

	got, err := updates.FindByID(ctx, upd.ID)
	if err != nil || got == nil {
		t.Fatalf("Failed to reload update order: %v", err)
	}
	if got.Status != domain.RequestStatusCompleted {
		t.Errorf("Expected completed, got %s", got.Status)
	}

	completed, err := updates.FindAll(ctx, domain.RequestStatusCompleted)
	if err != nil || len(completed) != 1 {
		t.Errorf("Expected 1 completed update, got %d (%v)", len(completed), err)
	}
	pendingBuilds, err := builds.FindAll(ctx, domain.RequestStatusPending)
	if err != nil || len(pendingBuilds) != 1 {
		t.Errorf("Expected 1 pending build, got %d (%v)", len(pendingBuilds), err)
	}

	if err := builds.UpdateStatus(ctx, 9999, domain.RequestStatusCancelled); err != domain.ErrNotFound {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}

	missing, err := builds.FindByID(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for unknown id, got %v, %v", missing, err)
	}
}

func TestAdminUserRepository_FindActiveByEmail(t *testing.T) {
	cleanDatabase(t)
	ctx := context.Background()
	repo := NewAdminUserRepository(testDB, newTestLogger())

	active := &domain.AdminUser{ID: uuid.New().String(), Email: "owner@example.com", Name: "Owner", Role: domain.AdminRoleOwner, IsActive: true}
	if err := repo.Save(ctx, active); err != nil {
		t.Fatalf("Failed to save admin: %v", err)
	}
	// is_active defaults to true, so deactivate with an explicit update.
	inactive := &domain.AdminUser{ID: uuid.New().String(), Email: "former@example.com", Name: "Former", IsActive: true}
	if err := repo.Save(ctx, inactive); err != nil {
		t.Fatalf("Failed to save admin: %v", err)
	}
	if err := testDB.Model(&domain.AdminUser{}).Where("id = ?", inactive.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("Failed to deactivate admin: %v", err)
	}

	got, err := repo.FindActiveByEmail(ctx, "OWNER@example.com")
	if err != nil || got == nil {
		t.Fatalf("Expected active admin, got %v (%v)", got, err)
	}

	loginAt := time.Now().UTC().Truncate(time.Second)
	if err := repo.UpdateLastLogin(ctx, got.ID, loginAt); err != nil {
		t.Fatalf("Failed to update last login: %v", err)
	}
	reloaded, _ := repo.FindByID(ctx, got.ID)
	if reloaded.LastLogin == nil || !reloaded.LastLogin.Equal(loginAt) {
		t.Errorf("Expected last login %v, got %v", loginAt, reloaded.LastLogin)
	}

	none, err := repo.FindActiveByEmail(ctx, "former@example.com")
	if err != nil || none != nil {
		t.Errorf("Expected inactive admin to be hidden, got %v (%v)", none, err)
	}
}

func TestSettingsRepository_Upsert(t *testing.T) {
	cleanDatabase(t)
	ctx := context.Background()
	repo := NewSettingsRepository(testDB, newTestLogger())

	got, err := repo.Get(ctx)
	if err != nil || got != nil {
		t.Fatalf("Expected no settings yet, got %v (%v)", got, err)
	}

	s := domain.DefaultBusinessSettings()
	s.BusinessName = "Craft"
	if err := repo.Upsert(ctx, s); err != nil {
		t.Fatalf("Failed to insert settings: %v", err)
	}
	s.DefaultTurnaroundHours = 48
	if err := repo.Upsert(ctx, s); err != nil {
		t.Fatalf("Failed to update settings: %v", err)
	}

	got, err = repo.Get(ctx)
	if err != nil || got == nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if got.BusinessName != "Craft" || got.DefaultTurnaroundHours != 48 {
		t.Errorf("Unexpected settings %+v", got)
	}

	// The row is stored as a single jsonb document.
	raw, err := sql.Open("postgres", testDSN)
	if err != nil {
		t.Fatalf("Failed to open raw connection: %v", err)
	}
	defer raw.Close()

	var rows int
	var name string
	if err := raw.QueryRowContext(ctx, `SELECT COUNT(*), MAX(settings->>'businessName') FROM admin_settings`).Scan(&rows, &name); err != nil {
		t.Fatalf("Failed to query settings: %v", err)
	}
	if rows != 1 || name != "Craft" {
		t.Errorf("Expected one row named Craft, got %d %q", rows, name)
	}
}

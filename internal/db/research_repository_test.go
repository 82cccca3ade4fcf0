package db

import (
	"path/filepath"
	"testing"

	"github.com/conectarapak/conectar/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "conectar-test.db")
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

func TestMigrationsCreateSchema(t *testing.T) {
	database := openTestDatabase(t)

	var count int64
	if err := database.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count).Error; err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one applied migration")
	}

	// reopening must not reapply anything
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}
}

func TestResearchRepositoryPutAllOverwrites(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewResearchRepository(database)

	first := []models.SavedResearch{
		{ID: "a", Query: "q-a", Text: "t-a", Timestamp: 100, Sources: []models.ResearchSource{}},
		{ID: "b", Query: "q-b", Text: "t-b", Timestamp: 200, Sources: []models.ResearchSource{
			{Web: &models.WebSource{URI: "https://example.cl", Title: "Ejemplo"}},
		}},
	}
	if err := repo.PutAll(first); err != nil {
		t.Fatalf("PutAll() unexpected error: %v", err)
	}

	loaded, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll() unexpected error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(loaded))
	}
	if loaded[0].ID != "b" {
		t.Fatalf("expected newest-first order, got %s first", loaded[0].ID)
	}
	if loaded[0].Sources[0].Web == nil || loaded[0].Sources[0].Web.URI != "https://example.cl" {
		t.Fatalf("sources did not survive the round trip: %+v", loaded[0].Sources)
	}

	second := []models.SavedResearch{
		{ID: "c", Query: "q-c", Text: "t-c", Timestamp: 300, Sources: []models.ResearchSource{}},
	}
	if err := repo.PutAll(second); err != nil {
		t.Fatalf("PutAll() unexpected error: %v", err)
	}

	loaded, err = repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll() unexpected error: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "c" {
		t.Fatalf("expected the overwrite to replace the collection, got %+v", loaded)
	}
}

func TestResearchRepositoryPutAllEmptyClears(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewResearchRepository(database)

	if err := repo.PutAll([]models.SavedResearch{{ID: "x", Query: "q", Text: "t", Timestamp: 1, Sources: []models.ResearchSource{}}}); err != nil {
		t.Fatalf("PutAll() unexpected error: %v", err)
	}
	if err := repo.PutAll(nil); err != nil {
		t.Fatalf("PutAll(nil) unexpected error: %v", err)
	}

	loaded, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll() unexpected error: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected an empty collection, got %+v", loaded)
	}
}

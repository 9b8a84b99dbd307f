package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/druckwerk/belegdesigner/internal/element"
	"github.com/druckwerk/belegdesigner/internal/template/domain"
	"github.com/druckwerk/belegdesigner/internal/template/repository"
)

func setupTemplateTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS document_templates (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			document_type TEXT NOT NULL,
			paper_format TEXT NOT NULL DEFAULT 'A4',
			elements TEXT,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	).Error; err != nil {
		t.Fatalf("create document_templates: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func threeElements() []element.Element {
	field := element.NewBoundField("{Kunde.Name}", 10, 10)
	field.ID = 1
	table := element.New(element.KindTable, 10, 60)
	table.ID = 2
	line := element.New(element.KindLine, 10, 250)
	line.ID = 3
	return []element.Element{field, table, line}
}

func TestSaveNewTemplateAssignsIDAndRoundTrips(t *testing.T) {
	svc := newTestService(t, setupTemplateTestDB(t))
	ctx := context.Background()

	saved, err := svc.Save(ctx, domain.SaveRequest{
		Name:         "Standardrechnung",
		DocumentType: domain.DocTypeRechnung,
		Elements:     threeElements(),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" || saved.ID == "0" {
		t.Fatalf("expected generated id, got %q", saved.ID)
	}
	if saved.PaperFormat != domain.DefaultPaperFormat {
		t.Fatalf("paper format %q, want default A4", saved.PaperFormat)
	}
	if !saved.Active {
		t.Fatal("new template must be active")
	}

	loaded, err := svc.Load(ctx, saved.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(threeElements(), loaded.Elements); diff != "" {
		t.Fatalf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSaveExistingUpdatesElementsOnly(t *testing.T) {
	svc := newTestService(t, setupTemplateTestDB(t))
	ctx := context.Background()

	saved, err := svc.Save(ctx, domain.SaveRequest{
		Name:         "Etikett",
		DocumentType: domain.DocTypeVersandetikett,
		PaperFormat:  "A6",
		Elements:     threeElements(),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	moved := element.New(element.KindText, 99, 99)
	moved.ID = 1
	// Metadata in the request is deliberately different; an element-only
	// update must not touch the stored name, type or format.
	updated, err := svc.Save(ctx, domain.SaveRequest{
		ID:           saved.ID,
		Name:         "Umbenannt",
		DocumentType: domain.DocTypeRechnung,
		PaperFormat:  "Letter",
		Elements:     []element.Element{moved},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Etikett" || updated.DocumentType != domain.DocTypeVersandetikett || updated.PaperFormat != "A6" {
		t.Fatalf("metadata rewritten on element update: %+v", updated)
	}
	if len(updated.Elements) != 1 || updated.Elements[0].X != 99 {
		t.Fatalf("elements not updated: %+v", updated.Elements)
	}
}

func TestSaveUnknownIDFails(t *testing.T) {
	svc := newTestService(t, setupTemplateTestDB(t))
	_, err := svc.Save(context.Background(), domain.SaveRequest{
		ID:       "123456789",
		Elements: threeElements(),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestSaveValidatesNewTemplateMetadata(t *testing.T) {
	svc := newTestService(t, setupTemplateTestDB(t))
	ctx := context.Background()

	if _, err := svc.Save(ctx, domain.SaveRequest{DocumentType: domain.DocTypeRechnung}); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected invalid_name, got %v", err)
	}
	if _, err := svc.Save(ctx, domain.SaveRequest{Name: "X"}); !errors.Is(err, domain.ErrInvalidDocumentType) {
		t.Fatalf("expected invalid_document_type, got %v", err)
	}
}

func TestLoadCorruptPayloadDegradesToEmptySurface(t *testing.T) {
	db := setupTemplateTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	saved, err := svc.Save(ctx, domain.SaveRequest{
		Name:         "Kaputt",
		DocumentType: domain.DocTypeMahnung,
		Elements:     threeElements(),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.Exec(`UPDATE document_templates SET elements = '{broken'`).Error; err != nil {
		t.Fatalf("corrupt payload: %v", err)
	}

	loaded, err := svc.Load(ctx, saved.ID)
	if err != nil {
		t.Fatalf("load must not fail on corrupt payload: %v", err)
	}
	if len(loaded.Elements) != 0 {
		t.Fatalf("expected empty surface, got %d elements", len(loaded.Elements))
	}
	if loaded.Warning == "" {
		t.Fatal("expected a degradation warning")
	}
}

func TestLoadEmptyPayloadYieldsEmptySurface(t *testing.T) {
	db := setupTemplateTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	saved, err := svc.Save(ctx, domain.SaveRequest{
		Name:         "Leer",
		DocumentType: domain.DocTypeRechnung,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.Exec(`UPDATE document_templates SET elements = NULL`).Error; err != nil {
		t.Fatalf("null payload: %v", err)
	}

	loaded, err := svc.Load(ctx, saved.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Elements) != 0 || loaded.Warning != "" {
		t.Fatalf("empty payload must load cleanly as empty surface: %+v", loaded)
	}
}

func TestLoadUnknownID(t *testing.T) {
	svc := newTestService(t, setupTemplateTestDB(t))
	if _, err := svc.Load(context.Background(), "42"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if _, err := svc.Load(context.Background(), "0"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected invalid_id for unsaved template, got %v", err)
	}
}

func TestListFiltersByTypeAndActive(t *testing.T) {
	svc := newTestService(t, setupTemplateTestDB(t))
	ctx := context.Background()

	rechnung, _ := svc.Save(ctx, domain.SaveRequest{Name: "Rechnung A", DocumentType: domain.DocTypeRechnung})
	if _, err := svc.Save(ctx, domain.SaveRequest{Name: "Etikett B", DocumentType: domain.DocTypeVersandetikett}); err != nil {
		t.Fatalf("save: %v", err)
	}

	all, err := svc.List(ctx, domain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d templates, want 2", len(all))
	}

	invoices, err := svc.List(ctx, domain.ListRequest{DocumentType: domain.DocTypeRechnung})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(invoices) != 1 || invoices[0].Name != "Rechnung A" {
		t.Fatalf("unexpected catalog: %+v", invoices)
	}

	if _, err := svc.Deactivate(ctx, rechnung.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err := svc.List(ctx, domain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("deactivated template still listed: %+v", active)
	}
	withInactive, err := svc.List(ctx, domain.ListRequest{IncludeInactive: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(withInactive) != 2 {
		t.Fatal("deactivation must not delete the row")
	}
}

func TestDeactivateKeepsRow(t *testing.T) {
	svc := newTestService(t, setupTemplateTestDB(t))
	ctx := context.Background()

	saved, _ := svc.Save(ctx, domain.SaveRequest{Name: "Alt", DocumentType: domain.DocTypeRechnung})
	resp, err := svc.Deactivate(ctx, saved.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if resp.Active {
		t.Fatal("template must be inactive")
	}

	loaded, err := svc.Load(ctx, saved.ID)
	if err != nil {
		t.Fatalf("deactivated template must stay loadable: %v", err)
	}
	if loaded.Active {
		t.Fatal("loaded template must be inactive")
	}
}

func TestConcurrentSavesOfSameTemplateSerialize(t *testing.T) {
	svc := newTestService(t, setupTemplateTestDB(t))
	ctx := context.Background()

	saved, err := svc.Save(ctx, domain.SaveRequest{Name: "Parallel", DocumentType: domain.DocTypeRechnung})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(x float64) {
			defer wg.Done()
			el := element.New(element.KindText, x, 0)
			el.ID = 1
			if _, err := svc.Save(ctx, domain.SaveRequest{ID: saved.ID, Elements: []element.Element{el}}); err != nil {
				t.Errorf("concurrent save: %v", err)
			}
			if _, err := svc.Load(ctx, saved.ID); err != nil {
				t.Errorf("concurrent load: %v", err)
			}
		}(float64(i))
	}
	wg.Wait()

	loaded, err := svc.Load(ctx, saved.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Elements) != 1 {
		t.Fatalf("expected one element after racing saves, got %d", len(loaded.Elements))
	}
}

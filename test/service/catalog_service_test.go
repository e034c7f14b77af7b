package service_test

import (
	"context"
	"errors"
	"testing"

	"store-service/internal/migrate"
	"store-service/internal/models"
	"store-service/internal/repository"
	"store-service/internal/service"
	"store-service/pkg/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func setupCatalog(t *testing.T) (*repository.Repository, service.CatalogService) {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateStoreDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repos := repository.New(db)
	return repos, service.NewCatalogService(repos)
}

func TestCatalog_CategoryLifecycle(t *testing.T) {
	_, catalog := setupCatalog(t)
	ctx := context.Background()

	cat, err := catalog.CreateCategory(ctx, "  Dresses  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cat.Name != "Dresses" {
		t.Fatalf("name not trimmed: %q", cat.Name)
	}

	if _, err := catalog.CreateCategory(ctx, "dresses"); !errors.Is(err, service.ErrCategoryExists) {
		t.Fatalf("duplicate name: err=%v", err)
	}

	renamed, err := catalog.UpdateCategory(ctx, cat.ID, "Gowns")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if renamed.Name != "Gowns" {
		t.Fatalf("rename: %q", renamed.Name)
	}

	if _, err := catalog.UpdateCategory(ctx, uuid.New(), "Other"); !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("update missing: err=%v", err)
	}

	if err := catalog.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := catalog.DeleteCategory(ctx, cat.ID); !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("delete twice: err=%v", err)
	}
}

func TestCatalog_DeleteCategoryInUse(t *testing.T) {
	repos, catalog := setupCatalog(t)
	ctx := context.Background()

	cat, err := catalog.CreateCategory(ctx, "Jackets")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := catalog.CreateProduct(ctx, service.ProductInput{
		Name:       "Jacket",
		PriceCents: 5000,
		Stock:      1,
		CategoryID: cat.ID,
	}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := catalog.DeleteCategory(ctx, cat.ID); !errors.Is(err, service.ErrCategoryInUse) {
		t.Fatalf("delete in use: err=%v", err)
	}

	got, _ := repos.Categories.GetByID(ctx, cat.ID)
	if got == nil {
		t.Fatalf("category must survive failed delete")
	}
}

func TestCatalog_ProductLifecycle(t *testing.T) {
	_, catalog := setupCatalog(t)
	ctx := context.Background()

	cat, err := catalog.CreateCategory(ctx, "Bags")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := catalog.CreateProduct(ctx, service.ProductInput{Name: "X", PriceCents: 0, CategoryID: cat.ID}); !errors.Is(err, service.ErrPriceInvalid) {
		t.Fatalf("zero price: err=%v", err)
	}
	if _, err := catalog.CreateProduct(ctx, service.ProductInput{Name: "X", PriceCents: 100, CategoryID: uuid.New()}); !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("missing category: err=%v", err)
	}

	p, err := catalog.CreateProduct(ctx, service.ProductInput{
		Name:       "Tote",
		PriceCents: 3000,
		Stock:      4,
		CategoryID: cat.ID,
		Images:     []string{"data:image/png;base64,aaa", "data:image/png;base64,bbb"},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if len(p.Images) != 2 {
		t.Fatalf("images: %d", len(p.Images))
	}
	// первое изображение главное и отдаётся первым
	if !p.Images[0].IsMain || p.Images[0].ImageData != "data:image/png;base64,aaa" {
		t.Fatalf("main image ordering: %+v", p.Images)
	}

	newPrice := int64(3500)
	newImages := []string{"data:image/png;base64,ccc"}
	updated, err := catalog.UpdateProduct(ctx, p.ID, service.ProductPatch{
		PriceCents: &newPrice,
		Images:     &newImages,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PriceCents != 3500 {
		t.Fatalf("price: %d", updated.PriceCents)
	}
	if len(updated.Images) != 1 || updated.Images[0].ImageData != "data:image/png;base64,ccc" || !updated.Images[0].IsMain {
		t.Fatalf("image replacement: %+v", updated.Images)
	}

	// nil Images в патче не трогает существующие
	name := "Tote v2"
	kept, err := catalog.UpdateProduct(ctx, p.ID, service.ProductPatch{Name: &name})
	if err != nil {
		t.Fatalf("update name only: %v", err)
	}
	if len(kept.Images) != 1 {
		t.Fatalf("images must be untouched: %d", len(kept.Images))
	}

	deactivated, err := catalog.DeactivateProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if deactivated.IsActive {
		t.Fatalf("still active after deactivate")
	}
	if _, err := catalog.GetProduct(ctx, p.ID); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("inactive product visible in storefront: err=%v", err)
	}

	// витрина видит только активные
	list, total, err := catalog.ListProducts(ctx, 1, 10, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 || len(list) != 0 {
		t.Fatalf("inactive in listing: total=%d", total)
	}
}

func TestCatalog_ListCategoriesWithCounts(t *testing.T) {
	_, catalog := setupCatalog(t)
	ctx := context.Background()

	catA, _ := catalog.CreateCategory(ctx, "A")
	if _, err := catalog.CreateCategory(ctx, "B"); err != nil {
		t.Fatalf("create B: %v", err)
	}
	if _, err := catalog.CreateProduct(ctx, service.ProductInput{Name: "P1", PriceCents: 100, CategoryID: catA.ID}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	page, err := catalog.ListCategories(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("total: %d", page.Total)
	}
	counts := map[string]int64{}
	for _, c := range page.Categories {
		counts[c.Name] = c.ProductsCount
	}
	if counts["A"] != 1 || counts["B"] != 0 {
		t.Fatalf("product counts: %+v", counts)
	}
}

func TestShipping_SetAndGet(t *testing.T) {
	repos, _ := setupCatalog(t)
	shipping := service.NewShippingService(repos)
	ctx := context.Background()

	cost, err := shipping.CurrentCost(ctx)
	if err != nil || cost != 0 {
		t.Fatalf("empty history: cost=%d err=%v", cost, err)
	}

	if _, err := shipping.SetCost(ctx, -1); !errors.Is(err, service.ErrShippingCostInvalid) {
		t.Fatalf("negative cost: err=%v", err)
	}

	if _, err := shipping.SetCost(ctx, 500); err != nil {
		t.Fatalf("set 500: %v", err)
	}
	if _, err := shipping.SetCost(ctx, 750); err != nil {
		t.Fatalf("set 750: %v", err)
	}

	cost, err = shipping.CurrentCost(ctx)
	if err != nil || cost != 750 {
		t.Fatalf("current cost = %d, err=%v, want 750", cost, err)
	}

	// история не переписывается
	var rows []models.ShippingCost
	if err := repos.DB.Find(&rows).Error; err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("history rows: %d, want 2", len(rows))
	}
}

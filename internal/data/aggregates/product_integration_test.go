package aggregates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	productrepos "github.com/planvane/planvane-backend/internal/data/repos/products"
	repotest "github.com/planvane/planvane-backend/internal/data/repos/testutil"
	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"gorm.io/gorm"
)

func newProductAggregateForTest(t *testing.T, tx *gorm.DB) domainagg.ProductAggregate {
	t.Helper()
	log := repotest.Logger(t)
	return NewProductAggregate(ProductAggregateDeps{
		Base: BaseDeps{
			DB:         tx,
			Log:        log,
			Runner:     NewGormTxRunner(tx),
			TokenGuard: NewTokenGuard(tx),
		},
		Products:   productrepos.NewProductRepo(tx, log),
		Components: productrepos.NewComponentRepo(tx, log),
	})
}

func TestAdvanceComponentVersionRotatesVersions(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg := newProductAggregateForTest(t, tx)

	ctx := context.Background()
	product := repotest.SeedProduct(t, ctx, tx, "Gateway")
	component := repotest.SeedProductComponent(t, ctx, tx, product.ID, "router", "2.4.0")

	out, err := agg.AdvanceComponentVersion(ctx, domainagg.AdvanceComponentVersionInput{
		ProductID:   product.ID,
		ComponentID: component.ID,
		NewVersion:  "2.5.0",
	})
	if err != nil {
		t.Fatalf("AdvanceComponentVersion: %v", err)
	}
	if out.CurrentVersion != "2.5.0" {
		t.Fatalf("current version: want=2.5.0 got=%s", out.CurrentVersion)
	}
	if out.PreviousVersion != "2.4.0" {
		t.Fatalf("previous version not rotated: %s", out.PreviousVersion)
	}

	var stored types.Product
	if err := tx.WithContext(ctx).First(&stored, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if stored.UpdatedAt.Before(product.UpdatedAt) {
		t.Fatalf("product token not bumped: seeded=%v stored=%v", product.UpdatedAt, stored.UpdatedAt)
	}
}

func TestAdvanceComponentVersionRejectsNonIncrease(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg := newProductAggregateForTest(t, tx)

	ctx := context.Background()
	product := repotest.SeedProduct(t, ctx, tx, "Gateway")
	component := repotest.SeedProductComponent(t, ctx, tx, product.ID, "router", "2.4.0")

	for _, version := range []string{"2.4.0", "2.3.9", "1.0"} {
		_, err := agg.AdvanceComponentVersion(ctx, domainagg.AdvanceComponentVersionInput{
			ProductID:   product.ID,
			ComponentID: component.ID,
			NewVersion:  version,
		})
		var ae *domainagg.Error
		if !errors.As(err, &ae) || ae.Code != domainagg.CodeInvariantViolation {
			t.Fatalf("version %s: want invariant_violation, got %v", version, err)
		}
	}
}

func TestAdvanceComponentVersionChecksProductToken(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg := newProductAggregateForTest(t, tx)

	ctx := context.Background()
	product := repotest.SeedProduct(t, ctx, tx, "Gateway")
	component := repotest.SeedProductComponent(t, ctx, tx, product.ID, "router", "2.4.0")

	stale := product.UpdatedAt.Add(-5 * time.Second)
	_, err := agg.AdvanceComponentVersion(ctx, domainagg.AdvanceComponentVersionInput{
		ProductID:         product.ID,
		ComponentID:       component.ID,
		NewVersion:        "2.5.0",
		ExpectedUpdatedAt: &stale,
	})
	var ae *domainagg.Error
	if !errors.As(err, &ae) || ae.Code != domainagg.CodeConflict {
		t.Fatalf("want conflict, got %v", err)
	}

	reloaded, repoErr := productrepos.NewComponentRepo(tx, repotest.Logger(t)).GetByID(dbctx.Context{Ctx: ctx}, component.ID)
	if repoErr != nil {
		t.Fatalf("reload component: %v", repoErr)
	}
	if reloaded.CurrentVersion != "2.4.0" {
		t.Fatalf("rejected advance leaked a write: %s", reloaded.CurrentVersion)
	}
}

func TestAdvanceComponentVersionUnknownComponent(t *testing.T) {
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	agg := newProductAggregateForTest(t, tx)

	ctx := context.Background()
	product := repotest.SeedProduct(t, ctx, tx, "Gateway")

	_, err := agg.AdvanceComponentVersion(ctx, domainagg.AdvanceComponentVersionInput{
		ProductID:   product.ID,
		ComponentID: uuid.New(),
		NewVersion:  "1.0.0",
	})
	var ae *domainagg.Error
	if !errors.As(err, &ae) || ae.Code != domainagg.CodeNotFound {
		t.Fatalf("want not_found, got %v", err)
	}
}

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/planvane/planvane-backend/internal/domain"
)

func Date(tb testing.TB, s string) *time.Time {
	tb.Helper()
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		tb.Fatalf("parse date %q: %v", s, err)
	}
	t = t.UTC()
	return &t
}

func SeedOwner(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Owner {
	tb.Helper()
	o := &types.Owner{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed owner: %v", err)
	}
	return o
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:        uuid.New(),
		Name:      name,
		NameKey:   types.NormalizePlanName(name),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedProductComponent(tb testing.TB, ctx context.Context, tx *gorm.DB, productID uuid.UUID, name, currentVersion string) *types.ProductComponent {
	tb.Helper()
	c := &types.ProductComponent{
		ID:             uuid.New(),
		ProductID:      productID,
		Name:           name,
		CurrentVersion: currentVersion,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed product component: %v", err)
	}
	return c
}

func SeedPlan(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Plan {
	tb.Helper()
	p := &types.Plan{
		ID:        uuid.New(),
		Name:      name,
		NameKey:   types.NormalizePlanName(name),
		Status:    "draft",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed plan: %v", err)
	}
	return p
}

func SeedPhase(tb testing.TB, ctx context.Context, tx *gorm.DB, planID uuid.UUID, name string, start, end *time.Time, seq int) *types.PlanPhase {
	tb.Helper()
	p := &types.PlanPhase{
		ID:        uuid.New(),
		PlanID:    planID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Seq:       seq,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed phase: %v", err)
	}
	return p
}

func SeedRescheduleType(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.RescheduleType {
	tb.Helper()
	rt := &types.RescheduleType{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(rt).Error; err != nil {
		tb.Fatalf("seed reschedule type: %v", err)
	}
	return rt
}

func SeedFeature(tb testing.TB, ctx context.Context, tx *gorm.DB, name, status string) *types.Feature {
	tb.Helper()
	f := &types.Feature{
		ID:        uuid.New(),
		Name:      name,
		Status:    status,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed feature: %v", err)
	}
	return f
}

func SeedPlanComponent(tb testing.TB, ctx context.Context, tx *gorm.DB, planID, componentID uuid.UUID, target string) *types.PlanComponent {
	tb.Helper()
	pc := &types.PlanComponent{
		ID:            uuid.New(),
		PlanID:        planID,
		ComponentID:   componentID,
		TargetVersion: target,
		CreatedAt:     time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(pc).Error; err != nil {
		tb.Fatalf("seed plan component: %v", err)
	}
	return pc
}

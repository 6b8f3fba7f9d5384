package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planvane/planvane-backend/internal/data/repos/products"
	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/reconcile"
)

type ProductAggregateDeps struct {
	Base BaseDeps

	Products   products.ProductRepo
	Components products.ComponentRepo
}

type productAggregate struct {
	deps ProductAggregateDeps
}

func NewProductAggregate(deps ProductAggregateDeps) domainagg.ProductAggregate {
	deps.Base = deps.Base.withDefaults()
	return &productAggregate{deps: deps}
}

func (a *productAggregate) Contract() domainagg.Contract {
	return domainagg.ProductAggregateContract
}

func (a *productAggregate) AdvanceComponentVersion(ctx context.Context, in domainagg.AdvanceComponentVersionInput) (*types.ProductComponent, error) {
	const op = "Products.Component.AdvanceVersion"
	if in.ProductID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing product_id", nil)
	}
	if in.ComponentID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing component_id", nil)
	}
	newVersion := strings.TrimSpace(in.NewVersion)
	if newVersion == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing new version", nil)
	}

	var out *types.ProductComponent
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		product, err := a.deps.Products.GetByIDBare(dbc, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domainagg.NewError(domainagg.CodeNotFound, op,
				fmt.Sprintf("product not found: %s", in.ProductID.String()), nil)
		}
		if err := RequireTokenFresh("product", product.UpdatedAt, in.ExpectedUpdatedAt); err != nil {
			return err
		}

		component, err := a.deps.Components.GetByID(dbc, in.ComponentID)
		if err != nil {
			return err
		}
		if component == nil || component.ProductID != in.ProductID {
			return domainagg.NewError(domainagg.CodeNotFound, op,
				fmt.Sprintf("component not found on product: %s", in.ComponentID.String()), nil)
		}
		if reconcile.CompareVersions(newVersion, component.CurrentVersion) <= 0 {
			return domainagg.NewError(domainagg.CodeInvariantViolation, op,
				fmt.Sprintf("component %q: version %s must exceed current version %s",
					component.Name, newVersion, component.CurrentVersion), nil)
		}

		now := time.Now().UTC()
		if err := a.deps.Components.UpdateFields(dbc, component.ID, map[string]any{
			"previous_version": component.CurrentVersion,
			"current_version":  newVersion,
			"updated_at":       now,
		}); err != nil {
			return err
		}
		ok, err := a.deps.Base.TokenGuard.UpdateByToken(dbc, "product", product.ID, product.UpdatedAt, map[string]any{
			"updated_at": now,
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "product changed during version advance"); err != nil {
			return err
		}

		out, err = a.deps.Components.GetByID(dbc, component.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

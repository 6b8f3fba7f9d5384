package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dataagg "github.com/planvane/planvane-backend/internal/data/aggregates"
	"github.com/planvane/planvane-backend/internal/data/repos/products"
	types "github.com/planvane/planvane-backend/internal/domain"
	domainagg "github.com/planvane/planvane-backend/internal/domain/aggregates"
	"github.com/planvane/planvane-backend/internal/pkg/dbctx"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
	"github.com/planvane/planvane-backend/internal/platform/apierr"
)

type CreateProductInput struct {
	Name        string
	Description string
	OwnerID     *uuid.UUID
	Components  []CreateComponentInput
}

type CreateComponentInput struct {
	Name           string
	CurrentVersion string
}

type ProductService interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (*types.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error)
	ListProducts(ctx context.Context) ([]*types.Product, error)
	ListComponents(ctx context.Context, productID uuid.UUID) ([]*types.ProductComponent, error)
	AddComponent(ctx context.Context, productID uuid.UUID, in CreateComponentInput) (*types.ProductComponent, error)
	AdvanceComponentVersion(ctx context.Context, in domainagg.AdvanceComponentVersionInput) (*types.ProductComponent, error)
}

type productService struct {
	db            *gorm.DB
	log           *logger.Logger
	runner        dataagg.TxRunner
	aggregate     domainagg.ProductAggregate
	productRepo   products.ProductRepo
	componentRepo products.ComponentRepo
}

func NewProductService(
	db *gorm.DB,
	baseLog *logger.Logger,
	aggregate domainagg.ProductAggregate,
	productRepo products.ProductRepo,
	componentRepo products.ComponentRepo,
) ProductService {
	return &productService{
		db:            db,
		log:           baseLog.With("service", "ProductService"),
		runner:        dataagg.NewGormTxRunner(db),
		aggregate:     aggregate,
		productRepo:   productRepo,
		componentRepo: componentRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, in CreateProductInput) (*types.Product, error) {
	if in.Name == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_name", fmt.Errorf("product name is required"))
	}
	product := &types.Product{
		ID:          uuid.New(),
		Name:        in.Name,
		NameKey:     strings.ToLower(strings.Join(strings.Fields(in.Name), " ")),
		Description: in.Description,
		OwnerID:     in.OwnerID,
	}
	err := s.runner.InTx(ctx, func(dbc dbctx.Context) error {
		existing, err := s.productRepo.GetByNameKey(dbc, product.NameKey)
		if err != nil {
			return err
		}
		if existing != nil {
			return apierr.New(http.StatusConflict, "product_name_taken", fmt.Errorf("a product named %q already exists", in.Name))
		}
		if _, err := s.productRepo.Create(dbc, product); err != nil {
			return err
		}
		components := make([]*types.ProductComponent, 0, len(in.Components))
		for _, c := range in.Components {
			if c.Name == "" {
				return apierr.New(http.StatusBadRequest, "missing_component_name", fmt.Errorf("component name is required"))
			}
			components = append(components, &types.ProductComponent{
				ID:             uuid.New(),
				ProductID:      product.ID,
				Name:           c.Name,
				CurrentVersion: c.CurrentVersion,
			})
		}
		_, err = s.componentRepo.Create(dbc, components)
		return err
	})
	if err != nil {
		s.log.Error("CreateProduct failed", "error", err, "name", in.Name)
		return nil, apiError("create_product_failed", dataagg.MapError("Products.Product.Create", err))
	}
	return s.GetProduct(ctx, product.ID)
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	product, err := s.productRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apiError("load_product_failed", err)
	}
	if product == nil {
		return nil, apierr.New(http.StatusNotFound, "product_not_found", fmt.Errorf("product %s not found", id))
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]*types.Product, error) {
	out, err := s.productRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apiError("list_products_failed", err)
	}
	return out, nil
}

func (s *productService) ListComponents(ctx context.Context, productID uuid.UUID) ([]*types.ProductComponent, error) {
	product, err := s.productRepo.GetByIDBare(dbctx.Context{Ctx: ctx}, productID)
	if err != nil {
		return nil, apiError("list_components_failed", err)
	}
	if product == nil {
		return nil, apierr.New(http.StatusNotFound, "product_not_found", fmt.Errorf("product %s not found", productID))
	}
	out, err := s.componentRepo.ListByProduct(dbctx.Context{Ctx: ctx}, productID)
	if err != nil {
		return nil, apiError("list_components_failed", err)
	}
	return out, nil
}

func (s *productService) AddComponent(ctx context.Context, productID uuid.UUID, in CreateComponentInput) (*types.ProductComponent, error) {
	if in.Name == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_component_name", fmt.Errorf("component name is required"))
	}
	component := &types.ProductComponent{
		ID:             uuid.New(),
		ProductID:      productID,
		Name:           in.Name,
		CurrentVersion: in.CurrentVersion,
	}
	err := s.runner.InTx(ctx, func(dbc dbctx.Context) error {
		product, err := s.productRepo.GetByIDBare(dbc, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return apierr.New(http.StatusNotFound, "product_not_found", fmt.Errorf("product %s not found", productID))
		}
		_, err = s.componentRepo.Create(dbc, []*types.ProductComponent{component})
		return err
	})
	if err != nil {
		s.log.Error("AddComponent failed", "error", err, "product_id", productID)
		return nil, apiError("add_component_failed", dataagg.MapError("Products.Component.Create", err))
	}
	return component, nil
}

func (s *productService) AdvanceComponentVersion(ctx context.Context, in domainagg.AdvanceComponentVersionInput) (*types.ProductComponent, error) {
	out, err := s.aggregate.AdvanceComponentVersion(ctx, in)
	if err != nil {
		return nil, apiError("advance_component_failed", err)
	}
	return out, nil
}

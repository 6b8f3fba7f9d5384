package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	types "github.com/planvane/planvane-backend/internal/domain"
)

var ProductAggregateContract = Contract{
	Name:             "Products.ProductAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns product component version advancement under the product's own concurrency token.",
}

type ProductAggregate interface {
	Aggregate

	// AdvanceComponentVersion moves a component's authoritative current
	// version forward, recording the prior value as previous.
	AdvanceComponentVersion(ctx context.Context, in AdvanceComponentVersionInput) (*types.ProductComponent, error)
}

type AdvanceComponentVersionInput struct {
	ProductID         uuid.UUID
	ComponentID       uuid.UUID
	NewVersion        string
	ExpectedUpdatedAt *time.Time
}

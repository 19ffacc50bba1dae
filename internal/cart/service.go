package cart

import (
	"context"

	"github.com/justocafe/storefront-api/internal/catalog"
	pkgerrors "github.com/justocafe/storefront-api/pkg/errors"
	"github.com/justocafe/storefront-api/pkg/logger"
)

// Snapshot is the cart state returned to callers after every operation.
type Snapshot struct {
	Items    []LineItem `json:"items"`
	Subtotal int64      `json:"subtotal"`
	Count    int        `json:"count"`
}

// Service applies cart operations to a session's stored items.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Snapshot, error)
	AddItem(ctx context.Context, sessionID, productID, variantID string) (*Snapshot, error)
	SetQuantity(ctx context.Context, sessionID, lineKey string, quantity int) (*Snapshot, error)
	RemoveItem(ctx context.Context, sessionID, lineKey string) (*Snapshot, error)
}

type service struct {
	store   Store
	catalog catalog.Service
	logger  *logger.Logger
}

// NewService wires the cart transforms to a session store and the catalog.
func NewService(store Store, cat catalog.Service, logg *logger.Logger) Service {
	return &service{store: store, catalog: cat, logger: logg}
}

func (s *service) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	return snapshot(items), nil
}

func (s *service) AddItem(ctx context.Context, sessionID, productID, variantID string) (*Snapshot, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var variant *catalog.Variant
	if variantID != "" {
		v, ok := product.Variant(variantID)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown variant for product").
				WithDetails(map[string]string{"product_id": productID, "variant_id": variantID})
		}
		variant = &v
	}

	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	items = Add(items, *product, variant)
	if err := s.store.Save(ctx, sessionID, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}

	ctx = s.logger.WithFields(ctx, map[string]any{
		"product_id": productID,
		"line_key":   LineKey(productID, variant),
	})
	s.logger.Info(ctx, "cart item added")
	return snapshot(items), nil
}

func (s *service) SetQuantity(ctx context.Context, sessionID, lineKey string, quantity int) (*Snapshot, error) {
	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	items = SetQuantity(items, lineKey, quantity)
	if err := s.store.Save(ctx, sessionID, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return snapshot(items), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, lineKey string) (*Snapshot, error) {
	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	items = Remove(items, lineKey)
	if err := s.store.Save(ctx, sessionID, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return snapshot(items), nil
}

func snapshot(items []LineItem) *Snapshot {
	if items == nil {
		items = []LineItem{}
	}
	return &Snapshot{
		Items:    items,
		Subtotal: Subtotal(items),
		Count:    Count(items),
	}
}

package cart

import (
	"context"
	"fmt"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Service implements the session cart operations. Line identity is the
// (product id, variant id) pair; adding an existing pair merges
// quantities.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, sessionID string) (*types.Cart, error) {
	return s.store.Load(ctx, sessionID)
}

func (s *Service) AddItem(ctx context.Context, sessionID string, item types.CartLineItem) (*types.Cart, error) {
	if item.ProductID == "" {
		return nil, fmt.Errorf("cart item is missing a product id")
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID && cart.Items[i].VariantID == item.VariantID {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of a line. A quantity below one
// removes the line entirely.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID, variantID string, quantity int) (*types.Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		return s.removeAndSave(ctx, cart, productID, variantID)
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID && cart.Items[i].VariantID == variantID {
			cart.Items[i].Quantity = quantity
			if err := s.store.Save(ctx, cart); err != nil {
				return nil, err
			}
			return cart, nil
		}
	}
	return nil, fmt.Errorf("cart item not found: %s/%s", productID, variantID)
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID, variantID string) (*types.Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.removeAndSave(ctx, cart, productID, variantID)
}

func (s *Service) removeAndSave(ctx context.Context, cart *types.Cart, productID, variantID string) (*types.Cart, error) {
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID == productID && item.VariantID == variantID {
			continue
		}
		kept = append(kept, item)
	}
	cart.Items = kept

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// Totals prices the current cart for the given payment method.
func (s *Service) Totals(ctx context.Context, sessionID string, method types.PaymentMethod) (Totals, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Totals{}, err
	}
	return CalculateTotals(cart.Items, method), nil
}

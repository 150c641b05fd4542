package inventory

import (
	"context"
	"fmt"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

// PricingUseCase cotiza precios con la política elegida.
type PricingUseCase struct {
	itemRepo   repository.ItemRepository
	rules      inventory.PricingRules
	classifier *inventory.Classifier
}

// NewPricingUseCase construye el caso de uso con las reglas cargadas desde configuración.
func NewPricingUseCase(itemRepo repository.ItemRepository, rules inventory.PricingRules, classifier *inventory.Classifier) *PricingUseCase {
	return &PricingUseCase{itemRepo: itemRepo, rules: rules, classifier: classifier}
}

// Quote cotiza por artículo (precio y vencimiento del catálogo) o por precio base explícito.
func (uc *PricingUseCase) Quote(ctx context.Context, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	q := inventory.QuoteInput{Policy: in.Policy, Quantity: in.Quantity, Today: uc.classifier.Now()}
	switch {
	case in.ItemID != "":
		item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
		if err != nil {
			return nil, err
		}
		q.BasePrice = item.UnitPrice
		q.ExpiryDate = item.ExpiryDate
		if in.BasePrice != nil {
			q.BasePrice = *in.BasePrice
		}
	case in.BasePrice != nil:
		q.BasePrice = *in.BasePrice
	default:
		return nil, fmt.Errorf("%w: se requiere item_id o base_price", domain.ErrInvalidInput)
	}

	res, err := uc.rules.Quote(q)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteResponse{
		Policy:       res.Policy,
		ItemID:       in.ItemID,
		BasePrice:    res.BasePrice,
		Quantity:     res.Quantity,
		Subtotal:     res.Subtotal,
		DiscountRate: res.DiscountRate,
		Discount:     res.Discount,
		Total:        res.Total,
	}, nil
}

// Policies lista las políticas disponibles con su descripción.
func (uc *PricingUseCase) Policies() []dto.PricingPolicyDTO {
	out := make([]dto.PricingPolicyDTO, 0, len(inventory.Policies))
	for _, p := range inventory.Policies {
		out = append(out, dto.PricingPolicyDTO{Name: p, Description: uc.rules.PolicyDescription(p)})
	}
	return out
}

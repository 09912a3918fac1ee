package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
)

// PartyDTO contraparte de un movimiento.
type PartyDTO struct {
	Name string `json:"name" validate:"omitempty,max=200"`
	Type string `json:"type" validate:"required,oneof=customer supplier system"`
	ID   string `json:"id,omitempty" validate:"omitempty,max=100"`
}

// CreateTransitionRequest body para POST /api/inventory/transitions.
// Para adjustment, quantity es el stock objetivo absoluto; 0 es válido pero debe enviarse.
type CreateTransitionRequest struct {
	ProductID       string           `json:"product_id" validate:"required"`
	TransactionType string           `json:"transaction_type" validate:"required"`
	Quantity        *int             `json:"quantity" validate:"required"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Reference       string           `json:"reference,omitempty" validate:"omitempty,max=100"`
	Party           *PartyDTO        `json:"party,omitempty"`
	Notes           string           `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// TransitionResponse un movimiento del libro.
type TransitionResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	TransactionType string          `json:"transaction_type"`
	Quantity        int             `json:"quantity"`
	PreviousStock   int             `json:"previous_stock"`
	NewStock        int             `json:"new_stock"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalValue      decimal.Decimal `json:"total_value"`
	Reference       string          `json:"reference,omitempty"`
	Party           *PartyDTO       `json:"party,omitempty"`
	UserID          string          `json:"user_id"`
	UserName        string          `json:"user_name"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransitionListResponse página del libro.
type TransitionListResponse struct {
	Transitions []TransitionResponse `json:"transitions"`
	Pagination  PaginationResponse   `json:"pagination"`
}

// ReconcileResponse resultado de la reparación de auditoría.
type ReconcileResponse struct {
	Repaired int `json:"repaired"`
}

// TransitionFromEntity mapea el movimiento a su representación JSON.
func TransitionFromEntity(t *entity.StockTransition) TransitionResponse {
	out := TransitionResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		ProductName:     t.ProductName,
		TransactionType: string(t.TransactionType),
		Quantity:        t.Quantity,
		PreviousStock:   t.PreviousStock,
		NewStock:        t.NewStock,
		UnitPrice:       t.UnitPrice,
		TotalValue:      t.TotalValue,
		Reference:       t.Reference,
		UserID:          t.UserID,
		UserName:        t.UserName,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
	if t.Party != nil {
		out.Party = &PartyDTO{Name: t.Party.Name, Type: t.Party.Type, ID: t.Party.ID}
	}
	return out
}

// TransitionsFromEntities mapea una lista; nunca devuelve nil.
func TransitionsFromEntities(list []*entity.StockTransition) []TransitionResponse {
	out := make([]TransitionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, TransitionFromEntity(t))
	}
	return out
}

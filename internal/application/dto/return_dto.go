package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
)

// CreateReturnRequest body para POST /api/inventory/returns.
type CreateReturnRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	ReturnType string `json:"return_type" validate:"required,oneof=customer supplier"`
	Quantity   *int   `json:"quantity" validate:"required"`
	Reason     string `json:"reason" validate:"required,max=500"`
	Notes      string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	PartyName  string `json:"party_name,omitempty" validate:"omitempty,max=200"`
	PartyID    string `json:"party_id,omitempty" validate:"omitempty,max=100"`
}

// ReturnResponse una devolución.
type ReturnResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ReturnType    string          `json:"return_type"`
	Quantity      int             `json:"quantity"`
	Reason        string          `json:"reason"`
	Notes         string          `json:"notes,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
	PreviousStock int             `json:"previous_stock"`
	NewStock      int             `json:"new_stock"`
	PartyName     string          `json:"party_name,omitempty"`
	PartyID       string          `json:"party_id,omitempty"`
	UserID        string          `json:"user_id"`
	UserName      string          `json:"user_name"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateReturnResponse devolución registrada y stock resultante del producto.
type CreateReturnResponse struct {
	Return   ReturnResponse `json:"return"`
	NewStock int            `json:"new_stock"`
}

// ReturnListResponse página de devoluciones.
type ReturnListResponse struct {
	Returns    []ReturnResponse   `json:"returns"`
	Pagination PaginationResponse `json:"pagination"`
}

// ReturnFromEntity mapea la devolución a JSON.
func ReturnFromEntity(r *entity.Return) ReturnResponse {
	return ReturnResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		ReturnType:    r.ReturnType,
		Quantity:      r.Quantity,
		Reason:        r.Reason,
		Notes:         r.Notes,
		UnitPrice:     r.UnitPrice,
		TotalValue:    r.TotalValue,
		PreviousStock: r.PreviousStock,
		NewStock:      r.NewStock,
		PartyName:     r.PartyName,
		PartyID:       r.PartyID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

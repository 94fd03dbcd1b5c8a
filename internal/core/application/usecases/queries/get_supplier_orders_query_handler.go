package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/supplierorder"
)

// GetSupplierOrdersQueryHandler reads supplier purchase orders straight
// from the supplier_orders table, joined only for the line count.
type GetSupplierOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetSupplierOrdersQueryHandler creates a handler for purchase order
// queries. Requires a GORM database connection for query execution.
func NewGetSupplierOrdersQueryHandler(db *gorm.DB) GetSupplierOrdersQueryHandler {
	return GetSupplierOrdersQueryHandler{db: db}
}

// Handle executes the query.
// Results are sorted by order number for consistent output.
func (h GetSupplierOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSupplierOrdersQuery,
) ([]GetSupplierOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			so.id,
			so.order_number,
			so.supplier_id,
			so.status,
			so.delivery_date,
			COUNT(sol.id),
			so.total_ht,
			so.total_ttc
		FROM supplier_orders so
		LEFT JOIN supplier_order_lines sol ON sol.supplier_order_id = so.id
	`
	args := make([]any, 0, 1)
	if query.DeliveryDate() != nil {
		sql += " WHERE so.delivery_date = ?"
		args = append(args, query.DeliveryDate().Format(time.DateOnly))
	}
	sql += `
		GROUP BY so.id, so.order_number, so.supplier_id, so.status, so.delivery_date, so.total_ht, so.total_ttc
		ORDER BY so.order_number
	`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	supplierOrders := make([]GetSupplierOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id           uuid.UUID
			orderNumber  string
			supplierID   uuid.UUID
			status       int
			deliveryDate time.Time
			lineCount    int
			totalHT      decimal.Decimal
			totalTTC     decimal.Decimal
		)

		if err = rows.Scan(&id, &orderNumber, &supplierID, &status,
			&deliveryDate, &lineCount, &totalHT, &totalTTC); err != nil {
			return nil, err
		}

		soID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		supplier, supplierErr := kernel.UUIDFromBytes(supplierID[:])
		if supplierErr != nil {
			return nil, supplierErr
		}

		supplierOrders = append(supplierOrders, GetSupplierOrdersQueryResponse{
			ID:           soID,
			OrderNumber:  orderNumber,
			SupplierID:   supplier,
			Status:       supplierorder.Status(status).String(),
			DeliveryDate: deliveryDate,
			LineCount:    lineCount,
			TotalHT:      totalHT,
			TotalTTC:     totalTTC,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return supplierOrders, nil
}

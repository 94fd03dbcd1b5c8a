package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// GetOrdersByDeliveryDateQueryHandler reads shop orders straight from the
// orders table. Totals come from the stored columns; the domain aggregate
// is never rebuilt on the read path.
type GetOrdersByDeliveryDateQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByDeliveryDateQueryHandler creates a handler for delivery day
// order queries. Requires a GORM database connection for query execution.
func NewGetOrdersByDeliveryDateQueryHandler(db *gorm.DB) GetOrdersByDeliveryDateQueryHandler {
	return GetOrdersByDeliveryDateQueryHandler{db: db}
}

// Handle executes the query.
// Results are sorted by order number for consistent output. An unknown
// delivery day yields an empty slice, not an error.
func (h GetOrdersByDeliveryDateQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByDeliveryDateQuery,
) ([]GetOrdersByDeliveryDateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_number,
			shop_id,
			status,
			delivery_date,
			total_ht,
			total_tva,
			total_ttc
		FROM orders
		WHERE delivery_date = ?
	`
	args := []any{query.DeliveryDate().Format(time.DateOnly)}
	if query.Status() != nil {
		sql += " AND status = ?"
		args = append(args, int(*query.Status()))
	}
	sql += " ORDER BY order_number"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersByDeliveryDateQueryResponse, 0)
	for rows.Next() {
		var (
			id           uuid.UUID
			orderNumber  string
			shopID       uuid.UUID
			status       int
			deliveryDate time.Time
			totalHT      decimal.Decimal
			totalTVA     decimal.Decimal
			totalTTC     decimal.Decimal
		)

		if err = rows.Scan(&id, &orderNumber, &shopID, &status,
			&deliveryDate, &totalHT, &totalTVA, &totalTTC); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		shop, shopErr := kernel.UUIDFromBytes(shopID[:])
		if shopErr != nil {
			return nil, shopErr
		}

		orders = append(orders, GetOrdersByDeliveryDateQueryResponse{
			ID:           orderID,
			OrderNumber:  orderNumber,
			ShopID:       shop,
			Status:       order.Status(status).String(),
			DeliveryDate: deliveryDate,
			TotalHT:      totalHT,
			TotalTVA:     totalTVA,
			TotalTTC:     totalTTC,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

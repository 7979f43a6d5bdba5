package service

import (
	"context"
	"time"

	"github.com/shinyyama/commerce-seed/internal/dberr"
	"github.com/shinyyama/commerce-seed/internal/model"
	"github.com/shinyyama/commerce-seed/internal/repository"
	"github.com/shopspring/decimal"
)

const (
	minLinesPerOrder = 1
	maxLinesPerOrder = 5
	minLineQuantity  = 1
	maxLineQuantity  = 3
)

type ComposedOrder struct {
	Order model.Order
	Items []model.OrderItem
}

type OrderComposer struct {
	rt     Runtime
	refs   *ReferenceLoader
	orders repository.OrderRepository
}

func NewOrderComposer(rt Runtime, refs *ReferenceLoader, orders repository.OrderRepository) *OrderComposer {
	return &OrderComposer{rt: rt.withDefaults(), refs: refs, orders: orders}
}

// Compose draws one order: a buyer, 1-5 distinct products and a quantity per
// line. Unit prices are copied from products and the total is summed from the
// lines before anything is written.
func (c *OrderComposer) Compose(buyers []string, products []model.Product) ComposedOrder {
	r := c.rt.Rand
	now := c.rt.Clock.Now()
	orderID := c.rt.IDs.NewID()

	buyer := pick(r, buyers)
	chosen := sampleDistinct(r, products, intBetween(r, minLinesPerOrder, maxLinesPerOrder))

	items := make([]model.OrderItem, 0, len(chosen))
	for _, p := range chosen {
		items = append(items, model.OrderItem{
			ID:        c.rt.IDs.NewID(),
			OrderID:   orderID,
			ProductID: p.ID,
			Quantity:  intBetween(r, minLineQuantity, maxLineQuantity),
			UnitPrice: p.Price,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return ComposedOrder{
		Order: model.Order{
			ID:             orderID,
			UserID:         buyer,
			Status:         model.OrderStatusPlaced,
			TotalAmount:    OrderTotal(items),
			DiscountAmount: decimal.Zero,
			PointUsed:      0,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		Items: items,
	}
}

func OrderTotal(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func (c *OrderComposer) Run(ctx context.Context, n int) (PassStats, error) {
	stats := PassStats{Pass: "orders"}
	start := time.Now()

	buyers, err := c.refs.Buyers(ctx)
	if err != nil {
		return stats, err
	}
	products, err := c.refs.Products(ctx)
	if err != nil {
		return stats, err
	}
	c.rt.Logger.Printf("seeding %d orders from %d users and %d products", n, len(buyers), len(products))

	for i := 0; i < n; i++ {
		co := c.Compose(buyers, products)
		stats.Attempted++
		if err := c.orders.CreateWithItems(ctx, &co.Order, co.Items); err != nil {
			stats.Failed++
			c.rt.Metrics.Failed("orders")
			c.rt.Logger.Printf("error at order %d (%s): %s: %v", i, co.Order.ID, dberr.Classify(err), err)
		} else {
			stats.Succeeded++
			c.rt.Metrics.Inserted("orders")
			for range co.Items {
				c.rt.Metrics.Inserted("order_items")
			}
		}
		c.rt.progress(i, "orders")
	}

	stats.Elapsed = time.Since(start)
	c.rt.Metrics.ObservePass(stats.Pass, stats.Elapsed)
	c.rt.Logger.Printf("all orders + order_items inserted (%s)", stats)
	return stats, nil
}

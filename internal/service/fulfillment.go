package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shinyyama/commerce-seed/internal/dberr"
	"github.com/shinyyama/commerce-seed/internal/model"
	"github.com/shinyyama/commerce-seed/internal/repository"
)

const (
	oldPaymentProbability = 0.9
	// A PENDING payment older than this is treated as FAILED.
	pendingExpiry = 7 * day

	trackingNumberLength = 12
)

var recentPaymentStatuses = []model.PaymentStatus{model.PaymentStatusCompleted, model.PaymentStatusPending}

// PaymentDraw is the outcome of the random draws for one payment, before the
// expiry recheck.
type PaymentDraw struct {
	IsOld  bool
	Date   time.Time
	Status model.PaymentStatus
}

// FulfillmentPlan is everything the fulfillment pass writes for one order.
type FulfillmentPlan struct {
	OrderID     string
	OrderStatus model.OrderStatus
	Payment     model.Payment
	Shipping    *model.Shipping
}

// DrawPayment makes the is_old draw and then the date and status for that branch.
// Old payments are 8-360 days in the past and always COMPLETED; recent ones are
// 0-6 days in the past and COMPLETED or PENDING with equal odds.
func DrawPayment(r Rand, now time.Time) PaymentDraw {
	if r.Float64() < oldPaymentProbability {
		return PaymentDraw{
			IsOld:  true,
			Date:   pastInstant(r, now, 8*day, 360*day),
			Status: model.PaymentStatusCompleted,
		}
	}
	return PaymentDraw{
		IsOld:  false,
		Date:   pastInstant(r, now, 0, 6*day),
		Status: pick(r, recentPaymentStatuses),
	}
}

// ResolvePaymentStatus applies the expiry recheck: PENDING older than seven
// days becomes FAILED.
func ResolvePaymentStatus(d PaymentDraw, now time.Time) model.PaymentStatus {
	if d.Status == model.PaymentStatusPending && now.Sub(d.Date) > pendingExpiry {
		return model.PaymentStatusFailed
	}
	return d.Status
}

func OrderStatusFor(status model.PaymentStatus) model.OrderStatus {
	if status == model.PaymentStatusFailed {
		return model.OrderStatusCancelled
	}
	return model.OrderStatusPlaced
}

type Fulfiller struct {
	rt       Runtime
	refs     *ReferenceLoader
	orders   repository.OrderRepository
	payments repository.FulfillmentRepository
}

func NewFulfiller(rt Runtime, refs *ReferenceLoader, orders repository.OrderRepository, payments repository.FulfillmentRepository) *Fulfiller {
	return &Fulfiller{rt: rt.withDefaults(), refs: refs, orders: orders, payments: payments}
}

func (f *Fulfiller) Plan(order model.Order) FulfillmentPlan {
	now := f.rt.Clock.Now()
	return f.PlanFromDraw(order, DrawPayment(f.rt.Rand, now), now)
}

// PlanFromDraw derives the plan for an already drawn payment. Shipping exists
// only for a COMPLETED payment.
func (f *Fulfiller) PlanFromDraw(order model.Order, draw PaymentDraw, now time.Time) FulfillmentPlan {
	status := ResolvePaymentStatus(draw, now)
	plan := FulfillmentPlan{
		OrderID:     order.ID,
		OrderStatus: OrderStatusFor(status),
		Payment: model.Payment{
			ID:          f.rt.IDs.NewID(),
			OrderID:     order.ID,
			Method:      pick(f.rt.Rand, model.PaymentMethods),
			Status:      status,
			Amount:      order.TotalAmount,
			PaymentDate: draw.Date,
		},
	}
	if status == model.PaymentStatusCompleted {
		s := f.drawShipping(order.ID, now)
		plan.Shipping = &s
	}
	return plan
}

func (f *Fulfiller) drawShipping(orderID string, now time.Time) model.Shipping {
	r := f.rt.Rand
	s := model.Shipping{
		ID:      f.rt.IDs.NewID(),
		OrderID: orderID,
		Carrier: pick(r, model.Carriers),
		Status:  pick(r, model.ShippingStatuses),
	}
	s.ShippedAt = pastInstant(r, now, 0, 5*day)
	if s.Status == model.ShippingStatusDelivered {
		// within the last two days, but not before it shipped
		window := min(2*day, now.Sub(s.ShippedAt))
		delivered := pastInstant(r, now, 0, window)
		s.DeliveredAt = &delivered
	}
	s.TrackingNumber = alphanumeric(r, trackingNumberLength)
	return s
}

func (f *Fulfiller) apply(ctx context.Context, plan *FulfillmentPlan) error {
	if err := f.orders.UpdateStatus(ctx, plan.OrderID, plan.OrderStatus, f.rt.Clock.Now()); err != nil {
		f.rt.Metrics.Failed("orders")
		return fmt.Errorf("update order status: %w", err)
	}
	f.rt.Metrics.Updated("orders")

	if err := f.payments.CreatePayment(ctx, &plan.Payment); err != nil {
		f.rt.Metrics.Failed("payment")
		return fmt.Errorf("insert payment: %w", err)
	}
	f.rt.Metrics.Inserted("payment")

	if plan.Shipping != nil {
		if err := f.payments.CreateShipping(ctx, plan.Shipping); err != nil {
			f.rt.Metrics.Failed("shipping")
			return fmt.Errorf("insert shipping: %w", err)
		}
		f.rt.Metrics.Inserted("shipping")
	}
	return nil
}

func (f *Fulfiller) Run(ctx context.Context) (PassStats, error) {
	stats := PassStats{Pass: "fulfillment"}
	start := time.Now()

	orders, err := f.refs.OrderTotals(ctx)
	if err != nil {
		return stats, err
	}
	f.rt.Logger.Printf("generating payment & shipping for %d orders", len(orders))

	for i, order := range orders {
		plan := f.Plan(order)
		stats.Attempted++
		if err := f.apply(ctx, &plan); err != nil {
			stats.Failed++
			f.rt.Logger.Printf("error processing order %s: %s: %v", order.ID, dberr.Classify(err), err)
		} else {
			stats.Succeeded++
		}
		f.rt.progress(i, "orders")
	}

	stats.Elapsed = time.Since(start)
	f.rt.Metrics.ObservePass(stats.Pass, stats.Elapsed)
	f.rt.Logger.Printf("all payment & shipping records inserted (%s)", stats)
	return stats, nil
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shinyyama/commerce-seed/internal/model"
)

// fixedRand always returns the same draws, clamped to the requested range.
type fixedRand struct {
	f   float64
	i   int
	i64 int64
}

func (r fixedRand) IntN(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

func (r fixedRand) Int64N(n int64) int64 {
	if r.i64 >= n {
		return n - 1
	}
	return r.i64
}

func (r fixedRand) Float64() float64 { return r.f }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

func testRuntime(r Rand, buf *bytes.Buffer) Runtime {
	return Runtime{
		Rand:          r,
		Clock:         fixedClock{t: testNow},
		IDs:           &seqIDs{},
		Logger:        log.New(buf, "", 0),
		ProgressEvery: 100,
	}
}

type fakeRefs struct {
	users    []string
	products []model.Product
	orders   []model.Order
	grants   []model.UserCoupon
	err      error
}

func (f *fakeRefs) ListUserIDs(ctx context.Context) ([]string, error) { return f.users, f.err }

func (f *fakeRefs) ListProductPrices(ctx context.Context) ([]model.Product, error) {
	return f.products, f.err
}

func (f *fakeRefs) ListOrderTotals(ctx context.Context) ([]model.Order, error) { return f.orders, f.err }

func (f *fakeRefs) ListOrderIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.orders))
	for _, o := range f.orders {
		ids = append(ids, o.ID)
	}
	return ids, f.err
}

func (f *fakeRefs) ListUnusedGrants(ctx context.Context) ([]model.UserCoupon, error) {
	var out []model.UserCoupon
	for _, g := range f.grants {
		if !g.IsUsed {
			out = append(out, g)
		}
	}
	return out, f.err
}

// memStore is an in-memory stand-in for the order, fulfillment and coupon
// repositories. The fail* hooks inject per-row write failures.
type memStore struct {
	orders     map[string]model.Order
	orderOrder []string
	items      map[string][]model.OrderItem
	payments   map[string][]model.Payment
	shippings  map[string][]model.Shipping
	usages     []model.CouponUsage
	grantsUsed map[string]int

	failOrder    func(o *model.Order) error
	failPayment  func(p *model.Payment) error
	failUsage    func(u *model.CouponUsage) error
	failMark     func(grantID string) error
	statusWrites int
}

func newMemStore() *memStore {
	return &memStore{
		orders:     map[string]model.Order{},
		items:      map[string][]model.OrderItem{},
		payments:   map[string][]model.Payment{},
		shippings:  map[string][]model.Shipping{},
		grantsUsed: map[string]int{},
	}
}

func (m *memStore) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	if m.failOrder != nil {
		if err := m.failOrder(order); err != nil {
			return err
		}
	}
	m.orders[order.ID] = *order
	m.orderOrder = append(m.orderOrder, order.ID)
	m.items[order.ID] = append([]model.OrderItem(nil), items...)
	return nil
}

func (m *memStore) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, at time.Time) error {
	o, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	o.Status = status
	o.UpdatedAt = at
	m.orders[orderID] = o
	m.statusWrites++
	return nil
}

func (m *memStore) CreatePayment(ctx context.Context, p *model.Payment) error {
	if m.failPayment != nil {
		if err := m.failPayment(p); err != nil {
			return err
		}
	}
	m.payments[p.OrderID] = append(m.payments[p.OrderID], *p)
	return nil
}

func (m *memStore) CreateShipping(ctx context.Context, s *model.Shipping) error {
	m.shippings[s.OrderID] = append(m.shippings[s.OrderID], *s)
	return nil
}

func (m *memStore) CreateUsage(ctx context.Context, u *model.CouponUsage) error {
	if m.failUsage != nil {
		if err := m.failUsage(u); err != nil {
			return err
		}
	}
	m.usages = append(m.usages, *u)
	return nil
}

func (m *memStore) MarkGrantUsed(ctx context.Context, grantID string) error {
	if m.failMark != nil {
		if err := m.failMark(grantID); err != nil {
			return err
		}
	}
	m.grantsUsed[grantID]++
	return nil
}

// orderTotals projects the stored orders the way ListOrderTotals reads them.
func (m *memStore) orderTotals() []model.Order {
	out := make([]model.Order, 0, len(m.orderOrder))
	for _, id := range m.orderOrder {
		o := m.orders[id]
		out = append(out, model.Order{ID: o.ID, TotalAmount: o.TotalAmount})
	}
	return out
}

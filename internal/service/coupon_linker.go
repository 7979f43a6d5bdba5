package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shinyyama/commerce-seed/internal/dberr"
	"github.com/shinyyama/commerce-seed/internal/model"
	"github.com/shinyyama/commerce-seed/internal/repository"
)

const usageWindow = 20 * day

// grantPool holds the grants that were unused when the pass started. Unless
// reuse is allowed, a drawn grant is removed so it is redeemed at most once.
type grantPool struct {
	grants []model.UserCoupon
	reuse  bool
}

func newGrantPool(grants []model.UserCoupon, reuse bool) *grantPool {
	cp := make([]model.UserCoupon, len(grants))
	copy(cp, grants)
	return &grantPool{grants: cp, reuse: reuse}
}

func (p *grantPool) Len() int {
	return len(p.grants)
}

func (p *grantPool) draw(r Rand) (model.UserCoupon, bool) {
	if len(p.grants) == 0 {
		return model.UserCoupon{}, false
	}
	i := r.IntN(len(p.grants))
	g := p.grants[i]
	if !p.reuse {
		last := len(p.grants) - 1
		p.grants[i] = p.grants[last]
		p.grants = p.grants[:last]
	}
	return g, true
}

type CouponLinker struct {
	rt         Runtime
	refs       *ReferenceLoader
	coupons    repository.CouponRepository
	allowReuse bool
}

func NewCouponLinker(rt Runtime, refs *ReferenceLoader, coupons repository.CouponRepository, allowReuse bool) *CouponLinker {
	return &CouponLinker{rt: rt.withDefaults(), refs: refs, coupons: coupons, allowReuse: allowReuse}
}

func (l *CouponLinker) redeem(ctx context.Context, usage *model.CouponUsage, grantID string) error {
	if err := l.coupons.CreateUsage(ctx, usage); err != nil {
		l.rt.Metrics.Failed("coupon_usage")
		return fmt.Errorf("insert coupon usage: %w", err)
	}
	l.rt.Metrics.Inserted("coupon_usage")

	if err := l.coupons.MarkGrantUsed(ctx, grantID); err != nil {
		l.rt.Metrics.Failed("user_coupons")
		return fmt.Errorf("mark grant %s used (coupon_usage %s kept, grant left unused): %w", grantID, usage.ID, err)
	}
	l.rt.Metrics.Updated("user_coupons")
	return nil
}

// Run performs up to count redemption events. It stops early when every
// unused grant has been redeemed.
func (l *CouponLinker) Run(ctx context.Context, count int) (PassStats, error) {
	stats := PassStats{Pass: "coupon-usage"}
	start := time.Now()

	grants, err := l.refs.UnusedGrants(ctx)
	if err != nil {
		return stats, err
	}
	orderIDs, err := l.refs.OrderIDs(ctx)
	if err != nil {
		return stats, err
	}
	pool := newGrantPool(grants, l.allowReuse)
	l.rt.Logger.Printf("seeding %d coupon usages from %d unused grants and %d orders", count, pool.Len(), len(orderIDs))

	r := l.rt.Rand
	for i := 0; i < count; i++ {
		grant, ok := pool.draw(r)
		if !ok {
			l.rt.Logger.Printf("unused grants exhausted after %d of %d redemptions", i, count)
			break
		}
		usage := model.CouponUsage{
			ID:       l.rt.IDs.NewID(),
			CouponID: grant.CouponID,
			UserID:   grant.UserID,
			OrderID:  pick(r, orderIDs),
			UsedAt:   pastInstant(r, l.rt.Clock.Now(), 0, usageWindow),
		}
		stats.Attempted++
		if err := l.redeem(ctx, &usage, grant.ID); err != nil {
			stats.Failed++
			l.rt.Logger.Printf("error at redemption %d (grant %s, order %s): %s: %v", i, grant.ID, usage.OrderID, dberr.Classify(err), err)
		} else {
			stats.Succeeded++
		}
		l.rt.progress(i, "coupon usages")
	}

	stats.Elapsed = time.Since(start)
	l.rt.Metrics.ObservePass(stats.Pass, stats.Elapsed)
	l.rt.Logger.Printf("all coupon_usage inserted (%s)", stats)
	return stats, nil
}

package db

import (
	"context"
	"time"
)

const planColumns = `id, name, slug, price, currency, max_active_listings, max_images_per_listing,
	featured_slots, boost_credits, listing_duration_days, created_at`

func scanPlan(row interface{ Scan(dest ...any) error }) (SubscriptionPlan, error) {
	var p SubscriptionPlan
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.Currency, &p.MaxActiveListings,
		&p.MaxImagesPerListing, &p.FeaturedSlots, &p.BoostCredits, &p.ListingDurationDays, &p.CreatedAt)
	return p, err
}

func (q *Queries) ListSubscriptionPlans(ctx context.Context) ([]SubscriptionPlan, error) {
	rows, err := q.db.Query(ctx, `SELECT `+planColumns+` FROM subscription_plans ORDER BY price`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []SubscriptionPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (q *Queries) GetSubscriptionPlanByID(ctx context.Context, id int64) (SubscriptionPlan, error) {
	return scanPlan(q.db.QueryRow(ctx, `SELECT `+planColumns+` FROM subscription_plans WHERE id = $1`, id))
}

const subscriptionColumns = `id, seller_id, plan_id, status, billing_cycle, price, currency,
	current_period_start, current_period_end, auto_renew, cancelled_at, created_at, updated_at`

func scanSubscription(row interface{ Scan(dest ...any) error }) (SellerSubscription, error) {
	var s SellerSubscription
	err := row.Scan(&s.ID, &s.SellerID, &s.PlanID, &s.Status, &s.BillingCycle, &s.Price, &s.Currency,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.AutoRenew, &s.CancelledAt, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetActiveSubscription returns the seller's current subscription: the most
// recent active row whose period has not ended. ErrRecordNotFound means the
// seller falls back to the free tier.
func (q *Queries) GetActiveSubscription(ctx context.Context, sellerID string) (SellerSubscription, error) {
	return scanSubscription(q.db.QueryRow(ctx, `SELECT `+subscriptionColumns+`
		FROM seller_subscriptions
		WHERE seller_id = $1 AND status = 'active' AND current_period_end > now()
		ORDER BY created_at DESC
		LIMIT 1`, sellerID))
}

type CreateSellerSubscriptionParams struct {
	SellerID           string
	PlanID             int64
	BillingCycle       string
	Price              int64
	Currency           string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	AutoRenew          bool
}

func (q *Queries) CreateSellerSubscription(ctx context.Context, arg CreateSellerSubscriptionParams) (SellerSubscription, error) {
	return scanSubscription(q.db.QueryRow(ctx, `INSERT INTO seller_subscriptions
		(seller_id, plan_id, status, billing_cycle, price, currency, current_period_start, current_period_end, auto_renew)
	VALUES ($1, $2, 'active', $3, $4, $5, $6, $7, $8)
	RETURNING `+subscriptionColumns,
		arg.SellerID, arg.PlanID, arg.BillingCycle, arg.Price, arg.Currency,
		arg.CurrentPeriodStart, arg.CurrentPeriodEnd, arg.AutoRenew))
}

func (q *Queries) CancelSellerSubscription(ctx context.Context, id int64) (SellerSubscription, error) {
	return scanSubscription(q.db.QueryRow(ctx, `UPDATE seller_subscriptions SET
		status = 'cancelled', auto_renew = false, cancelled_at = now(), updated_at = now()
	WHERE id = $1
	RETURNING `+subscriptionColumns, id))
}

func (q *Queries) ListSellerSubscriptions(ctx context.Context, sellerID string) ([]SellerSubscription, error) {
	rows, err := q.db.Query(ctx, `SELECT `+subscriptionColumns+`
		FROM seller_subscriptions WHERE seller_id = $1 ORDER BY created_at DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []SellerSubscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// ExpireLapsedSubscriptions marks every active subscription whose period ended
// and that will not auto-renew. The sweep runs the quota downgrade for each
// returned seller.
func (q *Queries) ExpireLapsedSubscriptions(ctx context.Context) ([]SellerSubscription, error) {
	rows, err := q.db.Query(ctx, `UPDATE seller_subscriptions SET
		status = 'expired', updated_at = now()
	WHERE status = 'active' AND current_period_end < now() AND NOT auto_renew
	RETURNING `+subscriptionColumns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []SellerSubscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

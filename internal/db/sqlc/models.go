package db

import (
	"time"

	"github.com/Shaloh69/autohub-be/internal/listing"
	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleMember    UserRole = "member"
	UserRoleSeller    UserRole = "seller"
	UserRoleModerator UserRole = "moderator"
)

type User struct {
	ID          string     `json:"id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	Role        UserRole   `json:"role"`
	AvatarURL   *string    `json:"avatar_url"`
	IsBanned    bool       `json:"is_banned"`
	BannedAt    *time.Time `json:"banned_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Brand struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	Country *string `json:"country"`
}

type CarModel struct {
	ID       int64   `json:"id"`
	BrandID  int64   `json:"brand_id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	BodyType *string `json:"body_type"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type SubscriptionPlan struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	// MaxActiveListings uses -1 as the unlimited sentinel.
	MaxActiveListings   int32     `json:"max_active_listings"`
	MaxImagesPerListing int32     `json:"max_images_per_listing"`
	FeaturedSlots       int32     `json:"featured_slots"`
	BoostCredits        int32     `json:"boost_credits"`
	ListingDurationDays int32     `json:"listing_duration_days"`
	CreatedAt           time.Time `json:"created_at"`
}

type SubscriptionStatus string

const (
	SubscriptionStatusTrialing   SubscriptionStatus = "trialing"
	SubscriptionStatusActive     SubscriptionStatus = "active"
	SubscriptionStatusPastDue    SubscriptionStatus = "past_due"
	SubscriptionStatusCancelled  SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired    SubscriptionStatus = "expired"
	SubscriptionStatusIncomplete SubscriptionStatus = "incomplete"
)

type SellerSubscription struct {
	ID                 int64              `json:"id"`
	SellerID           string             `json:"seller_id"`
	PlanID             int64              `json:"plan_id"`
	Status             SubscriptionStatus `json:"status"`
	BillingCycle       string             `json:"billing_cycle"`
	Price              int64              `json:"price"`
	Currency           string             `json:"currency"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	AutoRenew          bool               `json:"auto_renew"`
	CancelledAt        *time.Time         `json:"cancelled_at"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type Listing struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Slug     string `json:"slug"`
	SellerID string `json:"seller_id"`

	BrandID    int64  `json:"brand_id"`
	ModelID    int64  `json:"model_id"`
	CategoryID *int64 `json:"category_id"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Year        int32  `json:"year"`
	// Price is in minor currency units (centavos).
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Mileage  *int32 `json:"mileage"`

	FuelType     listing.FuelType     `json:"fuel_type"`
	Transmission listing.Transmission `json:"transmission"`
	Condition    listing.Condition    `json:"condition"`

	EngineSizeCc  *int32  `json:"engine_size_cc"`
	HorsepowerHp  *int32  `json:"horsepower_hp"`
	Drivetrain    *string `json:"drivetrain"`
	ExteriorColor *string `json:"exterior_color"`
	InteriorColor *string `json:"interior_color"`
	Vin           *string `json:"vin"`
	UnderWarranty *bool   `json:"under_warranty"`

	AccidentHistory   *bool  `json:"accident_history"`
	FloodHistory      *bool  `json:"flood_history"`
	HasServiceRecords *bool  `json:"has_service_records"`
	OwnerCount        *int32 `json:"owner_count"`

	City          *string  `json:"city"`
	Province      *string  `json:"province"`
	Region        *string  `json:"region"`
	Barangay      *string  `json:"barangay"`
	AddressDetail *string  `json:"address_detail"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`

	Status         listing.Status         `json:"status"`
	ApprovalStatus listing.ApprovalStatus `json:"approval_status"`
	RejectedReason *string                `json:"rejected_reason"`
	ModeratorNotes *string                `json:"moderator_notes"`

	QualityScore      int32 `json:"quality_score"`
	CompletenessScore int32 `json:"completeness_score"`
	SearchScore       int32 `json:"search_score"`

	IsActive      bool       `json:"is_active"`
	IsFeatured    bool       `json:"is_featured"`
	FeaturedUntil *time.Time `json:"featured_until"`
	IsPremium     bool       `json:"is_premium"`
	PremiumUntil  *time.Time `json:"premium_until"`

	Views       int64 `json:"views"`
	UniqueViews int64 `json:"unique_views"`
	Favorites   int64 `json:"favorites"`
	Inquiries   int64 `json:"inquiries"`

	ApprovedBy *string    `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`
	SoldAt     *time.Time `json:"sold_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ListingImage struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing_id"`
	URL       string    `json:"url"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction records a completed sale. The listing itself becomes terminal
// (sold); ownership never transfers on the listing row.
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	ListingID int64     `json:"listing_id"`
	SellerID  string    `json:"seller_id"`
	BuyerID   *string   `json:"buyer_id"`
	Price     int64     `json:"price"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

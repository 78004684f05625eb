// Data transfer objects of the public HTTP API.
package rest

type Health struct {
	Status   string `json:"status"`
	Name     string `json:"name"`
	Version  string `json:"version"`
	Policies int    `json:"policies"`
}

// Policy mirrors the catalog record. Optional blocks are omitted when the
// brochure did not provide them.
type Policy struct {
	PolicyID               string             `json:"policy_id"`
	UIN                    string             `json:"uin,omitempty"`
	PolicyName             string             `json:"policy_name"`
	Insurer                string             `json:"insurer,omitempty"`
	Category               string             `json:"category"`
	Type                   string             `json:"type,omitempty"`
	ProductType            string             `json:"product_type,omitempty"`
	PremiumYearly          map[string]float64 `json:"premium_yearly,omitempty"`
	SumAssuredOptions      []float64          `json:"sum_assured_options,omitempty"`
	SumInsured             []float64          `json:"sum_insured,omitempty"`
	Eligibility            *Eligibility       `json:"eligibility,omitempty"`
	EntryAgeMin            *int               `json:"entry_age_min,omitempty"`
	EntryAgeMax            *int               `json:"entry_age_max,omitempty"`
	MaturityAge            *int               `json:"maturity_age,omitempty"`
	JointLifeAvailable     *bool              `json:"joint_life_available,omitempty"`
	Riders                 []Rider            `json:"riders,omitempty"`
	CriticalIllnessCount   int                `json:"critical_illness_count,omitempty"`
	AnnuityPayoutFrequency []string           `json:"annuity_payout_frequency,omitempty"`
	PremiumPaymentModes    []string           `json:"premium_payment_modes,omitempty"`
	Exclusions             []string           `json:"exclusions,omitempty"`
	AIEnrichment           *AIEnrichment      `json:"ai_enrichment,omitempty"`
}

type Eligibility struct {
	AdultMinAge *int `json:"adult_min_age,omitempty"`
	AdultMaxAge *int `json:"adult_max_age,omitempty"`
	ChildMinAge *int `json:"child_min_age,omitempty"`
	ChildMaxAge *int `json:"child_max_age,omitempty"`
}

type Rider struct {
	Name    string  `json:"name"`
	Premium float64 `json:"premium,omitempty"`
}

type AIEnrichment struct {
	KeyFeatures    []string       `json:"key_features,omitempty"`
	UniqueFeatures []string       `json:"unique_features,omitempty"`
	Benefits       map[string]any `json:"benefits,omitempty"`
}

type CategoryStat struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

type Categories struct {
	Categories []CategoryStat `json:"categories"`
	Total      int            `json:"total"`
}

// QuoteRequest is the customer profile collected by the chatbot. Every field
// is optional; bands are free text such as "25-35", "<5L" or "10k-25k".
type QuoteRequest struct {
	AgeBand              string   `json:"age_band,omitempty"               validate:"max=32"`
	DependentsCount      *int     `json:"dependents_count,omitempty"       validate:"omitempty,min=0,max=20"`
	AnnualIncomeBand     string   `json:"annual_income_band,omitempty"     validate:"max=32"`
	ExistingCover        string   `json:"existing_cover,omitempty"         validate:"max=200"`
	PreferredPremiumBand string   `json:"preferred_premium_band,omitempty" validate:"max=32"`
	RiskTolerance        string   `json:"risk_tolerance,omitempty"         validate:"max=32"`
	VehicleType          string   `json:"vehicle_type,omitempty"           validate:"max=32"`
	HealthFlags          []string `json:"health_flags,omitempty"           validate:"max=20,dive,max=64"`
	CityState            string   `json:"city_state,omitempty"             validate:"max=100"`
	ContactChannel       string   `json:"contact_channel,omitempty"        validate:"max=32"`
}

type Recommendation struct {
	PolicyID string   `json:"policy_id"`
	UIN      string   `json:"uin,omitempty"`
	Name     string   `json:"name"`
	Insurer  string   `json:"insurer,omitempty"`
	Category string   `json:"category"`
	Premium  int64    `json:"premium"`
	Score    float64  `json:"score"`
	Reason   string   `json:"reason"`
	Summary  string   `json:"summary"`
	Matched  []string `json:"matched"`
}

type QuoteResponse struct {
	Recommended []Recommendation `json:"recommended"`
	Disclaimer  string           `json:"disclaimer"`
}

type HandoffRequest struct {
	Reason          string         `json:"reason"           validate:"required,max=1000"`
	CustomerProfile map[string]any `json:"customer_profile" validate:"required"`
}

type HandoffResponse struct {
	Status   string `json:"status"`
	TicketID string `json:"ticket_id"`
}

type HandoffTicket struct {
	TicketID        string         `json:"ticket_id"`
	Status          string         `json:"status"`
	Reason          string         `json:"reason"`
	SessionID       string         `json:"session_id,omitempty"`
	CustomerProfile map[string]any `json:"customer_profile"`
	CreatedAt       string         `json:"created_at"`
	ForwardedAt     string         `json:"forwarded_at,omitempty"`
}

// Error is the body of every non-2xx answer.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	SupportID string    `json:"supportId"`
}

type ErrorCode string

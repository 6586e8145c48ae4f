package domain

import "time"

type TierLevel string

const (
	TierBronze   TierLevel = "bronze"
	TierSilver   TierLevel = "silver"
	TierGold     TierLevel = "gold"
	TierPlatinum TierLevel = "platinum"
)

// Tier thresholds on lifetime miles, boundaries inclusive.
const (
	SilverThreshold   = 20000
	GoldThreshold     = 50000
	PlatinumThreshold = 100000
)

// TierForLifetime derives the loyalty tier from lifetime miles.
func TierForLifetime(lifetime int) TierLevel {
	switch {
	case lifetime >= PlatinumThreshold:
		return TierPlatinum
	case lifetime >= GoldThreshold:
		return TierGold
	case lifetime >= SilverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

type UserMiles struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	TotalMiles    int       `json:"totalMiles"`
	TierLevel     TierLevel `json:"tierLevel"`
	LifetimeMiles int       `json:"lifetimeMiles"`
}

type MilesTransactionType string

const (
	MilesEarned   MilesTransactionType = "earned"
	MilesRedeemed MilesTransactionType = "redeemed"
	MilesBonus    MilesTransactionType = "bonus"
	MilesExpired  MilesTransactionType = "expired"
)

type MilesTransaction struct {
	ID          string               `json:"id"`
	UserID      string               `json:"userId"`
	BookingID   string               `json:"bookingId,omitempty"`
	Miles       int                  `json:"miles"`
	Type        MilesTransactionType `json:"type"`
	Description string               `json:"description,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

package models

import "time"

// StatusResponse is returned by GET /api/whitelist/status. Unknown addresses
// get the zero value.
type StatusResponse struct {
	IsWhitelisted    bool       `json:"isWhitelisted"`
	TwitterConnected bool       `json:"twitterConnected"`
	TwitterUsername  string     `json:"twitterUsername"`
	Status           Status     `json:"status" example:"pending"`
	AppliedAt        *time.Time `json:"appliedAt"`
}

type JoinRequest struct {
	Address string `json:"address" example:"0x06C8E296cc63B15b17878b673a9d58E71EA7508b"`
	Tier    string `json:"tier" example:"tier1"`
}

// ApproveRequest carries exactly one of AdminAddress or AdminPassword,
// depending on the configured admin mode.
type ApproveRequest struct {
	Address       string `json:"address"`
	AdminAddress  string `json:"adminAddress,omitempty"`
	AdminPassword string `json:"adminPassword,omitempty"`
	Tier          string `json:"tier,omitempty" example:"tier3"`
}

type DenyRequest struct {
	Address       string `json:"address"`
	AdminAddress  string `json:"adminAddress,omitempty"`
	AdminPassword string `json:"adminPassword,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

type ListResponse struct {
	Applications []Application `json:"applications"`
}

type TierResponse struct {
	ID       string `json:"id" example:"tier1"`
	Name     string `json:"name" example:"Tier 1"`
	Price    string `json:"price" example:"10.0 AVAX"`
	PriceWei string `json:"priceWei" example:"10000000000000000000"`
}

type TiersResponse struct {
	Tiers []TierResponse `json:"tiers"`
}

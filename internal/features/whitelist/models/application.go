package models

import "time"

type Status string

const (
	StatusNone     Status = ""
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// Application is one wallet's whitelist record, keyed by lower-cased address.
// @Description Whitelist application
type Application struct {
	Address          string     `bson:"address" json:"address" example:"0x06c8e296cc63b15b17878b673a9d58e71ea7508b"`
	Status           Status     `bson:"status,omitempty" json:"status" example:"pending"`
	Tier             string     `bson:"tier,omitempty" json:"tier,omitempty" example:"tier2"`
	IsWhitelisted    bool       `bson:"isWhitelisted" json:"isWhitelisted"`
	TwitterConnected bool       `bson:"twitterConnected" json:"twitterConnected"`
	TwitterID        string     `bson:"twitterId,omitempty" json:"twitterId,omitempty"`
	TwitterUsername  string     `bson:"twitterUsername,omitempty" json:"twitterUsername,omitempty"`
	TwitterName      string     `bson:"twitterName,omitempty" json:"twitterName,omitempty"`
	AppliedAt        *time.Time `bson:"appliedAt,omitempty" json:"appliedAt,omitempty"`
	ApprovedAt       *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	ApprovedBy       string     `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	DeniedAt         *time.Time `bson:"deniedAt,omitempty" json:"deniedAt,omitempty"`
	DeniedBy         string     `bson:"deniedBy,omitempty" json:"deniedBy,omitempty"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt        *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

package models

import "time"

// User is keyed by the lower-cased wallet address.
// @Description Wallet user record
type User struct {
	Address          string     `bson:"address" json:"address" example:"0x06c8e296cc63b15b17878b673a9d58e71ea7508b"`
	LastSeen         time.Time  `bson:"lastSeen,omitempty" json:"lastSeen"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	TwitterConnected bool       `bson:"twitterConnected,omitempty" json:"twitterConnected"`
	TwitterID        string     `bson:"twitterId,omitempty" json:"twitterId,omitempty"`
	TwitterUsername  string     `bson:"twitterUsername,omitempty" json:"twitterUsername,omitempty"`
	TwitterName      string     `bson:"twitterName,omitempty" json:"twitterName,omitempty"`
	UpdatedAt        *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

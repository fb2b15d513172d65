package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// RecentLimit is how many messages the chat read path returns.
const RecentLimit = 100

// @Description Chat message
type Message struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id" swaggertype:"string" example:"65f1c0ffee0000000000abcd"`
	Sender    string        `bson:"sender" json:"sender" example:"0x06c8e296cc63b15b17878b673a9d58e71ea7508b"`
	Content   string        `bson:"content" json:"content" example:"gm"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
}

type PostRequest struct {
	Sender  string `json:"sender" example:"0x06C8E296cc63B15b17878b673a9d58E71EA7508b"`
	Content string `json:"content" example:"gm"`
}

type PostResponse struct {
	Success bool     `json:"success" example:"true"`
	Message *Message `json:"message"`
}

type ListResponse struct {
	Messages []Message `json:"messages"`
}

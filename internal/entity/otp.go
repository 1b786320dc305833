package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OTP is one issued code. Records are append-only, a new generation
// always inserts a new document.
type OTP struct {
	ID        bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string        `json:"userId" bson:"userId"`
	Purpose   string        `json:"purpose" bson:"purpose"`
	Code      string        `json:"otp" bson:"otp"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

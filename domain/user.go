package domain

import "time"

// User is a dashboard user, keyed by their Discord snowflake id.
// A record is upserted on every successful OAuth login and never deleted
// by this service.
type User struct {
	ID            string    `bson:"_id" json:"id"`
	Username      string    `bson:"username" json:"username"`
	Discriminator string    `bson:"discriminator" json:"discriminator"`
	Avatar        *string   `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Email         *string   `bson:"email,omitempty" json:"email,omitempty"`
	AccessToken   string    `bson:"access_token" json:"-"`
	RefreshToken  string    `bson:"refresh_token,omitempty" json:"-"`
	LastLoginAt   time.Time `bson:"last_login_at" json:"-"`
}

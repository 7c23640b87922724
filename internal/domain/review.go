package domain

import "time"

// Review represents a product review submitted by a user.
//
// ProductID references a product in the external catalog and is never
// validated against it. Username is a snapshot taken at creation time and is
// not re-synced afterwards. Reviews are immutable once created.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

package models

import "time"

// Performance is an append-only score entry for a member.
type Performance struct {
	ID        string    `json:"id" bson:"_id"`
	MemberID  string    `json:"memberId" bson:"member_id"`
	Category  string    `json:"category" bson:"category"`
	Score     float64   `json:"score" bson:"score"`
	Rating    int       `json:"rating" bson:"rating"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type CreatePerformanceRequest struct {
	MemberID string      `json:"memberId"`
	Category string      `json:"category"`
	Score    FlexFloat64 `json:"score"`
	Rating   FlexFloat64 `json:"rating"`
}

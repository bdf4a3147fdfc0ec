package models

import "fmt"

// Member is a club member on the roster.
type Member struct {
	ID     string `json:"id" bson:"_id"`
	VIN    string `json:"vin" bson:"vin"`
	Seq    int64  `json:"-" bson:"seq"`
	Name   string `json:"name" bson:"name"`
	Email  string `json:"email" bson:"email"`
	Branch string `json:"branch" bson:"branch"`
	Year   int    `json:"year" bson:"year"`
}

// FormatVIN renders a member display code such as VIN-007.
func FormatVIN(seq int64) string {
	return fmt.Sprintf("VIN-%03d", seq)
}

type CreateMemberRequest struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Branch string      `json:"branch"`
	Year   FlexFloat64 `json:"year"`
}

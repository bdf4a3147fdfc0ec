package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusLate    AttendanceStatus = "late"
	StatusAbsent  AttendanceStatus = "absent"
	StatusExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusExcused:
		return true
	}
	return false
}

// DateLayout is the calendar-day format used for attendance dates.
const DateLayout = "2006-01-02"

// Attendance is one member's status on one calendar day.
type Attendance struct {
	ID       string           `json:"id" bson:"_id"`
	MemberID string           `json:"memberId" bson:"member_id"`
	Date     string           `json:"date" bson:"date"`
	Status   AttendanceStatus `json:"status" bson:"status"`
}

type AttendanceEntry struct {
	MemberID string           `json:"memberId"`
	Status   AttendanceStatus `json:"status"`
}

type BulkAttendanceRequest struct {
	Date    string          `json:"date"`
	Records json.RawMessage `json:"records"`
}

// Entries decodes records entry by entry. submitted is the length of the
// records array and ok is false when records is not a JSON array. Entries
// that fail to decode, or lack a memberId or a known status, are dropped.
func (r BulkAttendanceRequest) Entries() (entries []AttendanceEntry, submitted int, ok bool) {
	raw := bytes.TrimSpace(r.Records)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, 0, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, false
	}

	entries = make([]AttendanceEntry, 0, len(items))
	for _, item := range items {
		var e AttendanceEntry
		if err := json.Unmarshal(item, &e); err != nil {
			continue
		}
		if e.MemberID == "" || !e.Status.Valid() {
			continue
		}
		entries = append(entries, e)
	}
	return entries, len(items), true
}

// ValidDate reports whether s is a YYYY-MM-DD calendar day.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

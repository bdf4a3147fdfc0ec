package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vinyasaclub/models"
)

func TestLastEntryPerMember(t *testing.T) {
	in := []models.AttendanceEntry{
		{MemberID: "a", Status: models.StatusLate},
		{MemberID: "b", Status: models.StatusPresent},
		{MemberID: "a", Status: models.StatusExcused},
		{MemberID: "c", Status: models.StatusAbsent},
		{MemberID: "b", Status: models.StatusAbsent},
	}
	assert.Equal(t, []models.AttendanceEntry{
		{MemberID: "a", Status: models.StatusExcused},
		{MemberID: "b", Status: models.StatusAbsent},
		{MemberID: "c", Status: models.StatusAbsent},
	}, lastEntryPerMember(in))

	assert.Empty(t, lastEntryPerMember(nil))
}

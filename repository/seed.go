package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vinyasaclub/models"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password"

// SeedDemoData fills an empty store with demo accounts, a roster of 25
// members, today's attendance and ten performance entries. It does nothing
// when any user already exists.
func SeedDemoData(ctx context.Context, store *Store, today string, now time.Time) error {
	n, err := store.Users.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	accounts := []models.AppUser{
		{Name: "Admin User", Email: "admin@vinyasa.club", Role: models.RoleAdmin},
		{Name: "Instructor One", Email: "instructor@vinyasa.club", Role: models.RoleInstructor},
		{Name: "Member One", Email: "member@vinyasa.club", Role: models.RoleMember},
	}
	for i := range accounts {
		accounts[i].PasswordHash = string(hash)
		if err := store.Users.CreateUser(ctx, &accounts[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", accounts[i].Email, err)
		}
	}

	members := make([]models.Member, 0, 25)
	for i := 1; i <= 25; i++ {
		m := models.Member{
			Name:   fmt.Sprintf("Member %d", i),
			Email:  fmt.Sprintf("member%d@nmims.edu", i),
			Branch: "CSE",
			Year:   i%4 + 1,
		}
		if err := store.Members.CreateMember(ctx, &m); err != nil {
			return fmt.Errorf("seed member %d: %w", i, err)
		}
		members = append(members, m)
	}

	entries := make([]models.AttendanceEntry, 0, len(members))
	for idx, m := range members {
		status := models.StatusPresent
		switch {
		case idx%5 == 0:
			status = models.StatusLate
		case idx%7 == 0:
			status = models.StatusAbsent
		}
		entries = append(entries, models.AttendanceEntry{MemberID: m.ID, Status: status})
	}
	if _, err := store.Attendance.ReplaceAttendanceForDate(ctx, today, entries); err != nil {
		return fmt.Errorf("seed attendance: %w", err)
	}

	for i := 0; i < 10; i++ {
		p := models.Performance{
			MemberID:  members[i].ID,
			Category:  "Robotics",
			Score:     float64(60 + i),
			Rating:    i%5 + 1,
			CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
		}
		if err := store.Performance.CreatePerformance(ctx, &p); err != nil {
			return fmt.Errorf("seed performance: %w", err)
		}
	}

	log.Printf("Seeded demo data: %d users, %d members", len(accounts), len(members))
	return nil
}

package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinyasaclub/db"
	"vinyasaclub/db/sqlite"
	"vinyasaclub/models"
)

type storeFactory func(t *testing.T) *Store

func newMemoryStore(t *testing.T) *Store {
	return NewMemoryBackedStore()
}

func newSQLiteStore(t *testing.T) *Store {
	path := filepath.Join(t.TempDir(), "club.db")
	require.NoError(t, db.RunMigrations(db.SQLite, sqlite.DSN(path)))

	lite := sqlite.NewSQLiteDB(path)
	require.NoError(t, lite.Connect())
	t.Cleanup(func() { lite.Disconnect() })

	return NewSQLStore(lite.Conn)
}

var backends = map[string]storeFactory{
	"memory": newMemoryStore,
	"sqlite": newSQLiteStore,
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s *Store)) {
	for name, factory := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func mustCreateMember(t *testing.T, s *Store, name string) models.Member {
	t.Helper()
	m := models.Member{Name: name, Email: name + "@example.com", Branch: "CSE", Year: 2}
	require.NoError(t, s.Members.CreateMember(context.Background(), &m))
	return m
}

func memberIDs(records []models.Attendance) []string {
	ids := make([]string, 0, len(records))
	for _, a := range records {
		ids = append(ids, a.MemberID)
	}
	return ids
}

func TestUsers_CaseInsensitiveEmail(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := models.AppUser{Name: "Admin", Email: "Admin@Vinyasa.club", Role: models.RoleAdmin, PasswordHash: "hash"}
		require.NoError(t, s.Users.CreateUser(ctx, &u))
		assert.NotEmpty(t, u.ID)

		found, err := s.Users.GetUserByEmail(ctx, "admin@vinyasa.CLUB")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, u.ID, found.ID)
		assert.Equal(t, models.RoleAdmin, found.Role)
		assert.Equal(t, "hash", found.PasswordHash)

		dup := models.AppUser{Name: "Other", Email: "ADMIN@vinyasa.club", Role: models.RoleMember, PasswordHash: "x"}
		assert.ErrorIs(t, s.Users.CreateUser(ctx, &dup), ErrDuplicateEmail)

		missing, err := s.Users.GetUserByEmail(ctx, "nobody@vinyasa.club")
		require.NoError(t, err)
		assert.Nil(t, missing)

		n, err := s.Users.CountUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestMembers_VINNeverReused(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		a := mustCreateMember(t, s, "a")
		b := mustCreateMember(t, s, "b")
		c := mustCreateMember(t, s, "c")
		assert.Equal(t, "VIN-001", a.VIN)
		assert.Equal(t, "VIN-002", b.VIN)
		assert.Equal(t, "VIN-003", c.VIN)

		require.NoError(t, s.Members.DeleteMember(ctx, b.ID))
		require.NoError(t, s.Members.DeleteMember(ctx, c.ID))

		d := mustCreateMember(t, s, "d")
		assert.Equal(t, "VIN-004", d.VIN)

		list, err := s.Members.ListMembers(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, a.ID, list[0].ID)
		assert.Equal(t, d.ID, list[1].ID)

		n, err := s.Members.CountMembers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestMembers_GetAndDeleteUnknown(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		m := mustCreateMember(t, s, "solo")

		got, err := s.Members.GetMember(ctx, m.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, m, *got)

		got, err = s.Members.GetMember(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.ErrorIs(t, s.Members.DeleteMember(ctx, "missing"), ErrNotFound)
	})
}

func TestMembers_DeleteCascades(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		gone := mustCreateMember(t, s, "gone")
		kept := mustCreateMember(t, s, "kept")

		for _, date := range []string{"2024-01-01", "2024-01-02"} {
			_, err := s.Attendance.ReplaceAttendanceForDate(ctx, date, []models.AttendanceEntry{
				{MemberID: gone.ID, Status: models.StatusPresent},
				{MemberID: kept.ID, Status: models.StatusLate},
			})
			require.NoError(t, err)
		}
		for _, id := range []string{gone.ID, kept.ID, gone.ID} {
			p := models.Performance{MemberID: id, Category: "Robotics", Score: 70, Rating: 3}
			require.NoError(t, s.Performance.CreatePerformance(ctx, &p))
		}

		require.NoError(t, s.Members.DeleteMember(ctx, gone.ID))

		att, err := s.Attendance.ListAttendanceBetween(ctx, "2024-01-01", "2024-01-02")
		require.NoError(t, err)
		assert.Equal(t, []string{kept.ID, kept.ID}, memberIDs(att))

		perf, err := s.Performance.ListPerformance(ctx)
		require.NoError(t, err)
		require.Len(t, perf, 1)
		assert.Equal(t, kept.ID, perf[0].MemberID)
	})
}

func TestAttendance_ReplaceForDate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		m1 := mustCreateMember(t, s, "m1")
		m2 := mustCreateMember(t, s, "m2")

		_, err := s.Attendance.ReplaceAttendanceForDate(ctx, "2024-03-01", []models.AttendanceEntry{
			{MemberID: m1.ID, Status: models.StatusPresent},
		})
		require.NoError(t, err)

		stored, err := s.Attendance.ReplaceAttendanceForDate(ctx, "2024-03-02", []models.AttendanceEntry{
			{MemberID: m1.ID, Status: models.StatusPresent},
			{MemberID: m2.ID, Status: models.StatusLate},
			{MemberID: "X", Status: models.StatusPresent},
		})
		require.NoError(t, err)
		assert.Len(t, stored, 2)

		stored, err = s.Attendance.ReplaceAttendanceForDate(ctx, "2024-03-02", []models.AttendanceEntry{
			{MemberID: m2.ID, Status: models.StatusAbsent},
		})
		require.NoError(t, err)
		require.Len(t, stored, 1)

		list, err := s.Attendance.ListAttendanceByDate(ctx, "2024-03-02")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, m2.ID, list[0].MemberID)
		assert.Equal(t, models.StatusAbsent, list[0].Status)
		assert.Equal(t, "2024-03-02", list[0].Date)
		assert.Equal(t, stored[0].ID, list[0].ID)

		other, err := s.Attendance.ListAttendanceByDate(ctx, "2024-03-01")
		require.NoError(t, err)
		assert.Len(t, other, 1)

		stored, err = s.Attendance.ReplaceAttendanceForDate(ctx, "2024-03-02", nil)
		require.NoError(t, err)
		assert.Empty(t, stored)

		list, err = s.Attendance.ListAttendanceByDate(ctx, "2024-03-02")
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestAttendance_ReplaceCollapsesDuplicates(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		m1 := mustCreateMember(t, s, "m1")
		m2 := mustCreateMember(t, s, "m2")

		stored, err := s.Attendance.ReplaceAttendanceForDate(ctx, "2024-04-01", []models.AttendanceEntry{
			{MemberID: m1.ID, Status: models.StatusLate},
			{MemberID: m2.ID, Status: models.StatusPresent},
			{MemberID: m1.ID, Status: models.StatusExcused},
		})
		require.NoError(t, err)
		require.Len(t, stored, 2)

		list, err := s.Attendance.ListAttendanceByDate(ctx, "2024-04-01")
		require.NoError(t, err)
		require.Len(t, list, 2)
		got := map[string]models.AttendanceStatus{}
		for _, a := range list {
			got[a.MemberID] = a.Status
		}
		assert.Equal(t, map[string]models.AttendanceStatus{
			m1.ID: models.StatusExcused,
			m2.ID: models.StatusPresent,
		}, got)
		assert.ElementsMatch(t, stored, list)
	})
}

func TestAttendance_ConcurrentReplaceForSameDate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		m1 := mustCreateMember(t, s, "m1")
		m2 := mustCreateMember(t, s, "m2")
		statuses := []models.AttendanceStatus{
			models.StatusPresent, models.StatusLate, models.StatusAbsent, models.StatusExcused,
		}

		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(status models.AttendanceStatus) {
				defer wg.Done()
				_, err := s.Attendance.ReplaceAttendanceForDate(ctx, "2024-04-02", []models.AttendanceEntry{
					{MemberID: m1.ID, Status: status},
					{MemberID: m2.ID, Status: status},
				})
				errs <- err
			}(statuses[i%len(statuses)])
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}

		list, err := s.Attendance.ListAttendanceByDate(ctx, "2024-04-02")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{m1.ID, m2.ID}, memberIDs(list))
	})
}

func TestAttendance_ListBetweenIsInclusive(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		m := mustCreateMember(t, s, "m")
		for _, date := range []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"} {
			_, err := s.Attendance.ReplaceAttendanceForDate(ctx, date, []models.AttendanceEntry{
				{MemberID: m.ID, Status: models.StatusPresent},
			})
			require.NoError(t, err)
		}

		list, err := s.Attendance.ListAttendanceBetween(ctx, "2024-02-28", "2024-02-29")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "2024-02-28", list[0].Date)
		assert.Equal(t, "2024-02-29", list[1].Date)
	})
}

func TestPerformance_OrderAndRecentCount(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		m := mustCreateMember(t, s, "m")
		now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

		for _, age := range []time.Duration{3 * 24 * time.Hour, 10 * 24 * time.Hour, time.Hour} {
			p := models.Performance{MemberID: m.ID, Category: "Robotics", Score: 61.5, Rating: 4, CreatedAt: now.Add(-age)}
			require.NoError(t, s.Performance.CreatePerformance(ctx, &p))
			assert.NotEmpty(t, p.ID)
		}

		list, err := s.Performance.ListPerformance(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.True(t, list[0].CreatedAt.Equal(now.Add(-10*24*time.Hour)))
		assert.True(t, list[2].CreatedAt.Equal(now.Add(-time.Hour)))
		assert.Equal(t, 61.5, list[0].Score)
		assert.Equal(t, 4, list[0].Rating)

		n, err := s.Performance.CountPerformanceSince(ctx, now.Add(-7*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vinyasaclub/models"
)

// MemoryStore keeps every record for the life of the process. It implements
// all four repository interfaces behind one lock so that member deletion
// cascades atomically.
type MemoryStore struct {
	mu          sync.RWMutex
	users       []models.AppUser
	members     []models.Member
	attendance  []models.Attendance
	performance []models.Performance
	vinSeq      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ------------------------ Users ------------------------

func (s *MemoryStore) CreateUser(_ context.Context, user *models.AppUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.AppUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// ------------------------ Members ------------------------

func (s *MemoryStore) ListMembers(_ context.Context) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Member{}, s.members...), nil
}

func (s *MemoryStore) GetMember(_ context.Context, id string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.memberIndex(id); i >= 0 {
		m := s.members[i]
		return &m, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateMember(_ context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vinSeq++
	member.ID = uuid.NewString()
	member.Seq = s.vinSeq
	member.VIN = models.FormatVIN(s.vinSeq)
	s.members = append(s.members, *member)
	return nil
}

func (s *MemoryStore) DeleteMember(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.memberIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.members = append(s.members[:i], s.members[i+1:]...)

	kept := s.attendance[:0]
	for _, a := range s.attendance {
		if a.MemberID != id {
			kept = append(kept, a)
		}
	}
	s.attendance = kept

	keptPerf := s.performance[:0]
	for _, p := range s.performance {
		if p.MemberID != id {
			keptPerf = append(keptPerf, p)
		}
	}
	s.performance = keptPerf
	return nil
}

func (s *MemoryStore) CountMembers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members), nil
}

// memberIndex must be called with s.mu held.
func (s *MemoryStore) memberIndex(id string) int {
	for i, m := range s.members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// ------------------------ Attendance ------------------------

func (s *MemoryStore) ListAttendanceByDate(ctx context.Context, date string) ([]models.Attendance, error) {
	return s.ListAttendanceBetween(ctx, date, date)
}

func (s *MemoryStore) ListAttendanceBetween(_ context.Context, from, to string) ([]models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := []models.Attendance{}
	for _, a := range s.attendance {
		if a.Date >= from && a.Date <= to {
			list = append(list, a)
		}
	}
	sortAttendance(list)
	return list, nil
}

func (s *MemoryStore) ReplaceAttendanceForDate(_ context.Context, date string, entries []models.AttendanceEntry) ([]models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.attendance[:0]
	for _, a := range s.attendance {
		if a.Date != date {
			kept = append(kept, a)
		}
	}
	s.attendance = kept

	stored := []models.Attendance{}
	pos := map[string]int{}
	for _, e := range entries {
		if s.memberIndex(e.MemberID) < 0 {
			continue
		}
		if i, seen := pos[e.MemberID]; seen {
			stored[i].Status = e.Status
			continue
		}
		pos[e.MemberID] = len(stored)
		stored = append(stored, models.Attendance{
			ID:       uuid.NewString(),
			MemberID: e.MemberID,
			Date:     date,
			Status:   e.Status,
		})
	}
	s.attendance = append(s.attendance, stored...)
	sortAttendance(stored)
	return stored, nil
}

func sortAttendance(list []models.Attendance) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		return list[i].MemberID < list[j].MemberID
	})
}

// ------------------------ Performance ------------------------

func (s *MemoryStore) ListPerformance(_ context.Context) ([]models.Performance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := append([]models.Performance{}, s.performance...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (s *MemoryStore) CreatePerformance(_ context.Context, perf *models.Performance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	perf.ID = uuid.NewString()
	if perf.CreatedAt.IsZero() {
		perf.CreatedAt = time.Now().UTC()
	}
	s.performance = append(s.performance, *perf)
	return nil
}

func (s *MemoryStore) CountPerformanceSince(_ context.Context, t time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, p := range s.performance {
		if p.CreatedAt.After(t) {
			n++
		}
	}
	return n, nil
}

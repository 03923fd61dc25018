// Package memory provides in-memory implementations of the
// repository interfaces. They back the handler tests so the HTTP
// layer can be exercised without a MySQL instance; behavior mirrors
// the SQL implementations including sentinel errors.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/employee-dashboard/internal/model"
	"github.com/iliyamo/employee-dashboard/internal/repository"
)

// UserStore is an in-memory repository.UserStore.
type UserStore struct {
	mu       sync.Mutex
	nextID   uint64
	users    map[uint64]model.User
	profiles map[uint64]model.Profile
}

func NewUserStore() *UserStore {
	return &UserStore{
		nextID:   1,
		users:    make(map[uint64]model.User),
		profiles: make(map[uint64]model.Profile),
	}
}

func (s *UserStore) Register(_ context.Context, u model.User, p model.Profile) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.users {
		if strings.EqualFold(ex.Email, u.Email) {
			return 0, repository.ErrEmailExists
		}
		if ex.Username == u.Username {
			return 0, repository.ErrUsernameExists
		}
	}
	u.ID = s.nextID
	s.nextID++
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	p.UserID = u.ID
	s.users[u.ID] = u
	s.profiles[u.ID] = p
	return u.ID, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == strings.TrimSpace(username) {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *UserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

// setPassword replaces a user's credential hash; used by the token
// store during redemption.
func (s *UserStore) setPassword(id uint64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return nil
}

func (s *UserStore) GetProfile(_ context.Context, userID uint64) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return model.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *UserStore) UpdateProfile(_ context.Context, userID uint64, jobTitle, team string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	p.JobTitle = jobTitle
	p.Team = team
	s.profiles[userID] = p
	return nil
}

// SetHourlyRate is a test helper to adjust a profile's rate directly.
func (s *UserStore) SetHourlyRate(userID uint64, rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profiles[userID]
	p.HourlyRate = rate
	s.profiles[userID] = p
}

// ResetTokenStore is an in-memory repository.ResetTokenStore. It
// holds the user store so redemption can write the new credential in
// the same step that burns the token.
type ResetTokenStore struct {
	mu     sync.Mutex
	nextID uint64
	users  *UserStore
	tokens []model.PasswordResetToken
}

func NewResetTokenStore(users *UserStore) *ResetTokenStore {
	return &ResetTokenStore{nextID: 1, users: users}
}

func (s *ResetTokenStore) Issue(_ context.Context, userID uint64, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tokens[:0]
	for _, t := range s.tokens {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	s.tokens = append(kept, model.PasswordResetToken{
		ID:        s.nextID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	})
	s.nextID++
	return nil
}

func (s *ResetTokenStore) Redeem(_ context.Context, token, passwordHash string, now time.Time) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tokens {
		if t.Token == token {
			if t.Used || !t.ExpiresAt.After(now) {
				return 0, repository.ErrInvalidToken
			}
			// The credential write comes first; the token stays
			// redeemable if it fails.
			if err := s.users.setPassword(t.UserID, passwordHash); err != nil {
				return 0, err
			}
			s.tokens[i].Used = true
			return t.UserID, nil
		}
	}
	return 0, repository.ErrInvalidToken
}

// TokensFor is a test helper returning all stored tokens for a user.
func (s *ResetTokenStore) TokensFor(userID uint64) []model.PasswordResetToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.PasswordResetToken{}
	for _, t := range s.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// Expire is a test helper that forces a token's expiry into the past.
func (s *ResetTokenStore) Expire(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tokens {
		if t.Token == token {
			s.tokens[i].ExpiresAt = time.Now().UTC().Add(-2 * time.Hour)
		}
	}
}

// MessageStore is an in-memory repository.MessageStore.
type MessageStore struct {
	mu       sync.Mutex
	nextID   uint64
	messages map[uint64]model.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{nextID: 1, messages: make(map[uint64]model.Message)}
}

func (s *MessageStore) List(_ context.Context) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MessageStore) Get(_ context.Context, id uint64) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return model.Message{}, repository.ErrNotFound
	}
	return m, nil
}

func (s *MessageStore) Create(_ context.Context, m *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextID
	s.nextID++
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	s.messages[m.ID] = *m
	return nil
}

func (s *MessageStore) Update(_ context.Context, id, authorID uint64, title, content string) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return model.Message{}, repository.ErrNotFound
	}
	if m.AuthorID != authorID {
		return model.Message{}, repository.ErrForbidden
	}
	m.Title = title
	m.Content = content
	m.UpdatedAt = time.Now().UTC()
	s.messages[id] = m
	return m, nil
}

func (s *MessageStore) Delete(_ context.Context, id, authorID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return repository.ErrNotFound
	}
	if m.AuthorID != authorID {
		return repository.ErrForbidden
	}
	delete(s.messages, id)
	return nil
}

// TimesheetStore is an in-memory repository.TimesheetStore.
type TimesheetStore struct {
	mu      sync.Mutex
	nextID  uint64
	entries map[uint64]model.TimesheetEntry
}

func NewTimesheetStore() *TimesheetStore {
	return &TimesheetStore{nextID: 1, entries: make(map[uint64]model.TimesheetEntry)}
}

func (s *TimesheetStore) ListByUser(_ context.Context, userID uint64) ([]model.TimesheetEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TimesheetEntry, 0)
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *TimesheetStore) ListForPeriod(_ context.Context, userID uint64, month, year int) ([]model.TimesheetEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TimesheetEntry, 0)
	for _, e := range s.entries {
		if e.UserID == userID && int(e.Date.Month()) == month && e.Date.Year() == year {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *TimesheetStore) Create(_ context.Context, e *model.TimesheetEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	e.CreatedAt = time.Now().UTC()
	s.entries[e.ID] = *e
	return nil
}

func (s *TimesheetStore) Delete(_ context.Context, id, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return repository.ErrNotFound
	}
	if e.UserID != userID {
		return repository.ErrForbidden
	}
	delete(s.entries, id)
	return nil
}

// ExpenseStore is an in-memory repository.ExpenseStore.
type ExpenseStore struct {
	mu       sync.Mutex
	nextID   uint64
	expenses map[uint64]model.Expense
}

func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{nextID: 1, expenses: make(map[uint64]model.Expense)}
}

func (s *ExpenseStore) ListByUser(_ context.Context, userID uint64) ([]model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Expense, 0)
	for _, e := range s.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *ExpenseStore) Create(_ context.Context, e *model.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	e.CreatedAt = time.Now().UTC()
	s.expenses[e.ID] = *e
	return nil
}

func (s *ExpenseStore) Delete(_ context.Context, id, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok {
		return repository.ErrNotFound
	}
	if e.UserID != userID || e.Status != model.ExpenseStatusPending {
		return repository.ErrForbidden
	}
	delete(s.expenses, id)
	return nil
}

// SetStatus is a test helper to transition an expense's status.
func (s *ExpenseStore) SetStatus(id uint64, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.expenses[id]
	e.Status = status
	s.expenses[id] = e
}

// PayslipStore is an in-memory repository.PayslipStore.
type PayslipStore struct {
	mu       sync.Mutex
	nextID   uint64
	payslips map[uint64]model.Payslip
}

func NewPayslipStore() *PayslipStore {
	return &PayslipStore{nextID: 1, payslips: make(map[uint64]model.Payslip)}
}

func (s *PayslipStore) ListByUser(_ context.Context, userID uint64) ([]model.Payslip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Payslip, 0)
	for _, p := range s.payslips {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

func (s *PayslipStore) GetByIDAndUser(_ context.Context, id, userID uint64) (model.Payslip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payslips[id]
	if !ok || p.UserID != userID {
		return model.Payslip{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *PayslipStore) Exists(_ context.Context, userID uint64, month, year int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payslips {
		if p.UserID == userID && p.Month == month && p.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (s *PayslipStore) Create(_ context.Context, p *model.Payslip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.payslips {
		if ex.UserID == p.UserID && ex.Month == p.Month && ex.Year == p.Year {
			return repository.ErrPayslipExists
		}
	}
	p.ID = s.nextID
	s.nextID++
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	s.payslips[p.ID] = *p
	return nil
}

func (s *PayslipStore) UpdateAmounts(_ context.Context, id uint64, gross, net float64, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payslips[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.GrossAmount = gross
	p.NetAmount = net
	p.SalaryDetails = details
	p.UpdatedAt = time.Now().UTC()
	s.payslips[id] = p
	return nil
}

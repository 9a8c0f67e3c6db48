// Package memstore in-memory репозитории и менеджер транзакций для тестов usecase'ов.
// Возвращает те же sentinel-ошибки, что и postgres репозитории.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// Store общее состояние всех репозиториев
type Store struct {
	mu sync.Mutex

	therapists map[int64]*domain.Therapist
	children   map[int64]*domain.Child
	bookings   map[int64]*domain.Booking
	leaves     map[int64]*domain.Leave
	// отчёты и отзывы по ID бронирования
	reports    map[int64]*domain.SessionReport
	feedback   map[int64]*domain.SessionFeedback

	nextID int64

	// CreateHook вызывается перед вставкой бронирования (для инъекции ошибок)
	CreateHook func(b *domain.Booking) error
}

func New() *Store {
	return &Store{
		therapists: make(map[int64]*domain.Therapist),
		children:   make(map[int64]*domain.Child),
		bookings:   make(map[int64]*domain.Booking),
		leaves:     make(map[int64]*domain.Leave),
		reports:    make(map[int64]*domain.SessionReport),
		feedback:   make(map[int64]*domain.SessionFeedback),
		nextID:     1000,
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddTherapist добавляет терапевта (status active по умолчанию)
func (s *Store) AddTherapist(t domain.Therapist) *domain.Therapist {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.id()
	}
	if t.Status == "" {
		t.Status = domain.TherapistActive
	}
	s.therapists[t.ID] = &t
	return cloneTherapist(&t)
}

// AddChild добавляет профиль ребёнка
func (s *Store) AddChild(c domain.Child) *domain.Child {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.children[c.ID] = &c
	cp := c
	return &cp
}

// AddBooking вставляет бронирование в обход проверок
func (s *Store) AddBooking(b domain.Booking) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.id()
	}
	if b.Status == "" {
		b.Status = domain.StatusScheduled
	}
	if b.DurationMinutes == 0 {
		b.DurationMinutes = domain.SlotDurationMinutes
	}
	b.SlotDate = domain.DateOnly(b.SlotDate)
	s.bookings[b.ID] = &b
	return cloneBooking(&b)
}

// AddLeave добавляет заявку на выходной
func (s *Store) AddLeave(l domain.Leave) *domain.Leave {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		l.ID = s.id()
	}
	if l.Status == "" {
		l.Status = domain.LeavePending
	}
	l.LeaveDate = domain.DateOnly(l.LeaveDate)
	s.leaves[l.ID] = &l
	cp := l
	return &cp
}

// AllBookings снимок всех бронирований, отсортированных по ID
func (s *Store) AllBookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedBookings(s.bookings, func(*domain.Booking) bool { return true })
}

// Leave снимок заявки
func (s *Store) Leave(id int64) *domain.Leave {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leaves[id]
	if !ok {
		return nil
	}
	cp := *l
	return &cp
}

type snapshot struct {
	therapists map[int64]*domain.Therapist
	children   map[int64]*domain.Child
	bookings   map[int64]*domain.Booking
	leaves     map[int64]*domain.Leave
	reports    map[int64]*domain.SessionReport
	feedback   map[int64]*domain.SessionFeedback
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		therapists: make(map[int64]*domain.Therapist, len(s.therapists)),
		children:   make(map[int64]*domain.Child, len(s.children)),
		bookings:   make(map[int64]*domain.Booking, len(s.bookings)),
		leaves:     make(map[int64]*domain.Leave, len(s.leaves)),
		reports:    make(map[int64]*domain.SessionReport, len(s.reports)),
		feedback:   make(map[int64]*domain.SessionFeedback, len(s.feedback)),
	}
	for k, v := range s.therapists {
		snap.therapists[k] = cloneTherapist(v)
	}
	for k, v := range s.children {
		c := *v
		snap.children[k] = &c
	}
	for k, v := range s.bookings {
		snap.bookings[k] = cloneBooking(v)
	}
	for k, v := range s.leaves {
		l := *v
		snap.leaves[k] = &l
	}
	for k, v := range s.reports {
		r := *v
		snap.reports[k] = &r
	}
	for k, v := range s.feedback {
		f := *v
		snap.feedback[k] = &f
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.therapists = snap.therapists
	s.children = snap.children
	s.bookings = snap.bookings
	s.leaves = snap.leaves
	s.reports = snap.reports
	s.feedback = snap.feedback
}

type txKey struct{}

// TxManager эмулирует транзакции: откат состояния при ошибке.
// При serialize=true транзакции выполняются строго по очереди
type TxManager struct {
	store     *Store
	serialize bool
	txMu      sync.Mutex
}

func NewTxManager(store *Store, serialize bool) *TxManager {
	return &TxManager{store: store, serialize: serialize}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	if m.serialize {
		m.txMu.Lock()
		defer m.txMu.Unlock()
	}

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		if m.serialize {
			m.store.restore(snap)
		}
		return err
	}
	return nil
}

func cloneTherapist(t *domain.Therapist) *domain.Therapist {
	cp := *t
	cp.ActivatedTimes = append(cp.ActivatedTimes[:0:0], t.ActivatedTimes...)
	return &cp
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	cp := *b
	if b.RecurrenceGroupID != nil {
		id := *b.RecurrenceGroupID
		cp.RecurrenceGroupID = &id
	}
	return &cp
}

func sameDay(a, b time.Time) bool {
	return domain.IsSameDay(a, b)
}

func sameGroup(a *uuid.UUID, b uuid.UUID) bool {
	return a != nil && *a == b
}

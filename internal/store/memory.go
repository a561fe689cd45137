package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gigflow/internal/apperr"
	"gigflow/internal/models"
)

// Memory is an in-process Store used by the service tests. It enforces the
// same commit-time preconditions as the SQL store, with the mutex standing
// in for the gig row lock; it is never held across anything slower than a
// map access.
type Memory struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
	gigs  map[uuid.UUID]models.Gig
	bids  map[uuid.UUID]models.Bid
}

func NewMemory() *Memory {
	return &Memory{
		users: make(map[uuid.UUID]models.User),
		gigs:  make(map[uuid.UUID]models.Gig),
		bids:  make(map[uuid.UUID]models.Bid),
	}
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperr.Conflict("email is already registered")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return &u, nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			out := u
			return &out, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (m *Memory) SaveUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return apperr.NotFound("user not found")
	}
	for _, existing := range m.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return apperr.Conflict("email is already registered")
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) DeleteUserCascade(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return apperr.NotFound("user not found")
	}
	for gid, g := range m.gigs {
		if g.OwnerID == id {
			for bid, b := range m.bids {
				if b.GigID == gid {
					delete(m.bids, bid)
				}
			}
			delete(m.gigs, gid)
		}
	}
	for bid, b := range m.bids {
		if b.FreelancerID == id {
			delete(m.bids, bid)
		}
	}
	delete(m.users, id)
	return nil
}

func (m *Memory) CreateGig(_ context.Context, g *models.Gig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = models.GigOpen
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	m.gigs[g.ID] = *g
	return nil
}

func (m *Memory) GigByID(_ context.Context, id uuid.UUID) (*models.Gig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.gigs[id]
	if !ok {
		return nil, apperr.NotFound("gig not found")
	}
	g.BidCount = m.countBids(id)
	if owner, ok := m.users[g.OwnerID]; ok {
		g.Owner = &owner
	}
	return &g, nil
}

func (m *Memory) OpenGigs(_ context.Context, search string) ([]models.Gig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Gig
	for _, g := range m.gigs {
		if g.Status != models.GigOpen {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(g.Title), strings.ToLower(search)) {
			continue
		}
		g.BidCount = m.countBids(g.ID)
		if owner, ok := m.users[g.OwnerID]; ok {
			g.Owner = &owner
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) GigsByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Gig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Gig
	for _, g := range m.gigs {
		if g.OwnerID == ownerID {
			g.BidCount = m.countBids(g.ID)
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) SetGigStatus(_ context.Context, gigID uuid.UUID, from, to models.GigStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.gigs[gigID]
	if !ok || g.Status != from {
		return apperr.InvalidState("gig is no longer " + strings.ToLower(string(from)))
	}
	g.Status = to
	m.gigs[gigID] = g
	return nil
}

func (m *Memory) DeleteGigCascade(_ context.Context, gigID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.gigs[gigID]; !ok {
		return apperr.NotFound("gig not found")
	}
	for id, b := range m.bids {
		if b.GigID == gigID {
			delete(m.bids, id)
		}
	}
	delete(m.gigs, gigID)
	return nil
}

func (m *Memory) CreateBid(_ context.Context, b *models.Bid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	gig, ok := m.gigs[b.GigID]
	if !ok || gig.Status != models.GigOpen {
		return apperr.InvalidState("gig is no longer open")
	}
	for _, existing := range m.bids {
		if existing.GigID == b.GigID && existing.FreelancerID == b.FreelancerID {
			return apperr.Conflict("you have already placed a bid on this gig")
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = models.BidPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	m.bids[b.ID] = *b
	return nil
}

func (m *Memory) BidByID(_ context.Context, id uuid.UUID) (*models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bids[id]
	if !ok {
		return nil, apperr.NotFound("bid not found")
	}
	return &b, nil
}

func (m *Memory) BidForGig(_ context.Context, gigID, freelancerID uuid.UUID) (*models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bids {
		if b.GigID == gigID && b.FreelancerID == freelancerID {
			out := b
			return &out, nil
		}
	}
	return nil, apperr.NotFound("bid not found")
}

func (m *Memory) BidsForGig(_ context.Context, gigID uuid.UUID) ([]models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Bid
	for _, b := range m.bids {
		if b.GigID == gigID {
			if f, ok := m.users[b.FreelancerID]; ok {
				b.Freelancer = &f
			}
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) BidsByFreelancer(_ context.Context, freelancerID uuid.UUID) ([]models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Bid
	for _, b := range m.bids {
		if b.FreelancerID == freelancerID {
			if g, ok := m.gigs[b.GigID]; ok {
				gig := g
				if owner, ok := m.users[g.OwnerID]; ok {
					gig.Owner = &owner
				}
				b.Gig = &gig
			}
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ApplyHire(_ context.Context, gigID, bidID uuid.UUID) (*models.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gig, ok := m.gigs[gigID]
	if !ok {
		return nil, apperr.NotFound("gig not found")
	}
	if gig.Status != models.GigOpen {
		return nil, apperr.InvalidState("gig is already assigned")
	}
	winner, ok := m.bids[bidID]
	if !ok || winner.GigID != gigID {
		return nil, apperr.NotFound("bid not found")
	}

	gig.Status = models.GigAssigned
	m.gigs[gigID] = gig

	winner.Status = models.BidHired
	m.bids[bidID] = winner

	for id, b := range m.bids {
		if b.GigID == gigID && b.ID != bidID && b.Status == models.BidPending {
			b.Status = models.BidRejected
			m.bids[id] = b
		}
	}

	if f, ok := m.users[winner.FreelancerID]; ok {
		winner.Freelancer = &f
	}
	return &winner, nil
}

func (m *Memory) countBids(gigID uuid.UUID) int64 {
	var n int64
	for _, b := range m.bids {
		if b.GigID == gigID {
			n++
		}
	}
	return n
}

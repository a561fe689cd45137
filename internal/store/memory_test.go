package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gigflow/internal/apperr"
	"gigflow/internal/models"
)

func TestSaveUserRejectsDuplicateEmail(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	a := &models.User{Name: "a", Email: "a@example.com", Role: models.RoleClient}
	require.NoError(t, st.CreateUser(ctx, a))
	b := &models.User{Name: "b", Email: "b@example.com", Role: models.RoleClient}
	require.NoError(t, st.CreateUser(ctx, b))

	b.Email = "a@example.com"
	err := st.SaveUser(ctx, b)
	require.True(t, apperr.IsCode(err, apperr.CodeConflict))

	// saving without changing the email is not a self-conflict
	a.Name = "renamed"
	require.NoError(t, st.SaveUser(ctx, a))
}

func TestBidsByFreelancerToleratesMissingGig(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	owner := &models.User{Name: "client", Email: "client@example.com", Role: models.RoleClient}
	require.NoError(t, st.CreateUser(ctx, owner))
	dev := &models.User{Name: "dev", Email: "dev@example.com", Role: models.RoleFreelancer}
	require.NoError(t, st.CreateUser(ctx, dev))

	kept := &models.Gig{OwnerID: owner.ID, Title: "kept", Description: "d", Budget: 100, Status: models.GigOpen}
	require.NoError(t, st.CreateGig(ctx, kept))
	doomed := &models.Gig{OwnerID: owner.ID, Title: "doomed", Description: "d", Budget: 100, Status: models.GigOpen}
	require.NoError(t, st.CreateGig(ctx, doomed))

	require.NoError(t, st.CreateBid(ctx, &models.Bid{GigID: kept.ID, FreelancerID: dev.ID, Message: "m", Price: 50, Status: models.BidPending}))
	require.NoError(t, st.CreateBid(ctx, &models.Bid{GigID: doomed.ID, FreelancerID: dev.ID, Message: "m", Price: 60, Status: models.BidPending}))

	// gig row gone, bid row still present: the window a concurrent
	// cascade delete leaves mid-listing
	st.mu.Lock()
	delete(st.gigs, doomed.ID)
	st.mu.Unlock()

	bids, err := st.BidsByFreelancer(ctx, dev.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)

	byGig := map[string]*models.Gig{}
	for _, b := range bids {
		byGig[b.GigID.String()] = b.Gig
	}
	require.Nil(t, byGig[doomed.ID.String()])
	require.NotNil(t, byGig[kept.ID.String()])
	require.Equal(t, "kept", byGig[kept.ID.String()].Title)
}

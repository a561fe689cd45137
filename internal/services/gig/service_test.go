package gig

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"gigflow/internal/apperr"
	"gigflow/internal/models"
	"gigflow/internal/store"
)

func newUser(t *testing.T, st store.Store, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Name:       "user-" + uuid.New().String()[:8],
		Email:      uuid.New().String()[:8] + "@example.com",
		Role:       role,
		IsVerified: true,
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func TestCreateGig(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	owner := newUser(t, st, models.RoleClient)

	g, err := svc.Create(context.Background(), owner.ID, CreateInput{
		Title:       "Build a landing page",
		Description: "Single page, responsive",
		Budget:      500,
	})
	require.NoError(t, err)
	require.Equal(t, models.GigOpen, g.Status)
	require.Equal(t, owner.ID, g.OwnerID)
	require.NotEqual(t, uuid.Nil, g.ID)
}

func TestCreateGigValidation(t *testing.T) {
	svc := NewService(store.NewMemory())
	ownerID := uuid.New()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"empty title", CreateInput{Title: "  ", Description: "d", Budget: 100}},
		{"empty description", CreateInput{Title: "t", Budget: 100}},
		{"zero budget", CreateInput{Title: "t", Description: "d"}},
		{"negative budget", CreateInput{Title: "t", Description: "d", Budget: -10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), ownerID, tc.in)
			require.True(t, apperr.IsCode(err, apperr.CodeValidation))
		})
	}
}

func TestListOpenFiltersStatusAndSearch(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	owner := newUser(t, st, models.RoleClient)

	open, err := svc.Create(context.Background(), owner.ID, CreateInput{Title: "React dashboard", Description: "d", Budget: 300})
	require.NoError(t, err)
	closed, err := svc.Create(context.Background(), owner.ID, CreateInput{Title: "Logo design", Description: "d", Budget: 100})
	require.NoError(t, err)
	_, err = svc.Close(context.Background(), closed.ID, owner.ID)
	require.NoError(t, err)

	gigs, err := svc.ListOpen(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, gigs, 1)
	require.Equal(t, open.ID, gigs[0].ID)

	gigs, err = svc.ListOpen(context.Background(), "react")
	require.NoError(t, err)
	require.Len(t, gigs, 1)

	gigs, err = svc.ListOpen(context.Background(), "logo")
	require.NoError(t, err)
	require.Empty(t, gigs)
}

func TestCloseGig(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	owner := newUser(t, st, models.RoleClient)
	stranger := newUser(t, st, models.RoleClient)

	g, err := svc.Create(context.Background(), owner.ID, CreateInput{Title: "t", Description: "d", Budget: 100})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), g.ID, stranger.ID)
	require.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	updated, err := svc.Close(context.Background(), g.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, models.GigClosed, updated.Status)

	// closing twice fails on the status guard
	_, err = svc.Close(context.Background(), g.ID, owner.ID)
	require.True(t, apperr.IsCode(err, apperr.CodeInvalidState))
}

func TestDeleteGig(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	ctx := context.Background()
	owner := newUser(t, st, models.RoleClient)
	freelancer := newUser(t, st, models.RoleFreelancer)

	g, err := svc.Create(ctx, owner.ID, CreateInput{Title: "t", Description: "d", Budget: 100})
	require.NoError(t, err)
	b := &models.Bid{GigID: g.ID, FreelancerID: freelancer.ID, Message: "m", Price: 80, Status: models.BidPending}
	require.NoError(t, st.CreateBid(ctx, b))

	require.True(t, apperr.IsCode(svc.Delete(ctx, g.ID, freelancer.ID), apperr.CodeUnauthorized))

	require.NoError(t, svc.Delete(ctx, g.ID, owner.ID))
	_, err = st.GigByID(ctx, g.ID)
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	_, err = st.BidByID(ctx, b.ID)
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestDeleteAssignedGigForbidden(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	ctx := context.Background()
	owner := newUser(t, st, models.RoleClient)
	freelancer := newUser(t, st, models.RoleFreelancer)

	g, err := svc.Create(ctx, owner.ID, CreateInput{Title: "t", Description: "d", Budget: 100})
	require.NoError(t, err)
	b := &models.Bid{GigID: g.ID, FreelancerID: freelancer.ID, Message: "m", Price: 80, Status: models.BidPending}
	require.NoError(t, st.CreateBid(ctx, b))
	_, err = st.ApplyHire(ctx, g.ID, b.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, g.ID, owner.ID)
	require.True(t, apperr.IsCode(err, apperr.CodeInvalidState))
}

func TestGigBidCount(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	ctx := context.Background()
	owner := newUser(t, st, models.RoleClient)

	g, err := svc.Create(ctx, owner.ID, CreateInput{Title: "t", Description: "d", Budget: 100})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		f := newUser(t, st, models.RoleFreelancer)
		require.NoError(t, st.CreateBid(ctx, &models.Bid{GigID: g.ID, FreelancerID: f.ID, Message: "m", Price: 50, Status: models.BidPending}))
	}

	got, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, got.BidCount)
}

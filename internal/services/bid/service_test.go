package bid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"gigflow/internal/apperr"
	"gigflow/internal/models"
	"gigflow/internal/store"
)

type fixture struct {
	st         *store.Memory
	svc        *Service
	owner      *models.User
	freelancer *models.User
	gig        *models.Gig
}

func setup(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemory()
	ctx := context.Background()

	owner := &models.User{Name: "client", Email: "client@example.com", Role: models.RoleClient, IsVerified: true}
	require.NoError(t, st.CreateUser(ctx, owner))
	freelancer := &models.User{Name: "dev", Email: "dev@example.com", Role: models.RoleFreelancer, IsVerified: true}
	require.NoError(t, st.CreateUser(ctx, freelancer))

	g := &models.Gig{OwnerID: owner.ID, Title: "API integration", Description: "d", Budget: 500, Status: models.GigOpen}
	require.NoError(t, st.CreateGig(ctx, g))

	return &fixture{st: st, svc: NewService(st), owner: owner, freelancer: freelancer, gig: g}
}

func TestCreateBid(t *testing.T) {
	f := setup(t)

	b, err := f.svc.Create(context.Background(), f.freelancer.ID, CreateInput{
		GigID:   f.gig.ID,
		Message: "I can do this in a week",
		Price:   450,
	})
	require.NoError(t, err)
	require.Equal(t, models.BidPending, b.Status)
	require.Equal(t, f.gig.ID, b.GigID)
	require.Equal(t, f.freelancer.ID, b.FreelancerID)
}

func TestCreateBidValidation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), f.freelancer.ID, CreateInput{GigID: f.gig.ID, Message: " ", Price: 100})
	require.True(t, apperr.IsCode(err, apperr.CodeValidation))

	_, err = f.svc.Create(context.Background(), f.freelancer.ID, CreateInput{GigID: f.gig.ID, Message: "m", Price: 0})
	require.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestCreateBidSelfBidRejected(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), f.owner.ID, CreateInput{GigID: f.gig.ID, Message: "m", Price: 100})
	require.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
}

func TestCreateBidDuplicateRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.freelancer.ID, CreateInput{GigID: f.gig.ID, Message: "first", Price: 100})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.freelancer.ID, CreateInput{GigID: f.gig.ID, Message: "second", Price: 90})
	require.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestCreateBidOnNonOpenGig(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.st.SetGigStatus(ctx, f.gig.ID, models.GigOpen, models.GigClosed))

	_, err := f.svc.Create(ctx, f.freelancer.ID, CreateInput{GigID: f.gig.ID, Message: "m", Price: 100})
	require.True(t, apperr.IsCode(err, apperr.CodeInvalidState))
}

func TestCreateBidOnMissingGig(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), f.freelancer.ID, CreateInput{GigID: uuid.New(), Message: "m", Price: 100})
	require.True(t, apperr.IsCode(err, apperr.CodeInvalidState))
}

func TestListForGigOwnerOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.freelancer.ID, CreateInput{GigID: f.gig.ID, Message: "m", Price: 100})
	require.NoError(t, err)

	_, err = f.svc.ListForGig(ctx, f.gig.ID, f.freelancer.ID)
	require.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	bids, err := f.svc.ListForGig(ctx, f.gig.ID, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	require.NotNil(t, bids[0].Freelancer)
	require.Equal(t, f.freelancer.Email, bids[0].Freelancer.Email)
}

func TestFindMine(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.FindMine(ctx, f.gig.ID, f.freelancer.ID)
	require.NoError(t, err)
	require.Nil(t, b)

	created, err := f.svc.Create(ctx, f.freelancer.ID, CreateInput{GigID: f.gig.ID, Message: "m", Price: 100})
	require.NoError(t, err)

	b, err = f.svc.FindMine(ctx, f.gig.ID, f.freelancer.ID)
	require.NoError(t, err)
	require.NotNil(t, b)
	require.Equal(t, created.ID, b.ID)
}

func TestListMineJoinsGig(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.freelancer.ID, CreateInput{GigID: f.gig.ID, Message: "m", Price: 100})
	require.NoError(t, err)

	bids, err := f.svc.ListMine(ctx, f.freelancer.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	require.NotNil(t, bids[0].Gig)
	require.Equal(t, f.gig.Title, bids[0].Gig.Title)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository/memory"
)

func TestCreateJobRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")
	alice := env.login(t, "alice", "alice-secret")

	input := CreateJobInput{Title: "Engineer", Company: "Acme", Location: "x", Description: "x", Requirements: "x", Salary: "x"}

	_, err := env.catalog.CreateJob(ctx, alice, input)
	assert.ErrorIs(t, err, ErrAuthorization)

	_, err = env.catalog.CreateJob(ctx, nil, input)
	assert.ErrorIs(t, err, ErrAuthentication)

	jobs, err := env.catalog.ListJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestCreateJobValidatesFields(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.adminSession(t)

	_, err := env.catalog.CreateJob(ctx, admin, CreateJobInput{Title: "Engineer", Company: "Acme"})
	require.ErrorIs(t, err, ErrValidation)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "location")
	assert.Contains(t, validationErr.Fields, "salary")
	assert.NotContains(t, validationErr.Fields, "title")
}

func TestListAndGetJobs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.adminSession(t)

	jobs, err := env.catalog.ListJobs(ctx)
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)

	first := env.createJob(t, admin, "Engineer")
	second := env.createJob(t, admin, "Designer")
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	jobs, err = env.catalog.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID)
	assert.Equal(t, first.ID, jobs[1].ID)

	got, err := env.catalog.GetJob(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Title)
	assert.Equal(t, "Acme", got.Company)

	_, err = env.catalog.GetJob(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

type brokenJobStore struct {
	*memory.Store
}

func (brokenJobStore) GetAllJobs(ctx context.Context) ([]*domain.Job, error) {
	return nil, errors.New("connection reset")
}

func TestListJobsStorageError(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	catalog := NewCatalog(brokenJobStore{memory.New()}, validator)
	_, err = catalog.ListJobs(context.Background())
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, ErrStorage.Error(), Message(err))
}

package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository/memory"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []domain.MailMessage
	err      error
}

func (n *recordingNotifier) Notify(ctx context.Context, msg domain.MailMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return n.err
}

func (n *recordingNotifier) sent() []domain.MailMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.MailMessage(nil), n.messages...)
}

type testEnv struct {
	cfg          *config.Config
	store        *memory.Store
	sessions     *session.MemoryStore
	notifier     *recordingNotifier
	identity     *Identity
	catalog      *Catalog
	applications *Applications
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Password.BcryptCost = bcrypt.MinCost
	cfg.Session.Expiration = 3600
	cfg.Email.UserDomain = "jobhub.test"
	cfg.InitialAdmin.Username = "Admin"
	cfg.InitialAdmin.Password = "Admin"
	cfg.InitialAdmin.FullName = "Administrator"
	cfg.InitialAdmin.FirstName = "Admin"
	cfg.InitialAdmin.DateOfBirth = "2000-01-01"
	cfg.InitialAdmin.Gender = "Other"
	return cfg
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, memory.New())
}

func newTestEnvWithStore(t *testing.T, store *memory.Store) *testEnv {
	t.Helper()

	cfg := testConfig()
	validator, err := NewValidator()
	require.NoError(t, err)

	require.NoError(t, Bootstrap(context.Background(), cfg, store, BcryptHasher{Cost: cfg.Password.BcryptCost}))

	sessions := session.NewMemoryStore()
	notifier := &recordingNotifier{}
	identity := NewIdentity(cfg, store, sessions, notifier, validator)
	catalog := NewCatalog(store, validator)

	return &testEnv{
		cfg:          cfg,
		store:        store,
		sessions:     sessions,
		notifier:     notifier,
		identity:     identity,
		catalog:      catalog,
		applications: NewApplications(store, catalog, identity, notifier, validator),
	}
}

func (e *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()

	user, err := e.identity.Register(context.Background(), RegisterInput{
		Username:    username,
		Password:    username + "-secret",
		FullName:    username + " Liddell",
		FirstName:   username,
		DateOfBirth: "1999-09-09",
		Gender:      "Female",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) login(t *testing.T, username, password string) *domain.Session {
	t.Helper()

	sess, err := e.identity.Login(context.Background(), LoginInput{Username: username, Password: password})
	require.NoError(t, err)
	return sess
}

func (e *testEnv) adminSession(t *testing.T) *domain.Session {
	t.Helper()
	return e.login(t, e.cfg.InitialAdmin.Username, e.cfg.InitialAdmin.Password)
}

func (e *testEnv) createJob(t *testing.T, admin *domain.Session, title string) *domain.Job {
	t.Helper()

	job, err := e.catalog.CreateJob(context.Background(), admin, CreateJobInput{
		Title:        title,
		Company:      "Acme",
		Location:     "Guangzhou",
		Description:  "Build things",
		Requirements: "Go",
		Salary:       "20k",
	})
	require.NoError(t, err)
	return job
}

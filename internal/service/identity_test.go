package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository/memory"
)

func TestBootstrapCreatesSingleAdmin(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	// 两次启动使用同一个存储
	newTestEnvWithStore(t, store)
	env := newTestEnvWithStore(t, store)

	users, err := store.GetAllUsers(ctx)
	require.NoError(t, err)

	admins := 0
	for _, user := range users {
		if user.IsAdmin {
			admins++
			assert.Equal(t, "Admin", user.Username)
			assert.Equal(t, "Administrator", user.FullName)
		}
	}
	assert.Equal(t, 1, admins)
	assert.Len(t, users, 1)

	sess := env.adminSession(t)
	assert.True(t, sess.IsAdmin)
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	user := env.register(t, "alice")
	assert.NotZero(t, user.ID)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "alice-secret", user.PasswordHash)

	sent := env.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, domain.MailTypeWelcome, sent[0].Type)
	assert.Equal(t, "alice@jobhub.test", sent[0].To)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")

	for _, password := range []string{"other", "alice-secret"} {
		_, err := env.identity.Register(ctx, RegisterInput{
			Username:    "alice",
			Password:    password,
			FullName:    "Someone Else",
			FirstName:   "Someone",
			DateOfBirth: "2001-01-01",
			Gender:      "Male",
		})
		assert.ErrorIs(t, err, ErrConflict)
	}

	users, err := env.store.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2) // 初始管理员 + alice
}

func TestRegisterRequiresAllFields(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	complete := RegisterInput{
		Username:    "bob",
		Password:    "pw",
		FullName:    "Bob Builder",
		FirstName:   "Bob",
		DateOfBirth: "1990-01-01",
		Gender:      "Male",
	}

	tests := []struct {
		field  string
		mutate func(*RegisterInput)
	}{
		{"username", func(in *RegisterInput) { in.Username = "" }},
		{"password", func(in *RegisterInput) { in.Password = "" }},
		{"fullName", func(in *RegisterInput) { in.FullName = "" }},
		{"firstName", func(in *RegisterInput) { in.FirstName = "" }},
		{"dateOfBirth", func(in *RegisterInput) { in.DateOfBirth = "" }},
		{"gender", func(in *RegisterInput) { in.Gender = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			input := complete
			tt.mutate(&input)

			_, err := env.identity.Register(ctx, input)
			require.ErrorIs(t, err, ErrValidation)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tt.field)
			assert.NotEmpty(t, validationErr.Message)
		})
	}

	exists, err := env.store.CheckUsernameIfExists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegisterRejectsPasswordOver72Bytes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	input := RegisterInput{
		Username:    "dave",
		FullName:    "Dave Lister",
		FirstName:   "Dave",
		DateOfBirth: "1990-01-01",
		Gender:      "Male",
	}

	// 长度按字节计算：25 个汉字只有 25 个字符，但有 75 个字节
	for _, password := range []string{strings.Repeat("a", 80), strings.Repeat("密", 25)} {
		input.Password = password
		_, err := env.identity.Register(ctx, input)
		require.ErrorIs(t, err, ErrValidation)
		assert.NotErrorIs(t, err, ErrStorage)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "password")
	}

	exists, err := env.store.CheckUsernameIfExists(ctx, "dave")
	require.NoError(t, err)
	assert.False(t, exists)

	input.Password = strings.Repeat("密", 24)
	_, err = env.identity.Register(ctx, input)
	require.NoError(t, err)
}

func TestRegisterSurvivesNotifierFailure(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.err = assert.AnError

	user := env.register(t, "carol")
	assert.NotZero(t, user.ID)
}

func TestLoginDoesNotRevealWhichPartIsWrong(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")

	_, wrongPassword := env.identity.Login(ctx, LoginInput{Username: "alice", Password: "nope"})
	_, unknownUser := env.identity.Login(ctx, LoginInput{Username: "nobody", Password: "nope"})
	_, wrongCase := env.identity.Login(ctx, LoginInput{Username: "Alice", Password: "alice-secret"})

	for _, err := range []error{wrongPassword, unknownUser, wrongCase} {
		require.ErrorIs(t, err, ErrAuthentication)
		assert.Equal(t, Message(wrongPassword), Message(err))
	}
}

func TestLoginWithCorruptedHashIsStorageError(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.store.CreateUser(ctx, &domain.User{
		Username:     "eve",
		PasswordHash: "not-a-bcrypt-hash",
		FullName:     "Eve",
		FirstName:    "Eve",
		DateOfBirth:  "1990-01-01",
		Gender:       "Female",
	}))

	_, err := env.identity.Login(ctx, LoginInput{Username: "eve", Password: "whatever"})
	require.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, ErrStorage.Error(), Message(err))
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.register(t, "alice")

	sess := env.login(t, "alice", "alice-secret")
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, "alice Liddell", sess.FullName)
	assert.False(t, sess.IsAdmin)
	assert.NotEmpty(t, sess.ID)

	restored, err := env.identity.CurrentSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, restored.UserID)

	// 另一个用户的会话互不影响
	other := env.adminSession(t)
	assert.NotEqual(t, sess.ID, other.ID)

	require.NoError(t, env.identity.Logout(ctx, sess.ID))
	_, err = env.identity.CurrentSession(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrAuthentication)

	stillThere, err := env.identity.CurrentSession(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, stillThere.IsAdmin)

	require.NoError(t, env.identity.Logout(ctx, "unknown"))
}

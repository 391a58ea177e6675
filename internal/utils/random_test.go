package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateUsernameFromChineseName(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+[0-9]{1,3}$`)
	for i := 0; i < 20; i++ {
		surname, name := GenerateRandomChineseName()
		username := GenerateUsernameFromChineseName(surname + name)
		assert.Regexp(t, pattern, username)
	}
}

func TestGenerateRandomUser(t *testing.T) {
	user, err := GenerateRandomUser("jobhub@test", bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, user.IsAdmin)
	assert.NotEmpty(t, user.Username)
	assert.Contains(t, user.FullName, user.FirstName)
	assert.Contains(t, genders, user.Gender)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("jobhub@test")))

	_, err = time.Parse(time.DateOnly, user.DateOfBirth)
	assert.NoError(t, err)
}

func TestGenerateRandomJobHasEveryField(t *testing.T) {
	job := GenerateRandomJob()
	for _, field := range []string{job.Title, job.Company, job.Location, job.Description, job.Requirements, job.Salary} {
		assert.NotEmpty(t, field)
	}
}

func TestGenerateRandomSubset(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5}
	for i := 0; i < 20; i++ {
		subset := GenerateRandomSubset(ids)
		require.NotEmpty(t, subset)
		assert.LessOrEqual(t, len(subset), len(ids))

		seen := make(map[int64]bool)
		for _, id := range subset {
			assert.Contains(t, ids, id)
			assert.False(t, seen[id], "重复的元素 %d", id)
			seen[id] = true
		}
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)
	assert.Nil(t, GenerateRandomSubset([]int64{}))
}

func TestGenerateRandomStatus(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.True(t, GenerateRandomStatus().Valid())
	}
	assert.False(t, domain.ApplicationStatus("archived").Valid())
}

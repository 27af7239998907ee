package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stock-predictor/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewService(db, "test-secret", time.Hour)
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	user, err := svc.Register(ctx, "Alice@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	got, err := svc.Authenticate(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDuplicateRegistrationKeepsFirstCredential(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Register(ctx, "bob@example.com", "original-pass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob@example.com", "second-pass")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var stored models.User
	require.NoError(t, svc.db.Where("email = ?", "bob@example.com").First(&stored).Error)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)

	_, err = svc.Authenticate(ctx, "bob@example.com", "original-pass")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "bob@example.com", "second-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateRace(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	// Slip a conflicting row in after Register's lookup but before its
	// insert, the way a concurrent registration would. The row goes
	// through the root handle so it commits independently of Register's
	// transaction.
	root := svc.db
	raced := false
	err := svc.db.Callback().Create().Before("gorm:create").Register("race_duplicate", func(tx *gorm.DB) {
		if raced {
			return
		}
		raced = true
		root.Exec("INSERT INTO users (email, password_hash) VALUES (?, ?)", "frank@example.com", "other-hash")
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, svc.db.Callback().Create().Remove("race_duplicate"))
	})

	_, err = svc.Register(ctx, "frank@example.com", "pass1234")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, svc.db.Model(&models.User{}).Where("email = ?", "frank@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register(context.Background(), "carol@example.com", "pass1234")
	require.NoError(t, err)

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	id, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestParseTokenRejectsGarbageAndWrongKey(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := newTestService(t)
	other.secret = []byte("different-secret")
	user, err := other.Register(context.Background(), "dave@example.com", "pass1234")
	require.NoError(t, err)
	token, err := other.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	svc := newTestService(t)
	svc.tokenTTL = -time.Minute

	user, err := svc.Register(context.Background(), "eve@example.com", "pass1234")
	require.NoError(t, err)

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package service

import (
	"testing"
	"time"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) AuthService {
	return NewAuthService(repository.NewUserRepo(db), newTestHub())
}

func createLoginUser(t *testing.T, db *gorm.DB, email, password string) *model.User {
	t.Helper()
	user := &model.User{Email: email, FullName: "Test User", IsActive: true}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin_RotatesTokenVersion(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	createLoginUser(t, db, "staff@example.com", "secret123")

	first, err := svc.Login("staff@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, first.Token)

	// Login kedua mematikan sesi pertama
	_, err = svc.Login("staff@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(first.Token)
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestLogin_WrongPasswordAndUnknownEmailLookSame(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	createLoginUser(t, db, "staff@example.com", "secret123")

	_, errWrongPass := svc.Login("staff@example.com", "nope")
	_, errNoUser := svc.Login("ghost@example.com", "nope")

	require.Error(t, errWrongPass)
	require.Error(t, errNoUser)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(errWrongPass))
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	user := createLoginUser(t, db, "staff@example.com", "secret123")
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err := svc.Login("staff@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestValidateToken_HappyPathAfterLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	createLoginUser(t, db, "staff@example.com", "secret123")

	resp, err := svc.Login("staff@example.com", "secret123")
	require.NoError(t, err)

	validated, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", validated.User.Email)
}

func TestValidateToken_InactivityTimeout(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	user := createLoginUser(t, db, "staff@example.com", "secret123")

	resp, err := svc.Login("staff@example.com", "secret123")
	require.NoError(t, err)

	stale := time.Now().Add(-InactivityTimeout - time.Minute)
	require.NoError(t, db.Model(user).Update("last_seen_at", stale).Error)

	_, err = svc.ValidateToken(resp.Token)
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	// Heartbeat menyegarkan LastSeenAt dan sesi valid lagi
	require.NoError(t, svc.Heartbeat(user.ID))
	_, err = svc.ValidateToken(resp.Token)
	require.NoError(t, err)
}

func TestResetPassword_InvalidatesOldSessionAndPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	createLoginUser(t, db, "staff@example.com", "secret123")

	resp, err := svc.Login("staff@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword("staff@example.com", "secret123", "newsecret"))

	_, err = svc.Login("staff@example.com", "secret123")
	require.Error(t, err)

	_, err = svc.ValidateToken(resp.Token)
	require.Error(t, err)

	_, err = svc.Login("staff@example.com", "newsecret")
	require.NoError(t, err)
}

func TestResetPassword_WrongOldPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	createLoginUser(t, db, "staff@example.com", "secret123")

	err := svc.ResetPassword("staff@example.com", "wrong", "newsecret")
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

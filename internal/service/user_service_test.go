package service

import (
	"testing"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) UserService {
	t.Helper()
	require.NoError(t, repository.NewPrivilegeRepo(db).SeedDefaults())
	require.NoError(t, repository.NewRoleRepo(db).SeedDefaults())
	return NewUserService(
		repository.NewUserRepo(db),
		repository.NewPrivilegeRepo(db),
		repository.NewRoleRepo(db),
		repository.NewActionLogRepo(db),
		db)
}

func staffRoleID(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	role, err := repository.NewRoleRepo(db).FindByCode(model.RoleStaff)
	require.NoError(t, err)
	return role.ID
}

func TestCreateUser_WritesAuditEntry(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)
	actor := uuid.New()

	user, err := svc.CreateUser(actor, &CreateUserRequest{
		Email:    "staff@example.com",
		Password: "secret123",
		FullName: "Warehouse Staff",
		RoleID:   staffRoleID(t, db),
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.True(t, user.CheckPassword("secret123"))

	var audits []model.ActionLog
	require.NoError(t, db.Where("user_id = ?", actor).Find(&audits).Error)
	require.Len(t, audits, 1)
	assert.Equal(t, model.ActionUserCreated, audits[0].ActionType)
	assert.Equal(t, "User", audits[0].EntityType)
}

func TestCreateUser_RejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)
	roleID := staffRoleID(t, db)

	_, err := svc.CreateUser(uuid.New(), &CreateUserRequest{
		Email: "staff@example.com", Password: "secret123", FullName: "First", RoleID: roleID,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(uuid.New(), &CreateUserRequest{
		Email: "staff@example.com", Password: "secret123", FullName: "Second", RoleID: roleID,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreateUser_UnknownRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	_, err := svc.CreateUser(uuid.New(), &CreateUserRequest{
		Email: "staff@example.com", Password: "secret123", FullName: "Staff", RoleID: 9999,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdateUserPrivileges_UnknownCodesReportedTogether(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	user, err := svc.CreateUser(uuid.New(), &CreateUserRequest{
		Email: "staff@example.com", Password: "secret123", FullName: "Staff",
		RoleID: staffRoleID(t, db),
	})
	require.NoError(t, err)

	_, err = svc.UpdateUserPrivileges(uuid.New(), user.ID, []string{
		"inventory:view", "nope:first", "nope:second",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.ElementsMatch(t, []string{"nope:first", "nope:second"}, apperror.DetailsOf(err))
}

func TestUpdateUserPrivileges_ReplacesSet(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	user, err := svc.CreateUser(uuid.New(), &CreateUserRequest{
		Email: "staff@example.com", Password: "secret123", FullName: "Staff",
		RoleID: staffRoleID(t, db),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUserPrivileges(uuid.New(), user.ID, []string{"inventory:view", "log:view"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"inventory:view", "log:view"}, updated.GetPrivilegeCodes())
}

func TestDeleteUser_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)

	err := svc.DeleteUser(uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

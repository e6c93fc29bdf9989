package service

import (
	"errors"
	"fmt"
	"time"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/pkg/apperror"
	"go-warehouse-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(actorID uuid.UUID, req *CreateUserRequest) (*model.User, error)
	UpdateUser(actorID uuid.UUID, userID uuid.UUID, req *UpdateUserRequest) (*model.User, error)
	DeleteUser(actorID uuid.UUID, userID uuid.UUID) error
	UpdateUserPrivileges(actorID uuid.UUID, userID uuid.UUID, privilegeCodes []string) (*model.User, error)
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number"`
	BirthDate   *string `json:"birth_date"` // Format: YYYY-MM-DD
	RoleID      uint    `json:"role_id" validate:"required"`
}

type UpdateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number"`
	BirthDate   *string `json:"birth_date"` // Format: YYYY-MM-DD
	RoleID      uint    `json:"role_id" validate:"required"`
	IsActive    *bool   `json:"is_active"`
}

type userService struct {
	userRepo      repository.UserRepository
	privilegeRepo repository.PrivilegeRepository
	roleRepo      repository.RoleRepository
	actionLogRepo repository.ActionLogRepository
	db            *gorm.DB
}

func NewUserService(
	userRepo repository.UserRepository,
	privilegeRepo repository.PrivilegeRepository,
	roleRepo repository.RoleRepository,
	actionLogRepo repository.ActionLogRepository,
	db *gorm.DB,
) UserService {
	return &userService{
		userRepo:      userRepo,
		privilegeRepo: privilegeRepo,
		roleRepo:      roleRepo,
		actionLogRepo: actionLogRepo,
		db:            db,
	}
}

func (s *userService) audit(actorID uuid.UUID, actionType, description string) {
	entry := &model.ActionLog{
		UserID:      actorID,
		ActionType:  actionType,
		EntityType:  "User",
		Timestamp:   time.Now(),
		Description: description,
	}
	// Audit failure tidak menggagalkan operasi utamanya
	_ = s.actionLogRepo.Append(s.db, entry)
}

func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, apperror.Validation("invalid birth_date format, use YYYY-MM-DD")
	}
	return &parsed, nil
}

func (s *userService) CreateUser(actorID uuid.UUID, req *CreateUserRequest) (*model.User, error) {
	// 1. Validasi Struct Dasar
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			details = append(details, fmt.Sprintf("Field '%s' failed on tag '%s'", e.FailedField, e.Tag))
		}
		return nil, apperror.Validation("validation failed", details...)
	}

	// 2. Cek Duplikasi Email
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Infrastructure(err)
	}
	if existing != nil {
		return nil, apperror.Validation("email already exists", req.Email)
	}

	// 3. Validasi Role
	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("role %d not found", req.RoleID)
		}
		return nil, apperror.Infrastructure(err)
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		BirthDate:   birthDate,
		RoleID:      &req.RoleID,
		IsActive:    true,
		// Privileges mengikuti role saat create; bisa di-override lewat
		// UpdateUserPrivileges setelahnya
		Privileges: role.Privileges,
	}
	user.CreatedBy = actorID.String()
	user.UpdatedBy = actorID.String()

	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	s.audit(actorID, model.ActionUserCreated, fmt.Sprintf("User %s created with role %s", user.Email, role.Code))
	return user, nil
}

func (s *userService) UpdateUser(actorID uuid.UUID, userID uuid.UUID, req *UpdateUserRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			details = append(details, fmt.Sprintf("Field '%s' failed on tag '%s'", e.FailedField, e.Tag))
		}
		return nil, apperror.Validation("validation failed", details...)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %s not found", userID)
		}
		return nil, apperror.Infrastructure(err)
	}

	// Email hanya dicek kalau berubah
	if req.Email != user.Email {
		existing, err := s.userRepo.FindByEmail(req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Infrastructure(err)
		}
		if existing != nil {
			return nil, apperror.Validation("email already exists", req.Email)
		}
	}

	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("role %d not found", req.RoleID)
		}
		return nil, apperror.Infrastructure(err)
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.BirthDate = birthDate
	user.RoleID = &req.RoleID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = actorID.String()

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, apperror.Infrastructure(err)
		}
	}

	// Save tidak boleh membawa association lama; privilege di-replace terpisah
	user.Privileges = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	// Ganti role berarti privilege mengikuti role baru
	if err := s.userRepo.UpdatePrivileges(userID, role.Privileges); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	s.audit(actorID, model.ActionUserUpdated, fmt.Sprintf("User %s updated", user.Email))

	reloaded, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return reloaded, nil
}

func (s *userService) DeleteUser(actorID uuid.UUID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user %s not found", userID)
		}
		return apperror.Infrastructure(err)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return apperror.Infrastructure(err)
	}

	s.audit(actorID, model.ActionUserDeleted, fmt.Sprintf("User %s deleted", user.Email))
	return nil
}

func (s *userService) UpdateUserPrivileges(actorID uuid.UUID, userID uuid.UUID, privilegeCodes []string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %s not found", userID)
		}
		return nil, apperror.Infrastructure(err)
	}

	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	// Kode yang tidak dikenal dilaporkan semua, bukan diabaikan diam-diam
	if len(privileges) != len(privilegeCodes) {
		found := make(map[string]bool, len(privileges))
		for _, p := range privileges {
			found[p.Code] = true
		}
		var unknown []string
		for _, code := range privilegeCodes {
			if !found[code] {
				unknown = append(unknown, code)
			}
		}
		return nil, apperror.Validation("unknown privilege codes", unknown...)
	}

	user.UpdatedBy = actorID.String()
	user.Privileges = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	if err := s.userRepo.UpdatePrivileges(userID, privileges); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	s.audit(actorID, model.ActionUserPrivilegesChanged,
		fmt.Sprintf("User %s privileges replaced (%d codes)", user.Email, len(privilegeCodes)))

	reloaded, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return reloaded, nil
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %s not found", id)
		}
		return nil, apperror.Infrastructure(err)
	}
	response := user.ToResponse()
	return &response, nil
}

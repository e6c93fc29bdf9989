package service

import (
	"errors"
	"time"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/ws"
	"go-warehouse-ws/pkg/apperror"
	"go-warehouse-ws/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InactivityTimeout memaksa re-login setelah user diam selama durasi ini.
const InactivityTimeout = 5 * time.Minute

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ResetPassword(email, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Heartbeat(userID uuid.UUID) error
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"` // Flat array untuk frontend
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	userRepo repository.UserRepository
	wsHub    *ws.Hub
}

func NewAuthService(userRepo repository.UserRepository, hub *ws.Hub) AuthService {
	return &authService{
		userRepo: userRepo,
		wsHub:    hub,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Pesan sama dengan password salah; jangan bocorkan email mana yang terdaftar
			return nil, apperror.Unauthorized("invalid email or password")
		}
		return nil, apperror.Infrastructure(err)
	}

	if !user.IsActive {
		return nil, apperror.Unauthorized("user account is inactive")
	}

	if !user.CheckPassword(password) {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	roleCode := ""
	if user.Role != nil {
		roleCode = user.Role.Code
	}

	// Single session: token version baru mematikan token lama di device lain.
	// LastSeenAt ikut di-set supaya login tidak langsung kena inactivity timeout.
	now := time.Now()
	user.TokenVersion = uuid.New().String()
	user.LastSeenAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, roleCode, user.GetPrivilegeCodes(), user.TokenVersion)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return apperror.Infrastructure(err)
	}

	if !user.CheckPassword(oldPassword) {
		return apperror.Unauthorized("current password is incorrect")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return apperror.Infrastructure(err)
	}

	// Invalidate sesi yang ada; ganti password harus logout device lain
	user.TokenVersion = uuid.New().String()

	if err := s.userRepo.Update(user); err != nil {
		return apperror.Infrastructure(err)
	}

	return nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, apperror.Unauthorized("invalid or expired token")
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("user not found")
		}
		return nil, apperror.Infrastructure(err)
	}

	if !user.IsActive {
		return nil, apperror.Unauthorized("user account is inactive")
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, apperror.Unauthorized("session expired (logged in on another device)")
	}

	// LastSeenAt nil berarti belum pernah heartbeat sejak login; perlakukan
	// sama dengan timeout dan paksa login ulang
	if user.LastSeenAt == nil || time.Since(*user.LastSeenAt) > InactivityTimeout {
		return nil, apperror.Unauthorized("session expired due to inactivity")
	}

	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	if err := s.userRepo.UpdateLastSeen(userID); err != nil {
		return apperror.Infrastructure(err)
	}

	// Broadcast tiap heartbeat; client yang baru connect langsung dapat status terbaru
	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":         "user_status_update",
		"user_id":      userID.String(),
		"status":       "online",
		"last_seen_at": time.Now(),
	})

	return nil
}

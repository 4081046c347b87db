package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
	"github.com/jhoicas/sucursales-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login, sesión y alta de cuentas del personal.
type AuthUseCase struct {
	userRepo        repository.UserRepository
	jwtCfg          JWTConfig
	defaultPassword string
	orgID           int64 // 0 = sin restricción
}

// NewAuthUseCase construye el caso de uso de auth. defaultPassword es la contraseña inicial de las cuentas nuevas.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, defaultPassword string) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, defaultPassword: defaultPassword}
}

// RestrictToOrg limita el login a las cuentas de la organización de la instancia.
func (uc *AuthUseCase) RestrictToOrg(orgID int64) *AuthUseCase {
	uc.orgID = orgID
	return uc
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || (uc.orgID != 0 && user.OrgID != uc.orgID) {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:     user.ID,
		AuthUserID: user.AuthUserID,
		OrgID:      user.OrgID,
		BranchID:   user.BranchID,
		Type:       user.Type,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      *ToUserResponse(user),
	}, nil
}

// Me devuelve el usuario de la sesión. Un usuario desactivado después de emitir el token queda fuera.
func (uc *AuthUseCase) Me(ctx context.Context, orgID, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return ToUserResponse(user), nil
}

// ChangePassword cambia la contraseña del usuario autenticado.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, orgID, userID int64, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, user.ID, string(hash))
}

// Provision crea la cuenta de acceso y el registro del personal con la contraseña por defecto.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Provision(ctx context.Context, orgID int64, in dto.CreateUserRequest) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if uc.defaultPassword == "" {
		return nil, errors.New("auth: contraseña por defecto no configurada")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(uc.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		AuthUserID:   uuid.New().String(),
		OrgID:        orgID,
		BranchID:     in.BranchID,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Position:     strings.TrimSpace(in.Position),
		Type:         in.Type,
		IsActive:     true,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ToUserResponse convierte la entidad a DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:         u.ID,
		AuthUserID: u.AuthUserID,
		OrgID:      u.OrgID,
		BranchID:   u.BranchID,
		Name:       u.Name,
		Email:      u.Email,
		Position:   u.Position,
		Type:       u.Type,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
	if u.Branch != nil {
		out.BranchName = u.Branch.Name
	}
	return out
}

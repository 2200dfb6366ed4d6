// Package usecase contiene los casos de uso de las entidades del back
// office: usuarios, clientes, proveedores, productos e informes.
package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/huggingsoft/backoffice-api/internal/application/auth"
	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
	"github.com/huggingsoft/backoffice-api/pkg/logger"
)

// UserUseCase gestión de perfil, datos de empresa y sub-usuarios.
type UserUseCase struct {
	userRepo repository.UserRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, log: log, now: time.Now}
}

// GetProfile devuelve el perfil del actor autenticado.
func (uc *UserUseCase) GetProfile(tc *tenant.Context) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(tc.ActorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile actualiza username, email o contexto del actor. La unicidad
// global de username/email aplica también aquí.
func (uc *UserUseCase) UpdateProfile(tc *tenant.Context, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(tc.ActorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	if err := uc.applyUserUpdate(user, req); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// ChangePassword cambia la contraseña del actor verificando la actual.
func (uc *UserUseCase) ChangePassword(tc *tenant.Context, req dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fmt.Errorf("%w: contraseña actual y nueva son obligatorias", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(tc.ActorID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return fmt.Errorf("%w: la contraseña actual no coincide", domain.ErrBusinessRule)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = uc.now()
	return uc.userRepo.Update(user)
}

// UpdateCompanyInfo actualiza los datos de empresa del tenant. Operación
// exclusiva del usuario principal.
func (uc *UserUseCase) UpdateCompanyInfo(tc *tenant.Context, req dto.CompanyInfoUpdateRequest) (*dto.UserResponse, error) {
	if err := tc.RequireMainUser(); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(tc.TenantID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	if req.CompanyName != nil {
		user.CompanyName = *req.CompanyName
	}
	if req.CompanyNIT != nil {
		user.CompanyNIT = *req.CompanyNIT
	}
	if req.CompanyAddress != nil {
		user.CompanyAddress = *req.CompanyAddress
	}
	if req.CompanyPhone != nil {
		user.CompanyPhone = *req.CompanyPhone
	}
	if req.Context != nil {
		user.Context = req.Context
	}
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// CreateSubUser da de alta un sub-usuario bajo el tenant. Solo el usuario
// principal puede hacerlo; los sub-usuarios no anidan.
func (uc *UserUseCase) CreateSubUser(tc *tenant.Context, req dto.CreateSubUserRequest) (*dto.UserResponse, error) {
	if err := tc.RequireMainUser(); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username, email y password son obligatorios", domain.ErrInvalidInput)
	}
	if taken, err := uc.userRepo.ExistsByUsername(username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: el username ya está en uso", domain.ErrConflict)
	}
	if taken, err := uc.userRepo.ExistsByEmail(email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: el email ya está registrado", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	parentID := tc.TenantID
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
		ParentUserID: &parentID,
		Context:      req.Context,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("sub_user_id", user.ID).Str("tenant_id", tc.TenantID).Msg("sub-usuario creado")
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// ListSubUsers lista los sub-usuarios del tenant (solo principal).
func (uc *UserUseCase) ListSubUsers(tc *tenant.Context, active *bool, page dto.PageRequest) (*dto.UserListResponse, error) {
	if err := tc.RequireMainUser(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	users, err := uc.userRepo.ListSubUsers(tc.TenantID, active, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetSubUser devuelve un sub-usuario del tenant (solo principal).
func (uc *UserUseCase) GetSubUser(tc *tenant.Context, id string) (*dto.UserResponse, error) {
	if err := tc.RequireMainUser(); err != nil {
		return nil, err
	}
	user, err := uc.ownedSubUser(tc, id)
	if err != nil {
		return nil, err
	}
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// UpdateSubUser actualiza username, email o contexto de un sub-usuario.
func (uc *UserUseCase) UpdateSubUser(tc *tenant.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := tc.RequireMainUser(); err != nil {
		return nil, err
	}
	user, err := uc.ownedSubUser(tc, id)
	if err != nil {
		return nil, err
	}
	if err := uc.applyUserUpdate(user, req); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// SetSubUserActive activa o desactiva un sub-usuario. Desactivar revoca el
// acceso en la siguiente petición, porque el contexto se resuelve por
// petición contra la base.
func (uc *UserUseCase) SetSubUserActive(tc *tenant.Context, id string, active bool) (*dto.UserResponse, error) {
	if err := tc.RequireMainUser(); err != nil {
		return nil, err
	}
	user, err := uc.ownedSubUser(tc, id)
	if err != nil {
		return nil, err
	}
	user.Active = active
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("sub_user_id", id).Bool("active", active).Msg("estado de sub-usuario cambiado")
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// DeleteSubUser elimina un sub-usuario del tenant. Las transacciones que
// creó conservan su referencia de creador.
func (uc *UserUseCase) DeleteSubUser(tc *tenant.Context, id string) error {
	if err := tc.RequireMainUser(); err != nil {
		return err
	}
	if _, err := uc.ownedSubUser(tc, id); err != nil {
		return err
	}
	if err := uc.userRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("sub_user_id", id).Str("tenant_id", tc.TenantID).Msg("sub-usuario eliminado")
	return nil
}

// DeleteAccount elimina la cuenta principal del tenant, previa verificación
// de la contraseña. Primero caen los sub-usuarios; el resto de los datos del
// tenant se elimina en cascada en la base.
func (uc *UserUseCase) DeleteAccount(tc *tenant.Context, req dto.DeleteAccountRequest) error {
	if err := tc.RequireMainUser(); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(tc.TenantID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return fmt.Errorf("%w: la contraseña no coincide", domain.ErrBusinessRule)
	}

	for {
		subs, err := uc.userRepo.ListSubUsers(tc.TenantID, nil, 100, 0)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			break
		}
		for _, sub := range subs {
			if err := uc.userRepo.Delete(sub.ID); err != nil {
				return err
			}
		}
	}
	if err := uc.userRepo.Delete(tc.TenantID); err != nil {
		return err
	}
	uc.log.Info().Str("tenant_id", tc.TenantID).Msg("cuenta principal eliminada")
	return nil
}

func (uc *UserUseCase) ownedSubUser(tc *tenant.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ParentUserID == nil || *user.ParentUserID != tc.TenantID {
		return nil, fmt.Errorf("%w: sub-usuario no encontrado", domain.ErrNotFound)
	}
	return user, nil
}

func (uc *UserUseCase) applyUserUpdate(user *entity.User, req dto.UpdateUserRequest) error {
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return fmt.Errorf("%w: username vacío", domain.ErrInvalidInput)
		}
		if !strings.EqualFold(username, user.Username) {
			if taken, err := uc.userRepo.ExistsByUsername(username); err != nil {
				return err
			} else if taken {
				return fmt.Errorf("%w: el username ya está en uso", domain.ErrConflict)
			}
		}
		user.Username = username
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			return fmt.Errorf("%w: email vacío", domain.ErrInvalidInput)
		}
		if !strings.EqualFold(email, user.Email) {
			if taken, err := uc.userRepo.ExistsByEmail(email); err != nil {
				return err
			} else if taken {
				return fmt.Errorf("%w: el email ya está registrado", domain.ErrConflict)
			}
		}
		user.Email = email
	}
	if req.Context != nil {
		user.Context = req.Context
	}
	user.UpdatedAt = uc.now()
	return nil
}

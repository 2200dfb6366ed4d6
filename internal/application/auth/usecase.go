// Package auth implementa registro, login y restablecimiento de contraseña.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
	"github.com/huggingsoft/backoffice-api/pkg/jwt"
	"github.com/huggingsoft/backoffice-api/pkg/logger"
)

// Config parámetros de emisión de tokens y del flujo de restablecimiento.
type Config struct {
	JWTSecret     string
	JWTIssuer     string
	JWTExpMinutes int
	ResetBaseURL  string
	ResetTokenTTL time.Duration
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.PasswordResetTokenRepository
	mail      MailSender
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	mail MailSender,
	cfg Config,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mail:      mail,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// RegisterMainUser registra un usuario principal (tenant nuevo). Username y
// email deben ser únicos globalmente, sin distinguir mayúsculas.
func (uc *UseCase) RegisterMainUser(req dto.RegisterRequest) (*dto.UserResponse, error) {
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

	now := uc.now()
	user := &entity.User{
		ID:             uuid.New().String(),
		Username:       username,
		Email:          email,
		PasswordHash:   string(hash),
		Active:         true,
		CompanyName:    req.CompanyName,
		CompanyNIT:     req.CompanyNIT,
		CompanyAddress: req.CompanyAddress,
		CompanyPhone:   req.CompanyPhone,
		Context:        req.Context,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("usuario principal registrado")
	resp := ToUserResponse(user)
	return &resp, nil
}

// Login autentica por username o email y emite un JWT. Credenciales
// inválidas y cuentas inactivas devuelven el mismo error, sin revelar
// cuál de las dos cosas falló.
func (uc *UseCase) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	ident := strings.TrimSpace(req.UsernameOrEmail)
	if ident == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: credenciales incompletas", domain.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetByUsername(ident)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = uc.userRepo.GetByEmail(ident)
		if err != nil {
			return nil, err
		}
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, user.ID, user.Username, uc.cfg.JWTIssuer, uc.cfg.JWTExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}

	uc.log.Info().Str("user_id", user.ID).Msg("login correcto")
	return &dto.LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}

// RequestPasswordReset inicia el restablecimiento. Siempre responde con
// éxito aunque el email no exista, para no filtrar qué cuentas hay. Los
// tokens previos del usuario se invalidan al emitir uno nuevo; si el
// correo no se puede enviar solo se registra en el log.
func (uc *UseCase) RequestPasswordReset(req dto.PasswordResetRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return fmt.Errorf("%w: email obligatorio", domain.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil || !user.Active {
		return nil
	}

	if err := uc.tokenRepo.DeleteByUser(user.ID); err != nil {
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generar token de reset: %w", err)
	}
	token := &entity.PasswordResetToken{
		Token:     hex.EncodeToString(raw),
		UserID:    user.ID,
		ExpiresAt: uc.now().Add(uc.cfg.ResetTokenTTL),
	}
	if err := uc.tokenRepo.Create(token); err != nil {
		return err
	}

	link := fmt.Sprintf("%s?token=%s", uc.cfg.ResetBaseURL, token.Token)
	if err := uc.mail.SendPasswordReset(user.Email, user.Username, link); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo enviar el correo de restablecimiento")
	}
	return nil
}

// ConfirmPasswordReset valida el token, cambia la contraseña y consume el
// token. Tokens inexistentes o vencidos fallan igual, como regla de negocio.
func (uc *UseCase) ConfirmPasswordReset(req dto.PasswordResetConfirm) error {
	if req.Token == "" || req.NewPassword == "" {
		return fmt.Errorf("%w: token y nueva contraseña son obligatorios", domain.ErrInvalidInput)
	}

	token, err := uc.tokenRepo.GetByToken(req.Token)
	if err != nil {
		return err
	}
	if token == nil || token.Expired(uc.now()) {
		return fmt.Errorf("%w: token de restablecimiento inválido o vencido", domain.ErrBusinessRule)
	}

	user, err := uc.userRepo.GetByID(token.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: token de restablecimiento inválido o vencido", domain.ErrBusinessRule)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	if err := uc.tokenRepo.Delete(token.Token); err != nil {
		return err
	}

	uc.log.Info().Str("user_id", user.ID).Msg("contraseña restablecida")
	return nil
}

// ToUserResponse proyecta la entidad al DTO de salida (nunca expone el hash).
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Active:         u.Active,
		ParentUserID:   u.ParentUserID,
		CompanyName:    u.CompanyName,
		CompanyNIT:     u.CompanyNIT,
		CompanyAddress: u.CompanyAddress,
		CompanyPhone:   u.CompanyPhone,
		Context:        u.Context,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

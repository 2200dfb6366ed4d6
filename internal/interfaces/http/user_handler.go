package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/usecase"
)

// UserHandler maneja perfil, datos de empresa y sub-usuarios (protegido).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetProfile devuelve el perfil del actor autenticado.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.uc.GetProfile(GetTenant(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(user)
}

// UpdateProfile actualiza username, email o contexto del actor.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.UpdateProfile(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(user)
}

// ChangePassword cambia la contraseña verificando la actual.
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ChangePassword(GetTenant(c), in); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateCompanyInfo actualiza los datos de empresa (solo usuario principal).
func (h *UserHandler) UpdateCompanyInfo(c *fiber.Ctx) error {
	var in dto.CompanyInfoUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.UpdateCompanyInfo(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(user)
}

// DeleteAccount elimina la cuenta principal con todos sus sub-usuarios
// (solo usuario principal; exige la contraseña en el cuerpo).
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	var in dto.DeleteAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.DeleteAccount(GetTenant(c), in); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSubUser godoc
// @Summary      Crear sub-usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubUserRequest  true  "username, email y password del sub-usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/sub-users [post]
func (h *UserHandler) CreateSubUser(c *fiber.Ctx) error {
	var in dto.CreateSubUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.CreateSubUser(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListSubUsers lista los sub-usuarios del tenant.
func (h *UserHandler) ListSubUsers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	active, err := queryBool(c, "active")
	if err != nil {
		return badBody(c)
	}
	resp, err := h.uc.ListSubUsers(GetTenant(c), active, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// GetSubUser devuelve un sub-usuario del tenant.
func (h *UserHandler) GetSubUser(c *fiber.Ctx) error {
	user, err := h.uc.GetSubUser(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(user)
}

// UpdateSubUser actualiza un sub-usuario del tenant.
func (h *UserHandler) UpdateSubUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.UpdateSubUser(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(user)
}

// ActivateSubUser reactiva un sub-usuario.
func (h *UserHandler) ActivateSubUser(c *fiber.Ctx) error {
	user, err := h.uc.SetSubUserActive(GetTenant(c), c.Params("id"), true)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(user)
}

// DeactivateSubUser desactiva un sub-usuario; pierde acceso en la
// siguiente petición.
func (h *UserHandler) DeactivateSubUser(c *fiber.Ctx) error {
	user, err := h.uc.SetSubUserActive(GetTenant(c), c.Params("id"), false)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(user)
}

// DeleteSubUser elimina un sub-usuario del tenant.
func (h *UserHandler) DeleteSubUser(c *fiber.Ctx) error {
	if err := h.uc.DeleteSubUser(GetTenant(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

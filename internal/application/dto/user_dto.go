package dto

import "time"

// UserResponse salida de un usuario (principal o sub-usuario).
type UserResponse struct {
	ID             string         `json:"id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	Active         bool           `json:"active"`
	ParentUserID   *string        `json:"parent_user_id,omitempty"`
	CompanyName    string         `json:"company_name,omitempty"`
	CompanyNIT     string         `json:"company_nit,omitempty"`
	CompanyAddress string         `json:"company_address,omitempty"`
	CompanyPhone   string         `json:"company_phone,omitempty"`
	Context        map[string]any `json:"context,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// UserSummaryResponse proyección mínima para referencias cruzadas
// (ej. creador de una transacción).
type UserSummaryResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UpdateUserRequest actualización parcial del perfil propio o de un sub-usuario.
type UpdateUserRequest struct {
	Username *string        `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string        `json:"email" validate:"omitempty,email"`
	Context  map[string]any `json:"context"`
}

// ChangePasswordRequest cambio de contraseña verificando la actual.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// CompanyInfoUpdateRequest actualización de datos de empresa (solo principal).
type CompanyInfoUpdateRequest struct {
	CompanyName    *string        `json:"company_name"`
	CompanyNIT     *string        `json:"company_nit"`
	CompanyAddress *string        `json:"company_address"`
	CompanyPhone   *string        `json:"company_phone"`
	Context        map[string]any `json:"context"`
}

// CreateSubUserRequest alta de un sub-usuario bajo el principal.
type CreateSubUserRequest struct {
	Username string         `json:"username" validate:"required,min=3,max=50"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Context  map[string]any `json:"context"`
}

// DeleteAccountRequest baja de la cuenta principal; exige la contraseña.
type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

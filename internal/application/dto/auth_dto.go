package dto

// RegisterRequest registro de un usuario principal (tenant).
type RegisterRequest struct {
	Username       string         `json:"username" validate:"required,min=3,max=50"`
	Email          string         `json:"email" validate:"required,email"`
	Password       string         `json:"password" validate:"required,min=8"`
	CompanyName    string         `json:"company_name"`
	CompanyNIT     string         `json:"company_nit"`
	CompanyAddress string         `json:"company_address"`
	CompanyPhone   string         `json:"company_phone"`
	Context        map[string]any `json:"context"`
}

// LoginRequest credenciales: acepta username o email.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// LoginResponse token emitido tras login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// PasswordResetRequest solicitud de restablecimiento (siempre aceptada).
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirm confirmación con el token recibido por correo.
type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

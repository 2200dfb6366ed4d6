// Package tenant resuelve el principal autenticado a su contexto de tenant.
// El contexto se resuelve una sola vez por petición y se pasa explícito a
// todos los casos de uso; nunca hay estado ambiental ni thread-locals.
package tenant

import (
	"context"

	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
)

// Context identidad resuelta de una petición. TenantID es el usuario
// principal dueño de los datos; ActorID es quien ejecuta la operación
// (igual a TenantID salvo que actúe un sub-usuario).
type Context struct {
	TenantID string
	ActorID  string
	SubUser  bool
}

// RequireMainUser falla con ErrForbidden si el actor es un sub-usuario.
// Protege las operaciones exclusivas del usuario principal: datos de
// empresa, gestión de sub-usuarios y eliminación de la cuenta.
func (c *Context) RequireMainUser() error {
	if c.SubUser {
		return domain.ErrForbidden
	}
	return nil
}

// Resolver resuelve el user id del token a un Context.
type Resolver struct {
	userRepo repository.UserRepository
}

// NewResolver construye el resolver.
func NewResolver(userRepo repository.UserRepository) *Resolver {
	return &Resolver{userRepo: userRepo}
}

// Resolve carga el usuario autenticado y decide el tenant. Un sub-usuario
// opera sobre los datos de su padre pero queda registrado como creador.
// Cuentas inexistentes o inactivas fallan con ErrUnauthorized.
func (r *Resolver) Resolve(ctx context.Context, userID string) (*Context, error) {
	user, err := r.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if user.ParentUserID == nil {
		return &Context{TenantID: user.ID, ActorID: user.ID}, nil
	}
	return &Context{TenantID: *user.ParentUserID, ActorID: user.ID, SubUser: true}, nil
}

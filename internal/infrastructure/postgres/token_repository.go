package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
)

var _ repository.PasswordResetTokenRepository = (*TokenRepo)(nil)

// TokenRepo implementación del puerto PasswordResetTokenRepository.
type TokenRepo struct {
	q Querier
}

// NewTokenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTokenRepository(q Querier) *TokenRepo {
	return &TokenRepo{q: q}
}

// Create persiste un token de restablecimiento.
func (r *TokenRepo) Create(token *entity.PasswordResetToken) error {
	query := `INSERT INTO password_reset_tokens (token, user_id, expires_at) VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(context.Background(), query, token.Token, token.UserID, token.ExpiresAt); err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

// GetByToken obtiene un token por su valor.
func (r *TokenRepo) GetByToken(token string) (*entity.PasswordResetToken, error) {
	query := `SELECT token, user_id, expires_at FROM password_reset_tokens WHERE token = $1`
	var t entity.PasswordResetToken
	err := r.q.QueryRow(context.Background(), query, token).Scan(&t.Token, &t.UserID, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reset token: %w", err)
	}
	return &t, nil
}

// DeleteByUser invalida todos los tokens de un usuario.
func (r *TokenRepo) DeleteByUser(userID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM password_reset_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete reset tokens by user: %w", err)
	}
	return nil
}

// Delete consume un token.
func (r *TokenRepo) Delete(token string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM password_reset_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}
	return nil
}

// DeleteExpired limpia los tokens vencidos antes del instante dado.
func (r *TokenRepo) DeleteExpired(before time.Time) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM password_reset_tokens WHERE expires_at < $1`, before); err != nil {
		return fmt.Errorf("delete expired reset tokens: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/fynbooks/fynbooks_backend/internal/middleware"
)

// BaseService provides common functionality for all services.
type BaseService struct {
	CanPerform domain.CapabilityChecker
}

// GetLogger gets the request-scoped logger from context.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// Authorize rejects the actor with ErrForbidden when the capability checker
// denies the action. A nil checker falls back to the default policy.
func (s *BaseService) Authorize(ctx context.Context, actor domain.Actor, action domain.Capability) error {
	check := s.CanPerform
	if check == nil {
		check = domain.DefaultCapabilityChecker
	}
	if !check(actor.Role, action) {
		s.GetLogger(ctx).Warn("Capability denied",
			slog.String("user_id", actor.UserID),
			slog.String("role", string(actor.Role)),
			slog.String("action", string(action)))
		return fmt.Errorf("%w: role %s may not perform %s", apperrors.ErrForbidden, actor.Role, action)
	}
	return nil
}

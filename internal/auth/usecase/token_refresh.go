package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/pkg/goerror"
)

type TokenRefreshInput struct {
	RefreshToken string `validate:"required"`
}

type TokenRefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

func (s *Usecase) TokenRefresh(ctx context.Context, in TokenRefreshInput) (*TokenRefreshOutput, error) {
	ctx, span := s.startSpan(ctx, "TokenRefresh")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	oldTokenHash, err := s.hmac.Hash(in.RefreshToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash old refresh token", "error", err)
		return nil, goerror.NewServer(err)
	}

	rt, err := s.repoDB.GetAccountRefreshToken(ctx, string(oldTokenHash))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "refresh token not found")
		return nil, invalidRefreshTokenError()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get refresh token", "error", err)
		return nil, goerror.NewServer(err)
	}

	// Reuse detection applies to rotated tokens only.
	if rt.RefreshRevoked {
		if rt.RefreshReplacedByTokenID != nil {
			// A rotated token is being replayed, which implies it was stolen.
			// Invalidate every session for this account.
			if err := s.repoDB.RevokeAllRefreshToken(ctx, rt.AccountID); err != nil {
				slog.ErrorContext(ctx, "failed to repo revoke all refresh tokens", "account_id", rt.AccountID, "error", err)
			}

			slog.WarnContext(ctx, "SECURITY: refresh token reuse detected")
			return nil, goerror.NewBusinessDetail("token reuse detected, please log in again",
				goerror.CodeForbidden, "invalid_refresh_token")
		}

		slog.WarnContext(ctx, "refresh token is revoked", "refresh_token_id", rt.RefreshID)
		return nil, invalidRefreshTokenError()
	}

	if s.clock.Now().After(rt.RefreshExpiresAt) {
		slog.WarnContext(ctx, "refresh token is expired", "refresh_token_id", rt.RefreshID)
		return nil, invalidRefreshTokenError()
	}

	newToken := s.oid.Generate()
	newTokenHash, err := s.hmac.Hash(newToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new refresh token", "error", err)
		return nil, goerror.NewServer(err)
	}

	acToken, err := s.jwt.Generate(rt.AccountID, rt.AccountEmail)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "account_id", rt.AccountID, "error", err)
		return nil, goerror.NewServer(err)
	}

	err = s.repoDB.RotateRefreshToken(ctx, entity.RotateRefreshToken{
		NewID:        s.uid.Generate(),
		OldID:        rt.RefreshID,
		AccountID:    rt.AccountID,
		NewToken:     string(newTokenHash),
		NewExpiresAt: s.clock.Now().Add(s.cfg.GetDay("modules.auth.refresh_token_ttl_days")),
	})
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "refresh token already rotated or revoked", "refresh_token_id", rt.RefreshID)
		return nil, invalidRefreshTokenError()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo rotate refresh token", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &TokenRefreshOutput{
		AccessToken:  acToken,
		RefreshToken: newToken,
	}, nil
}

func invalidRefreshTokenError() error {
	return goerror.NewBusinessDetail("invalid or expired refresh token", goerror.CodeUnauthorized, "invalid_refresh_token")
}

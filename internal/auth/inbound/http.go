package inbound

import (
	"context"

	"github.com/rahmatsubandi/veriauth/internal/auth/usecase"
	"github.com/rahmatsubandi/veriauth/internal/pkg/router"
)

type uc interface {
	OtpSend(ctx context.Context, in usecase.OtpSendInput) (*usecase.OtpSendOutput, error)
	OtpVerify(ctx context.Context, in usecase.OtpVerifyInput) (*usecase.OtpVerifyOutput, error)

	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	TokenRefresh(ctx context.Context, in usecase.TokenRefreshInput) (*usecase.TokenRefreshOutput, error)

	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) (*usecase.PasswordResetOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// OTP lifecycle
	r.POST("/api/v1/auth/otp/send", end.OtpSend)
	r.POST("/api/v1/auth/otp/verify", end.OtpVerify)

	// Account & session
	r.POST("/api/v1/auth/signup", end.Signup)
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/refresh", end.TokenRefresh)

	// Password management
	r.POST("/api/v1/auth/password/reset", end.PasswordReset)
}

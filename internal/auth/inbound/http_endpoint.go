package inbound

import (
	"github.com/rahmatsubandi/veriauth/internal/auth/entity"
	"github.com/rahmatsubandi/veriauth/internal/auth/usecase"
	"github.com/rahmatsubandi/veriauth/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the OTP and account workflows.
type HTTPEndpoint struct {
	uc uc
}

// OtpSend issues a fresh verification code for a phone number.
// @Summary Request verification code
// @Description Issues a one-time code bound to the phone number and hands it to the delivery pipeline.
// @Tags Auth, OTP
// @Accept json
// @Produce json
// @Param request body OtpSendRequest true "OTP request payload"
// @Success 200 {object} router.successResponse{data=OtpSendResponse} "Issued code"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/otp/send [post]
func (h *HTTPEndpoint) OtpSend(r *router.Request) (any, error) {
	var req OtpSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OtpSend(r.Context(), usecase.OtpSendInput{
		Number:   req.Number,
		AuthType: entity.AuthOtpTypeFromString(req.AuthType),
	})
	if err != nil {
		return nil, err
	}

	return OtpSendResponse{
		Number:    resp.Number,
		AuthType:  resp.AuthType.String(),
		OtpCode:   resp.OtpCode,
		ExpiredAt: formatTime(resp.ExpiredAt),
	}, nil
}

// OtpVerify checks a presented code against the latest record for the number.
// @Summary Verify code
// @Description Performs the single code comparison for the most recent record of the number.
// @Tags Auth, OTP
// @Accept json
// @Produce json
// @Param request body OtpVerifyRequest true "OTP verify payload"
// @Success 200 {object} router.successResponse{data=OtpVerifyResponse} "Verification result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/otp/verify [post]
func (h *HTTPEndpoint) OtpVerify(r *router.Request) (any, error) {
	var req OtpVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OtpVerify(r.Context(), usecase.OtpVerifyInput{
		Number:   req.Number,
		OtpCode:  req.OtpCode,
		AuthType: entity.AuthOtpTypeFromString(req.AuthType),
	})
	if err != nil {
		return nil, err
	}

	return OtpVerifyResponse{
		Number:     resp.Number,
		VerifiedAt: formatTime(resp.VerifiedAt),
	}, nil
}

// Signup creates an account gated on a verified phone number.
// @Summary Create account
// @Description Spends the verified code and creates the account in one transaction.
// @Tags Auth, Account
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 200 {object} router.successResponse{data=SignupResponse} "Created account"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/signup [post]
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Signup(r.Context(), usecase.SignupInput{
		Email:           req.Email,
		Username:        req.Username,
		Nickname:        req.Nickname,
		Password:        req.Password,
		PhoneNumber:     req.PhoneNumber,
		OtpRegisterCode: req.OtpRegisterCode,
	})
	if err != nil {
		return nil, err
	}

	return SignupResponse{
		ID:          resp.ID,
		Email:       resp.Email,
		Username:    resp.Username,
		Nickname:    resp.Nickname,
		PhoneNumber: resp.PhoneNumber,
	}, nil
}

// Login authenticates an account and issues a session pair.
// @Summary Authenticate account
// @Description Resolves the account by the selected strategy and returns access/refresh tokens.
// @Tags Auth, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		LoginType:   entity.LoginTypeFromString(req.LoginType),
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		User: LoginUserResponse{
			ID:          resp.Account.ID,
			Email:       resp.Account.Email,
			Username:    resp.Account.Username,
			Nickname:    resp.Account.Nickname,
			PhoneNumber: resp.Account.PhoneNumber,
			IsStaff:     resp.Account.IsStaff,
			LastLogin:   formatTimePtr(resp.LastLoginAt),
		},
		Access:  resp.AccessToken,
		Refresh: resp.RefreshToken,
	}, nil
}

// TokenRefresh rotates a refresh token.
// @Summary Refresh session
// @Description Exchanges a refresh token for a new access/refresh token pair.
// @Tags Auth, Authentication
// @Accept json
// @Produce json
// @Param request body TokenRefreshRequest true "Refresh payload"
// @Success 200 {object} router.successResponse{data=TokenRefreshResponse} "Token refresh result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid refresh token"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/refresh [post]
func (h *HTTPEndpoint) TokenRefresh(r *router.Request) (any, error) {
	var req TokenRefreshRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.TokenRefresh(r.Context(), usecase.TokenRefreshInput{RefreshToken: req.Refresh})
	if err != nil {
		return nil, err
	}

	return TokenRefreshResponse{
		Access:  resp.AccessToken,
		Refresh: resp.RefreshToken,
	}, nil
}

// PasswordReset replaces the password of the account bound to the number.
// @Summary Reset password
// @Description Replaces the account password after re-checking the verified code.
// @Tags Auth, Password
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Password reset payload"
// @Success 200 {object} router.successResponse{data=PasswordResetResponse} "Reset result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/password/reset [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Number:      req.Number,
		OtpCode:     req.OtpCode,
		NewPassword: req.NewPasswd,
	})
	if err != nil {
		return nil, err
	}

	return PasswordResetResponse{Number: resp.Number}, nil
}

package inbound

import "time"

// timeLayout is the wire format for human-facing timestamps.
const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

type OtpSendRequest struct {
	Number   string `json:"number"`
	AuthType string `json:"auth_type"`
}

type OtpSendResponse struct {
	Number    string `json:"number"`
	AuthType  string `json:"auth_type"`
	OtpCode   string `json:"otp_code"`
	ExpiredAt string `json:"expired_at"`
}

type OtpVerifyRequest struct {
	Number   string `json:"number"`
	OtpCode  string `json:"otp_code"`
	AuthType string `json:"auth_type"`
}

type OtpVerifyResponse struct {
	Number     string `json:"number"`
	VerifiedAt string `json:"verified_at"`
}

type SignupRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Nickname        string `json:"nickname"`
	Password        string `json:"password"`
	PhoneNumber     string `json:"phone_number"`
	OtpRegisterCode string `json:"otp_register_code"`
}

type SignupResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Nickname    string `json:"nickname"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequest struct {
	LoginType   string `json:"login_type"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type LoginUserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Nickname    string `json:"nickname"`
	PhoneNumber string `json:"phone_number"`
	IsStaff     bool   `json:"is_staff"`
	LastLogin   string `json:"last_login"`
}

type LoginResponse struct {
	User    LoginUserResponse `json:"user"`
	Access  string            `json:"access"`
	Refresh string            `json:"refresh"`
}

type TokenRefreshRequest struct {
	Refresh string `json:"refresh"`
}

type TokenRefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type PasswordResetRequest struct {
	Number    string `json:"number"`
	OtpCode   string `json:"otp_code"`
	NewPasswd string `json:"new_passwd"`
}

type PasswordResetResponse struct {
	Number string `json:"number"`
}

func (PasswordResetResponse) Message() string {
	return "Password has been reset."
}

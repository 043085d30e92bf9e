package entity

import (
	"time"
)

// OtpRecord is one issued one-time code bound to a phone number.
//
// A record moves through three states: issued (code delivered, nothing
// consumed), verified (the code was presented and matched once), and
// spent (an onboarding transaction used it up). Records are never
// deleted by this module; retention is an operational concern.
type OtpRecord struct {
	ID              int64
	Number          string
	CodeHash        string // HMAC of the plaintext code
	AuthType        AuthOtpType
	ValiditySeconds int64
	Authenticated   bool
	ConsumedCode    string // plaintext code recorded at verification time
	CreatedAt       time.Time
	VerifiedAt      *time.Time
	SpentAt         *time.Time
}

// ExpiresAt is the moment after which the code no longer verifies.
func (o OtpRecord) ExpiresAt() time.Time {
	return o.CreatedAt.Add(time.Duration(o.ValiditySeconds) * time.Second)
}

// Expired reports whether the code is past its validity window at now.
func (o OtpRecord) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt())
}

type Account struct {
	ID            int64
	Email         string
	Username      string
	Nickname      string
	Password      string // hashed
	PhoneNumber   string
	IsStaff       bool
	LastLoginAt   *time.Time
	LastLoginType *LoginType
	UpdatedAt     time.Time
}

type RefreshToken struct {
	ID                int64
	AccountID         int64
	Token             string // hashed
	ExpiresAt         time.Time
	Revoked           bool
	ReplacedByTokenID int64
}

// ---- //

type NewOtpRecord struct {
	ID              int64
	Number          string
	CodeHash        string
	AuthType        AuthOtpType
	ValiditySeconds int64
	CreatedAt       time.Time
}

// ExpiresAt mirrors OtpRecord.ExpiresAt so the issue path and the verify
// path derive the deadline from the same stored instant.
func (o NewOtpRecord) ExpiresAt() time.Time {
	return o.CreatedAt.Add(time.Duration(o.ValiditySeconds) * time.Second)
}

type NewAccount struct {
	ID          int64
	Email       string
	Username    string
	Nickname    string
	Password    string // hashed
	PhoneNumber string
}

// SpendOtpAndCreateAccount carries everything the onboarding transaction
// needs: the OTP row to spend and the account row to insert.
type SpendOtpAndCreateAccount struct {
	OtpID   int64
	Account NewAccount
}

type AccountLoginInfo struct {
	ID          int64
	Email       string
	Username    string
	Nickname    string
	Password    string
	PhoneNumber string
	IsStaff     bool
	LastLoginAt *time.Time
}

type AccountRefreshToken struct {
	AccountID                int64
	AccountEmail             string
	RefreshID                int64
	RefreshToken             string
	RefreshRevoked           bool
	RefreshReplacedByTokenID *int64
	RefreshExpiresAt         time.Time
}

type RotateRefreshToken struct {
	NewID        int64
	OldID        int64
	AccountID    int64
	NewToken     string
	NewExpiresAt time.Time
}

package entity

// AuthOtpType selects which onboarding channel an OTP gates.
type AuthOtpType int16

const (
	AuthOtpTypeUnknown AuthOtpType = 0
	AuthOtpTypeEmail   AuthOtpType = 1
	AuthOtpTypePhone   AuthOtpType = 2
)

// DefaultAuthOtpType is the channel assumed when a request omits auth_type.
const DefaultAuthOtpType = AuthOtpTypeEmail

func AuthOtpTypeFromString(str string) AuthOtpType {
	switch str {
	case "EMAIL":
		return AuthOtpTypeEmail
	case "PHONE":
		return AuthOtpTypePhone
	default:
		return AuthOtpTypeUnknown
	}
}

func (t AuthOtpType) String() string {
	switch t {
	case AuthOtpTypeEmail:
		return "EMAIL"
	case AuthOtpTypePhone:
		return "PHONE"
	default:
		return "Unknown"
	}
}

func (t AuthOtpType) IsValid() bool {
	return t == AuthOtpTypeEmail || t == AuthOtpTypePhone
}

// LoginType selects which account column a login identifier matches.
type LoginType int16

const (
	LoginTypeUnknown LoginType = 0
	LoginTypeEmail   LoginType = 1
	LoginTypePhone   LoginType = 2
)

// DefaultLoginType is the strategy assumed when a request omits login_type.
const DefaultLoginType = LoginTypeEmail

func LoginTypeFromString(str string) LoginType {
	switch str {
	case "email":
		return LoginTypeEmail
	case "phone_number":
		return LoginTypePhone
	default:
		return LoginTypeUnknown
	}
}

func (t LoginType) String() string {
	switch t {
	case LoginTypeEmail:
		return "email"
	case LoginTypePhone:
		return "phone_number"
	default:
		return "Unknown"
	}
}

func (t LoginType) IsValid() bool {
	return t == LoginTypeEmail || t == LoginTypePhone
}

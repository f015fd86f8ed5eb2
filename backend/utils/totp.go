package utils

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "DSA Mentor"

// totpValidateOpts mirrors what authenticator apps produce (6 digits every
// 30 seconds) with a skew of ±2 steps to absorb client clock drift.
var totpValidateOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      2,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// GenerateTOTPSecret creates a fresh 160-bit shared secret for the given
// account and returns the base32 secret plus the otpauth:// provisioning
// URI the client renders as a QR code.
func GenerateTOTPSecret(email string) (secret string, provisioningURI string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: email,
		SecretSize:  20,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTOTPCode checks a submitted 6-digit code against the secret at
// the current time.
func ValidateTOTPCode(secret, code string) bool {
	valid, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totpValidateOpts)
	return err == nil && valid
}

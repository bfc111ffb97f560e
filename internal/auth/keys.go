package auth

import "fmt"

func otpKey(tenantID, email string) string {
	return fmt.Sprintf("auth:otp:%s:%s", tenantID, email)
}

func otpAttemptsKey(tenantID, email string) string {
	return fmt.Sprintf("auth:otp-attempts:%s:%s", tenantID, email)
}

func generationKey(tenantID, professionalID string) string {
	return fmt.Sprintf("auth:gen:%s:%s", tenantID, professionalID)
}

func refreshKey(tenantID, professionalID, jti string) string {
	return fmt.Sprintf("auth:refresh:%s:%s:%s", tenantID, professionalID, jti)
}

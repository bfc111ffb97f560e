package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-saas/internal/cache"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
	"github.com/BruksfildServices01/barbershop-saas/internal/notify"
	"github.com/BruksfildServices01/barbershop-saas/internal/validators"
)

var (
	errInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials", "Invalid email or password")
	errInvalidOTP         = httperr.ErrUnauthorized("invalid_otp", "Invalid or expired OTP")
	errInvalidToken       = httperr.ErrUnauthorized("invalid_token", "Invalid or expired token")
	errRevokedToken       = httperr.ErrUnauthorized("token_revoked", "Token has been revoked")
)

// Professionals is the lookup the authority needs. Both methods return a
// NotFound business error when nothing matches within the tenant.
type Professionals interface {
	FindByEmail(ctx context.Context, tenantID, email string) (*models.Professional, error)
	FindByID(ctx context.Context, tenantID, id string) (*models.Professional, error)
}

type Options struct {
	Secret         string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	OTPTTL         time.Duration
	OTPMaxAttempts int
	BcryptCost     int
}

type Authority struct {
	store  cache.Store
	users  Professionals
	sender notify.Sender
	log    *zap.Logger

	secret []byte
	opts   Options
	now    func() time.Time

	// compared against when the email is unknown, so both failures cost one bcrypt
	dummyHash []byte
}

func NewAuthority(
	store cache.Store,
	users Professionals,
	sender notify.Sender,
	opts Options,
	log *zap.Logger,
) (*Authority, error) {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.OTPMaxAttempts <= 0 {
		opts.OTPMaxAttempts = 5
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	return &Authority{
		store:     store,
		users:     users,
		sender:    sender,
		log:       log,
		secret:    []byte(opts.Secret),
		opts:      opts,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// WithClock replaces the time source used for issuing and validating tokens.
func (a *Authority) WithClock(now func() time.Time) *Authority {
	a.now = now
	return a
}

func (a *Authority) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), a.opts.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ======================================================
// PASSWORD
// ======================================================

func (a *Authority) Login(ctx context.Context, tenantID, email, password string) (*TokenPair, error) {
	email = validators.NormalizeEmail(email)

	p, err := a.users.FindByEmail(ctx, tenantID, email)
	if err != nil && !httperr.IsKind(err, httperr.KindNotFound) {
		return nil, err
	}

	if p == nil || !p.IsActive {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
		return nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	return a.Issue(ctx, p)
}

// ======================================================
// OTP
// ======================================================

// RequestOTP never reveals whether the email exists.
func (a *Authority) RequestOTP(ctx context.Context, shop *models.Barbershop, email string) error {
	email = validators.NormalizeEmail(email)

	p, err := a.users.FindByEmail(ctx, shop.ID, email)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil
		}
		return err
	}
	if !p.IsActive {
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := a.store.Set(ctx, otpKey(shop.ID, email), code, a.opts.OTPTTL); err != nil {
		return err
	}
	if err := a.store.Del(ctx, otpAttemptsKey(shop.ID, email)); err != nil {
		return err
	}

	if err := a.sender.SendOTP(ctx, shop.Slug, email, code); err != nil {
		a.log.Warn("otp delivery failed", zap.String("tenant", shop.Slug), zap.Error(err))
	}
	return nil
}

func (a *Authority) VerifyOTP(ctx context.Context, tenantID, email, code string) (*TokenPair, error) {
	email = validators.NormalizeEmail(email)
	if !validators.IsOTP(code) {
		return nil, errInvalidOTP
	}

	consumed, err := a.store.CompareAndDelete(ctx, otpKey(tenantID, email), code)
	if err != nil {
		return nil, err
	}

	if !consumed {
		attempts, _, err := a.store.IncrWithTTL(ctx, otpAttemptsKey(tenantID, email), a.opts.OTPTTL)
		if err != nil {
			return nil, err
		}
		if attempts >= int64(a.opts.OTPMaxAttempts) {
			if err := a.store.Del(ctx, otpKey(tenantID, email), otpAttemptsKey(tenantID, email)); err != nil {
				return nil, err
			}
		}
		return nil, errInvalidOTP
	}

	if err := a.store.Del(ctx, otpAttemptsKey(tenantID, email)); err != nil {
		return nil, err
	}

	p, err := a.users.FindByEmail(ctx, tenantID, email)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, errInvalidOTP
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, errInvalidOTP
	}

	return a.Issue(ctx, p)
}

// PeekOTP exposes the live code for automated test environments.
func (a *Authority) PeekOTP(ctx context.Context, tenantID, email string) (string, time.Duration, error) {
	email = validators.NormalizeEmail(email)

	code, err := a.store.Get(ctx, otpKey(tenantID, email))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return "", 0, httperr.ErrNotFound("otp_not_found", "No active OTP for this email")
		}
		return "", 0, err
	}

	ttl, err := a.store.TTL(ctx, otpKey(tenantID, email))
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		return "", 0, err
	}
	return code, ttl, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ======================================================
// TOKENS
// ======================================================

// Issue creates a token pair for p under its current session generation.
func (a *Authority) Issue(ctx context.Context, p *models.Professional) (*TokenPair, error) {
	gen, err := a.generation(ctx, p.BarbershopID, p.ID)
	if err != nil {
		return nil, err
	}

	access, _, err := a.sign(p, TypeAccess, gen, a.opts.AccessTTL)
	if err != nil {
		return nil, err
	}

	refresh, jti, err := a.sign(p, TypeRefresh, gen, a.opts.RefreshTTL)
	if err != nil {
		return nil, err
	}

	if err := a.store.Set(ctx, refreshKey(p.BarbershopID, p.ID, jti), "1", a.opts.RefreshTTL); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, Professional: p}, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself stays valid until logout or expiry.
func (a *Authority) Refresh(ctx context.Context, tenantID, refreshToken string) (string, error) {
	claims, err := a.parse(refreshToken, TypeRefresh)
	if err != nil {
		return "", err
	}
	if claims.TenantID != tenantID {
		return "", errInvalidToken
	}

	if _, err := a.store.Get(ctx, refreshKey(tenantID, claims.Subject, claims.ID)); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return "", errRevokedToken
		}
		return "", err
	}

	if err := a.checkGeneration(ctx, claims); err != nil {
		return "", err
	}

	p, err := a.users.FindByID(ctx, tenantID, claims.Subject)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return "", errInvalidToken
		}
		return "", err
	}
	if !p.IsActive {
		return "", errRevokedToken
	}

	access, _, err := a.sign(p, TypeAccess, claims.Gen, a.opts.AccessTTL)
	return access, err
}

// Authenticate validates an access token for the resolved tenant.
func (a *Authority) Authenticate(ctx context.Context, tenantID, accessToken string) (*Principal, error) {
	claims, err := a.parse(accessToken, TypeAccess)
	if err != nil {
		return nil, err
	}
	if claims.TenantID != tenantID {
		return nil, errInvalidToken
	}
	if err := a.checkGeneration(ctx, claims); err != nil {
		return nil, err
	}

	return &Principal{
		ProfessionalID: claims.Subject,
		TenantID:       claims.TenantID,
		Role:           claims.Role,
		Email:          claims.Email,
	}, nil
}

// Logout revokes every token of the caller.
func (a *Authority) Logout(ctx context.Context, p Principal) error {
	return a.RevokeSessions(ctx, p.TenantID, p.ProfessionalID)
}

// RevokeSessions bumps the session generation, invalidating all access and
// refresh tokens issued to the professional so far.
func (a *Authority) RevokeSessions(ctx context.Context, tenantID, professionalID string) error {
	_, err := a.store.Incr(ctx, generationKey(tenantID, professionalID))
	return err
}

func (a *Authority) generation(ctx context.Context, tenantID, professionalID string) (int64, error) {
	v, err := a.store.Get(ctx, generationKey(tenantID, professionalID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

func (a *Authority) checkGeneration(ctx context.Context, claims *Claims) error {
	gen, err := a.generation(ctx, claims.TenantID, claims.Subject)
	if err != nil {
		return err
	}
	if gen != claims.Gen {
		return errRevokedToken
	}
	return nil
}

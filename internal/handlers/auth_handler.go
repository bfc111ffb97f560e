package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-saas/internal/audit"
	"github.com/BruksfildServices01/barbershop-saas/internal/auth"
	"github.com/BruksfildServices01/barbershop-saas/internal/httperr"
	"github.com/BruksfildServices01/barbershop-saas/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-saas/internal/middleware"
	"github.com/BruksfildServices01/barbershop-saas/internal/models"
)

// Authority is the token authority as seen by the HTTP layer.
type Authority interface {
	Login(ctx context.Context, tenantID, email, password string) (*auth.TokenPair, error)
	RequestOTP(ctx context.Context, shop *models.Barbershop, email string) error
	VerifyOTP(ctx context.Context, tenantID, email, code string) (*auth.TokenPair, error)
	PeekOTP(ctx context.Context, tenantID, email string) (string, time.Duration, error)
	Refresh(ctx context.Context, tenantID, refreshToken string) (string, error)
	Logout(ctx context.Context, p auth.Principal) error
}

type ProfessionalFinder interface {
	FindByID(ctx context.Context, tenantID, id string) (*models.Professional, error)
}

type AuthHandler struct {
	authority     Authority
	professionals ProfessionalFinder
	audit         audit.Recorder
	testOTP       bool
}

func NewAuthHandler(authority Authority, professionals ProfessionalFinder, audit audit.Recorder, testOTP bool) *AuthHandler {
	return &AuthHandler{
		authority:     authority,
		professionals: professionals,
		audit:         audit,
		testOTP:       testOTP,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RequestOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// --------- Responses ---------

type TokenResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	Professional *models.Professional `json:"professional"`
}

func tokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Professional: pair.Professional,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	shop := middleware.Barbershop(c)
	pair, err := h.authority.Login(c.Request.Context(), shop.ID, req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.signedIn(shop, pair, "password")
	httpresp.OK(c, tokenResponse(pair))
}

func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authority.RequestOTP(c.Request.Context(), middleware.Barbershop(c), req.Email); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "If the email is registered, a code has been sent")
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	shop := middleware.Barbershop(c)
	pair, err := h.authority.VerifyOTP(c.Request.Context(), shop.ID, req.Email, req.OTP)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.signedIn(shop, pair, "otp")
	httpresp.OK(c, tokenResponse(pair))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	access, err := h.authority.Refresh(c.Request.Context(), middleware.Barbershop(c).ID, req.RefreshToken)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"accessToken": access})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	p, _ := middleware.Principal(c)

	if err := h.authority.Logout(c.Request.Context(), p); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID:   p.TenantID,
		ProfessionalID: p.ProfessionalID,
		Action:         "logout",
		Entity:         "professional",
		EntityID:       p.ProfessionalID,
	})

	httpresp.Message(c, "Logged out")
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, _ := middleware.Principal(c)

	prof, err := h.professionals.FindByID(c.Request.Context(), p.TenantID, p.ProfessionalID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			err = httperr.ErrUnauthorized("invalid_token", "Professional no longer exists")
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, prof)
}

// TestOTP returns the live code for an email. Only routed in test
// environments; answers 404 everywhere else.
func (h *AuthHandler) TestOTP(c *gin.Context) {
	if !h.testOTP {
		httperr.Write(c, http.StatusNotFound, "not_found", "Not found")
		return
	}

	code, ttl, err := h.authority.PeekOTP(c.Request.Context(), middleware.Barbershop(c).ID, c.Param("email"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"otp":       code,
		"expiresIn": int(ttl.Seconds()),
	})
}

func (h *AuthHandler) signedIn(shop *models.Barbershop, pair *auth.TokenPair, method string) {
	h.audit.Dispatch(audit.Event{
		BarbershopID:   shop.ID,
		ProfessionalID: pair.Professional.ID,
		Action:         "login",
		Entity:         "professional",
		EntityID:       pair.Professional.ID,
		Metadata:       map[string]any{"method": method},
	})
}

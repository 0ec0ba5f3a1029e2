package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/config"
	"github.com/matwana/logistics/internal/middleware"
	"github.com/matwana/logistics/internal/model"
	"github.com/matwana/logistics/internal/repository"
	"github.com/matwana/logistics/internal/service"
	"github.com/matwana/logistics/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints: signup, login,
// refresh, identity and logout.
type AuthHandler struct {
	Cfg       config.Config
	Users     *repository.UserRepo
	Blocklist *service.Blocklist
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, b *service.Blocklist) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Blocklist: b}
}

// ----- DTOs -----

type signupReq struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}
type loginReq struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type userResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

func toUserResp(u model.User) userResp {
	return userResp{ID: u.ID, Name: u.Name, PhoneNumber: u.PhoneNumber, Email: u.Email, Role: u.Role}
}

// Signup handles POST /v1/auth/signup.  Validation failures are accumulated
// into a single errors list so the client can surface all of them at once.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	errs := validateUserFields(req.Name, req.PhoneNumber, req.Email, req.Password)
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = model.RoleCustomer
	}
	if !model.ValidRole(role) {
		errs = append(errs, "Role must be one of admin, customer_service or customer")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Names are unique by business rule; the check runs even when other
	// fields failed so the conflict shows up in the same errors list.
	if _, err := h.Users.GetByName(ctx, req.Name); err == nil {
		errs = append(errs, "User with that username exists")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
	}
	u := model.User{
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	id, err := h.Users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone number or email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	u.ID = id
	return c.JSON(http.StatusCreated, toUserResp(u))
}

// Login handles POST /v1/auth/login.  On success it issues an access/refresh
// pair; the access token embeds the stored role so the authorization gate
// can act on it.  Bad credentials are a 401 with a deliberately generic
// message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.PhoneNumber == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone_number/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged in successfully",
		"tokens": echo.Map{
			"access_token":  access.Token,
			"refresh_token": refresh.Token,
		},
		"role": u.Role,
		"id":   u.ID,
	})
}

// Refresh handles POST /v1/auth/refresh.  Only unexpired, unrevoked tokens
// of the refresh type are accepted.  The user is reloaded so the new access
// token embeds the current role rather than the role at login time.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	claims, err := utils.ParseToken(h.Cfg.JWTSecret, strings.TrimSpace(req.RefreshToken))
	if err != nil || claims.Type != utils.TokenTypeRefresh {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	revoked, err := h.Blocklist.IsRevoked(ctx, claims.JTI)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not verify token"})
	}
	if revoked {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	u, err := h.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"access_token": access.Token})
}

// Identity handles GET /v1/auth/identity (protected): it returns the
// authenticated user's name and role.
func (h *AuthHandler) Identity(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user details": echo.Map{
			"name": u.Name,
			"role": u.Role,
		},
	})
}

// Logout handles POST /v1/auth/logout (protected).  The presented access
// token's jti goes into the blocklist, which invalidates it immediately and
// permanently.  A refresh token may be supplied in the body to revoke the
// whole session in one call.
func (h *AuthHandler) Logout(c echo.Context) error {
	jti, ok := c.Get(middleware.CtxJTI).(string)
	if !ok || jti == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Blocklist.Revoke(ctx, jti); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}

	// Best effort on the optional refresh token: an invalid one is ignored
	// rather than failing a logout that already succeeded.
	var req refreshReq
	_ = c.Bind(&req)
	if raw := strings.TrimSpace(req.RefreshToken); raw != "" {
		if claims, err := utils.ParseToken(h.Cfg.JWTSecret, raw); err == nil && claims.Type == utils.TokenTypeRefresh {
			_ = h.Blocklist.Revoke(ctx, claims.JTI)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "You have been logged out"})
}

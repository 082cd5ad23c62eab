package handler

import (
	"time"

	"prepwise/internal/config"
	"prepwise/internal/dto"
	"prepwise/internal/logger"
	"prepwise/internal/middleware"
	"prepwise/internal/repository/models"
	"prepwise/internal/service"
	"prepwise/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	oauthStateCookie = "pw_oauth_state"

	// DemoSignedInMarker is appended to the redirect URL after a demo
	// login. Clients consume it to synthesize a local session without a
	// further network round-trip.
	DemoSignedInMarker = "signed-in-demo"
)

// AuthHandler handles authentication and access-status requests.
type AuthHandler struct {
	authService   service.AuthService
	accessService service.AccessService
	cfg           *config.Config
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService service.AuthService, accessService service.AccessService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		accessService: accessService,
		cfg:           cfg,
	}
}

// GetAccessStatus handles GET /api/auth/access-status. The response is the
// authoritative quota snapshot; clients replace their cached copy wholesale.
func (h *AuthHandler) GetAccessStatus(c *fiber.Ctx) error {
	visitorID := middleware.RequestVisitorID(c)
	isAuthenticated := middleware.AuthenticatedUserID(c) != ""

	status := h.accessService.GetAccessStatus(c.Context(), visitorID, isAuthenticated)
	return c.JSON(status)
}

// GetCurrentUser handles GET /api/auth/user. An anonymous request gets 401;
// clients treat that as a normal "not signed in" state.
func (h *AuthHandler) GetCurrentUser(c *fiber.Ctx) error {
	userID := middleware.AuthenticatedUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "UNAUTHORIZED"})
	}

	user, err := h.authService.GetUser(c.Context(), userID)
	if err != nil {
		logger.Get().Error("Failed to load user", zap.Error(err), zap.String("userID", userID))
		return err
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "UNAUTHORIZED"})
	}

	status := h.accessService.GetAccessStatus(c.Context(), middleware.RequestVisitorID(c), true)
	return c.JSON(toUserResponse(user, status.QuestionsViewed))
}

// GoogleLogin handles GET /api/auth/google/login.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state := util.NewULID()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(h.authService.GetGoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /api/auth/google/callback.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	receivedState := c.Query("state")
	expectedState := c.Cookies(oauthStateCookie)
	c.ClearCookie(oauthStateCookie)

	accessToken, refreshToken, user, err := h.authService.HandleGoogleCallback(c.Context(), code, receivedState, expectedState)
	if err != nil {
		logger.Get().Error("Google OAuth callback failed", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "OAUTH_FAILED"})
	}

	h.setAuthCookies(c, accessToken, refreshToken)
	logger.Get().Info("User signed in", zap.String("userID", user.ID))
	return c.Redirect("/", fiber.StatusTemporaryRedirect)
}

// DemoLogin handles GET /api/auth/demo-login. It issues real tokens for the
// demo account and redirects back with the signed-in-demo marker so the
// client can synthesize its session locally.
func (h *AuthHandler) DemoLogin(c *fiber.Ctx) error {
	accessToken, refreshToken, user, err := h.authService.DemoLogin(c.Context())
	if err != nil {
		logger.Get().Error("Demo login failed", zap.Error(err))
		return err
	}

	h.setAuthCookies(c, accessToken, refreshToken)
	logger.Get().Info("Demo user signed in", zap.String("userID", user.ID))

	redirect := c.Query("redirect_uri")
	if redirect == "" || redirect[0] != '/' {
		redirect = "/"
	}
	separator := "?"
	for _, r := range redirect {
		if r == '?' {
			separator = "&"
			break
		}
	}
	return c.Redirect(redirect+separator+"message="+DemoSignedInMarker, fiber.StatusTemporaryRedirect)
}

// RefreshToken handles POST /api/auth/refresh.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		req.RefreshToken = c.Cookies("pw_refresh_token")
	}
	if req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "MISSING_REFRESH_TOKEN"})
	}

	newAccessToken, newRefreshToken, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		logger.Get().Warn("Token refresh failed", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "INVALID_REFRESH_TOKEN"})
	}

	h.setAuthCookies(c, newAccessToken, newRefreshToken)
	return c.JSON(dto.TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	})
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Expires:  time.Now().Add(h.cfg.JWT.AccessTokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "pw_refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(h.cfg.JWT.RefreshTokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func toUserResponse(user *models.User, questionsViewed int) dto.UserResponse {
	return dto.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       util.NullStringToString(user.FirstName),
		LastName:        util.NullStringToString(user.LastName),
		ProfileImageURL: util.NullStringToString(user.ProfileImageURL),
		QuestionsViewed: questionsViewed,
	}
}

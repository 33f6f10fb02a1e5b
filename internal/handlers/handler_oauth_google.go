package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/SscSPs/invoice_management_app/internal/middleware"
	"github.com/SscSPs/invoice_management_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "oauthstate"
	oauthStateMaxAge = 600
)

// googleOAuthHandler handles Google sign-in, either with an ID token obtained by
// the frontend or with the server-side authorization code flow.
type googleOAuthHandler struct {
	cfg                *config.Config
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

func newGoogleOAuthHandler(
	cfg *config.Config,
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *googleOAuthHandler {
	return &googleOAuthHandler{
		cfg:                cfg,
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// LoginWithIDToken godoc
// @Summary Sign in with a Google ID token
// @Description Validates a Google ID token, finds or creates the user and issues tokens.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.GoogleTokenLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Google sign-in not configured"
// @Router /auth/google [post]
func (h *googleOAuthHandler) LoginWithIDToken(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.GoogleTokenLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		respondError(c, err, "Google ID token validation failed")
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, *info)
	if err != nil {
		respondError(c, err, "Failed to process google user")
		return
	}

	tokens, err := h.tokenService.IssueTokens(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	middleware.GetLoggerFromCtx(ctx).Info("User signed in with google", slog.String("user_id", user.UserID))
	setRefreshCookie(c, h.cfg, tokens.RefreshToken, tokens.RefreshTokenExpiry)
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     tokens.AccessToken,
		ExpiresAt: tokens.AccessTokenExpiry,
		User:      dto.ToUserResponse(user),
	})
}

// RedirectToGoogle godoc
// @Summary Start Google sign-in
// @Description Sets a state cookie and redirects to Google's consent screen.
// @Tags auth
// @Success 307
// @Failure 503 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) RedirectToGoogle(c *gin.Context) {
	if h.cfg.GoogleClientID == "" {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Google sign-in is not configured"})
		return
	}

	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to start google sign-in")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/api/v1/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// Callback godoc
// @Summary Google sign-in callback
// @Description Exchanges the authorization code, signs the user in and redirects to the frontend with the access token in the URL fragment.
// @Tags auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}

	token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code", slog.String("error", err.Error()))
		status := http.StatusBadGateway
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") {
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{Error: "Failed to exchange authorization code"})
		return
	}

	info, err := h.googleOAuthService.GetUserInfo(ctx, token)
	if err != nil {
		logger.Error("Failed to fetch google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to fetch user info from Google"})
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, *info)
	if err != nil {
		respondError(c, err, "Failed to process google user")
		return
	}

	tokens, err := h.tokenService.IssueTokens(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	setRefreshCookie(c, h.cfg, tokens.RefreshToken, tokens.RefreshTokenExpiry)
	fragment := url.Values{}
	fragment.Set("token", tokens.AccessToken)
	fragment.Set("userID", user.UserID)
	c.Redirect(http.StatusFound, strings.TrimRight(h.cfg.FrontendBaseURL, "/")+"/auth/callback#"+fragment.Encode())
}

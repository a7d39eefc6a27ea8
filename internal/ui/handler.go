// File: internal/ui/handler.go
package ui

import (
	"errors"
	"net/http"

	"weather_prediction_ui/internal/backend"
	"weather_prediction_ui/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler serves the page and the JSON API on top of the Client registry.
type Handler struct {
	registry *Registry
	logger   *zap.Logger
}

// NewHandler creates a new UI handler.
func NewHandler(registry *Registry, logger *zap.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger.Named("ui.handler"),
	}
}

// RegisterPageRoutes sets up the HTML routes. Every POST redirects back to the page.
func (h *Handler) RegisterPageRoutes(router gin.IRoutes) {
	router.GET("/", h.page)
	router.POST("/login", h.submitLogin)
	router.POST("/register", h.submitRegister)
	router.POST("/predict", h.submitPredict)
	router.POST("/logout", h.submitLogout)
}

// RegisterRoutes sets up the JSON API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/state", h.state)
	router.POST("/login", h.login)
	router.POST("/register", h.register)
	router.POST("/predict", h.predict)
	router.POST("/logout", h.logout)
}

func (h *Handler) client(c *gin.Context) (*Client, bool) {
	browserID := common.GetBrowserIDFromContext(c)
	if browserID == "" {
		h.logger.Error("Browser identity missing from request context")
		common.RespondWithError(c, common.ErrInternalServer)
		return nil, false
	}
	cl, err := h.registry.Get(c.Request.Context(), browserID)
	if err != nil {
		common.RespondWithError(c, common.ErrServiceUnavailable.WithDetails("Session store is unreachable."))
		return nil, false
	}
	return cl, true
}

// --- HTML ---

func (h *Handler) page(c *gin.Context) {
	cl, ok := h.client(c)
	if !ok {
		return
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, PageTemplate, cl.View(c.Request.Context()))
}

func (h *Handler) submitLogin(c *gin.Context) {
	cl, ok := h.client(c)
	if !ok {
		return
	}
	cl.Login(c.Request.Context(), credentialsFromForm(c))
	h.backToPage(c)
}

func (h *Handler) submitRegister(c *gin.Context) {
	cl, ok := h.client(c)
	if !ok {
		return
	}
	cl.Register(c.Request.Context(), credentialsFromForm(c))
	h.backToPage(c)
}

func (h *Handler) submitPredict(c *gin.Context) {
	cl, ok := h.client(c)
	if !ok {
		return
	}
	cl.Predict(c.Request.Context(), backend.PredictionInput{
		Humidity:  c.PostForm("humidity"),
		Pressure:  c.PostForm("pressure"),
		WindSpeed: c.PostForm("wind_speed"),
	})
	h.backToPage(c)
}

func (h *Handler) submitLogout(c *gin.Context) {
	cl, ok := h.client(c)
	if !ok {
		return
	}
	// The page reflects the cleared session either way; the error is already logged.
	_ = cl.Logout(c.Request.Context())
	h.backToPage(c)
}

func (h *Handler) backToPage(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// Form fields are passed through as typed, empty values included.
func credentialsFromForm(c *gin.Context) backend.Credentials {
	return backend.Credentials{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
}

// --- JSON API ---

func (h *Handler) state(c *gin.Context) {
	cl, ok := h.client(c)
	if !ok {
		return
	}
	common.RespondOK(c, "", cl.View(c.Request.Context()))
}

func (h *Handler) login(c *gin.Context) {
	var req backend.Credentials
	if !h.bindJSON(c, &req) {
		return
	}
	cl, ok := h.client(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if res := cl.Login(ctx, req); res.Failed() {
		common.RespondWithErrorData(c, common.ErrLoginFailed.WithMessage(res.Message), cl.View(ctx))
		return
	}
	common.RespondOK(c, "Login successful.", cl.View(ctx))
}

func (h *Handler) register(c *gin.Context) {
	var req backend.Credentials
	if !h.bindJSON(c, &req) {
		return
	}
	cl, ok := h.client(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	res := cl.Register(ctx, req)
	if res.Failed() {
		common.RespondWithErrorData(c, common.ErrRegistrationFailed.WithMessage(res.Message), cl.View(ctx))
		return
	}
	common.RespondOK(c, res.Message, cl.View(ctx))
}

func (h *Handler) predict(c *gin.Context) {
	var req backend.PredictionInput
	if !h.bindJSON(c, &req) {
		return
	}
	cl, ok := h.client(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if res := cl.Predict(ctx, req); res.Failed() {
		common.RespondWithErrorData(c, common.ErrPredictionFailed.WithMessage(res.Message), cl.View(ctx))
		return
	}
	common.RespondOK(c, "Prediction successful.", cl.View(ctx))
}

func (h *Handler) logout(c *gin.Context) {
	cl, ok := h.client(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := cl.Logout(ctx); err != nil {
		common.RespondWithErrorData(c, common.ErrInternalServer.WithDetails("Session could not be removed from storage."), cl.View(ctx))
		return
	}
	common.RespondOK(c, "Logged out.", cl.View(ctx))
}

func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("Invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return false
	}
	return true
}

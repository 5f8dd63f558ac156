package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tipfit/internal/models"
	"tipfit/internal/services"
	"tipfit/internal/session"
)

type AuthHandler struct {
	authService services.AuthService
	otpService  services.OTPService
	sessions    *session.Manager
}

func NewAuthHandler(authService services.AuthService, otpService services.OTPService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, otpService: otpService, sessions: sessions}
}

// @Summary      Registro de usuario
// @Description  Crea la cuenta y envía un código OTP de verificación al email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Datos de registro"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.authService.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	otp, err := h.otpService.Issue(ctx, user.Email, models.OTPPurposeRegistration)
	if err != nil {
		// account exists; the client can hit /otp/resend
		log.Printf("[auth][register] otp issue failed email=%q: %v", user.Email, err)
		c.JSON(http.StatusCreated, gin.H{"user": user, "otpSent": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"otpSent": true,
		"otp":     otp,
	})
}

// @Summary      Inicio de sesión
// @Description  Valida email y contraseña y envía un código OTP de acceso
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credenciales"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// password accepted; the OTP verification is the terminal auth step
	otp, err := h.otpService.Issue(ctx, user.Email, models.OTPPurposeLogin)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Código de acceso enviado",
		"otp":     otp,
	})
}

// @Summary      Cerrar sesión
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

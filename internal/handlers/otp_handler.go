package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tipfit/internal/config"
	"tipfit/internal/middleware"
	"tipfit/internal/models"
	"tipfit/internal/services"
	"tipfit/internal/session"
)

type OTPHandler struct {
	otpService services.OTPService
	sessions   *session.Manager
	jwtSecret  []byte
}

func NewOTPHandler(otpService services.OTPService, sessions *session.Manager, cfg *config.Config) *OTPHandler {
	return &OTPHandler{
		otpService: otpService,
		sessions:   sessions,
		jwtSecret:  []byte(cfg.JWT.Secret),
	}
}

type otpSendRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Purpose string `json:"purpose" binding:"required,oneof=registration login"`
}

type otpVerifyRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Code    string `json:"code" binding:"required,len=6"`
	Purpose string `json:"purpose" binding:"required,oneof=registration login"`
}

// @Summary      Enviar código OTP
// @Tags         OTP
// @Accept       json
// @Produce      json
// @Param        send  body      otpSendRequest  true  "Destino y propósito"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]string
// @Router       /otp/send [post]
func (h *OTPHandler) Send(c *gin.Context) {
	var req otpSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.otpService.Issue(c.Request.Context(), req.Email, req.Purpose)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Código enviado exitosamente", "otp": res})
}

// @Summary      Verificar código OTP
// @Description  Consume el código; para login devuelve el token de acceso
// @Tags         OTP
// @Accept       json
// @Produce      json
// @Param        verify  body      otpVerifyRequest  true  "Código a verificar"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]string
// @Router       /otp/verify [post]
func (h *OTPHandler) Verify(c *gin.Context) {
	var req otpVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.otpService.Verify(ctx, req.Email, req.Code, req.Purpose)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if req.Purpose == models.OTPPurposeRegistration {
		c.JSON(http.StatusOK, gin.H{
			"message": "Email verificado exitosamente",
			"user":    user,
		})
		return
	}

	// login: this is the terminal authentication step
	token, err := middleware.NewAccessToken(h.jwtSecret, user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}
	h.sessions.Set(ctx, &session.Session{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Token:   token,
		Profile: user.Profile,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Inicio de sesión exitoso",
		"user":    user,
		"token":   token,
	})
}

// @Summary      Reenviar código OTP
// @Description  Emite un nuevo código; los anteriores no expirados siguen siendo válidos
// @Tags         OTP
// @Accept       json
// @Produce      json
// @Param        send  body      otpSendRequest  true  "Destino y propósito"
// @Success      200   {object}  map[string]interface{}
// @Router       /otp/resend [post]
func (h *OTPHandler) Resend(c *gin.Context) {
	var req otpSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.otpService.Resend(c.Request.Context(), req.Email, req.Purpose)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Código enviado exitosamente", "otp": res})
}

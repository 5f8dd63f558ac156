package routes

import (
	"github.com/gin-gonic/gin"

	"tipfit/internal/handlers"
	"tipfit/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	otpHandler *handlers.OTPHandler,
	profileHandler *handlers.ProfileHandler,
	tipHandler *handlers.TipHandler,
	jwtSecret []byte,
) *gin.Engine {

	// ---- public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	otp := r.Group("/otp")
	{
		otp.POST("/send", otpHandler.Send)
		otp.POST("/verify", otpHandler.Verify)
		otp.POST("/resend", otpHandler.Resend)
	}

	// ---- protected
	auth := r.Group("/", middleware.AuthMiddleware(jwtSecret))

	auth.POST("/logout", authHandler.Logout)

	profile := auth.Group("/profile")
	{
		profile.GET("", profileHandler.Get)
		profile.PUT("", profileHandler.Update)
	}

	tips := auth.Group("/tips")
	{
		tips.GET("/daily", tipHandler.Daily)
		tips.POST("/generate", tipHandler.Generate)
		tips.GET("/history", tipHandler.History)
		tips.GET("/history/pdf", tipHandler.HistoryPDF)
	}

	return r
}

package main

import "tipfit/internal/app"

// @title           TipFit API
// @version         1.0
// @description     Backend del asistente de bienestar TipFit: autenticación con OTP, perfil de usuario y consejos diarios generados con IA.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	app.Run()
}

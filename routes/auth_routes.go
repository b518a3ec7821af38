package routes

import (
	"github.com/gin-gonic/gin"

	"stylehive/controllers"
)

func SetupAuthRoutes(r *gin.Engine) {
	// Public auth routes
	r.POST("/register", controllers.RequestOTP)
	r.POST("/register/verify", controllers.VerifyOTP)
	r.POST("/login", controllers.Login)
	r.POST("/logout", controllers.Logout)
	r.POST("/password/forgot", controllers.ForgotPassword)
	r.POST("/password/reset", controllers.ResetPassword)

	r.POST("/admin/login", controllers.AdminLogin)
}

package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stylehive/controllers"
	"stylehive/middleware"
)

func SetupRoutes(r *gin.Engine) {
	origins := []string{"http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middlewares.CacheControl())

	SetupAuthRoutes(r)
	SetupStoreRoutes(r)
	SetupUserRoutes(r)
	SetupAdminRoutes(r)
}

// SetupStoreRoutes registers the public storefront catalog.
func SetupStoreRoutes(r *gin.Engine) {
	r.GET("/products", controllers.ListProducts)
	r.GET("/products/:id", controllers.GetProduct)
	r.GET("/categories", controllers.ListCategories)
}

// SetupUserRoutes registers everything behind a shopper session.
func SetupUserRoutes(r *gin.Engine) {
	user := r.Group("/")
	user.Use(middlewares.UserAuth())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.GET("/referrals", controllers.GetReferralInfo)

		user.GET("/addresses", controllers.GetAddresses)
		user.POST("/addresses", controllers.AddAddress)
		user.PUT("/addresses/:address_id", controllers.UpdateAddress)
		user.DELETE("/addresses/:address_id", controllers.DeleteAddress)

		user.GET("/cart", controllers.GetCart)
		user.POST("/cart", controllers.AddToCart)
		user.PUT("/cart", controllers.UpdateCartQuantity)
		user.DELETE("/cart/:product_id/:variant_id", controllers.RemoveFromCart)

		user.GET("/wishlist", controllers.GetWishlist)
		user.POST("/wishlist/:product_id", controllers.ToggleWishlist)
		user.DELETE("/wishlist/:product_id", controllers.RemoveFromWishlist)

		user.POST("/checkout", controllers.PlaceOrder)
		user.POST("/checkout/verify", controllers.VerifyCheckoutPayment)

		user.GET("/orders", controllers.GetUserOrders)
		user.GET("/orders/:id", controllers.GetOrder)
		user.POST("/orders/:id/cancel", controllers.CancelOrder)
		user.POST("/orders/:id/return", controllers.RequestReturn)

		user.GET("/wallet", controllers.GetWallet)
		user.POST("/wallet/topup", controllers.CreateTopUp)
		user.POST("/wallet/topup/verify", controllers.VerifyTopUp)
		user.POST("/wallet/withdraw", controllers.RequestWithdrawal)
	}
}

// SetupAdminRoutes registers the back office behind an admin session.
func SetupAdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middlewares.AdminAuth())
	{
		admin.GET("/users", controllers.AdminListUsers)
		admin.PATCH("/users/:id/block", controllers.AdminToggleUser)

		admin.GET("/categories", controllers.AdminListCategories)
		admin.POST("/categories", controllers.AdminAddCategory)
		admin.PUT("/categories/:id", controllers.AdminUpdateCategory)
		admin.PATCH("/categories/:id/block", controllers.AdminToggleCategory)

		admin.GET("/products", controllers.AdminListProducts)
		admin.POST("/products", controllers.AdminAddProduct)
		admin.PUT("/products/:id", controllers.AdminUpdateProduct)
		admin.PATCH("/products/:id/block", controllers.AdminToggleProduct)
		admin.POST("/products/:id/variants", controllers.AdminAddVariant)
		admin.PUT("/products/:id/variants/:variantId", controllers.AdminUpdateVariant)

		admin.GET("/offers", controllers.AdminListOffers)
		admin.POST("/offers", controllers.AdminCreateOffer)
		admin.PUT("/offers/:id", controllers.AdminUpdateOffer)
		admin.PATCH("/offers/:id/active", controllers.AdminToggleOffer)

		admin.GET("/orders", controllers.AdminListOrders)
		admin.GET("/orders/:id", controllers.AdminGetOrder)
		admin.PATCH("/orders/:id/status", controllers.AdminUpdateOrderStatus)

		admin.GET("/returns", controllers.AdminListReturns)
		admin.POST("/returns/:id/approve", controllers.AdminApproveReturn)
		admin.POST("/returns/:id/reject", controllers.AdminRejectReturn)

		admin.GET("/withdrawals", controllers.AdminListWithdrawals)
		admin.POST("/withdrawals/:id/approve", controllers.AdminApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", controllers.AdminRejectWithdrawal)

		admin.GET("/dashboard/sales", controllers.AdminSalesSummary)
		admin.GET("/dashboard/top-products", controllers.AdminTopProducts)
	}
}

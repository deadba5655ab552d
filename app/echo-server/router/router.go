package router

import (
	"jewelryhub/domain"
	"jewelryhub/internal/middleware"
	"jewelryhub/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc) {
	products := api.Group("/products")

	sellerOnly := middleware.RequireRole(domain.RoleSeller)
	customerOnly := middleware.RequireRole(domain.RoleCustomer)

	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProductByID)

	products.GET("/seller/my-products", handler.GetSellerProducts, authRequired, sellerOnly)
	products.POST("", handler.CreateProduct, authRequired, sellerOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, sellerOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, sellerOnly)

	products.POST("/:id/reviews", handler.AddReview, authRequired, customerOnly)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders")

	customerOnly := middleware.RequireRole(domain.RoleCustomer)
	sellerOnly := middleware.RequireRole(domain.RoleSeller)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	staffOnly := middleware.RequireRole(domain.RoleSeller, domain.RoleAdmin)

	orders.GET("/track/:code", ordersHandler.TrackOrder)

	orders.POST("", ordersHandler.CreateOrder, authRequired, customerOnly)
	orders.POST("/checkout", ordersHandler.Checkout, authRequired, customerOnly)
	orders.GET("/my-orders", ordersHandler.GetMyOrders, authRequired, customerOnly)
	orders.GET("/seller/orders", ordersHandler.GetSellerOrders, authRequired, sellerOnly)
	orders.GET("", ordersHandler.GetAllOrders, authRequired, adminOnly)
	orders.GET("/:id", ordersHandler.GetOrderByID, authRequired)
	orders.PUT("/:id/status", ordersHandler.UpdateStatus, authRequired, staffOnly)
}

func SetCartRoutes(api *echo.Group, cartHandler *rest.CartHandler, authRequired echo.MiddlewareFunc) {
	customerOnly := middleware.RequireRole(domain.RoleCustomer)

	cart := api.Group("/cart", authRequired, customerOnly)

	cart.GET("", cartHandler.GetCart)
	cart.PUT("", cartHandler.ReplaceCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.DELETE("/items/:productId", cartHandler.RemoveItem)
	cart.DELETE("", cartHandler.ClearCart)
}

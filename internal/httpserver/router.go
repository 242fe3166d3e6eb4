package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "github.com/kartbay/kartbay/internal/middleware/auth"
)

type Deps struct {
	Auth       *AuthHTTP
	Users      *UserHTTP
	Customers  *CustomerHTTP
	Brands     *BrandHTTP
	Categories *CategoryHTTP
	Stores     *StoreHTTP
	Products   *ProductHTTP
	Cart       *CartHTTP
	Orders     *OrderHTTP
	Payments   *PaymentHTTP
	Search     *SearchHTTP
	AuthMW     *mwauth.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/admin/register", d.Auth.RegisterAdmin)
	auth.POST("/admin/login", d.Auth.LoginAdmin)
	auth.POST("/customer/register", d.Auth.RegisterCustomer)
	auth.POST("/customer/login", d.Auth.LoginCustomer)

	users := api.Group("/admin/users", d.AuthMW.RequireAdmin)
	users.GET("", d.Users.List)
	users.GET("/:id", d.Users.Get)
	users.PUT("/:id", d.Users.Update)

	customer := api.Group("/customers", d.AuthMW.RequireCustomer)
	customer.GET("/profile", d.Customers.Profile)
	customer.PUT("/profile", d.Customers.UpdateProfile)
	customer.POST("/addresses", d.Customers.AddAddress)
	customer.GET("/addresses", d.Customers.ListAddresses)
	customer.PUT("/addresses/:id", d.Customers.UpdateAddress)
	customer.DELETE("/addresses/:id", d.Customers.DeleteAddress)
	customer.PUT("/addresses/:id/default", d.Customers.SetDefaultAddress)

	brands := api.Group("/brands")
	brands.GET("", d.Brands.List)
	brands.GET("/:id", d.Brands.Get)
	brands.POST("", d.Brands.Create, d.AuthMW.RequireAdmin)

	categories := api.Group("/categories")
	categories.GET("", d.Categories.List)
	categories.GET("/:id", d.Categories.Get)
	categories.GET("/:id/products", d.Categories.Products)
	categories.POST("", d.Categories.Create, d.AuthMW.RequireAdmin)

	stores := api.Group("/stores")
	stores.GET("", d.Stores.List)
	stores.GET("/nearby", d.Stores.Nearby, d.AuthMW.RequireCustomer)
	stores.GET("/:id", d.Stores.Get)
	stores.POST("", d.Stores.Create, d.AuthMW.RequireAdmin)

	products := api.Group("/products")
	products.GET("", d.Products.List)
	products.GET("/search", d.Search.Products)
	products.GET("/:id", d.Products.Get)
	products.GET("/:id/stores", d.Products.Stocks)
	products.POST("", d.Products.Create, d.AuthMW.RequireAdmin)
	products.PUT("/:id", d.Products.Update, d.AuthMW.RequireAdmin)
	products.DELETE("/:id", d.Products.Delete, d.AuthMW.RequireAdmin)
	products.POST("/:id/stores", d.Products.LinkStores, d.AuthMW.RequireAdmin)

	cart := api.Group("/cart", d.AuthMW.RequireCustomer)
	cart.POST("", d.Cart.Add)
	cart.GET("", d.Cart.Get)
	cart.PUT("/:id", d.Cart.UpdateQuantity)
	cart.DELETE("/:id", d.Cart.Remove)
	cart.DELETE("", d.Cart.Clear)

	orders := api.Group("/orders", d.AuthMW.RequireCustomer)
	orders.POST("", d.Orders.Create)
	orders.GET("", d.Orders.List)
	orders.GET("/:id", d.Orders.Get)
	orders.PUT("/:id/cancel", d.Orders.Cancel)

	payments := api.Group("/payments")
	payments.POST("/webhook", d.Payments.Webhook)
	payments.POST("/create-order", d.Payments.Initiate, d.AuthMW.RequireCustomer)
	payments.POST("/verify", d.Payments.Verify, d.AuthMW.RequireCustomer)
	payments.GET("/:orderId", d.Payments.Details, d.AuthMW.RequireCustomer)
}

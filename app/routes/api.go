package routes

import (
	"time"

	"github.com/akil18/cop-shop-server-side/app/controllers"
	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/app/services"
	"github.com/akil18/cop-shop-server-side/pkg/auth"
	"github.com/akil18/cop-shop-server-side/pkg/cache"
	"github.com/akil18/cop-shop-server-side/pkg/ctx"
	"github.com/akil18/cop-shop-server-side/pkg/middleware"
	"github.com/akil18/cop-shop-server-side/pkg/payment"
	"github.com/akil18/cop-shop-server-side/pkg/router"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

// Deps are the collaborators the API routes need.
type Deps struct {
	Store            store.Gateway
	Cache            cache.Cache // nil disables the category cache
	CategoryCacheTTL time.Duration
	Signer           *auth.Signer
	Processor        payment.Processor
}

// RegisterAPI mounts every copshop route on r.
func RegisterAPI(r *router.Router, d Deps) {
	categories := repositories.NewCategoryRepository(d.Store, d.Cache, d.CategoryCacheTTL)
	products := repositories.NewProductRepository(d.Store)
	users := repositories.NewUserRepository(d.Store)
	orders := repositories.NewOrderRepository(d.Store)
	payments := repositories.NewPaymentRepository(d.Store)

	categoryController := controllers.NewCategoryController(categories)
	productController := controllers.NewProductController(products)
	userController := controllers.NewUserController(users)
	orderController := controllers.NewOrderController(orders, services.NewOrderService(orders))
	paymentController := controllers.NewPaymentController(
		services.NewCheckoutService(d.Store, payments, orders, products, d.Processor),
	)
	authController := controllers.NewAuthController(services.NewAuthService(users, d.Signer))

	verifyJWT := middleware.Auth(d.Signer)

	// Categories
	r.Get("/categories", "categories.index", ctx.Wrap(categoryController.Index))
	r.Get("/categories/{id}", "categories.show", ctx.Wrap(categoryController.Show))

	// Products
	r.Get("/products/{category}", "products.byCategory", ctx.Wrap(productController.ByCategory))
	r.Get("/advertisedproducts", "products.advertised", ctx.Wrap(productController.Advertised))
	r.Get("/products", "products.bySeller", ctx.Wrap(productController.BySeller))
	r.Post("/products", "products.store", ctx.Wrap(productController.Store))
	r.Put("/products/{id}", "products.advertise", ctx.Wrap(productController.Advertise), verifyJWT)

	// Reports
	r.Put("/reportItem/{id}", "reports.store", ctx.Wrap(productController.Report))
	r.Get("/reportedItems", "reports.index", ctx.Wrap(productController.Reported))
	r.Delete("/reportedItems/{id}", "reports.destroy", ctx.Wrap(productController.Destroy))

	// Users
	r.Get("/users/admin/{email}", "users.isAdmin", ctx.Wrap(userController.IsAdmin()))
	r.Get("/users/seller/{email}", "users.isSeller", ctx.Wrap(userController.IsSeller()))
	r.Get("/users/buyer/{email}", "users.isBuyer", ctx.Wrap(userController.IsBuyer()))
	r.Get("/buyers", "users.buyers", ctx.Wrap(userController.Buyers))
	r.Get("/sellers", "users.sellers", ctx.Wrap(userController.Sellers))
	r.Post("/users", "users.store", ctx.Wrap(userController.Store))
	r.Get("/users/{email}", "users.show", ctx.Wrap(userController.Show))

	admin := r.Group("/admin")
	admin.Put("/users/{id}", "admin.users.verify", ctx.Wrap(userController.Verify))
	admin.Delete("/users/{id}", "admin.users.destroy", ctx.Wrap(userController.Destroy))

	// Orders
	r.Post("/orders", "orders.store", ctx.Wrap(orderController.Store))
	r.Get("/orders/{email}", "orders.byBuyer", ctx.Wrap(orderController.ByBuyer))
	r.Get("/orders/payment/{id}", "orders.show", ctx.Wrap(orderController.Show))

	// Checkout
	r.Post("/create-payment-intent", "payments.intent", ctx.Wrap(paymentController.CreateIntent))
	r.Post("/payments", "payments.store", ctx.Wrap(paymentController.Store), verifyJWT)

	// Auth
	r.Get("/jwt", "auth.token", ctx.Wrap(authController.Token))
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/internal/store"
	"github.com/ironbark/buildmat/pkg/httpx"
	"github.com/ironbark/buildmat/pkg/jwtx"
	"github.com/ironbark/buildmat/pkg/slogx"

	_ "github.com/ironbark/buildmat/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService        *service.AuthService
	TokenService       *service.TokenService
	MaterialService    *service.MaterialService
	SupplierService    *service.SupplierService
	PurchaseService    *service.PurchaseService
	SaleService        *service.SaleService
	StockService       *service.StockService
	CustomerService    *service.CustomerService
	OrderService       *service.OrderService
	OrderDetailService *service.OrderDetailService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMaterials()
	r.registerSuppliers()
	r.registerPurchases()
	r.registerSales()
	r.registerStocks()
	r.registerCustomers()
	r.registerOrders()
	r.registerOrderDetails()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			BuildMat API
//	@version		0.1.0
//	@description	Building materials management service: account registration with
//	@description	email-code verification, JWT sessions, and CRUD over materials,
//	@description	suppliers, purchases, sales, stock, customers, and orders.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// All auth endpoints take credentials or tokens, so they get the strict
	// per-IP limit to slow down guessing.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/verify-2fa",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/request-reset",
		httpx.Chain(http.HandlerFunc(h.HandleRequestReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleResetPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

// secured wraps a handler with token verification and the per-account
// lenient rate limit used by the data endpoints.
func (r *Router) secured(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByAccount(httpx.LenientLimit),
	)
}

// securedAdmin is secured plus an admin role check; deletes go through it.
func (r *Router) securedAdmin(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleAdmin),
		httpx.RateLimitByAccount(httpx.ModerateLimit),
	)
}

func (r *Router) registerMaterials() {
	h := &MaterialsHandler{Materials: r.MaterialService}

	r.Mux.Handle("GET /v1/materials", r.secured(h.HandleList))
	r.Mux.Handle("GET /v1/materials/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /v1/materials", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /v1/materials/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/materials/{id}", r.securedAdmin(h.HandleDelete))
}

func (r *Router) registerSuppliers() {
	h := &SuppliersHandler{Suppliers: r.SupplierService}

	r.Mux.Handle("GET /v1/suppliers", r.secured(h.HandleList))
	r.Mux.Handle("GET /v1/suppliers/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /v1/suppliers", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /v1/suppliers/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/suppliers/{id}", r.securedAdmin(h.HandleDelete))
}

func (r *Router) registerPurchases() {
	h := &PurchasesHandler{Purchases: r.PurchaseService}

	r.Mux.Handle("GET /v1/purchases", r.secured(h.HandleList))
	r.Mux.Handle("GET /v1/purchases/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /v1/purchases", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /v1/purchases/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/purchases/{id}", r.securedAdmin(h.HandleDelete))
}

func (r *Router) registerSales() {
	h := &SalesHandler{Sales: r.SaleService}

	r.Mux.Handle("GET /v1/sales", r.secured(h.HandleList))
	r.Mux.Handle("GET /v1/sales/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /v1/sales", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /v1/sales/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/sales/{id}", r.securedAdmin(h.HandleDelete))
}

func (r *Router) registerStocks() {
	h := &StocksHandler{Stocks: r.StockService}

	r.Mux.Handle("GET /v1/stocks", r.secured(h.HandleList))
	r.Mux.Handle("GET /v1/stocks/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /v1/stocks", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /v1/stocks/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/stocks/{id}", r.securedAdmin(h.HandleDelete))
}

func (r *Router) registerCustomers() {
	h := &CustomersHandler{Customers: r.CustomerService}

	r.Mux.Handle("GET /v1/customers", r.secured(h.HandleList))
	r.Mux.Handle("GET /v1/customers/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /v1/customers", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /v1/customers/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/customers/{id}", r.securedAdmin(h.HandleDelete))
}

func (r *Router) registerOrders() {
	h := &OrdersHandler{Orders: r.OrderService}

	r.Mux.Handle("GET /v1/orders", r.secured(h.HandleList))
	r.Mux.Handle("GET /v1/orders/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /v1/orders", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /v1/orders/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/orders/{id}", r.securedAdmin(h.HandleDelete))
}

func (r *Router) registerOrderDetails() {
	h := &OrderDetailsHandler{OrderDetails: r.OrderDetailService}

	r.Mux.Handle("GET /v1/order-details", r.secured(h.HandleList))
	r.Mux.Handle("GET /v1/order-details/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /v1/order-details", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /v1/order-details/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/order-details/{id}", r.securedAdmin(h.HandleDelete))

	r.Mux.Handle("GET /v1/orders/{id}/details", r.secured(h.HandleListByOrder))
}

func (r *Router) registerUsers() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Role administration is admin only.
	r.Mux.Handle("PUT /v1/users/{id}/role", r.securedAdmin(h.HandleSetRole))
}

func (r *Router) registerSystem() {
	// Public key discovery for token verification by other services.
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

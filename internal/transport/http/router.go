package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/faiadgitm-oss/trpical-try/internal/db"
	"github.com/faiadgitm-oss/trpical-try/internal/handlers"
	"github.com/faiadgitm-oss/trpical-try/internal/middleware/auth"
	"github.com/faiadgitm-oss/trpical-try/internal/middleware/csrf"
	"github.com/faiadgitm-oss/trpical-try/internal/realtime"
	"github.com/faiadgitm-oss/trpical-try/internal/web"
)

type Deps struct {
	DB *gorm.DB

	MenuHandler    *handlers.MenuHTTP
	OrderHandler   *handlers.OrderHTTP
	AdminHandler   *handlers.AdminHTTP
	PagesHandler   *handlers.PagesHTTP
	SessionHandler *handlers.SessionHTTP
	Guard          *auth.AdminGuard
	Hub            *realtime.Hub

	CSRF      csrf.Config
	StaticDir string
	UploadDir string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	csrfMW := csrf.Middleware(d.CSRF)
	loginLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      0.2,
			Burst:     5,
			ExpiresIn: 3 * time.Minute,
		}),
	})

	e.GET("/", d.PagesHandler.Index)
	e.GET("/order-status/:id", d.PagesHandler.OrderStatus)
	e.GET("/admin", d.PagesHandler.Admin, d.Guard.RequireAdminPage, csrfMW)
	e.GET("/admin/login", d.SessionHandler.LoginForm, csrfMW)
	e.POST("/admin/login", d.SessionHandler.Login, loginLimiter, csrfMW)
	e.POST("/admin/logout", d.SessionHandler.Logout, csrfMW)

	api := e.Group("/api")
	api.GET("/menu", d.MenuHandler.Menu)
	api.GET("/search", d.MenuHandler.Search)
	api.POST("/order", d.OrderHandler.PlaceOrder)
	api.GET("/order/:id", d.OrderHandler.GetOrder)

	admin := api.Group("/admin", d.Guard.RequireAdminAPI)
	admin.GET("/orders", d.AdminHandler.ListOrders)
	admin.POST("/order/:id/update", d.AdminHandler.UpdateOrderStatus)
	admin.GET("/items", d.AdminHandler.ListItems)
	admin.POST("/item", d.AdminHandler.CreateItem)
	admin.POST("/item/:id", d.AdminHandler.UpdateItem)

	e.GET("/ws", d.Hub.ServeWS(realtime.NamespacePublic))
	e.GET("/ws/admin", d.Hub.ServeWS(realtime.NamespaceAdmin), d.Guard.RequireAdminAPI)

	e.FileFS("/static/"+web.AppScript, web.AppScript, web.Assets())
	if d.UploadDir != "" {
		e.Static("/static/uploads", d.UploadDir)
	}
	if d.StaticDir != "" {
		e.Static("/static", d.StaticDir)
	}
}

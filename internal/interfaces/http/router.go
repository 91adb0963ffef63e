package http

import (
	"net/http"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/vendor-management/internal/application/auth"
	"github.com/jhoicas/vendor-management/internal/application/report"
	"github.com/jhoicas/vendor-management/internal/application/usecase"
	"github.com/jhoicas/vendor-management/internal/domain/catalog"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ActorSvc     *usecase.ActorService
	VendorUC     *usecase.VendorUseCase
	ProductUC    *usecase.ProductUseCase
	CommentUC    *usecase.CommentUseCase
	PermissionUC *usecase.PermissionUseCase
	ReportUC     *report.ReportUseCase
	DashboardUC  *usecase.DashboardUseCase
	Storage      usecase.FileStorage
	Session      SessionConfig
	Cookie       CookieConfig
	Log          *logger.Logger
	Metrics      http.Handler // opcional: se expone en /metrics
	SwaggerFile  string       // opcional: habilita /docs
	AppName      string
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.SwaggerFile != "" {
		// Swagger UI: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    "Vendor Management API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	session := []fiber.Handler{AuthMiddleware(deps.Session), LoadActor(deps.ActorSvc)}
	protected := func(hs ...fiber.Handler) []fiber.Handler {
		out := make([]fiber.Handler, 0, len(session)+len(hs))
		out = append(out, session...)
		return append(out, hs...)
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Storage, deps.Cookie)
	app.Post("/signup/", authHandler.Signup)
	app.Post("/login/", authHandler.Login)

	// Cuenta
	app.Post("/logout/", protected(authHandler.Logout)...)
	app.Post("/accounts/password_change/", protected(authHandler.ChangePassword)...)
	app.Get("/profile/", protected(authHandler.Profile)...)
	app.Post("/update-profile/", protected(authHandler.UpdateProfile)...)

	// Portada
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	app.Get("/", protected(dashboardHandler.Summary)...)

	// Vendors
	vendorHandler := NewVendorHandler(deps.VendorUC)
	app.Get("/vendors/", protected(vendorHandler.List)...)
	app.Post("/create_vendor/", protected(RequireRole(entity.RoleVendor, entity.RoleAdmin), vendorHandler.Create)...)
	app.Get("/vendor/:id/", protected(vendorHandler.Get)...)
	app.Post("/edit/:id/", protected(vendorHandler.Update)...)

	// Productos y documentos (rutas específicas antes de /delete/:id/)
	productHandler := NewProductHandler(deps.ProductUC)
	app.Get("/applications/", protected(productHandler.List)...)
	app.Post("/create_product/", protected(productHandler.Create)...)
	app.Post("/update/:id/", protected(productHandler.Update)...)
	app.Get("/product/:id/", protected(productHandler.Get)...)
	app.Post("/delete/product/:id/", protected(productHandler.Delete)...)
	app.Post("/delete/document/:id/", protected(productHandler.DeleteDocument)...)
	app.Post("/delete/:id/", protected(vendorHandler.Delete)...)

	// Reseñas
	commentHandler := NewCommentHandler(deps.CommentUC)
	app.Post("/add-comment/vendor/:id/", protected(commentHandler.AddVendor)...)
	app.Post("/add-comment/product/:id/", protected(commentHandler.AddProduct)...)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	canReport := RequirePermission(catalog.CanGenerateVendorProductReport)
	app.Get("/generate_softwares_pdf/", protected(canReport, reportHandler.PDF)...)
	app.Get("/export-csv/", protected(canReport, reportHandler.CSV)...)

	// Permisos y usuarios
	permissionHandler := NewPermissionHandler(deps.PermissionUC, deps.Log)
	canManage := RequirePermission(catalog.ManagePermissionRecord)
	canAssign := RequirePermission(catalog.AssignUserPermission)
	app.Get("/permissions/", protected(canManage, permissionHandler.List)...)
	app.Post("/create_permission/", protected(canManage, permissionHandler.Create)...)
	app.Post("/update_permission/:id/", protected(canManage, permissionHandler.Update)...)
	app.Post("/permissions/delete/:id/", protected(canManage, permissionHandler.Delete)...)
	app.Post("/assign_permission/", protected(permissionHandler.Assign)...)
	app.Get("/users/", protected(canAssign, permissionHandler.Users)...)
	app.Get("/users/:id/", protected(canAssign, permissionHandler.UserDetail)...)
}

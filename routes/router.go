package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foliohq/folio/config"
	"github.com/foliohq/folio/controllers"
	"github.com/foliohq/folio/middleware"
	"github.com/foliohq/folio/utils"
)

// route declares one API operation and the policies that guard it. Keeping
// the whole surface in one table makes the open/protected split auditable
// at a glance.
type route struct {
	method    string
	path      string
	handler   gin.HandlerFunc
	protected bool
	throttled bool
}

// SetupRouter builds the full engine: gin mode, request logging, recovery,
// request ids, CORS, then the API surface via Register.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	r.Use(middleware.RequestID())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	Register(r, db)
	return r
}

// Register mounts the API surface onto an existing engine. Split from
// SetupRouter so tests can mount routes without file loggers or CORS.
func Register(r *gin.Engine, db *gorm.DB) {
	auth := controllers.NewAuthController(db)
	projects := controllers.NewProjectController(db)
	skills := controllers.NewSkillController(db)
	services := controllers.NewServiceController(db)
	technologies := controllers.NewTechnologyController(db)
	posts := controllers.NewPostController(db)
	taxonomies := controllers.NewTaxonomyController(db)
	contact := controllers.NewContactController(db)

	routes := []route{
		// Auth
		{method: http.MethodPost, path: "/auth/login", handler: auth.Login, throttled: true},
		{method: http.MethodGet, path: "/auth/me", handler: auth.Me, protected: true},
		{method: http.MethodPost, path: "/auth/logout", handler: auth.Logout, protected: true},

		// Projects
		{method: http.MethodGet, path: "/projects", handler: projects.List},
		{method: http.MethodGet, path: "/projects/:id", handler: projects.Get},
		{method: http.MethodPost, path: "/projects", handler: projects.Create, protected: true, throttled: true},
		{method: http.MethodPatch, path: "/projects/:id", handler: projects.Update, protected: true, throttled: true},
		{method: http.MethodDelete, path: "/projects/:id", handler: projects.Delete, protected: true, throttled: true},

		// Skills. Create is intentionally left ungated; every other
		// skill mutation requires a token.
		{method: http.MethodGet, path: "/skills", handler: skills.List},
		{method: http.MethodGet, path: "/skills/:id", handler: skills.Get},
		{method: http.MethodPost, path: "/skills", handler: skills.Create, throttled: true},
		{method: http.MethodPatch, path: "/skills/:id", handler: skills.Update, protected: true, throttled: true},
		{method: http.MethodDelete, path: "/skills/:id", handler: skills.Delete, protected: true, throttled: true},

		// Services
		{method: http.MethodGet, path: "/services", handler: services.List},
		{method: http.MethodGet, path: "/services/:id", handler: services.Get},
		{method: http.MethodPost, path: "/services", handler: services.Create, protected: true, throttled: true},
		{method: http.MethodPatch, path: "/services/:id", handler: services.Update, protected: true, throttled: true},
		{method: http.MethodDelete, path: "/services/:id", handler: services.Delete, protected: true, throttled: true},

		// Technologies
		{method: http.MethodGet, path: "/technologies", handler: technologies.List},
		{method: http.MethodGet, path: "/technologies/:id", handler: technologies.Get},
		{method: http.MethodPost, path: "/technologies", handler: technologies.Create, protected: true, throttled: true},
		{method: http.MethodPatch, path: "/technologies/:id", handler: technologies.Update, protected: true, throttled: true},
		{method: http.MethodDelete, path: "/technologies/:id", handler: technologies.Delete, protected: true, throttled: true},

		// Posts
		{method: http.MethodGet, path: "/posts", handler: posts.List},
		{method: http.MethodGet, path: "/posts/:id", handler: posts.Get},
		{method: http.MethodPost, path: "/posts", handler: posts.Create, protected: true, throttled: true},
		{method: http.MethodPatch, path: "/posts/:id", handler: posts.Update, protected: true, throttled: true},
		{method: http.MethodDelete, path: "/posts/:id", handler: posts.Delete, protected: true, throttled: true},

		// Taxonomies
		{method: http.MethodGet, path: "/categories", handler: taxonomies.ListCategories},
		{method: http.MethodPost, path: "/categories", handler: taxonomies.CreateCategory, protected: true, throttled: true},
		{method: http.MethodGet, path: "/tags", handler: taxonomies.ListTags},
		{method: http.MethodPost, path: "/tags", handler: taxonomies.CreateTag, protected: true, throttled: true},

		// Contact
		{method: http.MethodPost, path: "/contact", handler: contact.Submit, throttled: true},
	}

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthRequired()
	rateLimit := middleware.RateLimitMiddleware()

	api := r.Group("/api")
	for _, rt := range routes {
		handlers := make([]gin.HandlerFunc, 0, 3)
		if rt.throttled {
			handlers = append(handlers, rateLimit)
		}
		if rt.protected {
			handlers = append(handlers, authRequired)
		}
		handlers = append(handlers, rt.handler)
		api.Handle(rt.method, rt.path, handlers...)
	}
}

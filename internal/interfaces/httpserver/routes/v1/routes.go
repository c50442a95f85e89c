package v1

import (
	"github.com/gin-gonic/gin"

	"love-unlock/internal/interfaces/httpserver/handlers"
	"love-unlock/internal/interfaces/httpserver/middlewares"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	owner    gin.HandlerFunc
	adminKey string
}

// NewRoutes takes the bearer middleware that guards owner endpoints and the admin key.
func NewRoutes(provider *handlers.Provider, owner gin.HandlerFunc, adminKey string) *Routes {
	return &Routes{handlers: provider, owner: owner, adminKey: adminKey}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")
	group.GET("/plans", r.handlers.Plan.List)
	group.POST("/unlock/request", r.handlers.Unlock.Submit)

	r.registerPages(group.Group("/pages"))
	r.registerAdmin(group.Group("/admin", middlewares.RequireAdminKey(r.adminKey)))
}

func (r *Routes) registerPages(pages *gin.RouterGroup) {
	pages.POST("", r.owner, r.handlers.Page.Create)
	pages.GET("", r.owner, r.handlers.Page.ListMine)
	pages.DELETE("/:code", r.owner, r.handlers.Page.Delete)

	pages.GET("/:code", r.handlers.Page.Get)
	pages.PATCH("/:code", r.handlers.Page.UpdateSettings)
	pages.POST("/:code/pin", r.handlers.Page.VerifyPIN)
	pages.POST("/:code/respond", r.handlers.Page.Respond)
	pages.POST("/:code/views", r.handlers.Page.RecordView)

	pages.GET("/:code/memories", r.handlers.Memory.List)
	pages.POST("/:code/memories", r.handlers.Memory.Add)

	pages.GET("/:code/templates", r.handlers.Template.List)
	pages.POST("/:code/templates", r.handlers.Template.Save)
	pages.POST("/:code/templates/upload", r.handlers.Template.Upload)
	pages.POST("/:code/photos", r.handlers.Template.UploadPhoto)
}

func (r *Routes) registerAdmin(admin *gin.RouterGroup) {
	admin.POST("/unlock", r.handlers.Admin.OverridePlan)
	admin.GET("/unlock-requests", r.handlers.Admin.ListLedger)
}

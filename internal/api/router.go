// Package api exposes the CRUD surface of the backend over HTTP and
// upgrades dashboard connections onto the live-update hub.
package api

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/live"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
	"github.com/Dev-Mayuresh/resto-mania-backend/internal/repository"
)

type OrderStore interface {
	Create(ctx context.Context, p repository.CreateOrderParams) ([]models.OrderItem, error)
	GetByID(ctx context.Context, orderID string) (models.OrderDetail, error)
	UpdateStatus(ctx context.Context, orderID, status string) (models.Order, error)
	UpdateSessionStatus(ctx context.Context, orderID, sessionID, status string) (models.Session, error)
}

type BillStore interface {
	Create(ctx context.Context, orderID string) (models.BillRequest, error)
	List(ctx context.Context) ([]models.BillRequest, error)
	UpdateStatus(ctx context.Context, orderID, status string) (models.BillRequest, error)
}

type TableStore interface {
	UpdateStatus(ctx context.Context, tableID int, status string) (models.Table, error)
	List(ctx context.Context) ([]models.Table, error)
}

type UserStore interface {
	Create(ctx context.Context, clientID, name, mailID string) (models.User, error)
	GetByID(ctx context.Context, clientID string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, clientID, name, mailID string) (models.User, error)
	SetConversationID(ctx context.Context, clientID, convoID string) (bool, error)
}

type FeedbackStore interface {
	Add(ctx context.Context, clientID, text string) (models.Feedback, error)
	List(ctx context.Context) ([]models.Feedback, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Feedback, error)
	Delete(ctx context.Context, feedbackID int64) error
}

// Handler carries the stores and the hub the routes are served from.
type Handler struct {
	orders   OrderStore
	bills    BillStore
	tables   TableStore
	users    UserStore
	feedback FeedbackStore
	hub      *live.Hub
	log      *logrus.Entry
}

func NewHandler(
	orders OrderStore,
	bills BillStore,
	tables TableStore,
	users UserStore,
	feedback FeedbackStore,
	hub *live.Hub,
	log *logrus.Entry,
) *Handler {
	return &Handler{
		orders:   orders,
		bills:    bills,
		tables:   tables,
		users:    users,
		feedback: feedback,
		hub:      hub,
		log:      log,
	}
}

// NewRouter builds the gin engine with CORS and all routes attached.
func NewRouter(h *Handler, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) > 0 {
		corsCfg.AllowOrigins = corsOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE"}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:order_id", h.GetOrder)
		api.PUT("/orders/:order_id", h.UpdateOrderStatus)
		api.PUT("/orders/:order_id/:session_id", h.UpdateSessionStatus)

		api.POST("/bill-requests", h.CreateBillRequest)
		api.GET("/bill-requests", h.ListBillRequests)
		api.PUT("/bill-requests/:order_id", h.UpdateBillStatus)

		api.GET("/tables", h.ListTables)
		api.PUT("/tables/status", h.UpdateTableStatus)

		api.POST("/users", h.CreateUser)
		api.GET("/users", h.ListUsers)
		api.GET("/users/:client_id", h.GetUser)
		api.PUT("/users/:client_id", h.UpdateUser)
		api.POST("/users/conversation", h.UpdateConversationID)

		api.POST("/feedback", h.AddFeedback)
		api.GET("/feedback", h.ListFeedback)
		api.GET("/feedback/:client_id", h.ListFeedbackByClient)
		api.DELETE("/feedback/:feedback_id", h.DeleteFeedback)
	}

	r.GET("/ws", h.ServeWS)

	return r
}

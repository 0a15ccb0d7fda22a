package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
	"github.com/Xaan1506/NSTrack-Backend/internal/handler"
	"github.com/Xaan1506/NSTrack-Backend/internal/middleware"
	"github.com/Xaan1506/NSTrack-Backend/internal/service"
)

func APIRouter(r *gin.RouterGroup, svcs *service.Services) {
	authHandler := &handler.AuthHandler{Users: svcs.Users, Resets: svcs.Resets}
	friendHandler := &handler.FriendHandler{Friends: svcs.Friends, Presence: svcs.Presence}
	notificationHandler := &handler.NotificationHandler{Notifications: svcs.Notifications}
	progressHandler := &handler.ProgressHandler{Progress: svcs.Progress}

	requireAuth := middleware.Auth(svcs.Session)

	// Public endpoints
	auth := r.Group("/auth")
	auth.POST("/signup", middleware.ValidateBody[dto.SignupRequest](), authHandler.SignupHandler)
	auth.POST("/login", middleware.ValidateBody[dto.LoginRequest](), authHandler.LoginHandler)
	auth.POST("/reset-password", middleware.ValidateBody[dto.ResetPasswordRequest](), authHandler.ResetPasswordHandler)

	// Authenticated endpoints
	auth.GET("/profile", requireAuth, authHandler.ProfileHandler)
	r.GET("/profile", requireAuth, authHandler.ProfileHandler)

	friends := r.Group("/friends", requireAuth)
	friends.POST("/request", middleware.ValidateBody[dto.FriendRequestRequest](), friendHandler.RequestHandler)
	friends.POST("/accept", middleware.ValidateBody[dto.FriendResponseRequest](), friendHandler.AcceptHandler)
	friends.POST("/reject", middleware.ValidateBody[dto.FriendResponseRequest](), friendHandler.RejectHandler)
	friends.GET("/list", friendHandler.ListFriendsHandler)
	friends.GET("/online", friendHandler.OnlineFriendsHandler)
	friends.GET("/requests/incoming", friendHandler.IncomingHandler)
	friends.GET("/requests/outgoing", friendHandler.OutgoingHandler)

	notifications := r.Group("/notifications", requireAuth)
	notifications.GET("/unread", notificationHandler.UnreadHandler)
	notifications.POST("/mark-read", notificationHandler.MarkReadHandler)

	progress := r.Group("/progress", requireAuth)
	progress.POST("/", progressHandler.LogProgressHandler)
	progress.GET("/", progressHandler.ListProgressHandler)
}

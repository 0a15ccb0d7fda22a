package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
	"github.com/Xaan1506/NSTrack-Backend/internal/middleware"
	"github.com/Xaan1506/NSTrack-Backend/internal/service"
)

type FriendHandler struct {
	Friends  *service.FriendService
	Presence *service.PresenceService
}

// RequestHandler godoc
// @Summary Send friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FriendRequestRequest true "Target"
// @Success 200 {object} dto.DetailResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /friends/request [post]
func (h *FriendHandler) RequestHandler(c *gin.Context) {
	body := middleware.ValidatedBody[dto.FriendRequestRequest](c)
	user := middleware.CurrentUser(c)

	if err := h.Friends.Request(c.Request.Context(), user.Email, body.ToEmail); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.DetailResponse{Detail: "request sent"})
}

// AcceptHandler godoc
// @Summary Accept friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FriendResponseRequest true "Requester"
// @Success 200 {object} dto.DetailResponse
// @Failure 404 {object} map[string]string
// @Router /friends/accept [post]
func (h *FriendHandler) AcceptHandler(c *gin.Context) {
	body := middleware.ValidatedBody[dto.FriendResponseRequest](c)
	user := middleware.CurrentUser(c)

	if err := h.Friends.Accept(c.Request.Context(), body.FromEmail, user.Email); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.DetailResponse{Detail: "accepted"})
}

// RejectHandler godoc
// @Summary Reject friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FriendResponseRequest true "Requester"
// @Success 200 {object} dto.DetailResponse
// @Failure 404 {object} map[string]string
// @Router /friends/reject [post]
func (h *FriendHandler) RejectHandler(c *gin.Context) {
	body := middleware.ValidatedBody[dto.FriendResponseRequest](c)
	user := middleware.CurrentUser(c)

	if err := h.Friends.Reject(c.Request.Context(), body.FromEmail, user.Email); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.DetailResponse{Detail: "rejected"})
}

// ListFriendsHandler godoc
// @Summary List friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.FriendsResponse
// @Router /friends/list [get]
func (h *FriendHandler) ListFriendsHandler(c *gin.Context) {
	friends, err := h.Friends.ListFriends(c.Request.Context(), middleware.CurrentUser(c).Email)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.FriendsResponse{Friends: friends})
}

// OnlineFriendsHandler godoc
// @Summary List online friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OnlineFriendsResponse
// @Router /friends/online [get]
func (h *FriendHandler) OnlineFriendsHandler(c *gin.Context) {
	online, err := h.Presence.OnlineFriends(c.Request.Context(), middleware.CurrentUser(c).Email)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.OnlineFriendsResponse{Online: online})
}

// IncomingHandler godoc
// @Summary Pending requests sent to me
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.IncomingRequestsResponse
// @Router /friends/requests/incoming [get]
func (h *FriendHandler) IncomingHandler(c *gin.Context) {
	incoming, err := h.Friends.ListIncoming(c.Request.Context(), middleware.CurrentUser(c).Email)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.IncomingRequestsResponse{Incoming: incoming})
}

// OutgoingHandler godoc
// @Summary Pending requests sent by me
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OutgoingRequestsResponse
// @Router /friends/requests/outgoing [get]
func (h *FriendHandler) OutgoingHandler(c *gin.Context) {
	outgoing, err := h.Friends.ListOutgoing(c.Request.Context(), middleware.CurrentUser(c).Email)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.OutgoingRequestsResponse{Outgoing: outgoing})
}

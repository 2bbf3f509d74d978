package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/postfolio/postfolio-backend/internal/common"
	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/internal/middleware"
	"github.com/postfolio/postfolio-backend/internal/service"
	"github.com/postfolio/postfolio-backend/pkg/ginutil"
)

// ConnectionHandler handles HTTP requests for friend connections
type ConnectionHandler struct {
	service service.ConnectionService
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(service service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

// SendRequest godoc
// @Summary      Send a connection request
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path  int  true  "Receiver user ID"
// @Success      201  {object}  common.APIResponse{data=domain.ConnectionResponse}
// @Failure      409  {object}  common.APIResponse
// @Router       /connections/{user_id} [post]
func (h *ConnectionHandler) SendRequest(c *gin.Context) {
	receiverID, err := ginutil.ParamInt64(c, "user_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid user ID", err)
		return
	}

	conn, err := h.service.SendRequest(middleware.GetUserID(c), receiverID)
	if err != nil {
		h.respondConnError(c, err, "Failed to send request")
		return
	}

	common.CreatedResponse(c, conn.ToResponse())
}

// AcceptRequest godoc
// @Summary      Accept a pending connection request
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Connection ID"
// @Success      200  {object}  common.APIResponse{data=domain.ConnectionResponse}
// @Failure      403  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /connections/{id}/accept [put]
func (h *ConnectionHandler) AcceptRequest(c *gin.Context) {
	h.resolveRequest(c, h.service.AcceptRequest)
}

// RejectRequest godoc
// @Summary      Reject a pending connection request
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Connection ID"
// @Success      200  {object}  common.APIResponse{data=domain.ConnectionResponse}
// @Failure      403  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /connections/{id}/reject [put]
func (h *ConnectionHandler) RejectRequest(c *gin.Context) {
	h.resolveRequest(c, h.service.RejectRequest)
}

func (h *ConnectionHandler) resolveRequest(c *gin.Context, resolve func(int64, int64) (*domain.Connection, error)) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid connection ID", err)
		return
	}

	conn, err := resolve(id, middleware.GetUserID(c))
	if err != nil {
		h.respondConnError(c, err, "Failed to resolve request")
		return
	}

	common.SuccessResponse(c, conn.ToResponse(), nil)
}

// BlockUser godoc
// @Summary      Block a user
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path  int  true  "User ID to block"
// @Success      200  {object}  common.APIResponse{data=domain.ConnectionResponse}
// @Router       /connections/block/{user_id} [put]
func (h *ConnectionHandler) BlockUser(c *gin.Context) {
	targetID, err := ginutil.ParamInt64(c, "user_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid user ID", err)
		return
	}

	conn, err := h.service.BlockUser(middleware.GetUserID(c), targetID)
	if err != nil {
		h.respondConnError(c, err, "Failed to block user")
		return
	}

	common.SuccessResponse(c, conn.ToResponse(), nil)
}

// RemoveConnection godoc
// @Summary      Remove a connection
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Connection ID"
// @Success      200  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Router       /connections/{id} [delete]
func (h *ConnectionHandler) RemoveConnection(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid connection ID", err)
		return
	}

	if err := h.service.RemoveConnection(id, middleware.GetUserID(c)); err != nil {
		h.respondConnError(c, err, "Failed to remove connection")
		return
	}

	common.SuccessResponse(c, gin.H{"removed": true}, nil)
}

// ListConnections godoc
// @Summary      List the caller's accepted connections
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.ConnectionResponse}
// @Router       /connections [get]
func (h *ConnectionHandler) ListConnections(c *gin.Context) {
	conns, err := h.service.ListConnections(middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch connections", err)
		return
	}
	common.SuccessResponse(c, toConnResponses(conns), nil)
}

// ListPendingSent godoc
// @Summary      List requests the caller has sent and that are still pending
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.ConnectionResponse}
// @Router       /connections/pending/sent [get]
func (h *ConnectionHandler) ListPendingSent(c *gin.Context) {
	conns, err := h.service.ListPendingSent(middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch pending requests", err)
		return
	}
	common.SuccessResponse(c, toConnResponses(conns), nil)
}

// ListPendingReceived godoc
// @Summary      List requests waiting for the caller's decision
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.ConnectionResponse}
// @Router       /connections/pending/received [get]
func (h *ConnectionHandler) ListPendingReceived(c *gin.Context) {
	conns, err := h.service.ListPendingReceived(middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch pending requests", err)
		return
	}
	common.SuccessResponse(c, toConnResponses(conns), nil)
}

// GetConnectionStatus godoc
// @Summary      Get the connection state between the caller and another user
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path  int  true  "Other user ID"
// @Success      200  {object}  common.APIResponse
// @Router       /connections/status/{user_id} [get]
func (h *ConnectionHandler) GetConnectionStatus(c *gin.Context) {
	otherID, err := ginutil.ParamInt64(c, "user_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid user ID", err)
		return
	}

	status, err := h.service.ConnectionStatus(middleware.GetUserID(c), otherID)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch status", err)
		return
	}
	common.SuccessResponse(c, gin.H{"status": status}, nil)
}

// CountConnections godoc
// @Summary      Count the caller's accepted connections
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse
// @Router       /connections/count [get]
func (h *ConnectionHandler) CountConnections(c *gin.Context) {
	count, err := h.service.CountConnections(middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to count connections", err)
		return
	}
	common.SuccessResponse(c, gin.H{"count": count}, nil)
}

func (h *ConnectionHandler) respondConnError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrConnectionNotFound):
		common.ErrorResponse(c, 404, "Connection not found", err)
	case errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, 404, "User not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Not allowed", err)
	case errors.Is(err, common.ErrSelfConnection):
		common.ErrorResponse(c, 400, "Cannot connect to yourself", err)
	case errors.Is(err, common.ErrRequestPending):
		common.ErrorResponse(c, 409, "Request already pending", err)
	case errors.Is(err, common.ErrAlreadyConnected):
		common.ErrorResponse(c, 409, "Already connected", err)
	case errors.Is(err, common.ErrUserBlocked):
		common.ErrorResponse(c, 409, "Connection blocked", err)
	case errors.Is(err, common.ErrNotPending):
		common.ErrorResponse(c, 409, "Request is not pending", err)
	default:
		common.ErrorResponse(c, 500, fallback, err)
	}
}

func toConnResponses(conns []*domain.Connection) []*domain.ConnectionResponse {
	resp := make([]*domain.ConnectionResponse, len(conns))
	for i, conn := range conns {
		resp[i] = conn.ToResponse()
	}
	return resp
}

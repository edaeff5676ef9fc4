package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/ctxutil"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
	"github.com/sourcexpress/sourcexpress-backend/internal/realtime"
	"github.com/sourcexpress/sourcexpress-backend/internal/services"
)

type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.Hub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{
		log: log.With("handler", "RealtimeHandler"),
		hub: hub,
	}
}

// Stream opens the SSE connection. Channels are passed as a comma-separated
// query parameter; every client also joins its own user channel.
func (rh *RealtimeHandler) Stream(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	client := rh.hub.NewClient(rd.UserID)
	rh.hub.AddChannel(client, "user:"+rd.UserID.String())
	for _, channel := range c.QueryArray("channel") {
		switch channel {
		case services.ChannelSuppliers, services.ChannelQuotations, services.ChannelCompliance:
			rh.hub.AddChannel(client, channel)
		default:
			rh.log.Warn("ignoring unknown realtime channel", "channel", channel)
		}
	}

	rh.log.Info("realtime stream open", "user_id", rd.UserID, "client_id", client.ID)
	rh.hub.ServeHTTP(c.Writer, c.Request, client)
	rh.hub.CloseClient(client)
}

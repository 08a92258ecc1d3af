package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Shaloh69/autohub-be/internal/event"
	"github.com/Shaloh69/autohub-be/internal/token"
	"github.com/gin-gonic/gin"
)

//	@Summary		Stream moderation queue events via Server-Sent Events
//	@Description	Establishes an SSE connection carrying new submissions to the moderation queue.
//	@Tags			moderator
//	@Produce		text/event-stream
//	@Security		accessToken
//	@Success		200	{string}	string	"Event stream. Data will be sent as SSE events with format: 'event: {eventType}\ndata: {jsonData}'"
//	@Router			/mod/listings/stream [get]
func (server *Server) streamModerationEvents(c *gin.Context) {
	server.streamTopic(c, event.TopicModeration)
}

//	@Summary		Stream the authenticated seller's listing events
//	@Description	Establishes an SSE connection carrying moderation verdicts on the seller's listings.
//	@Tags			listings
//	@Produce		text/event-stream
//	@Security		accessToken
//	@Success		200	{string}	string	"Event stream"
//	@Router			/users/me/listings/stream [get]
func (server *Server) streamSellerEvents(c *gin.Context) {
	payload := c.MustGet(authorizationPayloadKey).(*token.Payload)
	server.streamTopic(c, event.SellerTopic(payload.Subject))
}

func (server *Server) streamTopic(c *gin.Context, topic string) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)

	clientChan := make(chan event.Event)
	server.eventSender.Register(topic, clientChan)
	defer server.eventSender.Unregister(topic, clientChan)

	for {
		select {
		case ev := <-clientChan:
			data, _ := json.Marshal(ev.Data)
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Type, data)
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

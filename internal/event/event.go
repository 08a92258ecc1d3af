package event

// Event is a single server-sent event, routed by topic.
type Event struct {
	Topic string      // e.g. "moderation", "seller:abc"
	Type  string      // event kind, one of the EventType constants
	Data  interface{} // event payload, depends on the kind
}

const (
	EventTypeListingSubmitted = "listing_submitted" // a listing entered the moderation queue
	EventTypeListingApproved  = "listing_approved"  // a moderator published a listing
	EventTypeListingRejected  = "listing_rejected"  // a moderator bounced a listing
)

// TopicModeration is the feed moderators subscribe to for queue changes.
const TopicModeration = "moderation"

// SellerTopic is the per-seller feed carrying verdicts on their listings.
func SellerTopic(sellerID string) string {
	return "seller:" + sellerID
}

// EventSender is the server side of the event stream.
type EventSender interface {
	Register(topic string, client chan Event)
	Unregister(topic string, client chan Event)
	Broadcast(event Event)
	Run()
}

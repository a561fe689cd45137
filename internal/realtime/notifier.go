package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"gigflow/internal/models"
)

// Event is the payload pushed to a hired freelancer's connections.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	GigID   string `json:"gig_id"`
	BidID   string `json:"bid_id,omitempty"`
}

// envelope is the cross-instance wire format on the Redis channel. Origin
// lets the bridge skip events this instance already delivered locally.
type envelope struct {
	Origin string    `json:"origin"`
	UserID uuid.UUID `json:"user_id"`
	Event  Event     `json:"event"`
}

const channelPrefix = "notifications:"

// Notifier pushes events to a user's local connections and mirrors them to
// Redis so connections held by other instances get them too. Everything is
// best-effort: a Redis failure is logged and swallowed.
type Notifier struct {
	Hub    *Hub
	RDB    *redis.Client
	origin string
}

func NewNotifier(hub *Hub, rdb *redis.Client) *Notifier {
	return &Notifier{Hub: hub, RDB: rdb, origin: uuid.New().String()}
}

// NotifyHired implements hiring.Notifier.
func (n *Notifier) NotifyHired(gig *models.Gig, bid *models.Bid) {
	n.Publish(bid.FreelancerID, Event{
		Type:    "hired",
		Message: "You have been hired for \"" + gig.Title + "\"!",
		GigID:   gig.ID.String(),
		BidID:   bid.ID.String(),
	})
}

// Publish delivers event to every local connection for userID and mirrors
// it onto the user's Redis channel.
func (n *Notifier) Publish(userID uuid.UUID, event Event) {
	n.Hub.Publish(userID, event)

	if n.RDB == nil {
		return
	}
	b, err := json.Marshal(envelope{Origin: n.origin, UserID: userID, Event: event})
	if err != nil {
		logrus.WithError(err).Error("marshal notification envelope")
		return
	}
	if err := n.RDB.Publish(context.Background(), channelPrefix+userID.String(), b).Err(); err != nil {
		logrus.WithError(err).Warn("redis notification publish failed")
	}
}

// RunBridge subscribes to the notification channels and feeds events that
// originated on other instances into the local hub. Blocks until ctx is
// done; meant to run on its own goroutine.
func (n *Notifier) RunBridge(ctx context.Context) {
	if n.RDB == nil {
		return
	}
	sub := n.RDB.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				logrus.WithError(err).Warn("bad notification envelope")
				continue
			}
			if env.Origin == n.origin {
				continue
			}
			if env.UserID == uuid.Nil {
				continue
			}
			n.Hub.Publish(env.UserID, env.Event)
		}
	}
}

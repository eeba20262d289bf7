package entity

import (
	"sort"
	"strings"
	"time"
)

// Chat is a thread between exactly two users. The chat document keeps the
// authoritative list of its message ids; the messages themselves live as
// standalone documents. Both sides are updated together on every mutation.
type Chat struct {
	ID            string    `json:"id" firestore:"id"`
	PairKey       string    `json:"-" firestore:"pairKey"`
	Participants  []string  `json:"participants" firestore:"participants"`
	MessageIDs    []string  `json:"messages" firestore:"messageIds"`
	LastMessageID string    `json:"last_message_id,omitempty" firestore:"lastMessageId"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ChatPairKey derives the canonical key for an unordered user pair. The same
// key comes out regardless of argument order, which is what keeps one chat
// document per pair and one broadcast channel per pair.
func ChatPairKey(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, "-")
}

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

func (c *Chat) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

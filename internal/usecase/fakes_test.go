package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"homerent/internal/domain/entity"
	"homerent/internal/domain/service"
	"homerent/pkg/errors"
)

// In-memory repository doubles mirroring the Firestore implementations'
// behavior, including the transactional guarantees the usecases lean on.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		copied := *r.users[id]
		users = append(users, &copied)
	}
	total := int64(len(users))
	if offset >= len(users) {
		return []*entity.User{}, total, nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], total, nil
}

func (r *fakeUserRepo) SaveRating(ctx context.Context, targetID, raterID string, score int) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[targetID]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	if user.Raters == nil {
		user.Raters = make(map[string]int)
	}
	if previous, rated := user.Raters[raterID]; rated {
		user.TotalScore -= int64(previous)
	} else {
		user.TotalRatings++
	}
	user.Raters[raterID] = score
	user.TotalScore += int64(score)
	user.AverageRating = float64(user.TotalScore) / float64(user.TotalRatings)
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) coins(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return user.Coins
	}
	return 0
}

type fakeChatRepo struct {
	mu       sync.Mutex
	users    *fakeUserRepo
	chats    map[string]*entity.Chat
	messages map[string]*entity.Message
}

func newFakeChatRepo(users *fakeUserRepo) *fakeChatRepo {
	return &fakeChatRepo{
		users:    users,
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string]*entity.Message),
	}
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	copied := *chat
	return &copied, nil
}

func (r *fakeChatRepo) GetByParticipants(ctx context.Context, userA, userB string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pairKey := entity.ChatPairKey(userA, userB)
	for _, chat := range r.chats {
		if chat.PairKey == pairKey {
			copied := *chat
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *fakeChatRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var chats []*entity.Chat
	for _, chat := range r.chats {
		if chat.HasParticipant(userID) {
			copied := *chat
			chats = append(chats, &copied)
		}
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i].UpdatedAt.After(chats[j].UpdatedAt) })
	return chats, nil
}

func (r *fakeChatRepo) DeleteWithMessages(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[chat.ID]; !ok {
		return errors.NotFound("Chat", nil)
	}
	for _, messageID := range chat.MessageIDs {
		delete(r.messages, messageID)
	}
	delete(r.chats, chat.ID)
	return nil
}

func (r *fakeChatRepo) GetMessageByID(ctx context.Context, messageID string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	message, ok := r.messages[messageID]
	if !ok {
		return nil, errors.NotFound("Message", nil)
	}
	copied := *message
	return &copied, nil
}

func (r *fakeChatRepo) ListMessagesByChat(ctx context.Context, chatID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var messages []*entity.Message
	for _, message := range r.messages {
		if message.ChatID == chatID {
			copied := *message
			messages = append(messages, &copied)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.Before(messages[j].CreatedAt) })
	return messages, nil
}

func (r *fakeChatRepo) AppendMessage(ctx context.Context, senderID, recipientID string, message *entity.Message, coinCost int64) (*entity.Chat, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users.mu.Lock()
	sender, ok := r.users.users[senderID]
	if !ok {
		r.users.mu.Unlock()
		return nil, false, errors.NotFound("Sender", nil)
	}
	if coinCost > 0 && sender.Coins < coinCost {
		r.users.mu.Unlock()
		return nil, false, errors.UnprocessableEntity("Insufficient coin balance", nil)
	}
	sender.Coins -= coinCost
	r.users.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	pairKey := entity.ChatPairKey(senderID, recipientID)
	var chat *entity.Chat
	created := false
	for _, existing := range r.chats {
		if existing.PairKey == pairKey {
			chat = existing
			break
		}
	}
	if chat == nil {
		chat = &entity.Chat{
			ID:           uuid.New().String(),
			PairKey:      pairKey,
			Participants: []string{senderID, recipientID},
			MessageIDs:   []string{},
			CreatedAt:    message.CreatedAt,
		}
		r.chats[chat.ID] = chat
		created = true
	}

	message.ChatID = chat.ID
	chat.MessageIDs = append(chat.MessageIDs, message.ID)
	chat.LastMessageID = message.ID
	chat.UpdatedAt = message.CreatedAt

	copied := *message
	r.messages[message.ID] = &copied

	chatCopy := *chat
	return &chatCopy, created, nil
}

func (r *fakeChatRepo) UpdateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[message.ID]; !ok {
		return errors.NotFound("Message", nil)
	}
	copied := *message
	r.messages[message.ID] = &copied
	return nil
}

func (r *fakeChatRepo) RemoveMessage(ctx context.Context, message *entity.Message) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[message.ChatID]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	delete(r.messages, message.ID)

	remaining := chat.MessageIDs[:0]
	for _, id := range chat.MessageIDs {
		if id != message.ID {
			remaining = append(remaining, id)
		}
	}
	chat.MessageIDs = remaining

	chat.LastMessageID = ""
	var newest *entity.Message
	for _, m := range r.messages {
		if m.ChatID != chat.ID {
			continue
		}
		if newest == nil || m.CreatedAt.After(newest.CreatedAt) {
			newest = m
		}
	}
	if newest != nil {
		chat.LastMessageID = newest.ID
	}
	chat.UpdatedAt = time.Now()

	copied := *chat
	return &copied, nil
}

type fakeCoinOrderRepo struct {
	mu     sync.Mutex
	users  *fakeUserRepo
	orders map[string]*entity.CoinOrder
}

func newFakeCoinOrderRepo(users *fakeUserRepo) *fakeCoinOrderRepo {
	return &fakeCoinOrderRepo{
		users:  users,
		orders: make(map[string]*entity.CoinOrder),
	}
}

func (r *fakeCoinOrderRepo) Create(ctx context.Context, order *entity.CoinOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeCoinOrderRepo) GetByID(ctx context.Context, id string) (*entity.CoinOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Coin order", nil)
	}
	copied := *order
	return &copied, nil
}

func (r *fakeCoinOrderRepo) CompleteAndCredit(ctx context.Context, orderID string) (*entity.CoinOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, errors.NotFound("Coin order", nil)
	}
	if order.Status == entity.CoinOrderCompleted {
		copied := *order
		return &copied, nil
	}

	r.users.mu.Lock()
	user, ok := r.users.users[order.UserID]
	if !ok {
		r.users.mu.Unlock()
		return nil, errors.NotFound("User", nil)
	}
	user.Coins += order.Coins
	r.users.mu.Unlock()

	now := time.Now()
	order.Status = entity.CoinOrderCompleted
	order.CompletedAt = &now
	copied := *order
	return &copied, nil
}

// recordingBroadcaster captures fanned-out events for assertions.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

type broadcastEvent struct {
	Channel string
	Payload interface{}
}

func (b *recordingBroadcaster) Broadcast(channel string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastEvent{Channel: channel, Payload: payload})
}

func (b *recordingBroadcaster) recorded() []broadcastEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]broadcastEvent(nil), b.events...)
}

// fakePaymentGateway scripts Initialize/Verify outcomes.
type fakePaymentGateway struct {
	mu          sync.Mutex
	initErr     error
	verifyPaid  bool
	verifyErr   error
	initialized []service.PaymentRequest
	verified    []string
}

func (g *fakePaymentGateway) Initialize(ctx context.Context, req service.PaymentRequest) (*service.PaymentSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.initErr != nil {
		return nil, g.initErr
	}
	g.initialized = append(g.initialized, req)
	return &service.PaymentSession{CheckoutURL: "https://checkout.example/" + req.TxRef}, nil
}

func (g *fakePaymentGateway) Verify(ctx context.Context, txRef string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.verifyErr != nil {
		return false, g.verifyErr
	}
	g.verified = append(g.verified, txRef)
	return g.verifyPaid, nil
}

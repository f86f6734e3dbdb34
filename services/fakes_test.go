package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"whispersofusAPI/internal/apperr"
	"whispersofusAPI/internal/chat"
	"whispersofusAPI/internal/partner"
	"whispersofusAPI/internal/user"
	"whispersofusAPI/internal/wish"
)

// In-memory fakes mirroring the Firestore repository behavior: point lookups
// return (nil, nil) on a miss, Save copies the value, and the partnership
// Create rejects a duplicate pair key.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ClerkID == clerkID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*user.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) SearchByName(ctx context.Context, keyword string) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*user.User
	for _, u := range r.users {
		if strings.HasPrefix(u.Name, keyword) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*partner.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*partner.Request)}
}

func (r *fakeRequestRepo) Save(ctx context.Context, req *partner.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) FindByID(ctx context.Context, id string) (*partner.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) FindBySender(ctx context.Context, senderID string) ([]*partner.Request, error) {
	return r.filter(func(req *partner.Request) bool { return req.SenderID == senderID }), nil
}

func (r *fakeRequestRepo) FindByReceiver(ctx context.Context, receiverID string) ([]*partner.Request, error) {
	return r.filter(func(req *partner.Request) bool { return req.ReceiverID == receiverID }), nil
}

func (r *fakeRequestRepo) FindByReceiverAndStatus(ctx context.Context, receiverID string, status partner.RequestStatus) ([]*partner.Request, error) {
	return r.filter(func(req *partner.Request) bool {
		return req.ReceiverID == receiverID && req.Status == status
	}), nil
}

func (r *fakeRequestRepo) FindPendingBetween(ctx context.Context, a, b string) (*partner.Request, error) {
	matches := r.filter(func(req *partner.Request) bool {
		if req.Status != partner.StatusPending {
			return false
		}
		return (req.SenderID == a && req.ReceiverID == b) || (req.SenderID == b && req.ReceiverID == a)
	})
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *fakeRequestRepo) filter(keep func(*partner.Request) bool) []*partner.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*partner.Request
	for _, req := range r.requests {
		if keep(req) {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakePartnershipRepo struct {
	mu    sync.Mutex
	pairs map[string]*partner.Partnership
}

func newFakePartnershipRepo() *fakePartnershipRepo {
	return &fakePartnershipRepo{pairs: make(map[string]*partner.Partnership)}
}

func (r *fakePartnershipRepo) Create(ctx context.Context, p *partner.Partnership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pairs[p.ID]; ok {
		return apperr.Conflict("partnership already exists for pair %s", p.ID)
	}
	cp := *p
	r.pairs[p.ID] = &cp
	return nil
}

func (r *fakePartnershipRepo) FindByUser(ctx context.Context, userID string) (*partner.Partnership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pairs {
		if p.Contains(userID) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePartnershipRepo) FindByPair(ctx context.Context, a, b string) (*partner.Partnership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pairs[partner.PairKey(a, b)]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePartnershipRepo) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	p, err := r.FindByUser(ctx, userID)
	return p != nil, err
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[string]*chat.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]*chat.Message)}
}

func (r *fakeMessageRepo) Save(ctx context.Context, m *chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.messages[m.ID] = &cp
	return nil
}

func (r *fakeMessageRepo) FindByID(ctx context.Context, id string) (*chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMessageRepo) FindBetween(ctx context.Context, a, b string, page, size int) ([]*chat.Message, error) {
	all := r.filter(func(m *chat.Message) bool {
		return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
	})
	start := page * size
	if start >= len(all) {
		return nil, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *fakeMessageRepo) FindUnread(ctx context.Context, receiverID string) ([]*chat.Message, error) {
	return r.filter(func(m *chat.Message) bool {
		return m.ReceiverID == receiverID && !m.IsRead
	}), nil
}

func (r *fakeMessageRepo) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	unread, _ := r.FindUnread(ctx, receiverID)
	return int64(len(unread)), nil
}

func (r *fakeMessageRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, id)
	return nil
}

func (r *fakeMessageRepo) DeleteConversation(ctx context.Context, a, b string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			delete(r.messages, id)
		}
	}
	return nil
}

func (r *fakeMessageRepo) filter(keep func(*chat.Message) bool) []*chat.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*chat.Message
	for _, m := range r.messages {
		if keep(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeWishRepo struct {
	mu     sync.Mutex
	wishes map[string]*wish.Wish
}

func newFakeWishRepo() *fakeWishRepo {
	return &fakeWishRepo{wishes: make(map[string]*wish.Wish)}
}

func (r *fakeWishRepo) Save(ctx context.Context, w *wish.Wish) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wishes[w.ID] = &cp
	return nil
}

func (r *fakeWishRepo) FindByID(ctx context.Context, id string) (*wish.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wishes[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWishRepo) FindAll(ctx context.Context) ([]*wish.Wish, error) {
	return r.filter(func(*wish.Wish) bool { return true }), nil
}

func (r *fakeWishRepo) FindByStatus(ctx context.Context, status wish.Status) ([]*wish.Wish, error) {
	return r.filter(func(w *wish.Wish) bool { return w.Status == status }), nil
}

func (r *fakeWishRepo) FindByCategory(ctx context.Context, category wish.Category) ([]*wish.Wish, error) {
	return r.filter(func(w *wish.Wish) bool { return w.Category == category }), nil
}

func (r *fakeWishRepo) Count(ctx context.Context) (int64, error) {
	all, _ := r.FindAll(ctx)
	return int64(len(all)), nil
}

func (r *fakeWishRepo) CountByStatus(ctx context.Context, status wish.Status) (int64, error) {
	matched, _ := r.FindByStatus(ctx, status)
	return int64(len(matched)), nil
}

func (r *fakeWishRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.wishes, id)
	return nil
}

func (r *fakeWishRepo) filter(keep func(*wish.Wish) bool) []*wish.Wish {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*wish.Wish
	for _, w := range r.wishes {
		if keep(w) {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

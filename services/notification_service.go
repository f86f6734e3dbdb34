package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"whispersofusAPI/internal/notification"
)

// PushProvider delivers a push message to a set of device tokens.
// The FCM client in internal/notification implements it.
type PushProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]string) error
}

type pushJob struct {
	userID string
	title  string
	body   string
	data   map[string]string
}

// NotificationService fans pushes out through a small worker pool so a slow
// FCM call never blocks the request that triggered it. Delivery is best
// effort; failures are logged and dropped.
type NotificationService struct {
	tokens   DeviceTokenRepository
	provider PushProvider

	jobs chan pushJob
	stop chan struct{}
	wg   sync.WaitGroup
}

func NewNotificationService(tokens DeviceTokenRepository) *NotificationService {
	s := &NotificationService{
		tokens: tokens,
		jobs:   make(chan pushJob, 100),
		stop:   make(chan struct{}),
	}

	for i := 0; i < 3; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	return s
}

// SetPushProvider injects the real FCM provider from main. Without a
// provider the service still accepts jobs and drops them.
func (s *NotificationService) SetPushProvider(provider PushProvider) {
	s.provider = provider
}

func (s *NotificationService) RegisterDevice(ctx context.Context, userID string, req *notification.RegisterDeviceRequest) (*notification.DeviceToken, error) {
	t := &notification.DeviceToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     req.Token,
		Platform:  req.Platform,
		CreatedAt: time.Now(),
	}
	if err := s.tokens.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Notify enqueues a push for userID. Safe on a nil service (tests wire no
// notifications) and never blocks: when the queue is full the job is dropped.
func (s *NotificationService) Notify(userID, title, body string, data map[string]string) {
	if s == nil {
		return
	}
	select {
	case s.jobs <- pushJob{userID: userID, title: title, body: body, data: data}:
	default:
		log.Printf("NotificationService: queue full, dropping push for user %s", userID)
	}
}

func (s *NotificationService) worker() {
	defer s.wg.Done()
	for {
		select {
		case job := <-s.jobs:
			s.process(job)
		case <-s.stop:
			return
		}
	}
}

func (s *NotificationService) process(job pushJob) {
	if s.provider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tokens, err := s.tokens.FindByUser(ctx, job.userID)
	if err != nil {
		log.Printf("NotificationService: failed to load tokens for user %s: %v", job.userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	if err := s.provider.SendPush(ctx, tokens, job.title, job.body, job.data); err != nil {
		log.Printf("NotificationService: push failed for user %s: %v", job.userID, err)
	}
}

// Stop drains the workers. Used on shutdown.
func (s *NotificationService) Stop() {
	close(s.stop)
	s.wg.Wait()
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cloud.google.com/go/firestore"
	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"whispersofusAPI/handlers"
	"whispersofusAPI/internal/notification"
	"whispersofusAPI/middleware"
	"whispersofusAPI/repository"
	"whispersofusAPI/services"
)

var (
	fsClient            *firestore.Client
	userService         *services.UserService
	partnerService      *services.PartnerService
	chatService         *services.ChatService
	chatHub             *services.ChatHub
	loveNoteService     *services.LoveNoteService
	photoMomentService  *services.PhotoMomentService
	wishService         *services.WishService
	surpriseService     *services.SurpriseService
	memoryService       *services.MemoryService
	notificationService *services.NotificationService
	fcmService          *notification.FCMService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	fsClient, err = repository.NewFirestoreClient(ctx, "./serviceAccountKey.json")
	if err != nil {
		log.Fatal("Failed to create Firestore client:", err)
	}
	log.Println("Successfully connected to Firestore")

	userRepo := repository.NewUserRepository(fsClient)
	requestRepo := repository.NewPartnerRequestRepository(fsClient)
	partnershipRepo := repository.NewUserPartnerRepository(fsClient)
	messageRepo := repository.NewChatMessageRepository(fsClient)
	noteRepo := repository.NewLoveNoteRepository(fsClient)
	photoRepo := repository.NewPhotoMomentRepository(fsClient)
	wishRepo := repository.NewWishRepository(fsClient)
	surpriseRepo := repository.NewSurpriseRepository(fsClient)
	memoryRepo := repository.NewMemoryRepository(fsClient)
	tokenRepo := repository.NewDeviceTokenRepository(fsClient)

	notificationService = services.NewNotificationService(tokenRepo)
	userService = services.NewUserService(userRepo)
	partnerService = services.NewPartnerService(userRepo, requestRepo, partnershipRepo, notificationService)
	chatService = services.NewChatService(messageRepo, partnerService, notificationService)
	chatHub = services.NewChatHub(chatService, userService)
	loveNoteService = services.NewLoveNoteService(noteRepo, partnerService, notificationService)
	photoMomentService = services.NewPhotoMomentService(photoRepo)
	wishService = services.NewWishService(wishRepo)
	surpriseService = services.NewSurpriseService(surpriseRepo)
	memoryService = services.NewMemoryService(memoryRepo)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing Firestore client...")
		fsClient.Close()
	}()

	userHandler := handlers.NewUserHandler(userService)
	partnerHandler := handlers.NewPartnerHandler(partnerService, userService)
	chatHandler := handlers.NewChatHandler(chatService, userService, chatHub)
	loveNoteHandler := handlers.NewLoveNoteHandler(loveNoteService, userService)
	photoMomentHandler := handlers.NewPhotoMomentHandler(photoMomentService, userService)
	wishHandler := handlers.NewWishHandler(wishService, userService)
	surpriseHandler := handlers.NewSurpriseHandler(surpriseService, userService)
	memoryHandler := handlers.NewMemoryHandler(memoryService, userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, userService)

	go chatHub.Run()
	go middleware.CleanupVisitors()

	r := mux.NewRouter()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "whispersofus-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/users/register", userHandler.Register).Methods("POST")
	protected.HandleFunc("/users/me", userHandler.GetMe).Methods("GET")
	protected.HandleFunc("/users/me", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/users/search", userHandler.Search).Methods("GET")
	protected.HandleFunc("/users", userHandler.List).Methods("GET")
	protected.HandleFunc("/users/{id}", userHandler.GetByID).Methods("GET")

	protected.HandleFunc("/partners/request", partnerHandler.SendRequest).Methods("POST")
	protected.HandleFunc("/partners/respond", partnerHandler.Respond).Methods("POST")
	protected.HandleFunc("/partners/me", partnerHandler.GetPartner).Methods("GET")
	protected.HandleFunc("/partners/status", partnerHandler.GetStatus).Methods("GET")
	protected.HandleFunc("/partners/requests/received", partnerHandler.GetReceivedRequests).Methods("GET")
	protected.HandleFunc("/partners/requests/sent", partnerHandler.GetSentRequests).Methods("GET")
	protected.HandleFunc("/partners/requests/pending", partnerHandler.GetPendingRequests).Methods("GET")

	protected.HandleFunc("/chat/ws", chatHandler.ServeWS)
	protected.HandleFunc("/chat/send", chatHandler.SendMessage).Methods("POST")
	protected.HandleFunc("/chat/messages", chatHandler.GetMessages).Methods("GET")
	protected.HandleFunc("/chat/messages/{id}/read", chatHandler.MarkRead).Methods("PUT")
	protected.HandleFunc("/chat/messages/{id}", chatHandler.DeleteMessage).Methods("DELETE")
	protected.HandleFunc("/chat/unread", chatHandler.GetUnread).Methods("GET")
	protected.HandleFunc("/chat/unread/count", chatHandler.GetUnreadCount).Methods("GET")
	protected.HandleFunc("/chat/read", chatHandler.MarkConversationRead).Methods("PUT")
	protected.HandleFunc("/chat/conversation", chatHandler.DeleteConversation).Methods("DELETE")

	protected.HandleFunc("/love-notes", loveNoteHandler.Create).Methods("POST")
	protected.HandleFunc("/love-notes", loveNoteHandler.GetReceived).Methods("GET")
	protected.HandleFunc("/love-notes/unread", loveNoteHandler.GetUnread).Methods("GET")
	protected.HandleFunc("/love-notes/unread/count", loveNoteHandler.GetUnreadCount).Methods("GET")
	protected.HandleFunc("/love-notes/{id}/read", loveNoteHandler.MarkRead).Methods("PUT")
	protected.HandleFunc("/love-notes/{id}/reaction", loveNoteHandler.React).Methods("POST")
	protected.HandleFunc("/love-notes/{id}", loveNoteHandler.Delete).Methods("DELETE")

	protected.HandleFunc("/photo-moments", photoMomentHandler.Create).Methods("POST")
	protected.HandleFunc("/photo-moments", photoMomentHandler.GetAll).Methods("GET")
	protected.HandleFunc("/photo-moments/favorites", photoMomentHandler.GetFavorites).Methods("GET")
	protected.HandleFunc("/photo-moments/stats", photoMomentHandler.GetStats).Methods("GET")
	protected.HandleFunc("/photo-moments/{id}/favorite", photoMomentHandler.ToggleFavorite).Methods("PUT")
	protected.HandleFunc("/photo-moments/{id}", photoMomentHandler.Delete).Methods("DELETE")

	protected.HandleFunc("/wishes", wishHandler.Create).Methods("POST")
	protected.HandleFunc("/wishes", wishHandler.GetAll).Methods("GET")
	protected.HandleFunc("/wishes/stats", wishHandler.GetStats).Methods("GET")
	protected.HandleFunc("/wishes/status/{status}", wishHandler.GetByStatus).Methods("GET")
	protected.HandleFunc("/wishes/category/{category}", wishHandler.GetByCategory).Methods("GET")
	protected.HandleFunc("/wishes/{id}/status", wishHandler.UpdateStatus).Methods("PUT")
	protected.HandleFunc("/wishes/{id}", wishHandler.Update).Methods("PUT")
	protected.HandleFunc("/wishes/{id}", wishHandler.Delete).Methods("DELETE")

	protected.HandleFunc("/surprises", surpriseHandler.Create).Methods("POST")
	protected.HandleFunc("/surprises", surpriseHandler.GetAll).Methods("GET")
	protected.HandleFunc("/surprises/stats", surpriseHandler.GetStats).Methods("GET")
	protected.HandleFunc("/surprises/unlocked", surpriseHandler.GetUnlocked).Methods("GET")
	protected.HandleFunc("/surprises/locked", surpriseHandler.GetLocked).Methods("GET")
	protected.HandleFunc("/surprises/{id}/unlock", surpriseHandler.Unlock).Methods("PUT")
	protected.HandleFunc("/surprises/{id}", surpriseHandler.Update).Methods("PUT")
	protected.HandleFunc("/surprises/{id}", surpriseHandler.Delete).Methods("DELETE")

	protected.HandleFunc("/memories", memoryHandler.Create).Methods("POST")
	protected.HandleFunc("/memories", memoryHandler.GetTimeline).Methods("GET")
	protected.HandleFunc("/memories/milestones", memoryHandler.GetMilestones).Methods("GET")
	protected.HandleFunc("/memories/type/{type}", memoryHandler.GetByType).Methods("GET")
	protected.HandleFunc("/memories/{id}", memoryHandler.Update).Methods("PUT")
	protected.HandleFunc("/memories/{id}", memoryHandler.Delete).Methods("DELETE")

	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	notificationService.Stop()
	log.Println("Server exited")
}

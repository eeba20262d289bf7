package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"homerent/internal/adapter/api"
	"homerent/internal/adapter/api/handler"
	apimiddleware "homerent/internal/adapter/api/middleware"
	"homerent/internal/adapter/api/router"
	"homerent/internal/adapter/repository"
	"homerent/internal/domain/service"
	"homerent/internal/infrastructure/firebase"
	"homerent/internal/infrastructure/storage"
	"homerent/internal/infrastructure/websocket"
	"homerent/internal/usecase"
	"homerent/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := cfg.CredentialsFile

	// Service account JSON in the environment wins over a file path.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		credentialsPath = ""
	} else {
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}
		log.Printf("Using Firebase service account from file: %s", credentialsPath)
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	houseRepo := repository.NewFirestoreHouseRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	coinOrderRepo := repository.NewFirestoreCoinOrderRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	paymentService := service.NewChapaPaymentService(cfg.ChapaSecretKey)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	houseUseCase := usecase.NewHouseUseCase(houseRepo, userRepo, storageClient)
	coinUseCase := usecase.NewCoinUseCase(coinOrderRepo, userRepo, paymentService, cfg.CoinUnitPrice, cfg.ChapaCallbackURL)
	ratingUseCase := usecase.NewRatingUseCase(userRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo)
	messageUseCase := usecase.NewMessageUseCase(chatRepo, userRepo, wsManager, cfg.MessageCoinCost)

	handler.Setup(authUseCase, userUseCase, houseUseCase, coinUseCase, ratingUseCase)
	handler.SetupHealthHandler()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	chatHandler := handler.NewChatHandler(chatUseCase)
	messageHandler := handler.NewMessageHandler(messageUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)

	router.Setup(e, authMiddleware, adminMiddleware)
	router.SetupChatRouter(e, chatHandler, messageHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

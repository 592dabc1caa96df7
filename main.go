package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flalji123/commodify-backend/handlers"
	"github.com/flalji123/commodify-backend/logging"
	"github.com/flalji123/commodify-backend/middleware"
	"github.com/flalji123/commodify-backend/repositories"
	"github.com/flalji123/commodify-backend/services"
	"github.com/flalji123/commodify-backend/storage"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Commodify backend...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	jwtSecret := os.Getenv("JWT_SECRET")
	uploadDir := os.Getenv("UPLOAD_DIR")
	if mongoURI == "" || mongoDBName == "" || jwtSecret == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: MONGO_URI, MONGO_DB_NAME and JWT_SECRET must be set.")
	}
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	store := repositories.NewMongoStore(client, mongoDBName)
	if err := store.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: Failed to ensure indexes: %v", err)
	}

	uploads, err := storage.NewLocalStore(uploadDir)
	if err != nil {
		logging.Logger.Fatalf("Event ID: STORAGE_INIT_FAILED, Description: Failed to prepare upload directory: %v", err)
	}

	tokenService := services.NewTokenService(jwtSecret)
	authService := services.NewAuthService(store, tokenService)
	activityService := services.NewActivityService(store)
	companyService := services.NewCompanyService(store, activityService)
	projectService := services.NewProjectService(store, activityService)
	taskService := services.NewTaskService(store, activityService, projectService)
	commentService := services.NewCommentService(store, activityService, taskService)
	memberService := services.NewMemberService(store, activityService, projectService)
	fileService := services.NewFileService(store, activityService, projectService, uploads)
	dueDiligenceService := services.NewDueDiligenceService(services.StubProvider{})

	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)
	memberHandler := handlers.NewMemberHandler(memberService)
	fileHandler := handlers.NewFileHandler(fileService)
	activityHandler := handlers.NewActivityHandler(activityService)
	dueDiligenceHandler := handlers.NewDueDiligenceHandler(dueDiligenceService)

	r := mux.NewRouter()

	r.HandleFunc("/api/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Authenticate(authService))

	api.HandleFunc("/companies", companyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/companies", companyHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/companies/{id}", companyHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/companies/{id}", companyHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/companies/{id}", companyHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/projects", projectHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/projects", projectHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}", projectHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", projectHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id}", projectHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/projects/{projectID}/tasks", taskHandler.ListByProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}/tasks", taskHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", taskHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}", taskHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{id}", taskHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/tasks/{taskID}/comments", commentHandler.ListByTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskID}/comments", commentHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/comments/{id}", commentHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/projects/{projectID}/members", memberHandler.ListByProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}/members", memberHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/members/{id}", memberHandler.Remove).Methods(http.MethodDelete)

	api.HandleFunc("/projects/{projectID}/files", fileHandler.ListByProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}/files", fileHandler.Upload).Methods(http.MethodPost)
	api.HandleFunc("/files/{id}", fileHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/activity", activityHandler.ListRecent).Methods(http.MethodGet)
	api.HandleFunc("/duediligence", dueDiligenceHandler.Screen).Methods(http.MethodPost)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}
	serverAddress := fmt.Sprintf(":%s", serverPort)

	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      enableCORS(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"lce-project/backend/handlers"
	"lce-project/backend/logging"
	"lce-project/backend/middleware"
	"lce-project/backend/models"
	"lce-project/backend/repositories"
	"lce-project/backend/services"
	"lce-project/backend/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Drawings Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "lce_db"
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

	db := client.Database(mongoDBName)
	userRepo := repositories.NewMongoUserRepository(db.Collection("users"))
	projectRepo := repositories.NewMongoProjectRepository(db.Collection("projects"))
	taskRepo := repositories.NewMongoTaskRepository(db.Collection("tasks"))
	concurrenceRepo := repositories.NewMongoConcurrenceRepository(db.Collection("concurrences"))
	noteRepo := repositories.NewMongoNoteRepository(db.Collection("notes"))

	// Obaveštenja idu u Cassandru; bez nje servis radi dalje, samo bez obaveštenja
	var notificationRepo repositories.NotificationRepository
	cassandraRepo, err := repositories.NewCassandraNotificationRepository(logging.Logger)
	if err != nil {
		logging.Logger.Warnf("Event ID: CASSANDRA_UNAVAILABLE, Description: Notifications disabled: %v", err)
	} else {
		defer cassandraRepo.Close()
		notificationRepo = cassandraRepo
	}

	portalBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ClientPortalCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	accessService := services.NewAccessService(userRepo)
	userService := services.NewUserService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo, accessService)
	taskService := services.NewTaskService(taskRepo, userRepo, accessService, notificationService)
	dispatchService := services.NewDispatchService(utils.NewHTTPClient(), portalBreaker, os.Getenv("CLIENT_PORTAL_URL"))
	requireAllSigned := os.Getenv("CONCURRENCE_REQUIRE_ALL_SIGNED") != "false"
	concurrenceService := services.NewConcurrenceService(concurrenceRepo, taskRepo, taskService, notificationService, dispatchService, requireAllSigned)
	noteService := services.NewNoteService(noteRepo)

	seedAdmin(ctx, userRepo)

	loginHandler := handlers.NewLoginHandler(userService)
	userHandler := handlers.NewUserHandler(userService, accessService, notificationService)
	projectHandler := handlers.NewProjectHandler(projectService, userService, accessService, noteService)
	taskHandler := handlers.NewTaskHandler(taskService, userService, accessService)
	concurrenceHandler := handlers.NewConcurrenceHandler(concurrenceService, userService, accessService)

	// Kreiranje mux routera
	r := mux.NewRouter()

	// Javne rute
	r.HandleFunc("/api/auth/register", loginHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", loginHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/reset-passcode", loginHandler.ResetPasscode).Methods(http.MethodPost)
	r.HandleFunc("/api/hierarchy", userHandler.GetHierarchy).Methods(http.MethodGet)

	// Zaštićene rute
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTAuthMiddleware)

	api.HandleFunc("/users", userHandler.GetAllUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/me", userHandler.GetCurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/users/me/passcode", userHandler.ChangePasscode).Methods(http.MethodPost)
	api.HandleFunc("/users/assignable", userHandler.GetAssignableUsers).Methods(http.MethodGet)
	api.HandleFunc("/notifications", userHandler.GetNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{notificationID}/read", userHandler.MarkNotificationRead).Methods(http.MethodPost)

	api.HandleFunc("/projects", projectHandler.GetVisibleProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", projectHandler.CreateProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectID}", projectHandler.GetProjectByID).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}", projectHandler.UpdateProject).Methods(http.MethodPatch)
	api.HandleFunc("/projects/{projectID}", projectHandler.DeleteProject).Methods(http.MethodDelete)
	api.HandleFunc("/projects/{projectID}/subprojects", projectHandler.GetSubprojects).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}/notes", projectHandler.GetProjectNotes).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}/notes", projectHandler.AddProjectNote).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectID}/notes/{noteID}", projectHandler.DeleteProjectNote).Methods(http.MethodDelete)
	api.HandleFunc("/projects/{projectID}/tasks", taskHandler.GetProjectTasks).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}/participants", taskHandler.GetProjectParticipants).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}/concurrences", concurrenceHandler.GetProjectConcurrences).Methods(http.MethodGet)

	api.HandleFunc("/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/my", taskHandler.GetMyTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskID}", taskHandler.UpdateTask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{taskID}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{taskID}/subtasks", taskHandler.AddSubtask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{taskID}/subtasks/{subtaskID}", taskHandler.UpdateSubtask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{taskID}/subtasks/{subtaskID}", taskHandler.DeleteSubtask).Methods(http.MethodDelete)

	api.HandleFunc("/concurrences", concurrenceHandler.CreateConcurrence).Methods(http.MethodPost)
	api.HandleFunc("/concurrences/{concurrenceID}", concurrenceHandler.GetConcurrenceByID).Methods(http.MethodGet)
	api.HandleFunc("/concurrences/{concurrenceID}", concurrenceHandler.UpdateConcurrence).Methods(http.MethodPatch)
	api.HandleFunc("/concurrences/{concurrenceID}", concurrenceHandler.DeleteConcurrence).Methods(http.MethodDelete)
	api.HandleFunc("/concurrences/{concurrenceID}/sign", concurrenceHandler.Sign).Methods(http.MethodPost)
	api.HandleFunc("/concurrences/{concurrenceID}/hod-sign", concurrenceHandler.HODSign).Methods(http.MethodPost)
	api.HandleFunc("/concurrences/{concurrenceID}/send-to-client", concurrenceHandler.MarkSentToClient).Methods(http.MethodPost)

	corsRouter := enableCORS(r)

	// Pokretanje servera
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      corsRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}

// seedAdmin upisuje podrazumevani admin nalog ako još ne postoji.
func seedAdmin(ctx context.Context, users repositories.UserRepository) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@lloyds.in"
	}
	passcode := os.Getenv("ADMIN_PASSCODE")
	if passcode == "" {
		passcode = "1234"
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		logging.Logger.Warnf("Event ID: ADMIN_SEED_CHECK_FAILED, Description: Failed to check admin user: %v", err)
		return
	}

	hashed, err := utils.HashPasscode(passcode)
	if err != nil {
		logging.Logger.Warnf("Event ID: ADMIN_SEED_FAILED, Description: Failed to hash admin passcode: %v", err)
		return
	}

	admin := &models.User{
		ID:          uuid.NewString(),
		Name:        "System Admin",
		Designation: "Deputy General Manager",
		Level:       models.LevelL,
		Grade:       "D3",
		Dept:        "Civil & Structural",
		Group:       models.GroupManagement,
		EmpID:       "ADM001",
		Email:       email,
		Passcode:    hashed,
		CreatedAt:   time.Now(),
	}
	if err := users.Insert(ctx, admin); err != nil {
		logging.Logger.Warnf("Event ID: ADMIN_SEED_FAILED, Description: Failed to seed admin user: %v", err)
		return
	}
	logging.Logger.Infof("Event ID: ADMIN_SEEDED, Description: Default admin account %s created", email)
}

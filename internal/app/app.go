package app

import (
	"edutrade/internal/config"
	"edutrade/internal/db"
	"edutrade/internal/handlers"
	"edutrade/internal/repository"
	"edutrade/internal/routes"
	"edutrade/internal/services"
	"edutrade/internal/storage"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	files, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := repository.NewUserRepository(conn)
	bookRepo := repository.NewBookRepository(conn)
	noteRepo := repository.NewNoteRepository(conn)
	paperRepo := repository.NewQuestionPaperRepository(conn)
	feedbackRepo := repository.NewFeedbackRepository(conn)

	// Services
	authService := services.NewAuthService(userRepo)
	bookService := services.NewBookService(bookRepo, userRepo, files)
	noteService := services.NewNoteService(noteRepo, files)
	paperService := services.NewQuestionPaperService(paperRepo, files)
	feedbackService := services.NewFeedbackService(feedbackRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	bookHandler := handlers.NewBookHandler(bookService, files)
	noteHandler := handlers.NewNoteHandler(noteService, files)
	paperHandler := handlers.NewQuestionPaperHandler(paperService, files)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	// Routes
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg.JWTSecret, cfg.UploadDir,
		authHandler, bookHandler, noteHandler, paperHandler, feedbackHandler)

	return router, nil
}

package routes

import (
	"net/http"

	"edutrade/internal/handlers"
	"edutrade/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	jwtSecret string,
	uploadDir string,
	authHandler *handlers.AuthHandler,
	bookHandler *handlers.BookHandler,
	noteHandler *handlers.NoteHandler,
	paperHandler *handlers.QuestionPaperHandler,
	feedbackHandler *handlers.FeedbackHandler,
) {
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	// Uploaded files, read-only.
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))),
	).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// --- Public routes ---
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	api.HandleFunc("/books", bookHandler.ListBooks).Methods("GET")
	api.HandleFunc("/books/{id}", bookHandler.GetBook).Methods("GET")

	api.HandleFunc("/notes", noteHandler.ListNotes).Methods("GET")
	api.HandleFunc("/notes/{id}", noteHandler.GetNote).Methods("GET")

	api.HandleFunc("/question-papers", paperHandler.ListPapers).Methods("GET")
	api.HandleFunc("/question-papers/{id}", paperHandler.GetPaper).Methods("GET")

	api.HandleFunc("/feedback", feedbackHandler.ListFeedback).Methods("GET")
	api.HandleFunc("/feedback/{id}", feedbackHandler.GetFeedback).Methods("GET")

	// --- Protected by JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(jwtSecret))

	protected.HandleFunc("/auth/verify", authHandler.Verify).Methods("GET")
	protected.HandleFunc("/auth/profile", authHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/auth/profile", authHandler.UpdateProfile).Methods("PUT")

	protected.HandleFunc("/books/list", bookHandler.CreateBook).Methods("POST")
	protected.HandleFunc("/books/{id}", bookHandler.UpdateBook).Methods("PUT")
	protected.HandleFunc("/books/{id}", bookHandler.DeleteBook).Methods("DELETE")
	protected.HandleFunc("/books/{id}/message", bookHandler.MessageSeller).Methods("POST")

	protected.HandleFunc("/notes/upload", noteHandler.UploadNote).Methods("POST")
	protected.HandleFunc("/notes/{id}/download", noteHandler.DownloadNote).Methods("GET")
	protected.HandleFunc("/notes/{id}/review", noteHandler.AddReview).Methods("POST")
	protected.HandleFunc("/notes/{id}", noteHandler.DeleteNote).Methods("DELETE")

	protected.HandleFunc("/question-papers/upload", paperHandler.UploadPaper).Methods("POST")
	protected.HandleFunc("/question-papers/{id}/download", paperHandler.DownloadPaper).Methods("GET")
	protected.HandleFunc("/question-papers/{id}", paperHandler.DeletePaper).Methods("DELETE")

	protected.HandleFunc("/feedback", feedbackHandler.SubmitFeedback).Methods("POST")
	protected.HandleFunc("/feedback/{id}", feedbackHandler.UpdateFeedback).Methods("PUT")
	protected.HandleFunc("/feedback/{id}", feedbackHandler.DeleteFeedback).Methods("DELETE")
}

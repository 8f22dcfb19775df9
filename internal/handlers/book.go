package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"edutrade/internal/logger"
	"edutrade/internal/middleware"
	"edutrade/internal/models"
	"edutrade/internal/services"
	"edutrade/internal/storage"
	helpers "edutrade/internal/utils/helpers"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxMultipartMemory = 32 << 20

type BookHandler struct {
	service *services.BookService
	files   *storage.FileStore
}

func NewBookHandler(service *services.BookService, files *storage.FileStore) *BookHandler {
	return &BookHandler{service: service, files: files}
}

type listBookRequest struct {
	Title       string  `validate:"required"`
	Author      string  `validate:"required"`
	Description string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
	Condition   string  `validate:"required,oneof=new like-new good fair poor"`
	Language    string  `validate:"required,oneof=english hindi other"`
	Location    string  `validate:"required"`
	UpiID       string  `validate:"required"`
	Phone       string  `validate:"required"`
	Category    string  `validate:"required"`
	Edition     string
	Pages       *int `validate:"omitempty,gt=0"`
}

type messageSellerRequest struct {
	Message    string `json:"message" validate:"required"`
	BuyerPhone string `json:"buyer_phone" validate:"required"`
}

// ListBooks godoc
// @Summary List books for sale, optionally filtered
// @Tags books
// @Produce json
// @Param search query string false "Substring match on title/author/description"
// @Param condition query string false "Book condition"
// @Param language query string false "Book language"
// @Param category query string false "Category"
// @Param location query string false "Substring match on location"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Success 200 {array} models.Book
// @Router /api/books [get]
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.BookFilter{
		Search:    q.Get("search"),
		Condition: q.Get("condition"),
		Language:  q.Get("language"),
		Category:  q.Get("category"),
		Location:  q.Get("location"),
	}
	if v := q.Get("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "invalid minPrice")
			return
		}
		filter.MinPrice = &p
	}
	if v := q.Get("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		filter.MaxPrice = &p
	}

	books, err := h.service.List(r.Context(), filter)
	if err != nil {
		logger.Log.Error("failed to list books", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "failed to fetch books")
		return
	}
	helpers.JSON(w, http.StatusOK, books)
}

// GetBook godoc
// @Summary Get a book by id
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} models.Book
// @Failure 404 {string} string "Book not found"
// @Router /api/books/{id} [get]
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "book not found")
		return
	}

	book, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to fetch book")
		return
	}
	helpers.JSON(w, http.StatusOK, book)
}

// CreateBook godoc
// @Summary List a book for sale
// @Tags books
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Cover image (jpg/jpeg/png, max 5MB)"
// @Success 201 {object} models.Book
// @Failure 400 {string} string "Validation or upload error"
// @Router /api/books/list [post]
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		logger.Log.Warn("failed to parse multipart form", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := listBookRequest{
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
		Description: r.FormValue("description"),
		Condition:   r.FormValue("condition"),
		Language:    r.FormValue("language"),
		Location:    r.FormValue("location"),
		UpiID:       r.FormValue("upi_id"),
		Phone:       r.FormValue("phone"),
		Category:    r.FormValue("category"),
		Edition:     r.FormValue("edition"),
	}
	if v := r.FormValue("price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "invalid price")
			return
		}
		req.Price = p
	}
	if v := r.FormValue("pages"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "invalid pages")
			return
		}
		req.Pages = &n
	}

	if err := validate.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	_, fh, err := r.FormFile("image")
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "please upload a book image")
		return
	}

	imageURL, err := h.files.Save("books", fh, storage.ImageConstraint)
	if err != nil {
		logger.Log.Warn("book image rejected", zap.Error(err))
		writeServiceError(w, err, "failed to store image")
		return
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Condition:   req.Condition,
		Language:    req.Language,
		Image:       imageURL,
		Location:    req.Location,
		UpiID:       req.UpiID,
		Phone:       req.Phone,
		Edition:     req.Edition,
		Pages:       req.Pages,
		Category:    req.Category,
		SellerID:    userID,
	}

	if err := h.service.Create(r.Context(), book); err != nil {
		logger.Log.Error("failed to create book", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "failed to list book")
		return
	}

	logger.Log.Info("book listed", zap.String("book_id", book.ID.String()), zap.String("seller_id", userID.String()))
	helpers.JSON(w, http.StatusCreated, book)
}

// UpdateBook godoc
// @Summary Update a book listing (owner only)
// @Tags books
// @Security ApiKeyAuth
// @Param id path string true "Book ID"
// @Success 200 {object} models.Book
// @Failure 403 {string} string "Not authorized"
// @Failure 404 {string} string "Book not found"
// @Router /api/books/{id} [put]
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "book not found")
		return
	}

	var (
		req      models.UpdateBookRequest
		newImage string
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			helpers.Error(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		req.Title = formValuePtr(r, "title")
		req.Author = formValuePtr(r, "author")
		req.Description = formValuePtr(r, "description")
		req.Condition = formValuePtr(r, "condition")
		req.Language = formValuePtr(r, "language")
		req.Location = formValuePtr(r, "location")
		req.UpiID = formValuePtr(r, "upi_id")
		req.Phone = formValuePtr(r, "phone")
		req.Edition = formValuePtr(r, "edition")
		req.Category = formValuePtr(r, "category")
		if v := formValuePtr(r, "price"); v != nil {
			p, err := strconv.ParseFloat(*v, 64)
			if err != nil {
				helpers.Error(w, http.StatusBadRequest, "invalid price")
				return
			}
			req.Price = &p
		}
		if v := formValuePtr(r, "pages"); v != nil {
			n, err := strconv.Atoi(*v)
			if err != nil {
				helpers.Error(w, http.StatusBadRequest, "invalid pages")
				return
			}
			req.Pages = &n
		}

		if _, fh, ferr := r.FormFile("image"); ferr == nil {
			newImage, err = h.files.Save("books", fh, storage.ImageConstraint)
			if err != nil {
				logger.Log.Warn("replacement image rejected", zap.Error(err))
				writeServiceError(w, err, "failed to store image")
				return
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			helpers.Error(w, http.StatusBadRequest, "invalid JSON")
			return
		}
	}

	if err := validate.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	book, err := h.service.Update(r.Context(), userID, id, &req, newImage)
	if err != nil {
		writeServiceError(w, err, "failed to update book")
		return
	}
	helpers.JSON(w, http.StatusOK, book)
}

// DeleteBook godoc
// @Summary Delete a book listing (owner only)
// @Tags books
// @Security ApiKeyAuth
// @Param id path string true "Book ID"
// @Success 200 {string} string "Book deleted"
// @Failure 403 {string} string "Not authorized"
// @Failure 404 {string} string "Book not found"
// @Router /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CallerID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "book not found")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err, "failed to delete book")
		return
	}

	logger.Log.Info("book deleted", zap.String("book_id", id.String()))
	helpers.JSON(w, http.StatusOK, "book deleted")
}

// MessageSeller godoc
// @Summary Send a purchase inquiry to the seller
// @Tags books
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param input body messageSellerRequest true "Message"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {string} string "Book not found"
// @Router /api/books/{id}/message [post]
func (h *BookHandler) MessageSeller(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "book not found")
		return
	}

	var req messageSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, helpers.ValidationMessage(err))
		return
	}

	book, seller, err := h.service.ContactSeller(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to send message")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"message":       "message sent successfully",
		"book_title":    book.Title,
		"seller_phone":  seller.Phone,
		"buyer_message": req.Message,
		"buyer_phone":   req.BuyerPhone,
	})
}

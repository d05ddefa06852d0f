package catalog

import (
	"bookshelf/internal/httpx"
	"errors"
	"log"
	"net/http"
)

const DefaultGreeting = "Welcome to the bookshelf catalog!"

type HTTPHandler struct {
	svc      *Service
	greeting string
}

func NewHTTPHandler(svc *Service, greeting string) *HTTPHandler {
	if greeting == "" {
		greeting = DefaultGreeting
	}
	return &HTTPHandler{svc: svc, greeting: greeting}
}

type titleRequest struct {
	BookName *string `json:"book_name" validate:"required"`
}

type authorRequest struct {
	AuthorName *string `json:"author_name" validate:"required"`
}

type addBookRequest struct {
	BookName   *string `json:"book_name" validate:"required"`
	AuthorName *string `json:"author_name" validate:"required"`
	BookID     *int    `json:"book_id" validate:"required"`
}

// Routes registers every catalog endpoint on mux.
func (h *HTTPHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /all-books", h.AllBooks)
	mux.HandleFunc("POST /get-book-by-name", h.GetByName)
	mux.HandleFunc("POST /get-books-by-author", h.GetByAuthor)
	mux.HandleFunc("POST /add-book", h.AddBook)
	mux.HandleFunc("GET /get-prime-suffix", h.PrimeSuffix)
	mux.HandleFunc("POST /delete-by-name", h.DeleteByName)
	mux.HandleFunc("POST /borrow-book-by-author", h.BorrowByAuthor)
	mux.HandleFunc("POST /borrow-book-by-title", h.BorrowByTitle)
	mux.HandleFunc("POST /return-book-by-author", h.ReturnByAuthor)
	mux.HandleFunc("POST /return-book-by-title", h.ReturnByTitle)
	mux.HandleFunc("GET /get-borrowed-books", h.Borrowed)
	mux.HandleFunc("GET /get-available-books", h.Available)
	mux.HandleFunc("GET /most-borrowed-book", h.MostBorrowed)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.Printf("catalog error: op=%s request_id=%s error=%v", op, httpx.RequestIDFrom(r), err)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

func (h *HTTPHandler) writeBooks(w http.ResponseWriter, r *http.Request, op string, books []Book, err error) {
	if err != nil {
		h.internalError(w, r, op, err)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSONOK(w, books)
}

// Root handles GET /
// @Summary Greeting
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HTTPHandler) Root(w http.ResponseWriter, r *http.Request) {
	httpx.JSONOK(w, map[string]string{"message": h.greeting})
}

// AllBooks handles GET /all-books
// @Summary List every book
// @Tags catalog
// @Produce json
// @Success 200 {array} Book
// @Router /all-books [get]
func (h *HTTPHandler) AllBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	h.writeBooks(w, r, "list", books, err)
}

// GetByName handles POST /get-book-by-name
// @Summary Find books by title
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body titleRequest true "Title to match, case-insensitive"
// @Success 200 {array} Book
// @Failure 422 {object} httpx.ErrorResponse
// @Router /get-book-by-name [post]
func (h *HTTPHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	books, err := h.svc.FindByTitle(r.Context(), *req.BookName)
	h.writeLookup(w, r, "find_by_title", books, err)
}

// GetByAuthor handles POST /get-books-by-author
// @Summary Find books by author
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body authorRequest true "Author to match, case-insensitive"
// @Success 200 {array} Book
// @Failure 422 {object} httpx.ErrorResponse
// @Router /get-books-by-author [post]
func (h *HTTPHandler) GetByAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	books, err := h.svc.FindByAuthor(r.Context(), *req.AuthorName)
	h.writeLookup(w, r, "find_by_author", books, err)
}

func (h *HTTPHandler) writeLookup(w http.ResponseWriter, r *http.Request, op string, books []Book, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONOK(w, StatusNotFoundLookup)
		return
	}
	h.writeBooks(w, r, op, books, err)
}

// AddBook handles POST /add-book
// @Summary Add a book
// @Description Adds a book on the shelf unless the same title and author already exist
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body addBookRequest true "Book to add"
// @Success 200 {object} AddResult
// @Failure 422 {object} httpx.ErrorResponse
// @Router /add-book [post]
func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	books, err := h.svc.Add(r.Context(), *req.BookName, *req.AuthorName, *req.BookID)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.JSONOK(w, StatusAlreadyExists)
			return
		}
		h.internalError(w, r, "add", err)
		return
	}
	httpx.JSONOK(w, AddResult{Reply: StatusAdded, Books: books})
}

// PrimeSuffix handles GET /get-prime-suffix
// @Summary Books whose title number is prime
// @Tags catalog
// @Produce json
// @Success 200 {array} Book
// @Router /get-prime-suffix [get]
func (h *HTTPHandler) PrimeSuffix(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.PrimeSuffix(r.Context())
	h.writeBooks(w, r, "prime_suffix", books, err)
}

// DeleteByName handles POST /delete-by-name
// @Summary Delete every book with a title
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body titleRequest true "Title to delete"
// @Success 200 {object} DeleteResult
// @Failure 422 {object} httpx.ErrorResponse
// @Router /delete-by-name [post]
func (h *HTTPHandler) DeleteByName(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.svc.DeleteByTitle(r.Context(), *req.BookName)
	if err != nil {
		h.internalError(w, r, "delete_by_title", err)
		return
	}
	httpx.JSONOK(w, res)
}

// BorrowByAuthor handles POST /borrow-book-by-author
// @Summary Borrow the first book by an author
// @Tags circulation
// @Accept json
// @Produce json
// @Param request body authorRequest true "Author"
// @Success 200 {string} string
// @Router /borrow-book-by-author [post]
func (h *HTTPHandler) BorrowByAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	h.borrow(w, r, FieldAuthor, *req.AuthorName)
}

// BorrowByTitle handles POST /borrow-book-by-title
// @Summary Borrow the first book with a title
// @Tags circulation
// @Accept json
// @Produce json
// @Param request body titleRequest true "Title"
// @Success 200 {string} string
// @Router /borrow-book-by-title [post]
func (h *HTTPHandler) BorrowByTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	h.borrow(w, r, FieldTitle, *req.BookName)
}

func (h *HTTPHandler) borrow(w http.ResponseWriter, r *http.Request, field Field, value string) {
	status, err := h.svc.Borrow(r.Context(), field, value)
	if err != nil {
		h.internalError(w, r, "borrow", err)
		return
	}
	httpx.JSONOK(w, status)
}

// ReturnByAuthor handles POST /return-book-by-author
// @Summary Return the first book by an author
// @Tags circulation
// @Accept json
// @Produce json
// @Param request body authorRequest true "Author"
// @Success 200 {object} ReturnResult
// @Router /return-book-by-author [post]
func (h *HTTPHandler) ReturnByAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	h.giveBack(w, r, FieldAuthor, *req.AuthorName)
}

// ReturnByTitle handles POST /return-book-by-title
// @Summary Return the first book with a title
// @Tags circulation
// @Accept json
// @Produce json
// @Param request body titleRequest true "Title"
// @Success 200 {object} ReturnResult
// @Router /return-book-by-title [post]
func (h *HTTPHandler) ReturnByTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	h.giveBack(w, r, FieldTitle, *req.BookName)
}

func (h *HTTPHandler) giveBack(w http.ResponseWriter, r *http.Request, field Field, value string) {
	res, err := h.svc.Return(r.Context(), field, value)
	if err != nil {
		h.internalError(w, r, "return", err)
		return
	}
	httpx.JSONOK(w, res)
}

// Borrowed handles GET /get-borrowed-books
// @Summary Books currently out of the shelf
// @Tags catalog
// @Produce json
// @Success 200 {array} Book
// @Router /get-borrowed-books [get]
func (h *HTTPHandler) Borrowed(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.Borrowed(r.Context())
	h.writeBooks(w, r, "borrowed", books, err)
}

// Available handles GET /get-available-books
// @Summary Books currently in the shelf
// @Tags catalog
// @Produce json
// @Success 200 {array} Book
// @Router /get-available-books [get]
func (h *HTTPHandler) Available(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.Available(r.Context())
	h.writeBooks(w, r, "available", books, err)
}

// MostBorrowed handles GET /most-borrowed-book
// @Summary Books tied for the highest borrow count
// @Tags catalog
// @Produce json
// @Success 200 {array} Book
// @Router /most-borrowed-book [get]
func (h *HTTPHandler) MostBorrowed(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.MostBorrowed(r.Context())
	h.writeBooks(w, r, "most_borrowed", books, err)
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookshelf/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandler_AllBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo), "")

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return([]Book{{ID: 1, Title: "Test", Author: "A", InShelf: true}}, nil)

		w := httptest.NewRecorder()
		handler.AllBooks(w, testutil.NewRequest(http.MethodGet, "/all-books", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":1,"title":"Test","author":"A","in_shelf":true,"times_borrowed":0}]`, w.Body.String())
	})

	t.Run("empty catalog is an empty array", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, nil)

		w := httptest.NewRecorder()
		handler.AllBooks(w, testutil.NewRequest(http.MethodGet, "/all-books", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("error", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		handler.AllBooks(w, testutil.NewRequest(http.MethodGet, "/all-books", ""))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_GetByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo), "")

	tests := []struct {
		name           string
		body           string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "found",
			body: `{"book_name":"test"}`,
			setupMock: func() {
				mockRepo.EXPECT().Filter(gomock.Any(), gomock.Any()).Return([]Book{{ID: 1, Title: "Test", Author: "A", InShelf: true}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"title":"Test","author":"A","in_shelf":true,"times_borrowed":0}]`,
		},
		{
			name: "not found",
			body: `{"book_name":"missing"}`,
			setupMock: func() {
				mockRepo.EXPECT().Filter(gomock.Any(), gomock.Any()).Return([]Book{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"Book not Found"`,
		},
		{
			name:           "missing field",
			body:           `{"author_name":"x"}`,
			setupMock:      func() {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "malformed json",
			body:           `{"book_name":`,
			setupMock:      func() {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			w := httptest.NewRecorder()
			handler.GetByName(w, testutil.NewRequest(http.MethodPost, "/get-book-by-name", tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestHTTPHandler_AddBook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo), "")

	t.Run("added with string id coerced", func(t *testing.T) {
		want := Book{ID: 101, Title: "New", Author: "Writer", InShelf: true}
		gomock.InOrder(
			mockRepo.EXPECT().Insert(gomock.Any(), want, gomock.Any()).Return(nil),
			mockRepo.EXPECT().List(gomock.Any()).Return([]Book{want}, nil),
		)

		w := httptest.NewRecorder()
		handler.AddBook(w, testutil.NewRequest(http.MethodPost, "/add-book", `{"book_name":"New","author_name":"Writer","book_id":"101"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"reply":"New book added","books":[{"id":101,"title":"New","author":"Writer","in_shelf":true,"times_borrowed":0}]}`, w.Body.String())
	})

	t.Run("already exists", func(t *testing.T) {
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(ErrAlreadyExists)

		w := httptest.NewRecorder()
		handler.AddBook(w, testutil.NewRequest(http.MethodPost, "/add-book", `{"book_name":"New","author_name":"Writer","book_id":1}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `"Book already exists"`, w.Body.String())
	})

	t.Run("missing book_id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.AddBook(w, testutil.NewRequest(http.MethodPost, "/add-book", `{"book_name":"New","author_name":"Writer"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body struct {
			Error struct {
				Code    string `json:"code"`
				Details []struct {
					Field string `json:"field"`
				} `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		require.Len(t, body.Error.Details, 1)
		assert.Equal(t, "book_id", body.Error.Details[0].Field)
	})

	t.Run("repository failure", func(t *testing.T) {
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))

		w := httptest.NewRecorder()
		handler.AddBook(w, testutil.NewRequest(http.MethodPost, "/add-book", `{"book_name":"New","author_name":"Writer","book_id":1}`))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_BorrowByTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	now := time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)
	handler := NewHTTPHandler(NewService(mockRepo, WithClock(func() time.Time { return now })), "")

	t.Run("borrowed", func(t *testing.T) {
		var stored Book
		mockRepo.EXPECT().UpdateFirst(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, match Matcher, fn func(*Book) error) error {
				stored = Book{ID: 1, Title: "Dune 3", InShelf: true}
				require.True(t, match(stored))
				return fn(&stored)
			})

		w := httptest.NewRecorder()
		handler.BorrowByTitle(w, testutil.NewRequest(http.MethodPost, "/borrow-book-by-title", `{"book_name":"dune 3"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `"Book has been borrowed"`, w.Body.String())
		assert.False(t, stored.InShelf)
		assert.Equal(t, 1, stored.TimesBorrowed)
		require.NotNil(t, stored.BorrowDate)
		assert.Equal(t, now, *stored.BorrowDate)
	})

	t.Run("not in shelf", func(t *testing.T) {
		mockRepo.EXPECT().UpdateFirst(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ Matcher, fn func(*Book) error) error {
				b := Book{ID: 1, Title: "Dune 3", InShelf: false, BorrowDate: &now}
				return fn(&b)
			})

		w := httptest.NewRecorder()
		handler.BorrowByTitle(w, testutil.NewRequest(http.MethodPost, "/borrow-book-by-title", `{"book_name":"Dune 3"}`))

		assert.JSONEq(t, `"Book not in shelf"`, w.Body.String())
	})
}

func TestHTTPHandler_ReturnByAuthor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo), "")

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().UpdateFirst(gomock.Any(), gomock.Any(), gomock.Any()).Return(ErrNotFound)

		w := httptest.NewRecorder()
		handler.ReturnByAuthor(w, testutil.NewRequest(http.MethodPost, "/return-book-by-author", `{"author_name":"Nobody"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"fine":0,"status":"Book Not Found"}`, w.Body.String())
	})

	t.Run("repository failure", func(t *testing.T) {
		mockRepo.EXPECT().UpdateFirst(gomock.Any(), gomock.Any(), gomock.Any()).Return(context.Canceled)

		w := httptest.NewRecorder()
		handler.ReturnByAuthor(w, testutil.NewRequest(http.MethodPost, "/return-book-by-author", `{"author_name":"Nobody"}`))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_DeleteByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo), "")

	mockRepo.EXPECT().DeleteWhere(gomock.Any(), gomock.Any()).Return(0, []Book{}, nil)

	w := httptest.NewRecorder()
	handler.DeleteByName(w, testutil.NewRequest(http.MethodPost, "/delete-by-name", `{"book_name":"Missing"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Not found","books":[]}`, w.Body.String())
}

func TestHTTPHandler_Root_DefaultGreeting(t *testing.T) {
	handler := NewHTTPHandler(NewService(NewMemoryStore(nil)), "")

	w := httptest.NewRecorder()
	handler.Root(w, testutil.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"`+DefaultGreeting+`"}`, w.Body.String())
}

func TestRoutes(t *testing.T) {
	now := time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)
	svc := NewService(NewMemoryStore(DefaultSeed()), WithClock(func() time.Time { return now }))
	mux := http.NewServeMux()
	NewHTTPHandler(svc, "hello").Routes(mux)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		return testutil.Serve(mux, testutil.NewRequest(method, path, body))
	}

	t.Run("greeting", func(t *testing.T) {
		w := do(http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"hello"}`, w.Body.String())
	})

	t.Run("unknown path", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/nope", "").Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		assert.Equal(t, http.StatusMethodNotAllowed, do(http.MethodGet, "/add-book", "").Code)
		assert.Equal(t, http.StatusMethodNotAllowed, do(http.MethodPost, "/all-books", "").Code)
	})

	t.Run("borrow then return same day", func(t *testing.T) {
		w := do(http.MethodPost, "/borrow-book-by-title", `{"book_name":"Deep Learning 9"}`)
		assert.JSONEq(t, `"Book has been borrowed"`, w.Body.String())

		w = do(http.MethodPost, "/borrow-book-by-title", `{"book_name":"Deep Learning 9"}`)
		assert.JSONEq(t, `"Book not in shelf"`, w.Body.String())

		w = do(http.MethodPost, "/return-book-by-title", `{"book_name":"Deep Learning 9"}`)
		assert.JSONEq(t, `{"fine":0,"status":"Book has been Returned"}`, w.Body.String())

		w = do(http.MethodPost, "/return-book-by-title", `{"book_name":"Deep Learning 9"}`)
		assert.JSONEq(t, `{"fine":0,"status":"Book already in shelf"}`, w.Body.String())
	})

	t.Run("borrowed books carry a borrow date", func(t *testing.T) {
		w := do(http.MethodGet, "/get-borrowed-books", "")
		require.Equal(t, http.StatusOK, w.Code)

		var books []Book
		require.NoError(t, testutil.DecodeJSON(w, &books))
		require.Len(t, books, 3)
		for _, b := range books {
			assert.NotNil(t, b.BorrowDate)
		}
	})

	t.Run("prime suffix", func(t *testing.T) {
		w := do(http.MethodGet, "/get-prime-suffix", "")
		var books []Book
		require.NoError(t, testutil.DecodeJSON(w, &books))
		assert.Equal(t, []string{
			"Introduction to Algorithms 5",
			"Python Crash Course 2",
			"Data Science from Scratch 7",
			"You Don't Know JS 3",
		}, titles(books))
	})

	t.Run("most borrowed tie", func(t *testing.T) {
		w := do(http.MethodGet, "/most-borrowed-book", "")
		var books []Book
		require.NoError(t, testutil.DecodeJSON(w, &books))
		assert.Equal(t, []string{"Clean Code 4", "Fluent Python 8"}, titles(books))
	})

	t.Run("author lookup", func(t *testing.T) {
		w := do(http.MethodPost, "/get-books-by-author", `{"author_name":"joel grus"}`)
		var books []Book
		require.NoError(t, testutil.DecodeJSON(w, &books))
		assert.Equal(t, []string{"Data Science from Scratch 7"}, titles(books))

		w = do(http.MethodPost, "/get-books-by-author", `{"author_name":"nobody"}`)
		assert.JSONEq(t, `"Book not Found"`, w.Body.String())
	})

	t.Run("available books", func(t *testing.T) {
		w := do(http.MethodGet, "/get-available-books", "")
		var books []Book
		require.NoError(t, testutil.DecodeJSON(w, &books))
		assert.Len(t, books, 7)
	})
}

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func sampleBook() Book {
	return Book{
		ID:     "hp1",
		Title:  "The Philosopher's Stone",
		Author: "J.K. Rowling",
		Chapters: []Chapter{
			{Num: 1, Title: "The Boy Who Lived", MediaRef: "/media/hp1/01.mp3"},
			{Num: 2, Title: "The Vanishing Glass", MediaRef: "/media/hp1/02.mp3"},
			{Num: 3, Title: "The Letters from No One", MediaRef: "/media/hp1/03.mp3"},
		},
	}
}

func TestBook_Chapter(t *testing.T) {
	b := sampleBook()

	if ch := b.Chapter(2); ch == nil || ch.Num != 2 {
		t.Errorf("Chapter(2) = %v, want chapter 2", ch)
	}
	if ch := b.Chapter(99); ch != nil {
		t.Errorf("Chapter(99) = %v, want nil", ch)
	}
}

func TestBook_FirstChapter(t *testing.T) {
	b := sampleBook()
	if ch := b.FirstChapter(); ch == nil || ch.Num != 1 {
		t.Errorf("FirstChapter() = %v, want chapter 1", ch)
	}

	empty := Book{ID: "empty"}
	if ch := empty.FirstChapter(); ch != nil {
		t.Errorf("FirstChapter() on empty book = %v, want nil", ch)
	}
}

func TestBook_NextPrevChapter(t *testing.T) {
	b := sampleBook()

	if ch := b.NextChapter(1); ch == nil || ch.Num != 2 {
		t.Errorf("NextChapter(1) = %v, want chapter 2", ch)
	}
	if ch := b.NextChapter(3); ch != nil {
		t.Errorf("NextChapter(3) = %v, want nil (last chapter)", ch)
	}
	if ch := b.PrevChapter(2); ch == nil || ch.Num != 1 {
		t.Errorf("PrevChapter(2) = %v, want chapter 1", ch)
	}
	if ch := b.PrevChapter(1); ch != nil {
		t.Errorf("PrevChapter(1) = %v, want nil (first chapter)", ch)
	}
}

func TestFindBook(t *testing.T) {
	books := []Book{{ID: "a"}, {ID: "b"}}

	if b := FindBook(books, "b"); b == nil || b.ID != "b" {
		t.Errorf("FindBook(b) = %v, want book b", b)
	}
	if b := FindBook(books, "z"); b != nil {
		t.Errorf("FindBook(z) = %v, want nil", b)
	}
}

func TestFilter(t *testing.T) {
	books := []Book{
		{ID: "1", Title: "The Hobbit", Author: "J.R.R. Tolkien"},
		{ID: "2", Title: "Dune", Author: "Frank Herbert"},
		{ID: "3", Title: "Dune Messiah", Author: "Frank Herbert"},
	}

	if got := Filter(books, ""); len(got) != 3 {
		t.Errorf("empty query matched %d, want 3", len(got))
	}
	if got := Filter(books, "dune"); len(got) != 2 {
		t.Errorf("query 'dune' matched %d, want 2", len(got))
	}
	if got := Filter(books, "TOLKIEN"); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("query 'TOLKIEN' matched %d, want The Hobbit only", len(got))
	}
	if got := Filter(books, "nothing"); len(got) != 0 {
		t.Errorf("query 'nothing' matched %d, want 0", len(got))
	}
}

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"books":[{"id":"hp1","title":"The Philosopher's Stone","author":"J.K. Rowling","chapters":[{"num":1,"title":"The Boy Who Lived","url":"/media/01.mp3"}]}]}`))
	}))
	defer srv.Close()

	books, err := NewClient(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("len(books) = %d, want 1", len(books))
	}
	if books[0].ID != "hp1" || len(books[0].Chapters) != 1 {
		t.Errorf("book = %+v, want hp1 with one chapter", books[0])
	}
	if books[0].Chapters[0].MediaRef != "/media/01.mp3" {
		t.Errorf("MediaRef = %q, want /media/01.mp3", books[0].Chapters[0].MediaRef)
	}
}

func TestClient_Fetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("Fetch should fail on non-200 status")
	}
}

func TestClient_Fetch_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("Fetch should fail on malformed manifest")
	}
}

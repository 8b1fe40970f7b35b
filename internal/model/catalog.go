package model

import "time"

type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	BirthYear int       `json:"birthYear"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuthorWithBooks struct {
	Author
	Books []Book `json:"books"`
}

type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	PublicationYear int       `json:"publicationYear"`
	AuthorID        string    `json:"authorId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BookWithAuthor struct {
	Book
	Author Author `json:"author"`
}

// AuthorRef is the {id, name} projection embedded in favorite responses.
type AuthorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

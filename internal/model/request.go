package model

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddFavoriteRequest struct {
	BookID string `json:"bookId"`
}

type CreateAuthorRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	BirthYear int    `json:"birthYear"`
}

type UpdateAuthorRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	BirthYear *int    `json:"birthYear"`
}

type CreateBookRequest struct {
	Title           string `json:"title"`
	Summary         string `json:"summary"`
	PublicationYear int    `json:"publicationYear"`
	AuthorID        string `json:"authorId"`
}

type UpdateBookRequest struct {
	Title           *string `json:"title"`
	Summary         *string `json:"summary"`
	PublicationYear *int    `json:"publicationYear"`
	AuthorID        *string `json:"authorId"`
}

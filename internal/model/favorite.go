package model

import "time"

type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	BookID    string    `json:"bookId"`
	CreatedAt time.Time `json:"createdAt"`
}

type FavoriteBook struct {
	Book
	Author AuthorRef `json:"author"`
}

type FavoriteWithBook struct {
	Favorite
	Book FavoriteBook `json:"book"`
}

type FavoriteStats struct {
	TotalFavorites    int            `json:"totalFavorites"`
	FavoritesByYear   map[string]int `json:"favoritesByYear"`
	FavoritesByAuthor map[string]int `json:"favoritesByAuthor"`
}

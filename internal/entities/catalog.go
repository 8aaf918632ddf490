package entities

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"` // bcrypt hash, hidden from JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:256;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:512;not null" json:"title"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	GenreID   uint      `gorm:"index;not null" json:"genre_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Genre     Genre     `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Favourite is a row in the user/book favourites join table.
// The composite primary key guarantees a (user, book) pair appears at most once.
type Favourite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	BookID    uint      `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the join table name aligned with the favourite_books routes.
func (Favourite) TableName() string {
	return "favourite_books"
}

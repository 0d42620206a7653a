package model

// IssuedBookCount is one row of the issued_books_count view: libraries with
// more than five issued books.
type IssuedBookCount struct {
	LibraryID   int    `json:"library_id"`
	LibraryName string `json:"library_name"`
	IssuedCount int    `json:"issued_count"`
}

// BookThemeInfo is one row of the book_theme_info view.
type BookThemeInfo struct {
	BookID    int    `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ThemeName string `json:"theme_name"`
}

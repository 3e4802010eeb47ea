package dto

import "bookplanner/internal/microservices/http-api/models"

// DTOs for book and reading-session operations in HTTP API

type CreateBookRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	TotalPages int    `json:"totalPages"`
	Category   string `json:"category"`
	Priority   string `json:"priority"`
}

// UpdateBookRequest replaces only the fields that are present.
type UpdateBookRequest struct {
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	TotalPages  *int    `json:"totalPages,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	CurrentPage *int    `json:"currentPage,omitempty"`
}

type AddSessionRequest struct {
	Date    string `json:"date" binding:"required"`
	Pages   int    `json:"pages"`
	Minutes int    `json:"minutes"`
}

type BookURI struct {
	ID int64 `uri:"id" binding:"required"`
}

type BookListQuery struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Search   string `form:"search"`
	Sort     string `form:"sort"`
}

const (
	SortRecent   = "recent"
	SortTitle    = "title"
	SortAuthor   = "author"
	SortProgress = "progress"
	SortPriority = "priority"
)

type BookListResponse struct {
	Data  []models.Book `json:"data"`
	Total int           `json:"total"`
	Stale bool          `json:"stale"`
}

type CategoryCountsResponse struct {
	Categories map[string]int `json:"categories"`
}

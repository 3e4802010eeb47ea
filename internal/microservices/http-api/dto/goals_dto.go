package dto

import "bookplanner/internal/microservices/http-api/models"

// GoalTargetPatch updates one period's targets; absent fields are kept.
type GoalTargetPatch struct {
	Books *int `json:"books,omitempty"`
	Pages *int `json:"pages,omitempty"`
}

type GoalsResponse struct {
	Goals models.Goals `json:"goals"`
	Stale bool         `json:"stale"`
}

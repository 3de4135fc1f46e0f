package models

import "time"

// DashboardRepository is a source repository card shown on a user's dashboard (PostgreSQL)
type DashboardRepository struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	UserID       string           `json:"user_id" gorm:"size:24;index"`
	Name         string           `json:"name" gorm:"size:100"`
	URL          string           `json:"url"`
	Description  string           `json:"description"`
	Stars        int              `json:"stars"`
	LanguageInfo map[string]int64 `json:"language_info" gorm:"serializer:json"`
	CreatedAt    time.Time        `json:"created_at"`
}

// CreateDashboardRepositoryRequest defines the request body for adding a repository card
type CreateDashboardRepositoryRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=100"`
	URL          string           `json:"url" validate:"required,url"`
	Description  string           `json:"description,omitempty" validate:"max=500"`
	Stars        int              `json:"stars" validate:"min=0"`
	LanguageInfo map[string]int64 `json:"language_info" validate:"omitempty,dive,keys,min=1,endkeys,min=0"`
}

// LanguageShare is one language's share across all of a user's repositories
type LanguageShare struct {
	Language string  `json:"language"`
	Bytes    int64   `json:"bytes"`
	Percent  float64 `json:"percent"`
}

package services

import (
	"context"
	"math"
	"sort"

	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/repositories"
)

// DashboardService manages the repository cards on a user's dashboard
type DashboardService struct {
	repos repositories.DashboardRepositoryStore
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repos repositories.DashboardRepositoryStore) *DashboardService {
	return &DashboardService{repos: repos}
}

// AddRepository stores a repository card for userID
func (s *DashboardService) AddRepository(ctx context.Context, userID string, req models.CreateDashboardRepositoryRequest) (*models.DashboardRepository, error) {
	if _, err := models.ParseObjectID("session user", userID); err != nil {
		return nil, err
	}
	info := req.LanguageInfo
	if info == nil {
		info = map[string]int64{}
	}
	repo := &models.DashboardRepository{
		UserID:       userID,
		Name:         req.Name,
		URL:          req.URL,
		Description:  req.Description,
		Stars:        req.Stars,
		LanguageInfo: info,
	}
	if err := s.repos.CreateRepository(ctx, repo); err != nil {
		return nil, err
	}
	return repo, nil
}

// Repositories lists userID's repository cards, newest first
func (s *DashboardService) Repositories(ctx context.Context, userID string) ([]models.DashboardRepository, error) {
	return s.repos.GetRepositoriesByUserID(ctx, userID)
}

// Languages sums language bytes across all of userID's repositories
func (s *DashboardService) Languages(ctx context.Context, userID string) ([]models.LanguageShare, error) {
	repos, err := s.repos.GetRepositoriesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return languageShares(repos), nil
}

// languageShares returns per-language totals sorted by bytes, then name.
// Percentages are rounded to two decimals.
func languageShares(repos []models.DashboardRepository) []models.LanguageShare {
	totals := map[string]int64{}
	var sum int64
	for _, repo := range repos {
		for lang, bytes := range repo.LanguageInfo {
			totals[lang] += bytes
			sum += bytes
		}
	}

	shares := make([]models.LanguageShare, 0, len(totals))
	for lang, bytes := range totals {
		share := models.LanguageShare{Language: lang, Bytes: bytes}
		if sum > 0 {
			share.Percent = math.Round(float64(bytes)*10000/float64(sum)) / 100
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Bytes != shares[j].Bytes {
			return shares[i].Bytes > shares[j].Bytes
		}
		return shares[i].Language < shares[j].Language
	})
	return shares
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/AVIDS2/Astris-Blog/internal/models"
	"github.com/AVIDS2/Astris-Blog/internal/repository"
)

// SearchService answers keyword search over published posts against the
// relational store: case-insensitive substring match on title, summary, and
// content, title matches ranked first, with a highlighted excerpt per hit.
type SearchService struct {
	posts   *repository.PostRepository
	timeout time.Duration
}

func NewSearchService(gdb *gorm.DB, timeout time.Duration) *SearchService {
	return &SearchService{posts: repository.NewPostRepository(gdb), timeout: timeout}
}

type SearchResultItem struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Summary      *string  `json:"summary"`
	Excerpt      string   `json:"excerpt"`
	CoverImage   *string  `json:"cover_image"`
	CategoryName *string  `json:"category_name"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"created_at"`
	URL          string   `json:"url"`
}

type SearchResponse struct {
	Query   string             `json:"query"`
	Total   int                `json:"total"`
	Results []SearchResultItem `json:"results"`
}

// Search runs a keyword search. The keyword is trimmed first; an empty
// result set is returned without touching the store when nothing is left.
// Keywords longer than 100 runes and limits outside [1,50] are rejected.
func (s *SearchService) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	keyword := strings.TrimSpace(query)
	if keyword == "" {
		return &SearchResponse{Query: keyword, Total: 0, Results: []SearchResultItem{}}, nil
	}
	if utf8.RuneCountInString(keyword) > 100 {
		return nil, fmt.Errorf("%w: keyword must be at most 100 characters", ErrInvalidInput)
	}
	if limit < 1 || limit > 50 {
		return nil, fmt.Errorf("%w: limit must be between 1 and 50", ErrInvalidInput)
	}

	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	posts, err := s.posts.SearchPublished(ctx, keyword, limit)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResultItem, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		results = append(results, SearchResultItem{
			ID:           p.ID,
			Title:        p.Title,
			Slug:         p.Slug,
			Summary:      p.Summary,
			Excerpt:      buildExcerpt(p, keyword),
			CoverImage:   p.CoverImage,
			CategoryName: categoryName(p),
			Tags:         tagNames(p),
			CreatedAt:    p.CreatedAt.Format(time.RFC3339),
			URL:          fmt.Sprintf("/posts/%s/", p.Slug),
		})
	}
	return &SearchResponse{Query: keyword, Total: len(results), Results: results}, nil
}

// buildExcerpt picks the excerpt source by where the keyword matched: a
// title match prefers the stored summary verbatim, a summary match extracts
// from the summary, anything else extracts from the content.
func buildExcerpt(p *models.Post, keyword string) string {
	kwLower := strings.ToLower(keyword)
	switch {
	case strings.Contains(strings.ToLower(p.Title), kwLower):
		if p.Summary != nil && *p.Summary != "" {
			return *p.Summary
		}
		return extractExcerpt(p.Content, keyword, excerptMaxLength)
	case p.Summary != nil && strings.Contains(strings.ToLower(*p.Summary), kwLower):
		return extractExcerpt(*p.Summary, keyword, excerptMaxLength)
	default:
		return extractExcerpt(p.Content, keyword, excerptMaxLength)
	}
}

func categoryName(p *models.Post) *string {
	if p.Category == nil {
		return nil
	}
	return &p.Category.Name
}

func tagNames(p *models.Post) []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

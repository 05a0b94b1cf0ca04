package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"pollsnip/highlight"
	"pollsnip/models"
	"pollsnip/validation"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const highlightCacheTTL = 2 * time.Hour

type SnippetService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewSnippetService(db *gorm.DB, redis *redis.Client) *SnippetService {
	return &SnippetService{
		db:    db,
		redis: redis,
	}
}

type CreateSnippetRequest struct {
	Title        *string `json:"title"`
	Code         string  `json:"code"`
	Linenos      *bool   `json:"linenos"`
	Language     *string `json:"language"`
	Style        *string `json:"style"`
	Price        *int    `json:"price"`
	ContactEmail *string `json:"contact_email"`
	Results      *string `json:"results"`
}

type UpdateSnippetRequest struct {
	Title        *string `json:"title"`
	Code         *string `json:"code"`
	Linenos      *bool   `json:"linenos"`
	Language     *string `json:"language"`
	Style        *string `json:"style"`
	Price        *int    `json:"price"`
	ContactEmail *string `json:"contact_email"`
	Results      *string `json:"results"`
}

// SnippetFilter holds the recognized list filters; unknown query
// parameters are ignored by the handler.
type SnippetFilter struct {
	Title            string
	TitleContains    string
	Language         string
	LanguageContains string
	MinPrice         *int
	MaxPrice         *int
	Linenos          *bool
	Page             int
	PageSize         int
}

func (s *SnippetService) CreateSnippet(ctx context.Context, ownerID uint, req *CreateSnippetRequest) (*models.Snippet, error) {
	snippet := models.Snippet{
		OwnerID:  ownerID,
		Code:     req.Code,
		Language: highlight.DefaultLanguage,
		Style:    highlight.DefaultStyle,
	}
	if req.Title != nil {
		snippet.Title = *req.Title
	}
	if req.Linenos != nil {
		snippet.Linenos = *req.Linenos
	}
	if req.Language != nil {
		snippet.Language = *req.Language
	}
	if req.Style != nil {
		snippet.Style = *req.Style
	}
	if req.Price != nil {
		snippet.Price = *req.Price
	}
	if req.ContactEmail != nil {
		snippet.ContactEmail = models.EncryptedString(*req.ContactEmail)
	}
	if req.Results != nil {
		snippet.Results = models.EncryptedString(*req.Results)
	}

	if err := validateSnippet(&snippet); err != nil {
		return nil, err
	}

	// The rendered document is part of the record; a render failure
	// aborts the write.
	if err := s.renderHighlight(&snippet); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&snippet).Error; err != nil {
		return nil, err
	}
	return &snippet, nil
}

func (s *SnippetService) ListSnippets(ctx context.Context, filter *SnippetFilter) ([]models.Snippet, error) {
	query := s.db.WithContext(ctx).Model(&models.Snippet{})

	if filter.Title != "" {
		query = query.Where("title = ?", filter.Title)
	}
	if filter.TitleContains != "" {
		query = query.Where("title LIKE ?", "%"+filter.TitleContains+"%")
	}
	if filter.Language != "" {
		query = query.Where("language = ?", filter.Language)
	}
	if filter.LanguageContains != "" {
		query = query.Where("language LIKE ?", "%"+filter.LanguageContains+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Linenos != nil {
		query = query.Where("linenos = ?", *filter.Linenos)
	}

	var snippets []models.Snippet
	err := query.
		Order("created_at ASC, id ASC").
		Scopes(Paginate(filter.Page, filter.PageSize)).
		Find(&snippets).Error
	return snippets, err
}

func (s *SnippetService) GetSnippet(ctx context.Context, snippetID uint) (*models.Snippet, error) {
	var snippet models.Snippet
	err := s.db.WithContext(ctx).First(&snippet, snippetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &snippet, nil
}

// UpdateSnippet applies the fields present in the request and re-renders
// the highlighted document before persisting. The caller is responsible
// for the ownership check.
func (s *SnippetService) UpdateSnippet(ctx context.Context, snippet *models.Snippet, req *UpdateSnippetRequest) (*models.Snippet, error) {
	if req.Title != nil {
		snippet.Title = *req.Title
	}
	if req.Code != nil {
		snippet.Code = *req.Code
	}
	if req.Linenos != nil {
		snippet.Linenos = *req.Linenos
	}
	if req.Language != nil {
		snippet.Language = *req.Language
	}
	if req.Style != nil {
		snippet.Style = *req.Style
	}
	if req.Price != nil {
		snippet.Price = *req.Price
	}
	if req.ContactEmail != nil {
		snippet.ContactEmail = models.EncryptedString(*req.ContactEmail)
	}
	if req.Results != nil {
		snippet.Results = models.EncryptedString(*req.Results)
	}

	if err := validateSnippet(snippet); err != nil {
		return nil, err
	}
	if err := s.renderHighlight(snippet); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(snippet).Error; err != nil {
		return nil, err
	}
	return snippet, nil
}

func (s *SnippetService) DeleteSnippet(ctx context.Context, snippet *models.Snippet) error {
	return s.db.WithContext(ctx).Delete(snippet).Error
}

// Highlighted returns the stored rendered document, read through the
// redis cache when one is configured.
func (s *SnippetService) Highlighted(ctx context.Context, snippet *models.Snippet) string {
	if s.redis == nil {
		return snippet.Highlighted
	}

	key := highlightCacheKey(snippet)
	cached, err := s.redis.Get(ctx, key).Result()
	if err == nil {
		return cached
	}
	if err != redis.Nil {
		log.Printf("Redis error reading highlight cache for snippet %d: %v", snippet.ID, err)
	}

	if err := s.redis.Set(ctx, key, snippet.Highlighted, highlightCacheTTL).Err(); err != nil {
		log.Printf("Failed to warm highlight cache for snippet %d: %v", snippet.ID, err)
	}
	return snippet.Highlighted
}

// highlightCacheKey is a digest of the render inputs, so a stale entry
// can never be served for changed content.
func highlightCacheKey(snippet *models.Snippet) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%t", snippet.Code, snippet.Language, snippet.Style, snippet.Title, snippet.Linenos)
	return "highlight:" + hex.EncodeToString(h.Sum(nil))
}

func (s *SnippetService) renderHighlight(snippet *models.Snippet) error {
	rendered, err := highlight.Render(snippet.Code, snippet.Language, snippet.Style, snippet.Title, snippet.Linenos)
	if err != nil {
		return fmt.Errorf("failed to render snippet: %w", err)
	}
	snippet.Highlighted = rendered
	return nil
}

func validateSnippet(snippet *models.Snippet) error {
	errs := validation.FieldErrors{}
	errs.Required("code", snippet.Code)
	errs.MaxLength("title", snippet.Title, 100)
	errs.OneOf("language", snippet.Language, highlight.SupportedLanguage)
	errs.OneOf("style", snippet.Style, highlight.SupportedStyle)
	errs.NonNegative("price", snippet.Price)
	errs.Email("contact_email", string(snippet.ContactEmail))
	return errs.Err()
}

package helper

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"conduit-api/models"
)

// MaxSlugLength matches the size of the articles.slug column.
const MaxSlugLength = 255

// GenerateArticleSlug builds the URL identifier for an article from its
// title and a random 128-bit token. The normalized title is trimmed so the
// whole identifier fits MaxSlugLength; a title that normalizes to nothing
// degrades to the bare token.
func GenerateArticleSlug(title string, token uuid.UUID) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", models.ErrorValidation{Message: "title is required to generate a slug"}
	}

	tokenString := token.String()
	normalized := slug.Make(title)

	maxTitle := MaxSlugLength - len(tokenString) - 1
	if len(normalized) > maxTitle {
		normalized = normalized[:maxTitle]
	}

	if normalized == "" {
		return tokenString, nil
	}

	return normalized + "-" + tokenString, nil
}

// EnsureArticleSlug assigns a slug to an article that does not have one
// yet. An already assigned slug is never recomputed, so URLs stay stable
// when the title changes later. The token space makes collisions
// negligible; the unique index on the column is the backstop.
func EnsureArticleSlug(article *models.Article) error {
	if article.Slug != "" {
		return nil
	}

	s, err := GenerateArticleSlug(article.Title, uuid.New())
	if err != nil {
		return err
	}

	article.Slug = s
	return nil
}

// NormalizeTag returns the unique key form of a raw tag text: lowercased,
// punctuation stripped, spaces collapsed to hyphens.
func NormalizeTag(raw string) string {
	return slug.Make(raw)
}

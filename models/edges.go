package models

// Follow is a directed edge between profiles. The composite primary key
// gives set semantics: inserting the same edge twice is a conflict, not a
// duplicate.
type Follow struct {
	FollowerID uint `json:"follower_id" gorm:"primaryKey"`
	FolloweeID uint `json:"followee_id" gorm:"primaryKey"`
}

func (Follow) TableName() string { return "profile_follows" }

// Favorite is a directed edge from a profile to an article.
type Favorite struct {
	ProfileID uint `json:"profile_id" gorm:"primaryKey"`
	ArticleID uint `json:"article_id" gorm:"primaryKey"`
}

func (Favorite) TableName() string { return "profile_favorites" }

// ArticleTag joins articles to tags; same table gorm uses for the
// Article.Tags association.
type ArticleTag struct {
	ArticleID uint `json:"article_id" gorm:"primaryKey"`
	TagID     uint `json:"tag_id" gorm:"primaryKey"`
}

func (ArticleTag) TableName() string { return "article_tags" }

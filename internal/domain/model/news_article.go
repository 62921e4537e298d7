package model

import "time"

// ArticleFields holds the optional detail fields requested from the content API.
type ArticleFields struct {
	TrailText string
	Author    string
	Thumbnail string
}

// Article is a single news item revealed by the ticker.
type Article struct {
	ID            string
	SectionID     string
	SectionName   string
	PublishedDate string
	Title         string
	URL           string
	Fields        ArticleFields
}

// SameArticle reports whether a and b identify the same news item.
func SameArticle(a, b Article) bool {
	return a.ID == b.ID
}

// Equal reports whether a and b carry identical content.
func (a Article) Equal(b Article) bool {
	return a == b
}

// Batch is the ordered result of one fetch, trailer included.
type Batch struct {
	Articles  []Article
	FetchedAt time.Time
}

// Len returns the number of articles in the batch.
func (b Batch) Len() int {
	return len(b.Articles)
}

// Items returns a copy of the batch articles in server order.
func (b Batch) Items() []Article {
	out := make([]Article, len(b.Articles))
	copy(out, b.Articles)
	return out
}

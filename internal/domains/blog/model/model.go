package model

import (
	"atithi/shared/model"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "blog_posts"
	EntityName = "blog_post"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldStatus      = "status"
	FieldTags        = "tags"
	FieldPublishedAt = "published_at"
)

var errInvalidContentBlocks = errors.New("content blocks must be a JSON byte slice")

// ContentBlock is one unit of post content. Text lives in Content; media
// blocks carry a URL and an optional caption.
type ContentBlock struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// ContentBlocks stores the post body as a jsonb column.
type ContentBlocks []ContentBlock

func (c ContentBlocks) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *ContentBlocks) Scan(src any) error {
	if src == nil {
		*c = nil

		return nil
	}

	bytes, ok := src.([]byte)
	if !ok {
		return errInvalidContentBlocks
	}

	return json.Unmarshal(bytes, c)
}

type BlogPost struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Slug          string         `db:"slug"`
	Excerpt       string         `db:"excerpt"`
	ContentBlocks ContentBlocks  `db:"content_blocks"`
	Tags          pq.StringArray `db:"tags"`
	CoverImage    string         `db:"cover_image"`
	AuthorID      string         `db:"author_id"`
	ReadTime      int            `db:"read_time"`
	Status        string         `db:"status"`
	PublishedAt   *time.Time     `db:"published_at"`
	model.Metadata
}

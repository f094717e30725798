package dto_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atithi/internal/domains/blog/model"
	"atithi/internal/domains/blog/model/dto"
	"atithi/shared/constant"
)

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name     string
		blocks   model.ContentBlocks
		expected int
	}{
		{
			name:     "empty content still reads one minute",
			blocks:   model.ContentBlocks{},
			expected: 1,
		},
		{
			name: "short paragraph rounds up to one minute",
			blocks: model.ContentBlocks{
				{Type: "paragraph", Content: "a quick note"},
			},
			expected: 1,
		},
		{
			name: "exactly one minute of words",
			blocks: model.ContentBlocks{
				{Type: "paragraph", Content: strings.Repeat("word ", 200)},
			},
			expected: 1,
		},
		{
			name: "one word over rounds up",
			blocks: model.ContentBlocks{
				{Type: "paragraph", Content: strings.Repeat("word ", 201)},
			},
			expected: 2,
		},
		{
			name: "captions count toward the total",
			blocks: model.ContentBlocks{
				{Type: "paragraph", Content: strings.Repeat("word ", 195)},
				{Type: "image", URL: "https://cdn.example.com/a.jpg", Caption: "six more words in this caption"},
			},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dto.EstimateReadTime(tt.blocks))
		})
	}
}

func TestCreateBlogPostRequest_ToModel(t *testing.T) {
	t.Run("draft by default", func(t *testing.T) {
		req := dto.CreateBlogPostRequest{
			Title: "Weekend in the Hills",
			ContentBlocks: []dto.ContentBlockRequest{
				{Type: "paragraph", Content: "Pack light."},
			},
		}

		post := req.ToModel("admin-1", "weekend-in-the-hills")

		assert.NotEmpty(t, post.ID)
		assert.Equal(t, "weekend-in-the-hills", post.Slug)
		assert.Equal(t, constant.BlogStatusDraft, post.Status)
		assert.Nil(t, post.PublishedAt)
		assert.Equal(t, "admin-1", post.AuthorID)
		assert.Equal(t, "admin-1", post.CreatedBy)
		assert.Equal(t, 1, post.ReadTime)
	})

	t.Run("published posts get a timestamp", func(t *testing.T) {
		req := dto.CreateBlogPostRequest{
			Title:  "Weekend in the Hills",
			Status: constant.BlogStatusPublished,
			ContentBlocks: []dto.ContentBlockRequest{
				{Type: "paragraph", Content: "Pack light."},
			},
		}

		post := req.ToModel("admin-1", "weekend-in-the-hills")

		assert.Equal(t, constant.BlogStatusPublished, post.Status)
		assert.NotNil(t, post.PublishedAt)
		assert.WithinDuration(t, time.Now(), *post.PublishedAt, 5*time.Second)
	})
}

func TestBlogPostResponse_FromModel(t *testing.T) {
	publishedAt := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	post := model.BlogPost{
		ID:    "post-1",
		Title: "Weekend in the Hills",
		Slug:  "weekend-in-the-hills",
		ContentBlocks: model.ContentBlocks{
			{Type: "heading", Content: "Getting there"},
			{Type: "image", URL: "https://cdn.example.com/a.jpg", Caption: "The drive up"},
		},
		Tags:        []string{"travel"},
		ReadTime:    4,
		Status:      constant.BlogStatusPublished,
		PublishedAt: &publishedAt,
	}

	res := dto.BlogPostResponse{}
	res.FromModel(post)

	assert.Equal(t, "post-1", res.ID)
	assert.Len(t, res.ContentBlocks, 2)
	assert.Equal(t, "heading", res.ContentBlocks[0].Type)
	assert.Equal(t, "https://cdn.example.com/a.jpg", res.ContentBlocks[1].URL)
	assert.NotNil(t, res.PublishedAt)
	assert.Equal(t, "2026-08-01T10:30:00Z", *res.PublishedAt)
}

package dto

import (
	"atithi/internal/domains/blog/model"
	"atithi/shared"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	gModel "atithi/shared/model"
	"atithi/shared/timezone"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContentBlockRequest struct {
	Type    string `json:"type"              validate:"required,oneof=paragraph heading quote image list"`
	Content string `json:"content,omitempty" validate:"omitempty"`
	URL     string `json:"url,omitempty"     validate:"omitempty,url"`
	Caption string `json:"caption,omitempty" validate:"omitempty,max=300"`
}

type CreateBlogPostRequest struct {
	Title         string                `json:"title"          validate:"required,min=3,max=200"`
	Excerpt       string                `json:"excerpt"        validate:"omitempty,max=500"`
	ContentBlocks []ContentBlockRequest `json:"content_blocks" validate:"required,min=1,dive"`
	Tags          []string              `json:"tags"           validate:"omitempty,dive,max=50"`
	CoverImage    string                `json:"cover_image"    validate:"omitempty,url"`
	Status        string                `json:"status"         validate:"omitempty,oneof=draft published"`
}

func (c *CreateBlogPostRequest) ToModel(user, slug string) model.BlogPost {
	status := c.Status
	if status == constant.Empty {
		status = constant.BlogStatusDraft
	}

	blocks := toContentBlocks(c.ContentBlocks)

	var publishedAt *time.Time
	if status == constant.BlogStatusPublished {
		now := timezone.Now()
		publishedAt = &now
	}

	return model.BlogPost{
		ID:            uuid.NewString(),
		Title:         c.Title,
		Slug:          slug,
		Excerpt:       c.Excerpt,
		ContentBlocks: blocks,
		Tags:          c.Tags,
		CoverImage:    c.CoverImage,
		AuthorID:      user,
		ReadTime:      EstimateReadTime(blocks),
		Status:        status,
		PublishedAt:   publishedAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBlogPostRequest is a partial update. The slug never changes after
// creation so published URLs stay stable.
type UpdateBlogPostRequest struct {
	Title         *string                `db:"title"          json:"title"          validate:"omitempty,min=3,max=200"`
	Excerpt       *string                `db:"excerpt"        json:"excerpt"        validate:"omitempty,max=500"`
	ContentBlocks *[]ContentBlockRequest `db:"content_blocks" json:"content_blocks" validate:"omitempty,min=1,dive"`
	Tags          *[]string              `db:"tags"           json:"tags"           validate:"omitempty,dive,max=50"`
	CoverImage    *string                `db:"cover_image"    json:"cover_image"    validate:"omitempty,url"`
	Status        *string                `db:"status"         json:"status"         validate:"omitempty,oneof=draft published"`
}

type BlogPostResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Slug          string                `json:"slug"`
	Excerpt       string                `json:"excerpt,omitempty"`
	ContentBlocks []ContentBlockRequest `json:"content_blocks"`
	Tags          []string              `json:"tags"`
	CoverImage    string                `json:"cover_image,omitempty"`
	AuthorID      string                `json:"author_id"`
	ReadTime      int                   `json:"read_time"`
	Status        string                `json:"status"`
	PublishedAt   *string               `json:"published_at,omitempty"`
	gDto.Metadata
}

func (r *BlogPostResponse) FromModel(post model.BlogPost) {
	r.ID = post.ID
	r.Title = post.Title
	r.Slug = post.Slug
	r.Excerpt = post.Excerpt
	r.ContentBlocks = fromContentBlocks(post.ContentBlocks)
	r.Tags = post.Tags
	r.CoverImage = post.CoverImage
	r.AuthorID = post.AuthorID
	r.ReadTime = post.ReadTime
	r.Status = post.Status

	if post.PublishedAt != nil {
		publishedAt := post.PublishedAt.Format(time.RFC3339)
		r.PublishedAt = &publishedAt
	}

	r.Metadata.FromModel(post.Metadata)
}

type GetBlogPostsResponse struct {
	Posts     []BlogPostResponse `json:"posts"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetBlogPostsResponse) FromModels(models []model.BlogPost, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Posts = make([]BlogPostResponse, len(models))
	for i, m := range models {
		r.Posts[i].FromModel(m)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=10"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}

// EstimateReadTime derives the read time in minutes from the word count of
// the text blocks, rounding up and never reporting zero.
func EstimateReadTime(blocks model.ContentBlocks) int {
	words := 0
	for _, block := range blocks {
		words += len(strings.Fields(block.Content))
		words += len(strings.Fields(block.Caption))
	}

	minutes := (words + constant.ReadTimeWordsPerMinute - 1) / constant.ReadTimeWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return minutes
}

func toContentBlocks(reqs []ContentBlockRequest) model.ContentBlocks {
	blocks := make(model.ContentBlocks, len(reqs))
	for i, req := range reqs {
		blocks[i] = model.ContentBlock(req)
	}

	return blocks
}

func fromContentBlocks(blocks model.ContentBlocks) []ContentBlockRequest {
	reqs := make([]ContentBlockRequest, len(blocks))
	for i, block := range blocks {
		reqs[i] = ContentBlockRequest(block)
	}

	return reqs
}

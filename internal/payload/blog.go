package payload

type CreateBlogRequest struct {
	Title       string   `json:"title"   validate:"required"`
	Content     string   `json:"content" validate:"required"`
	BannerImage string   `json:"banner_image" validate:"omitempty,url"`
	Gallery     []string `json:"gallery"      validate:"omitempty,dive,url"`
	Author      string   `json:"author"`
}

type UpdateBlogRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	BannerImage *string   `json:"banner_image" validate:"omitempty,url"`
	Gallery     *[]string `json:"gallery"      validate:"omitempty,dive,url"`
	Author      *string   `json:"author"`
}

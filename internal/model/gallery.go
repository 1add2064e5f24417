package model

// GalleryImage is a showcase photo displayed on the site
type GalleryImage struct {
	Base
	Title    string `db:"title" json:"title"`
	ImageURL string `db:"image_url" json:"image_url"`
	Position int    `db:"position" json:"position"`
}

type CreateGalleryImageRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url" binding:"required"`
	Position int    `json:"position"`
}

type UpdateGalleryImageRequest struct {
	Title    *string `json:"title"`
	ImageURL *string `json:"image_url"`
	Position *int    `json:"position"`
}

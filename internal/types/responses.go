package types

// ------------------------------
// Response Types
// ------------------------------

// ImageUpload is the image-function response for a stored image.
type ImageUpload struct {
	ImageURL  string `json:"imageUrl"`
	ImagePath string `json:"imagePath"`
}

package dto

type CategoryItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
	Virtual bool   `json:"virtual"`
}

type CreateCategoryRequest struct {
	Label string `json:"label" binding:"required,max=64"`
}

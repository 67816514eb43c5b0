package dto

type PreferencesItem struct {
	Theme      string         `json:"theme"`
	Categories []CategoryItem `json:"categories"`
	HasPaid    bool           `json:"has_paid"`
}

type BillingReturnItem struct {
	Paid bool `json:"paid"`
}

type UserItem struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Email       string `json:"email,omitempty"`
}

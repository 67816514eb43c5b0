package mapper

import (
	"github.com/mew228/Flowstate/internal/adapter/http/dto"
	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/ports"
)

func ToCategoryItems(categories []domain.Category) []dto.CategoryItem {
	items := make([]dto.CategoryItem, 0, len(categories))
	for _, category := range categories {
		items = append(items, ToCategoryItem(category))
	}
	return items
}

func ToCategoryItem(category domain.Category) dto.CategoryItem {
	return dto.CategoryItem{
		ID:      category.ID,
		Label:   category.Label,
		Default: category.Default,
		Virtual: domain.IsVirtualCategory(category.ID),
	}
}

func ToPreferencesItem(prefs ports.Preferences) dto.PreferencesItem {
	return dto.PreferencesItem{
		Theme:      prefs.Theme,
		Categories: ToCategoryItems(domain.AllCategories(prefs.CustomCategories)),
		HasPaid:    prefs.HasPaid,
	}
}

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		FirstName:   user.FirstName(),
		AvatarURL:   user.AvatarURL,
		Email:       user.Email,
	}
}

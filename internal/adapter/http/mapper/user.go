package mapper

import (
	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

// ToUserItem never exposes the password hash.
func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: FormatTime(user.CreatedAt),
	}
}

func ToAuthData(result domain.AuthResult) dto.AuthData {
	return dto.AuthData{
		User:  ToUserItem(result.User),
		Token: result.Token,
	}
}

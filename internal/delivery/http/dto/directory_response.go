package dto

import (
	"staff-directory/internal/directory"
	"staff-directory/internal/usecase"
)

// FilterUsersResponse is the stable output shape of the directory filter:
// one page of users plus the metadata to render the pager.
type FilterUsersResponse struct {
	Users      []UserListItemResponse `json:"users"`
	Pagination directory.Page         `json:"pagination"`
}

func NewFilterUsersResponse(res usecase.FilterResult) FilterUsersResponse {
	return FilterUsersResponse{
		Users:      NewUserListResponse(res.Users),
		Pagination: res.Pagination,
	}
}

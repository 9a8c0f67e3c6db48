package models

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// ChildRequest тело запроса на создание или изменение профиля
type ChildRequest struct {
	Name      string  `json:"name"`
	Age       int     `json:"age"`
	Address   *string `json:"address,omitempty"`
	Condition *string `json:"condition,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ChildResponse профиль ребёнка
type ChildResponse struct {
	ID        int64     `json:"id"`
	ParentID  int64     `json:"parentId"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Address   *string   `json:"address,omitempty"`
	Condition *string   `json:"condition,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChildListResponse список профилей
type ChildListResponse struct {
	Children []ChildResponse `json:"children"`
}

// FromDomainChild конвертирует domain модель в DTO
func FromDomainChild(c *domain.Child) *ChildResponse {
	if c == nil {
		return nil
	}
	return &ChildResponse{
		ID:        c.ID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		Age:       c.Age,
		Address:   c.Address,
		Condition: c.Condition,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainChildList конвертирует список domain моделей в DTO
func FromDomainChildList(children []*domain.Child) *ChildListResponse {
	resp := &ChildListResponse{Children: make([]ChildResponse, 0, len(children))}
	for _, c := range children {
		resp.Children = append(resp.Children, *FromDomainChild(c))
	}
	return resp
}

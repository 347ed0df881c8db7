package repository

import "github.com/jhoicas/LabStock-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	// ListSubscribers devuelve los usuarios elegibles para el digest:
	// status "active" y receive_alerts = true.
	ListSubscribers() ([]*entity.User, error)
}

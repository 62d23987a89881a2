package domain

import "context"

// Entity is implemented by every stored record. Clone must return a value
// sharing no mutable state (slices, maps, pointers) with the receiver.
type Entity[T any] interface {
	Key() string
	Clone() T
}

// Repository is the storage port for one record kind. List returns records
// in insertion order; Upsert inserts or replaces by Key.
type Repository[T Entity[T]] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Upsert(ctx context.Context, v T) error
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	// Del drops every listed key; missing keys are not an error.
	Del(ctx context.Context, keys ...string) error
}

type Role string

const (
	RoleStudent    Role = "student"
	RoleManagement Role = "management"
	RoleGuest      Role = "guest"
)

// Principal is who a successful login resolves to.
type Principal struct {
	Role       Role   `json:"role"`
	Email      string `json:"email,omitempty"`
	ResidentID string `json:"resident_id,omitempty"`
}

type Authenticator interface {
	Authenticate(ctx context.Context, role Role, email, password string) (Principal, error)
}

package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e -source=interface.go

import (
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e"
)

// Client reads class reference data from the D&D 5e API
type Client interface {
	// ListClasses returns every class with only Key and Name populated
	ListClasses() ([]*rulebook.Class, error)
	GetClass(key string) (*rulebook.Class, error)
}

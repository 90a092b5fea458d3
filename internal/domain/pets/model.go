package pets

import (
	"time"

	"pets-api/internal/domain/groups"
	"pets-api/internal/domain/traits"
)

const MaxNameLen = 50

// Sex define el sexo de la mascota.
// @Enum Male, Female, Not Informed
type Sex string

const (
	SexMale        Sex = "Male"
	SexFemale      Sex = "Female"
	SexNotInformed Sex = "Not Informed"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexNotInformed:
		return true
	default:
		return false
	}
}

// Pet es el recurso principal: pertenece a exactamente un Group y tiene cero o más Traits.
type Pet struct {
	ID string

	Name   string
	Age    int
	Weight float64
	Sex    Sex

	Group  groups.Group
	Traits []traits.Trait // conjunto: sin IDs repetidos, orden de alta

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasTrait indica si el pet tiene un trait con ese nombre (case-insensitive).
func (p Pet) HasTrait(name string) bool {
	key := traits.Key(name)
	for _, t := range p.Traits {
		if traits.Key(t.Name) == key {
			return true
		}
	}
	return false
}

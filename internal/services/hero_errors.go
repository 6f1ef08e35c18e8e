package services

import (
	"net/http"

	apperrors "github.com/charlesng35/heroes/pkg/errors"
)

// ErrHeroNotFound indicates the requested hero does not exist.
var ErrHeroNotFound = apperrors.New(apperrors.CodeNotFound, "Hero not found", http.StatusNotFound)

// heroNotFound reports a missing hero by id. The result matches ErrHeroNotFound with errors.Is.
func heroNotFound(id uint) error {
	return ErrHeroNotFound.WithMessage("Hero with ID %d not found", id).WithInternal(ErrHeroNotFound)
}

package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type heroPayload struct {
	Name      string   `json:"name" validate:"required,nonblank"`
	Abilities []string `json:"abilities" validate:"required,min=1,dive,nonblank"`
	Origin    string   `json:"origin" validate:"required,nonblank"`
	Secret    string   `json:"-" validate:"max=3"`
}

func TestStructAcceptsValidPayload(t *testing.T) {
	require.NoError(t, Struct(heroPayload{Name: "Atom", Abilities: []string{"shrink"}, Origin: "Ivy Town"}))
}

func TestStructReportsEveryFailure(t *testing.T) {
	err := Struct(heroPayload{Origin: "   ", Abilities: []string{"shrink", " "}, Secret: "toolong"})

	var failures ValidationErrors
	require.True(t, errors.As(err, &failures))

	got := map[string]string{}
	for _, f := range failures {
		got[f.Field] = f.Tag
	}
	require.Equal(t, map[string]string{
		"name":         "required",
		"origin":       "nonblank",
		"abilities[1]": "nonblank",
		"Secret":       "max",
	}, got)
}

func TestValidationErrorsMessage(t *testing.T) {
	err := Struct(heroPayload{Name: "Atom", Origin: "Ivy Town"})
	require.EqualError(t, err, "abilities is required")

	err = Struct(heroPayload{Name: "Atom", Origin: "Ivy Town", Abilities: []string{}})
	require.EqualError(t, err, "abilities must contain at least 1 item(s)")

	require.Equal(t, "validation failed", ValidationErrors{}.Error())
	require.Equal(t, "power level failed validation: gte=9000",
		FieldError{Field: "Power_Level", Tag: "gte", Param: "9000"}.Message())
}

func TestStructRejectsNonStruct(t *testing.T) {
	err := Struct("hero")
	require.Error(t, err)

	var failures ValidationErrors
	require.False(t, errors.As(err, &failures))
}

func TestRegisterValidation(t *testing.T) {
	require.NoError(t, RegisterValidation("caped", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "cape"
	}))

	type outfit struct {
		Garment string `json:"garment" validate:"caped"`
	}
	require.NoError(t, Struct(outfit{Garment: "cape"}))

	var failures ValidationErrors
	require.True(t, errors.As(Struct(outfit{Garment: "tights"}), &failures))
	require.Equal(t, "caped", failures[0].Tag)
}

package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyatlas/studyatlas/pkg/api"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Chevening Scholarship", "chevening-scholarship"},
		{"DAAD EPOS 2026", "daad-epos-2026"},
		{"  Study in the U.K.!  ", "study-in-the-u-k"},
		{"Ça va? Très bien", "ça-va-très-bien"},
		{"---", ""},
		{"", ""},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "title %q", tt.title)
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	assert.Equal(t, Slugify("Fulbright Program"), Slugify("Fulbright Program"))
}

func TestScholarshipValidation(t *testing.T) {
	valid := &api.Scholarship{
		Title:       "Chevening",
		Overview:    "o",
		Description: "d",
		Country:     "UK",
	}
	require.NoError(t, Scholarship(valid))

	err := Scholarship(&api.Scholarship{Country: "UK"})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrInvalid)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Error(), "title is required")
	assert.Contains(t, verr.Error(), "overview is required")
	assert.NotContains(t, verr.Error(), "country")
}

func TestWhitespaceOnlyFieldsRejected(t *testing.T) {
	err := Country(&api.Country{Name: "   ", Overview: "o", Description: "d"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestMenuItemValidatesChildren(t *testing.T) {
	require.NoError(t, MenuItem(&api.MenuItem{
		Title:    "Destinations",
		URL:      "/destinations",
		Children: []api.MenuChild{{Title: "UK", URL: "/countries/uk"}},
	}))

	err := MenuItem(&api.MenuItem{
		Title:    "Destinations",
		URL:      "/destinations",
		Children: []api.MenuChild{{Title: "UK"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "children[0].url is required")
}

func TestActiveUserPasswordOptionalForGoogleAccounts(t *testing.T) {
	require.NoError(t, ActiveUser(&api.ActiveUser{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		GoogleID: "google-sub-1",
	}))

	err := ActiveUser(&api.ActiveUser{FullName: "Jane Doe", Email: "jane@example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrInvalid)
}

func TestCommentValidation(t *testing.T) {
	require.NoError(t, Comment(&api.Comment{UserID: 1, ArticleID: 2, Content: "great read"}))

	err := Comment(&api.Comment{Content: "orphaned"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "articleId must be positive")
	assert.Contains(t, err.Error(), "userId must be positive")
}

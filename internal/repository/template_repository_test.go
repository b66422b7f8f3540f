package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimensions(t *testing.T) {
	def := models.Dimensions{Width: 1080, Height: 1080}

	tests := []struct {
		name string
		raw  string
		want models.Dimensions
	}{
		{name: "absent", raw: "", want: def},
		{name: "null", raw: "null", want: def},
		{name: "numbers", raw: `{"width": 1200, "height": 675}`, want: models.Dimensions{Width: 1200, Height: 675}},
		{name: "numeric strings", raw: `{"width": "1080", "height": "1920"}`, want: models.Dimensions{Width: 1080, Height: 1920}},
		{name: "missing height", raw: `{"width": 1200}`, want: def},
		{name: "not a number", raw: `{"width": "wide", "height": 10}`, want: def},
		{name: "non positive", raw: `{"width": 0, "height": 10}`, want: def},
		{name: "malformed", raw: `{"width":`, want: def},
		{name: "array", raw: `[1080, 1080]`, want: def},
		{name: "too large", raw: `{"width": 1e300, "height": 10}`, want: def},
		{name: "too large string", raw: `{"width": "9999999999", "height": 10}`, want: def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDimensions([]byte(tt.raw)))
		})
	}
}

func TestTemplateRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTemplateRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, preview_image, dimensions, category, platforms FROM templates`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "preview_image", "dimensions", "category", "platforms"}).
			AddRow("t1", "Square", "https://img", []byte(`{"width":1080,"height":1080}`), "post", "{instagram}").
			AddRow("t2", "Broken", nil, nil, "story", "{}"))

	templates, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 2)

	assert.Equal(t, "Square", templates[0].Name)
	assert.Equal(t, []models.Platform{models.PlatformInstagram}, templates[0].Platforms)
	assert.Equal(t, models.Dimensions{Width: 1080, Height: 1080}, templates[1].Dimensions)
	assert.Equal(t, models.TemplateCategoryStory, templates[1].Category)
	assert.Equal(t, "", templates[1].PreviewImage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateRepository_Upsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTemplateRepository(db)
	tmpl := models.DefaultTemplates()[0]

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO templates`)).
		WithArgs(tmpl.ID, tmpl.Name, tmpl.PreviewImage, []byte(`{"width":1080,"height":1080}`), "post", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Upsert(context.Background(), tmpl))
	assert.NoError(t, mock.ExpectationsWereMet())
}

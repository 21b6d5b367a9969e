package crud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

func (n note) Key() string { return n.ID }

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("wrapped: %w", store.ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("disk full")))
}

func TestMerge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	notes := store.NewCollection[note](store.NewMemoryBackend(), "notes")
	require.NoError(t, notes.Insert(context.Background(), note{ID: "a", Text: "hello", Pages: 2}))

	r := gin.New()
	r.PUT("/notes/:id", Merge(notes, "Note", func(n *note) error {
		if n.Pages < 0 {
			return errors.New("pages must not be negative")
		}
		return nil
	}))

	send := func(body string) int {
		req := httptest.NewRequest(http.MethodPut, "/notes/a", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send(`{"id":"b","pages":5}`))
	got, err := notes.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, note{ID: "a", Text: "hello", Pages: 5}, got)

	assert.Equal(t, http.StatusOK, send(`{"ID":"c","Id":"d","pages":5}`))
	got, err = notes.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	assert.Equal(t, http.StatusBadRequest, send(`{"pages":-1}`))
	assert.Equal(t, http.StatusBadRequest, send(`[]`))
	assert.Equal(t, http.StatusBadRequest, send(`{"pages":"many"}`))

	got, err = notes.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Pages)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "heritage-tote", Slugify("Heritage Tote"))
	assert.Equal(t, "inside-the-workshop", Slugify("  Inside the Workshop! "))
	assert.Equal(t, "n-1-clutch", Slugify("N°1 -- Clutch"))
}

// Package crud holds the read/replace/write handlers shared by every admin
// collection. A handler reads the whole collection, finds the record by id,
// mutates it and writes the whole collection back.
package crud

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/store"
)

// StatusFor maps a store error to the only two failures admin CRUD reports.
func StatusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Fail writes the JSON error body for err.
func Fail(c *gin.Context, noun string, err error) {
	status := StatusFor(err)
	if status == http.StatusNotFound {
		c.JSON(status, gin.H{"error": noun + " not found"})
		return
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": "Failed to access " + noun})
}

func List[T store.Record](col *store.Collection[T], noun string) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := col.All(c.Request.Context())
		if err != nil {
			Fail(c, noun, err)
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

func Get[T store.Record](col *store.Collection[T], noun string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := col.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			Fail(c, noun, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// Merge applies the JSON body as a partial update onto the stored record.
// Fields absent from the body are kept and the id never changes. check, if
// set, runs after the merge; its error rejects the update with 400.
func Merge[T store.Record](col *store.Collection[T], noun string, check func(*T) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}
		patch, err := withoutID(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}

		updated, err := col.Update(c.Request.Context(), c.Param("id"), func(rec *T) error {
			if err := json.Unmarshal(patch, rec); err != nil {
				return &patchError{msg: "Invalid field types in body"}
			}
			if check != nil {
				if err := check(rec); err != nil {
					return &patchError{msg: err.Error()}
				}
			}
			return nil
		})
		var perr *patchError
		if errors.As(err, &perr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": perr.msg})
			return
		}
		if err != nil {
			Fail(c, noun, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func Delete[T store.Record](col *store.Collection[T], noun string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := col.Delete(c.Request.Context(), c.Param("id")); err != nil {
			Fail(c, noun, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": noun + " deleted successfully"})
	}
}

type patchError struct{ msg string }

func (e *patchError) Error() string { return e.msg }

func withoutID(body []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	// encoding/json matches keys case-insensitively, so "ID" would land on the id too.
	for k := range fields {
		if strings.EqualFold(k, "id") {
			delete(fields, k)
		}
	}
	return json.Marshal(fields)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and joins its words with hyphens.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

package blogcontroller

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
)

// GetPosts lists posts newest first. Optional filter: tag.
func GetPosts(posts *store.Collection[models.BlogPost]) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := posts.All(c.Request.Context())
		if err != nil {
			crud.Fail(c, "Post", err)
			return
		}

		tag := strings.ToLower(strings.TrimSpace(c.Query("tag")))
		out := make([]models.BlogPost, 0, len(all))
		for _, p := range all {
			if tag == "" || hasTag(p, tag) {
				out = append(out, p)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		})
		c.JSON(http.StatusOK, out)
	}
}

func GetPost(posts *store.Collection[models.BlogPost]) gin.HandlerFunc {
	return crud.Get(posts, "Post")
}

func CreatePost(posts *store.Collection[models.BlogPost]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var post models.BlogPost
		if err := c.ShouldBindJSON(&post); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}
		if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
			return
		}

		ctx := c.Request.Context()
		all, err := posts.All(ctx)
		if err != nil {
			crud.Fail(c, "Post", err)
			return
		}

		post.ID = 1
		for _, p := range all {
			if p.ID >= post.ID {
				post.ID = p.ID + 1
			}
		}
		if post.Slug == "" {
			post.Slug = crud.Slugify(post.Title)
		}
		if post.PublishedAt.IsZero() {
			post.PublishedAt = time.Now().UTC()
		}

		if err := posts.ReplaceAll(ctx, append(all, post)); err != nil {
			crud.Fail(c, "Post", err)
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

func UpdatePost(posts *store.Collection[models.BlogPost]) gin.HandlerFunc {
	return crud.Merge(posts, "Post", nil)
}

func DeletePost(posts *store.Collection[models.BlogPost]) gin.HandlerFunc {
	return crud.Delete(posts, "Post")
}

func hasTag(p models.BlogPost, tag string) bool {
	for _, t := range p.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

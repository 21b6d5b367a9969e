// Package seed holds the launch catalog and journal posts loaded by the
// one-time migrate endpoint.
package seed

import (
	"time"

	"github.com/maison-sac/storefront-api/models"
)

var launch = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

func Products() []models.Product {
	return []models.Product{
		{
			ID: 1, Name: "Heritage Tote", Slug: "heritage-tote",
			Description: "Full-grain calfskin tote with hand-stitched handles and a suede-lined interior.",
			Price:       2450, Category: "totes",
			Images:   []string{"/images/products/heritage-tote-1.jpg", "/images/products/heritage-tote-2.jpg"},
			Sizes:    []string{"Medium", "Large"},
			Colors:   []string{"Cognac", "Noir"},
			Material: "Calfskin", InStock: true, Featured: true,
			CreatedAt: launch, UpdatedAt: launch,
		},
		{
			ID: 2, Name: "Soirée Clutch", Slug: "soiree-clutch",
			Description: "Structured evening clutch in satin with a gilded clasp.",
			Price:       1180, Category: "clutches",
			Images:   []string{"/images/products/soiree-clutch-1.jpg"},
			Sizes:    []string{"One Size"},
			Colors:   []string{"Champagne", "Emerald"},
			Material: "Silk satin", InStock: true, Featured: true,
			CreatedAt: launch, UpdatedAt: launch,
		},
		{
			ID: 3, Name: "Atelier Crossbody", Slug: "atelier-crossbody",
			Description: "Compact crossbody with an adjustable chain strap and two interior pockets.",
			Price:       1690, Category: "crossbody",
			Images:   []string{"/images/products/atelier-crossbody-1.jpg"},
			Sizes:    []string{"Small", "Medium"},
			Colors:   []string{"Bordeaux", "Taupe", "Noir"},
			Material: "Pebbled leather", InStock: true,
			CreatedAt: launch, UpdatedAt: launch,
		},
		{
			ID: 4, Name: "Voyager Weekender", Slug: "voyager-weekender",
			Description: "Generous travel bag with brass hardware and a detachable shoulder strap.",
			Price:       3850, Category: "travel",
			Images:   []string{"/images/products/voyager-weekender-1.jpg"},
			Sizes:    []string{"Large"},
			Colors:   []string{"Tan"},
			Material: "Vegetable-tanned leather", InStock: true, Featured: true,
			CreatedAt: launch, UpdatedAt: launch,
		},
		{
			ID: 5, Name: "Petite Bucket", Slug: "petite-bucket",
			Description: "Drawstring bucket bag in woven leather.",
			Price:       1320, Category: "shoulder",
			Images:   []string{"/images/products/petite-bucket-1.jpg"},
			Sizes:    []string{"Small"},
			Colors:   []string{"Ivory", "Caramel"},
			Material: "Woven lambskin", InStock: false,
			CreatedAt: launch, UpdatedAt: launch,
		},
	}
}

func BlogPosts() []models.BlogPost {
	return []models.BlogPost{
		{
			ID: 1, Title: "Caring for Fine Leather", Slug: "caring-for-fine-leather",
			Excerpt: "Simple habits that keep a leather bag supple for decades.",
			Content: "Store your bag stuffed and upright, away from direct sunlight. Condition twice a year with a neutral balm and wipe spills immediately with a dry cloth.",
			Author:  "The Atelier", Image: "/images/blog/leather-care.jpg",
			Tags:        []string{"care", "leather"},
			PublishedAt: launch,
		},
		{
			ID: 2, Title: "Inside the Workshop", Slug: "inside-the-workshop",
			Excerpt: "From pattern to final stitch, how a Heritage Tote is made.",
			Content: "Each tote begins as a paper pattern, is cut by hand from a single hide and takes roughly eighteen hours to assemble.",
			Author:  "The Atelier", Image: "/images/blog/workshop.jpg",
			Tags:        []string{"craft"},
			PublishedAt: launch.AddDate(0, 0, 14),
		},
		{
			ID: 3, Title: "Commissioning a Custom Bag", Slug: "commissioning-a-custom-bag",
			Excerpt: "What to expect when you ask us to make something just for you.",
			Content: "Tell us the shape, size and leather you have in mind. We reply with sketches and a quote within a week, and most commissions ship within six weeks.",
			Author:  "The Atelier", Image: "/images/blog/custom.jpg",
			Tags:        []string{"custom"},
			PublishedAt: launch.AddDate(0, 1, 0),
		},
	}
}

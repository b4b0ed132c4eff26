package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"log"
	"time"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Route is one sitemap entry before rendering.
type Route struct {
	URL        string
	ChangeFreq string
	Priority   string
	LastMod    string
}

// StaticRoutes lists the storefront pages that always exist.
var StaticRoutes = []Route{
	{URL: "/", ChangeFreq: "daily", Priority: "1.0"},
	{URL: "/products", ChangeFreq: "daily", Priority: "0.9"},
	{URL: "/themes", ChangeFreq: "weekly", Priority: "0.8"},
	{URL: "/customizer", ChangeFreq: "monthly", Priority: "0.7"},
	{URL: "/custom-mobile", ChangeFreq: "monthly", Priority: "0.7"},
	{URL: "/login", ChangeFreq: "monthly", Priority: "0.5"},
	{URL: "/privacy-policy", ChangeFreq: "monthly", Priority: "0.3"},
	{URL: "/terms-conditions", ChangeFreq: "monthly", Priority: "0.3"},
	{URL: "/returns-refunds", ChangeFreq: "monthly", Priority: "0.3"},
	{URL: "/shipping-policy", ChangeFreq: "monthly", Priority: "0.3"},
	{URL: "/track-order", ChangeFreq: "monthly", Priority: "0.4"},
}

// Catalog is the slice of the catalog service the generator reads.
type Catalog interface {
	ListProducts(ctx context.Context, limit, offset int) ([]types.Product, error)
	ListCollections(ctx context.Context) []types.Collection
}

// Generator builds the sitemap XML for the storefront. A catalog error
// degrades to a static-routes-only sitemap instead of failing the run.
type Generator struct {
	siteURL string
	catalog Catalog
}

func NewGenerator(siteURL string, catalog Catalog) *Generator {
	return &Generator{
		siteURL: siteURL,
		catalog: catalog,
	}
}

// Routes assembles static plus dynamic routes.
func (g *Generator) Routes(ctx context.Context) []Route {
	routes := make([]Route, len(StaticRoutes))
	copy(routes, StaticRoutes)

	if g.catalog == nil {
		return routes
	}

	products, err := g.catalog.ListProducts(ctx, 2000, 0)
	if err != nil {
		log.Printf("Sitemap: products fetch error, static routes only: %v", err)
		return routes
	}
	log.Printf("Sitemap: found %d products", len(products))
	for _, product := range products {
		routes = append(routes, Route{
			URL:        "/products/" + product.ID,
			ChangeFreq: "weekly",
			Priority:   "0.8",
			LastMod:    lastMod(product.UpdatedAt),
		})
	}

	collections := g.catalog.ListCollections(ctx)
	log.Printf("Sitemap: found %d collections", len(collections))
	for _, collection := range collections {
		routes = append(routes, Route{
			URL:        "/collection/" + collection.Handle,
			ChangeFreq: "weekly",
			Priority:   "0.8",
			LastMod:    lastMod(collection.UpdatedAt),
		})
	}

	return routes
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
	LastMod    string `xml:"lastmod,omitempty"`
}

// Generate renders the sitemap XML document.
func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	return g.Render(g.Routes(ctx))
}

// Render turns an already assembled route list into XML.
func (g *Generator) Render(routes []Route) ([]byte, error) {
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]urlEntry, len(routes)),
	}
	for i, route := range routes {
		set.URLs[i] = urlEntry{
			Loc:        g.siteURL + route.URL,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
			LastMod:    route.LastMod,
		}
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap marshal error: %v", err)
	}
	return append([]byte(xml.Header), body...), nil
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/catalog"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/httpx"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

type CatalogHandler struct {
	catalog *catalog.CatalogService
}

func NewCatalogHandler(svc *catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	products, err := h.catalog.ListProducts(c.Context(), limit, offset)
	if err != nil {
		return httpx.InternalServerError(c, "Failed to list products", nil)
	}
	return httpx.Success(c, "Products retrieved", products)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return httpx.NotFound(c, err.Error())
	}
	return httpx.Success(c, "Product retrieved", product)
}

func (h *CatalogHandler) ListCollections(c *fiber.Ctx) error {
	return httpx.Success(c, "Collections retrieved", h.catalog.ListCollections(c.Context()))
}

func (h *CatalogHandler) GetCollection(c *fiber.Ctx) error {
	collection, err := h.catalog.GetCollection(c.Context(), c.Params("handle"))
	if err != nil {
		return httpx.NotFound(c, "Collection not found")
	}
	return httpx.Success(c, "Collection retrieved", collection)
}

// SaveCollection upserts a theme collection (admin).
func (h *CatalogHandler) SaveCollection(c *fiber.Ctx) error {
	var req SaveCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "Invalid request body", nil)
	}

	saved, err := h.catalog.SaveCollection(c.Context(), &types.Collection{
		Handle:      req.Handle,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return httpx.BadRequest(c, err.Error(), nil)
	}
	return httpx.Success(c, "Collection saved", saved)
}

// DeleteCollection removes a theme collection (admin).
func (h *CatalogHandler) DeleteCollection(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCollection(c.Context(), c.Params("handle")); err != nil {
		return httpx.NotFound(c, err.Error())
	}
	return httpx.Success(c, "Collection deleted", nil)
}

func (h *CatalogHandler) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.catalog.ListCompanies(c.Context())
	if err != nil {
		return httpx.InternalServerError(c, "Failed to list companies", nil)
	}
	return httpx.Success(c, "Companies retrieved", companies)
}

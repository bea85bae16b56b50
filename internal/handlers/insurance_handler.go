package handlers

import (
	"net/http"

	"quote-service/internal/models"
	"quote-service/internal/services"
	utils "quote-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

type InsuranceHandler struct {
	insuranceService services.IInsuranceTypeService
	middleware       *Middleware
}

func NewInsuranceHandler(insuranceService services.IInsuranceTypeService, middleware *Middleware) *InsuranceHandler {
	return &InsuranceHandler{insuranceService: insuranceService, middleware: middleware}
}

func (h *InsuranceHandler) Register(app *fiber.App) {
	insuranceGr := app.Group("/api/v1/insurance")
	insuranceGr.Get("/details", h.GetProductDetails)

	auth, company := h.middleware.RequireAuth(), h.middleware.RequireCompany()
	insuranceGr.Get("/", auth, company, h.GetProducts)
	insuranceGr.Put("/", auth, company, h.UpdateProducts)
	insuranceGr.Post("/init", auth, company, h.InitDefaults)
}

func (h *InsuranceHandler) GetProducts(c fiber.Ctx) error {
	products, err := h.insuranceService.GetProducts(c.Context(), c.Get(HeaderCompanyID))
	if err != nil {
		return respondError(c, "FETCH_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"insuranceTypes": products,
	}))
}

func (h *InsuranceHandler) UpdateProducts(c fiber.Ctx) error {
	var req models.UpdateInsuranceTypesRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}

	products, err := h.insuranceService.UpdateProducts(c.Context(), c.Get(HeaderCompanyID), req.InsuranceTypes)
	if err != nil {
		return respondError(c, "UPDATE_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"insuranceTypes": products,
	}))
}

func (h *InsuranceHandler) InitDefaults(c fiber.Ctx) error {
	products, err := h.insuranceService.InitDefaults(c.Context(), c.Get(HeaderCompanyID))
	if err != nil {
		return respondError(c, "INIT_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"insuranceTypes": products,
	}))
}

func (h *InsuranceHandler) GetProductDetails(c fiber.Ctx) error {
	company, product, err := h.insuranceService.GetProductDetails(c.Context(), c.Query("companyId"), c.Query("type"))
	if err != nil {
		return respondError(c, "FETCH_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"companyId":     company.ID,
		"companyName":   company.Name,
		"logo":          company.LogoURL,
		"insuranceType": product,
	}))
}

package handlers

import (
	"io"
	"net/http"

	"quote-service/internal/models"
	"quote-service/internal/services"
	utils "quote-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

const logoFormField = "logo"

type CompanyHandler struct {
	companyService services.ICompanyService
	middleware     *Middleware
}

func NewCompanyHandler(companyService services.ICompanyService, middleware *Middleware) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, middleware: middleware}
}

func (h *CompanyHandler) Register(app *fiber.App) {
	companyGr := app.Group("/api/v1/companies")
	companyGr.Get("/", h.ListCompanies)

	// "me" routes must be registered before "/:id"
	auth, company := h.middleware.RequireAuth(), h.middleware.RequireCompany()
	companyGr.Get("/me", auth, company, h.GetMyCompany)
	companyGr.Put("/me", auth, company, h.UpdateMyCompany)
	companyGr.Post("/me/logo", auth, company, h.UploadLogo)

	companyGr.Get("/:id", h.GetCompany)
}

func (h *CompanyHandler) ListCompanies(c fiber.Ctx) error {
	companies, err := h.companyService.ListCompanies(c.Context(), c.Query("type"))
	if err != nil {
		return respondError(c, "FETCH_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(companies))
}

func (h *CompanyHandler) GetCompany(c fiber.Ctx) error {
	company, err := h.companyService.GetCompany(c.Context(), c.Params("id"), c.Query("type"))
	if err != nil {
		return respondError(c, "FETCH_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(company))
}

func (h *CompanyHandler) GetMyCompany(c fiber.Ctx) error {
	company, err := h.companyService.GetCompany(c.Context(), c.Get(HeaderCompanyID), "")
	if err != nil {
		return respondError(c, "FETCH_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(company))
}

func (h *CompanyHandler) UpdateMyCompany(c fiber.Ctx) error {
	var req models.UpdateCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}

	company, err := h.companyService.UpdateProfile(c.Context(), c.Get(HeaderCompanyID), req)
	if err != nil {
		return respondError(c, "UPDATE_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(company))
}

func (h *CompanyHandler) UploadLogo(c fiber.Ctx) error {
	header, err := c.FormFile(logoFormField)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "multipart field \"logo\" is required"))
	}

	file, err := header.Open()
	if err != nil {
		return respondError(c, "UPLOAD_FAILED", err)
	}
	defer file.Close()

	// one byte past the limit is enough for the service to reject it
	data, err := io.ReadAll(io.LimitReader(file, bodyLimit+1))
	if err != nil {
		return respondError(c, "UPLOAD_FAILED", err)
	}

	company, err := h.companyService.UploadLogo(c.Context(), c.Get(HeaderCompanyID), header.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		return respondError(c, "UPLOAD_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(company))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/backlink-outreach/internal/dto"
	"github.com/octobees/backlink-outreach/internal/service"
)

// CleanHandler normalizes raw scraped contacts on demand.
type CleanHandler struct {
	cleaner *service.ContactCleaner
}

// NewCleanHandler constructs the handler.
func NewCleanHandler(cleaner *service.ContactCleaner) *CleanHandler {
	return &CleanHandler{cleaner: cleaner}
}

// Clean handles POST /clean-contacts.
func (h *CleanHandler) Clean(c echo.Context) error {
	var req dto.CleanContactsRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if len(req.Emails) == 0 && len(req.Phones) == 0 && len(req.SocialLinks) == 0 && len(req.Addresses) == 0 {
		return Error(c, http.StatusBadRequest, "at least one contact field is required")
	}

	cleaned := h.cleaner.Clean(service.RawContacts{
		Emails:      req.Emails,
		Phones:      req.Phones,
		SocialLinks: req.SocialLinks,
		Addresses:   req.Addresses,
	})
	return Success(c, http.StatusOK, "contacts cleaned", cleaned)
}

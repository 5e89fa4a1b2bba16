// Package validationapi exposes barcode checks, ad-hoc chains and profiles over HTTP.
package validationapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-assay/api"
	"github.com/lithictech/go-assay/barcode"
	"github.com/lithictech/go-assay/catalog"
	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/compose"
	"github.com/lithictech/go-assay/profile"
	"github.com/lithictech/go-assay/validator"
)

// Error codes returned by the endpoints, in addition to those from package api.
const (
	CodeInvalidRequest         = "invalid_request"
	CodeUnknownSymbology       = "unknown_symbology"
	CodeInvalidValidatorConfig = "invalid_validator_config"
	CodeUnknownProfile         = "unknown_profile"
)

// SymbologiesCacheControl is sent with the symbology list, which only changes on deploy.
const SymbologiesCacheControl = "public, max-age=3600"

type Config struct {
	// Symbologies defaults to barcode.Default().
	Symbologies *barcode.Registry
	// Validators resolves the specs of ad-hoc chains.
	// Defaults to a catalog over Symbologies.
	Validators check.Resolver
	// Profiles defaults to profile.Empty().
	Profiles *profile.Set
}

type handlers struct {
	symbologies *barcode.Registry
	validators  check.Resolver
	profiles    *profile.Set
	requests    *validator.Registry
}

// Register adds the /v1 routes to e.
func Register(e *echo.Echo, cfg Config) {
	h := &handlers{
		symbologies: cfg.Symbologies,
		validators:  cfg.Validators,
		profiles:    cfg.Profiles,
	}
	if h.symbologies == nil {
		h.symbologies = barcode.Default()
	}
	if h.validators == nil {
		h.validators = catalog.New(catalog.Options{Symbologies: h.symbologies})
	}
	if h.profiles == nil {
		h.profiles = profile.Empty()
	}
	h.requests = validator.NewRegistry(h.symbologies)

	v1 := e.Group("/v1")
	v1.GET("/symbologies", h.listSymbologies, api.WithCacheControl(true, SymbologiesCacheControl))
	v1.POST("/barcodes/check", h.checkBarcode)
	v1.POST("/chains/check", h.checkChain)
	v1.GET("/profiles", h.listProfiles)
	v1.POST("/profiles/:name/check", h.checkProfile)
}

type symbologyDTO struct {
	Name              string `json:"name"`
	Lengths           string `json:"lengths"`
	Checksum          string `json:"checksum,omitempty"`
	ChecksumByDefault bool   `json:"checksum_by_default"`
}

func (h *handlers) listSymbologies(c echo.Context) error {
	syms := h.symbologies.Symbologies()
	items := make([]symbologyDTO, 0, len(syms))
	for _, s := range syms {
		dto := symbologyDTO{Name: s.Name, Lengths: s.Lengths.String(), ChecksumByDefault: s.ChecksumByDefault}
		if s.HasChecksum() {
			dto.Checksum = s.Checksum.Name
		}
		items = append(items, dto)
	}
	api.SetCacheControl(c)
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

type barcodeCheckRequest struct {
	// Empty means barcode.DefaultSymbology.
	Symbology string      `json:"symbology" validate:"symbology=opt"`
	Value     interface{} `json:"value"`
	Checksum  *bool       `json:"checksum"`
}

type barcodeCheckResponse struct {
	Symbology string        `json:"symbology"`
	Checksum  bool          `json:"checksum"`
	Outcome   check.Outcome `json:"outcome"`
}

func (h *handlers) checkBarcode(c echo.Context) error {
	var req barcodeCheckRequest
	if err := h.bind(c, &req); err != nil {
		var fields validator.ErrorMap
		if errors.As(err, &fields) && hasError(fields["Symbology"], validator.ErrUnknownSymbology) {
			return api.NewBadRequest(CodeUnknownSymbology, err).WithDetail("fields", fields.Messages())
		}
		return err
	}
	bv, err := barcode.New(barcode.Options{
		Symbology: req.Symbology,
		Registry:  h.symbologies,
		Checksum:  barcode.ChecksumModeOf(req.Checksum),
	})
	if err != nil {
		if errors.Is(err, barcode.ErrUnknownSymbology) {
			return api.NewBadRequest(CodeUnknownSymbology, err)
		}
		return err
	}
	outcome := bv.Validate(req.Value, nil)
	api.AddLogAttrs(c, "symbology", bv.Symbology().Name, "check_valid", outcome.IsValid())
	return c.JSON(http.StatusOK, barcodeCheckResponse{
		Symbology: bv.Symbology().Name,
		Checksum:  bv.UsesChecksum(),
		Outcome:   outcome,
	})
}

type chainCheckRequest struct {
	Validators []check.Spec           `json:"validators" validate:"min=1"`
	Value      interface{}            `json:"value"`
	Context    map[string]interface{} `json:"context"`
}

type outcomeResponse struct {
	Profile string        `json:"profile,omitempty"`
	Outcome check.Outcome `json:"outcome"`
}

func (h *handlers) checkChain(c echo.Context) error {
	var req chainCheckRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	chain, err := compose.BuildChain(h.validators, req.Validators)
	if err != nil {
		return api.NewBadRequest(CodeInvalidValidatorConfig, err)
	}
	outcome := chain.Validate(req.Value, req.Context)
	api.AddLogAttrs(c, "validator_count", chain.Len(), "check_valid", outcome.IsValid())
	return c.JSON(http.StatusOK, outcomeResponse{Outcome: outcome})
}

type profileDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Validators  int    `json:"validators"`
}

func (h *handlers) listProfiles(c echo.Context) error {
	profiles := h.profiles.Profiles()
	items := make([]profileDTO, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, profileDTO{Name: p.Name, Description: p.Description, Validators: len(p.Specs)})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

type profileCheckRequest struct {
	Value   interface{}            `json:"value"`
	Context map[string]interface{} `json:"context"`
}

func (h *handlers) checkProfile(c echo.Context) error {
	p, err := h.profiles.Get(c.Param("name"))
	if err != nil {
		return api.NewError(http.StatusNotFound, CodeUnknownProfile, err).WithMessage("%s", err.Error())
	}
	var req profileCheckRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	outcome := p.Validate(req.Value, req.Context)
	api.AddLogAttrs(c, "profile", p.Name, "check_valid", outcome.IsValid())
	return c.JSON(http.StatusOK, outcomeResponse{Profile: p.Name, Outcome: outcome})
}

// bind decodes the request body into req and validates its `validate` tags.
func (h *handlers) bind(c echo.Context, req interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return api.NewBadRequest(CodeInvalidRequest, err)
	}
	if err := h.requests.Validate(req); err != nil {
		e := api.NewBadRequest(CodeInvalidRequest, err)
		var fields validator.ErrorMap
		if errors.As(err, &fields) {
			e = e.WithDetail("fields", fields.Messages())
		}
		return e
	}
	return nil
}

func hasError(errs validator.ErrorArray, target error) bool {
	for _, e := range errs {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

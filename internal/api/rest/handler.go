package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-token-prober/internal/api/rest/dto"
	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/session"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetContract classifies a contract
	// GET /api/v1/contracts/:address
	GetContract(c *gin.Context)

	// DiscoverTokens samples minted tokens and finds one unminted token id
	// GET /api/v1/contracts/:address/discovery
	DiscoverTokens(c *gin.Context)

	// GetToken checks whether a single token id exists
	// GET /api/v1/contracts/:address/tokens/:token_id
	GetToken(c *gin.Context)

	// GetTokenMetadata reads the token URI and resolves its metadata document
	// GET /api/v1/contracts/:address/tokens/:token_id/metadata
	GetTokenMetadata(c *gin.Context)

	// ResolveMetadata resolves a metadata URI without contract context
	// GET /api/v1/metadata?uri=<uri>
	ResolveMetadata(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface.
// Every request opens its own session, nothing is cached between requests.
type handler struct {
	service session.Service
}

// NewHandler creates a new REST API handler over the session service
func NewHandler(service session.Service) Handler {
	return &handler{
		service: service,
	}
}

// openSession classifies the :address contract, writing the error response on failure
func (h *handler) openSession(c *gin.Context) (*session.Session, bool) {
	address := c.Param("address")
	if address == "" {
		respondBadRequest(c, "Contract address is required")
		return nil, false
	}

	s, err := h.service.Open(c.Request.Context(), address)
	if err != nil {
		respondDomainError(c, err, "Failed to classify contract")
		return nil, false
	}

	return s, true
}

func (h *handler) GetContract(c *gin.Context) {
	s, ok := h.openSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewContractResponse(s))
}

func (h *handler) DiscoverTokens(c *gin.Context) {
	s, ok := h.openSession(c)
	if !ok {
		return
	}

	result, err := h.service.Discover(c.Request.Context(), s)
	if err != nil {
		respondDomainError(c, err, "Failed to discover tokens")
		return
	}

	c.JSON(http.StatusOK, dto.NewDiscoveryResponse(s, result))
}

func (h *handler) GetToken(c *gin.Context) {
	tokenID, err := ParseTokenIDParam(c)
	if err != nil {
		respondBadRequest(c, "Invalid token ID", err.Error())
		return
	}

	s, ok := h.openSession(c)
	if !ok {
		return
	}

	result, err := h.service.CheckToken(c.Request.Context(), s, tokenID)
	if err != nil {
		respondDomainError(c, err, "Failed to check token")
		return
	}

	c.JSON(http.StatusOK, dto.NewTokenResponse(s, result))
}

func (h *handler) GetTokenMetadata(c *gin.Context) {
	tokenID, err := ParseTokenIDParam(c)
	if err != nil {
		respondBadRequest(c, "Invalid token ID", err.Error())
		return
	}

	s, ok := h.openSession(c)
	if !ok {
		return
	}

	doc, err := h.service.TokenMetadata(c.Request.Context(), s, tokenID)
	if err != nil {
		respondDomainError(c, err, "Failed to resolve token metadata")
		return
	}

	h.respondMetadata(c, doc)
}

func (h *handler) ResolveMetadata(c *gin.Context) {
	queryParams, err := ParseResolveMetadataQuery(c)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", err.Error())
		return
	}

	doc, err := h.service.ResolveURI(c.Request.Context(), queryParams.URI)
	if err != nil {
		respondDomainError(c, err, "Failed to resolve metadata")
		return
	}

	h.respondMetadata(c, doc)
}

func (h *handler) respondMetadata(c *gin.Context, doc *domain.MetadataDocument) {
	response, err := dto.NewMetadataResponse(doc)
	if err != nil {
		respondInternalError(c, err, "Failed to encode metadata")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-token-prober-api",
	})
}

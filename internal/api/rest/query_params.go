package rest

import (
	"math/big"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-token-prober/internal/domain"
)

// ResolveMetadataQueryParams holds query parameters for GET /metadata
type ResolveMetadataQueryParams struct {
	URI string `form:"uri" binding:"required"`
}

// ParseResolveMetadataQuery parses query parameters for GET /metadata
func ParseResolveMetadataQuery(c *gin.Context) (*ResolveMetadataQueryParams, error) {
	var params ResolveMetadataQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParseTokenIDParam parses the :token_id path parameter, decimal or 0x-prefixed hex
func ParseTokenIDParam(c *gin.Context) (*big.Int, error) {
	return domain.ParseTokenID(c.Param("token_id"))
}

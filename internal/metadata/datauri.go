package metadata

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/feral-file/ff-token-prober/internal/domain"
)

// decodeDataURI returns the payload of an RFC 2397 data URI:
// data:[<mediatype>][;base64],<data>
func decodeDataURI(uri string) ([]byte, error) {
	if len(uri) < len(domain.SCHEME_DATA) || !strings.EqualFold(uri[:len(domain.SCHEME_DATA)], domain.SCHEME_DATA) {
		return nil, fmt.Errorf("invalid data URI")
	}

	header, data, ok := strings.Cut(uri[len(domain.SCHEME_DATA):], ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URI format")
	}

	if strings.HasSuffix(strings.ToLower(header), ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			// Some contracts emit unpadded payloads
			decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
			if err != nil {
				return nil, fmt.Errorf("failed to decode base64: %w", err)
			}
		}
		return decoded, nil
	}

	decoded, err := url.PathUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape data: %w", err)
	}
	return []byte(decoded), nil
}

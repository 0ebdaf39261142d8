package ethereum

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/feral-file/ff-token-prober/internal/domain"
)

// Surface identifies which fixed ABI a call is made against
type Surface string

const (
	SurfaceERC721  Surface = "erc721"
	SurfaceERC1155 Surface = "erc1155"
)

// SurfaceFor returns the ABI surface used for a classified standard
func SurfaceFor(standard domain.Standard) Surface {
	if standard == domain.StandardERC1155 {
		return SurfaceERC1155
	}
	return SurfaceERC721
}

// Method names of the probed surface
const (
	MethodTokenURI     = "tokenURI"
	MethodOwnerOf      = "ownerOf"
	MethodName         = "name"
	MethodSymbol       = "symbol"
	MethodTotalSupply  = "totalSupply"
	MethodMaxSupply    = "maxSupply"
	MethodMaxSupplyAlt = "MAX_SUPPLY"
	MethodTokenByIndex = "tokenByIndex"
	MethodExists       = "exists"
	MethodURI          = "uri"
	MethodBalanceOf    = "balanceOf"
)

const erc721ABIJSON = `[
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"maxSupply","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"MAX_SUPPLY","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"index","type":"uint256"}],"name":"tokenByIndex","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"exists","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"}
]`

const erc1155ABIJSON = `[
	{"constant":true,"inputs":[{"name":"id","type":"uint256"}],"name":"uri","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"account","type":"address"},{"name":"id","type":"uint256"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}
]`

var surfaces = map[Surface]abi.ABI{
	SurfaceERC721:  mustParseABI(erc721ABIJSON),
	SurfaceERC1155: mustParseABI(erc1155ABIJSON),
}

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("invalid ABI definition: %v", err))
	}
	return parsed
}

// lookupMethod returns the ABI and method for a surface/method pair
func lookupMethod(surface Surface, method string) (abi.ABI, abi.Method, error) {
	contractABI, ok := surfaces[surface]
	if !ok {
		return abi.ABI{}, abi.Method{}, fmt.Errorf("unknown surface: %s", surface)
	}
	m, ok := contractABI.Methods[method]
	if !ok {
		return abi.ABI{}, abi.Method{}, fmt.Errorf("method %s not in %s surface", method, surface)
	}
	return contractABI, m, nil
}

package types

// NodeError is the error body returned by the node REST API
type NodeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *NodeError) IsError() bool {
	return e.Code != "" || e.Message != ""
}

// Page is a paginated list of transactions
type Page struct {
	Data       []*Record  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// TransactionQuery filters a transaction page request
type TransactionQuery struct {
	Address    string
	Group      string // confirmed, unconfirmed or partial
	PageNumber int
	PageSize   int
	Embedded   bool
}

// NetworkProperties is the subset of /network/properties the mapper needs
type NetworkProperties struct {
	Network struct {
		Identifier         string `json:"identifier"`
		EpochAdjustment    string `json:"epochAdjustment"`
		GenerationHashSeed string `json:"generationHashSeed"`
	} `json:"network"`
	Chain struct {
		CurrencyMosaicID string `json:"currencyMosaicId"`
	} `json:"chain"`
}

// FeeMultipliers is the response of /network/fees/transaction
type FeeMultipliers struct {
	AverageFeeMultiplier uint64 `json:"averageFeeMultiplier"`
	MedianFeeMultiplier  uint64 `json:"medianFeeMultiplier"`
	HighestFeeMultiplier uint64 `json:"highestFeeMultiplier"`
	LowestFeeMultiplier  uint64 `json:"lowestFeeMultiplier"`
	MinFeeMultiplier     uint64 `json:"minFeeMultiplier"`
}

// NamespaceInfo is one entry of /namespaces/{id}
type NamespaceInfo struct {
	Namespace struct {
		Alias struct {
			Type     uint8  `json:"type"`
			MosaicID string `json:"mosaicId,omitempty"`
			Address  string `json:"address,omitempty"`
		} `json:"alias"`
	} `json:"namespace"`
}

// Alias types of NamespaceInfo
const (
	AliasNone    uint8 = 0
	AliasMosaic  uint8 = 1
	AliasAddress uint8 = 2
)

// MosaicNames is one entry of POST /namespaces/mosaic/names
type MosaicNames struct {
	MosaicID string   `json:"mosaicId"`
	Names    []string `json:"names"`
}

// MosaicInfo is one entry of POST /mosaics
type MosaicInfo struct {
	Mosaic struct {
		ID           string `json:"id"`
		Supply       string `json:"supply"`
		Divisibility uint8  `json:"divisibility"`
		Flags        uint8  `json:"flags"`
	} `json:"mosaic"`
}

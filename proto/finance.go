package proto

import (
	"github.com/mwquote/tdx/bitstream"
)

// FinanceInfo is the flat fundamental snapshot for one instrument.
//
// Monetary and share-count fields arrive in units of 10,000 (the 万 the
// upstream data vendor uses); the decoder multiplies them out so every field
// here is in raw units. PerShareNetAsset is the exception, transmitted
// unscaled.
type FinanceInfo struct {
	Market              Market
	Code                string
	FloatShares         float64
	Province            uint16
	Industry            uint16
	UpdatedDate         uint32
	IPODate             uint32
	TotalShares         float64
	StateShares         float64
	SponsorLegalShares  float64
	LegalShares         float64
	BShares             float64
	HShares             float64
	EmployeeShares      float64
	TotalAssets         float64
	CurrentAssets       float64
	FixedAssets         float64
	IntangibleAssets    float64
	ShareholderCount    float64
	CurrentLiabilities  float64
	LongTermLiabilities float64
	CapitalReserve      float64
	NetAssets           float64
	MainRevenue         float64
	MainProfit          float64
	Receivables         float64
	OperatingProfit     float64
	InvestmentIncome    float64
	OperatingCashFlow   float64
	TotalCashFlow       float64
	Inventory           float64
	TotalProfit         float64
	ProfitAfterTax      float64
	NetProfit           float64
	UndistributedProfit float64
	PerShareNetAsset    float64
}

// tenThousand converts a value transmitted in 10k units to raw units. This
// scaling is a domain constant of the upstream feed, not decoder guesswork.
const tenThousand = 10000

// DecodeFinance decodes a finance-snapshot response.
func DecodeFinance(r *bitstream.Reader) (FinanceInfo, error) {
	f := newFieldReader(r)
	f.skip(2)
	marketByte := f.uint8()
	code := f.bytes(6)

	var fi FinanceInfo
	fi.FloatShares = f.float32() * tenThousand
	fi.Province = f.uint16()
	fi.Industry = f.uint16()
	fi.UpdatedDate = f.uint32()
	fi.IPODate = f.uint32()
	fi.TotalShares = f.float32() * tenThousand
	fi.StateShares = f.float32() * tenThousand
	fi.SponsorLegalShares = f.float32() * tenThousand
	fi.LegalShares = f.float32() * tenThousand
	fi.BShares = f.float32() * tenThousand
	fi.HShares = f.float32() * tenThousand
	fi.EmployeeShares = f.float32() * tenThousand
	fi.TotalAssets = f.float32() * tenThousand
	fi.CurrentAssets = f.float32() * tenThousand
	fi.FixedAssets = f.float32() * tenThousand
	fi.IntangibleAssets = f.float32() * tenThousand
	fi.ShareholderCount = f.float32() * tenThousand
	fi.CurrentLiabilities = f.float32() * tenThousand
	fi.LongTermLiabilities = f.float32() * tenThousand
	fi.CapitalReserve = f.float32() * tenThousand
	fi.NetAssets = f.float32() * tenThousand
	fi.MainRevenue = f.float32() * tenThousand
	fi.MainProfit = f.float32() * tenThousand
	fi.Receivables = f.float32() * tenThousand
	fi.OperatingProfit = f.float32() * tenThousand
	fi.InvestmentIncome = f.float32() * tenThousand
	fi.OperatingCashFlow = f.float32() * tenThousand
	fi.TotalCashFlow = f.float32() * tenThousand
	fi.Inventory = f.float32() * tenThousand
	fi.TotalProfit = f.float32() * tenThousand
	fi.ProfitAfterTax = f.float32() * tenThousand
	fi.NetProfit = f.float32() * tenThousand
	fi.UndistributedProfit = f.float32() * tenThousand
	fi.PerShareNetAsset = f.float32()
	f.float32() // reserved

	if f.err != nil {
		return FinanceInfo{}, f.err
	}
	market, err := ParseMarket(marketByte)
	if err != nil {
		return FinanceInfo{}, err
	}
	fi.Market = market
	fi.Code = string(code)

	return fi, nil
}

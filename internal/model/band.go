package model

type ExpirationBand string

const (
	ExpirationNone     ExpirationBand = "none"
	ExpirationCritical ExpirationBand = "critical"
	ExpirationWarning  ExpirationBand = "warning"
	ExpirationOK       ExpirationBand = "ok"
)

type StockBand string

const (
	StockLow    StockBand = "low"
	StockMedium StockBand = "medium"
	StockOK     StockBand = "ok"
)

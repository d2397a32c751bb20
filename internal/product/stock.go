package product

// Fixed quantities the stock-status toggle forces. Marking a product out of
// stock zeroes it; restoring it sets the restock quantity, not the previous stock.
const (
	OutOfStockQuantity = 0
	RestockQuantity    = 10
)

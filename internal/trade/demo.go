package trade

import "time"

// Demo data served while the backend is unreachable. Shapes match the real
// responses exactly so screens render identically either way.

func DemoStocks() []StockPrice {
	now := time.Now().UTC().Format(time.RFC3339)
	return []StockPrice{
		{
			StockCode:     "005930",
			StockName:     "Samsung Electronics",
			CurrentPrice:  75000,
			Change:        1500,
			ChangeRate:    2.04,
			Volume:        12500000,
			High:          76000,
			Low:           74000,
			Open:          74500,
			PreviousClose: 73500,
			Timestamp:     now,
		},
		{
			StockCode:     "000660",
			StockName:     "SK Hynix",
			CurrentPrice:  145000,
			Change:        -2000,
			ChangeRate:    -1.36,
			Volume:        3500000,
			High:          147000,
			Low:           143000,
			Open:          146000,
			PreviousClose: 147000,
			Timestamp:     now,
		},
		{
			StockCode:     "035420",
			StockName:     "NAVER",
			CurrentPrice:  185000,
			Change:        3000,
			ChangeRate:    1.65,
			Volume:        1200000,
			High:          186000,
			Low:           183000,
			Open:          183500,
			PreviousClose: 182000,
			Timestamp:     now,
		},
		{
			StockCode:     "035720",
			StockName:     "Kakao",
			CurrentPrice:  52000,
			Change:        -500,
			ChangeRate:    -0.95,
			Volume:        2500000,
			High:          52500,
			Low:           51800,
			Open:          52300,
			PreviousClose: 52500,
			Timestamp:     now,
		},
	}
}

// DemoStock returns the quote for code from the demo board, falling back to
// the first entry for unknown codes.
func DemoStock(code string) StockPrice {
	stocks := DemoStocks()
	for _, s := range stocks {
		if s.StockCode == code {
			return s
		}
	}
	return stocks[0]
}

func DemoPortfolio(userID string) Portfolio {
	if userID == "" {
		userID = "demo-user"
	}
	return Portfolio{
		ID:          "demo-1",
		UserID:      userID,
		CashBalance: 5000000,
		TotalValue:  12500000,
		ReturnRate:  25.0,
		Holdings: []Holding{
			{
				StockCode:    "005930",
				StockName:    "Samsung Electronics",
				Quantity:     100,
				AveragePrice: 60000,
				CurrentPrice: 75000,
				MarketValue:  7500000,
				ProfitLoss:   1500000,
				ReturnRate:   25.0,
			},
			{
				StockCode:    "000660",
				StockName:    "SK Hynix",
				Quantity:     50,
				AveragePrice: 120000,
				CurrentPrice: 135000,
				MarketValue:  6750000,
				ProfitLoss:   750000,
				ReturnRate:   12.5,
			},
		},
	}
}

func DemoOrders(userID string) []Order {
	if userID == "" {
		userID = "demo-user"
	}
	now := time.Now().UTC().Format(time.RFC3339)
	filled := 75000.0
	return []Order{
		{
			ID:             "order-1",
			UserID:         userID,
			StockCode:      "005930",
			StockName:      "Samsung Electronics",
			OrderType:      OrderTypeBuy,
			OrderMethod:    OrderMethodMarket,
			Quantity:       10,
			Price:          75000,
			Status:         StatusFilled,
			FilledQuantity: 10,
			FilledPrice:    &filled,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

func DemoTrades() []Trade {
	now := time.Now().UTC().Format(time.RFC3339)
	return []Trade{
		{
			ID:          "trade-1",
			OrderID:     "order-1",
			StockCode:   "005930",
			StockName:   "Samsung Electronics",
			OrderType:   OrderTypeBuy,
			Quantity:    10,
			Price:       75000,
			TotalAmount: 750000,
			Commission:  750,
			NetAmount:   749250,
			ExecutedAt:  now,
		},
	}
}

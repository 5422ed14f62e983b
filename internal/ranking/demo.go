package ranking

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

const demoEntryCount = 50

var demoNicknames = []string{
	"WhaleKing", "InvestKing", "HoneyBee", "SeaEmperor", "BlueChipLover",
	"ChartMaster", "Dividender", "GrowthHunter", "ValueFinder", "RiskKeeper",
	"GoldenHour", "DiamondHands", "WallStreet", "BrownBear", "RagingBull",
	"Elephant", "Eagle", "Tiger", "Lion", "Wolf",
	"Fox", "Rabbit", "Hamster", "Penguin", "Dolphin",
	"Shark", "Octopus", "Crab", "Shrimp", "Mackerel",
	"Tuna", "Salmon", "Eel", "Squid", "Anchovy",
	"BlueWhale", "Porpoise", "SeaLion", "Seal", "SeaTurtle",
	"Jellyfish", "Coral", "Seaweed", "Clam", "Abalone",
	"Urchin", "Starfish", "SeaCucumber", "SeaSquirt", "Kelp",
}

var demoPortfolioNames = []string{
	"My First Strategy", "Long Term Hold", "Sweet As Honey", "Deep Sea Dive",
	"Safe Harbor", "Technical Play", "Dividend Basket", "Growth Picks",
	"Undervalued Gems", "Diversified Mix", "Concentrated Bets", "Momentum Ride",
	"Value Play", "Growth Engine", "Dividend Machine", "Sector Rotation",
	"Theme Chaser", "ESG Select", "Index Follower", "Active Alpha",
	"Quant Model", "Algo Trader", "Swing Trades", "Day Trades", "Scalp Book",
	"Position Plays", "Long Only", "Short Only", "Long Short", "Market Neutral",
	"Reversal Bets", "Contrarian Calls", "Trend Following", "Mean Reversion",
	"Breakout Hunter", "Channel Trades", "Support Resistance", "Fibonacci Lines",
	"Elliott Waves", "Gann Angles", "Dow Theory", "Candlestick Reads",
	"Chart Patterns", "Bollinger Rider", "RSI Signals", "MACD Cross",
	"Stochastic Play", "CCI Watch", "ADX Strength", "OBV Flow",
}

// DemoRankings fabricates a full 50-entry snapshot: returns start near +30%
// and step down, with jitter, then entries are sorted so rank remains a
// strict gapless ordering by return. Rank 4 is marked as the caller's own.
func DemoRankings() []Entry {
	entries := make([]Entry, demoEntryCount)
	for i := 0; i < demoEntryCount; i++ {
		base := 30 - float64(i)*0.5
		totalReturn := base + (rand.Float64()-0.5)*2
		if totalReturn < 0.1 {
			totalReturn = 0.1
		}
		entries[i] = Entry{
			Nickname:      demoNicknames[i%len(demoNicknames)],
			PortfolioName: demoPortfolioNames[i%len(demoPortfolioNames)],
			TotalReturn:   totalReturn,
			TotalValue:    10000000 + totalReturn*100000,
			RankChange:    rand.Intn(7) - 3,
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TotalReturn > entries[j].TotalReturn
	})
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].PortfolioID = fmt.Sprintf("portfolio-%d", i+1)
		entries[i].IsMyRanking = i+1 == 4
	}
	return entries
}

// DemoResponse pages the fabricated snapshot the way the backend would. Page
// and size outside the snapshot yield an empty or clamped page, never a panic.
func DemoResponse(rankingType string, page, size int) Response {
	all := DemoRankings()
	if size <= 0 {
		size = demoEntryCount
	}
	start := page * size
	if start < 0 {
		start = 0
	}
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return Response{
		RankingType:  rankingType,
		SnapshotDate: time.Now().Format("2006-01-02"),
		TotalCount:   len(all),
		Rankings:     all[start:end],
	}
}

func DemoPortfolioDetail(portfolioID string) PortfolioDetail {
	if portfolioID == "" {
		portfolioID = "1"
	}
	return PortfolioDetail{
		PortfolioID:       portfolioID,
		PortfolioName:     "My First Strategy",
		Nickname:          "WhaleKing",
		CurrentRank:       1,
		TotalReturn:       25.3,
		TotalReturnAmount: 2530000,
		InitialCapital:    10000000,
		TotalValue:        12530000,
		CurrentCash:       500000,
		Holdings: []DetailHolding{
			{StockCode: "005930", StockName: "Samsung Electronics", Quantity: 10, AvgPrice: 65000, CurrentPrice: 71000, Profit: 60000, ProfitRate: 9.2},
			{StockCode: "000660", StockName: "SK Hynix", Quantity: 5, AvgPrice: 120000, CurrentPrice: 135000, Profit: 75000, ProfitRate: 12.5},
			{StockCode: "035420", StockName: "NAVER", Quantity: 3, AvgPrice: 180000, CurrentPrice: 195000, Profit: 45000, ProfitRate: 8.3},
		},
		RecentTrades: []DetailTrade{
			{Date: "2024-01-15", Type: "BUY", StockName: "Samsung Electronics", Quantity: 5, Price: 71000, Amount: 355000},
			{Date: "2024-01-14", Type: "SELL", StockName: "SK Hynix", Quantity: 2, Price: 132000, Amount: 264000},
			{Date: "2024-01-13", Type: "BUY", StockName: "NAVER", Quantity: 3, Price: 195000, Amount: 585000},
		},
	}
}

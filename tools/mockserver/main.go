package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// =============================================================================
// WhaleStream Mock Backend
// =============================================================================
// A single-binary stand-in for the WhaleStream backend, for developing the
// CLI against something real. It supports:
// - Signup, login and token reissue (JWT, short-lived access tokens)
// - Market data with drifting prices
// - Order management with immediate market fills and a simple portfolio
// - Strategies, backtests and indicator series
// - Ranking snapshots
// Domain responses are wrapped in {"data": ...}; auth responses are bare.
// =============================================================================

var jwtSecret = []byte(getenv("MOCK_JWT_SECRET", "whalestream-mock-secret"))

type Server struct {
	mu         sync.RWMutex
	users      map[string]*User
	stocks     []*Stock
	orders     map[string]*Order
	trades     []*Trade
	portfolios map[string]*Portfolio
	strategies map[string]*Strategy
	backtests  map[string]fiber.Map
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type User struct {
	UserID   string
	Password string
	Name     string
}

type Stock struct {
	StockCode     string  `json:"stockCode"`
	StockName     string  `json:"stockName"`
	CurrentPrice  float64 `json:"currentPrice"`
	Change        float64 `json:"change"`
	ChangeRate    float64 `json:"changeRate"`
	Volume        int64   `json:"volume"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Timestamp     string  `json:"timestamp"`
}

type Order struct {
	ID             string   `json:"id"`
	UserID         string   `json:"userId"`
	StockCode      string   `json:"stockCode"`
	StockName      string   `json:"stockName"`
	OrderType      string   `json:"orderType"`
	OrderMethod    string   `json:"orderMethod"`
	Quantity       int64    `json:"quantity"`
	Price          float64  `json:"price"`
	Status         string   `json:"status"`
	FilledQuantity int64    `json:"filledQuantity"`
	FilledPrice    *float64 `json:"filledPrice"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

type Trade struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"orderId"`
	UserID      string  `json:"-"`
	StockCode   string  `json:"stockCode"`
	StockName   string  `json:"stockName"`
	OrderType   string  `json:"orderType"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	TotalAmount float64 `json:"totalAmount"`
	Commission  float64 `json:"commission"`
	NetAmount   float64 `json:"netAmount"`
	ExecutedAt  string  `json:"executedAt"`
}

type Holding struct {
	StockCode    string  `json:"stockCode"`
	StockName    string  `json:"stockName"`
	Quantity     int64   `json:"quantity"`
	AveragePrice float64 `json:"averagePrice"`
	CurrentPrice float64 `json:"currentPrice"`
	MarketValue  float64 `json:"marketValue"`
	ProfitLoss   float64 `json:"profitLoss"`
	ReturnRate   float64 `json:"returnRate"`
}

type Portfolio struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	CashBalance float64    `json:"cashBalance"`
	TotalValue  float64    `json:"totalValue"`
	ReturnRate  float64    `json:"returnRate"`
	Holdings    []*Holding `json:"holdings"`
}

type Strategy struct {
	ID              string      `json:"id"`
	UserID          string      `json:"-"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Indicators      []fiber.Map `json:"indicators"`
	EntryConditions []fiber.Map `json:"entryConditions"`
	ExitConditions  []fiber.Map `json:"exitConditions"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

const initialCapital = 10000000

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func NewServer() *Server {
	s := &Server{
		users:      make(map[string]*User),
		orders:     make(map[string]*Order),
		portfolios: make(map[string]*Portfolio),
		strategies: make(map[string]*Strategy),
		backtests:  make(map[string]fiber.Map),
		accessTTL:  5 * time.Minute,
		refreshTTL: 24 * time.Hour,
	}

	if ttl := os.Getenv("MOCK_ACCESS_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			s.accessTTL = d
		}
	}

	s.users["alice"] = &User{UserID: "alice", Password: "password123", Name: "Alice"}
	s.initStocks()
	return s
}

func (s *Server) initStocks() {
	now := time.Now().Format(time.RFC3339)
	seed := []struct {
		code, name string
		price      float64
	}{
		{"005930", "Samsung Electronics", 75000},
		{"000660", "SK Hynix", 145000},
		{"035420", "NAVER", 185000},
		{"035720", "Kakao", 52000},
		{"005380", "Hyundai Motor", 210000},
		{"051910", "LG Chem", 420000},
	}
	for _, x := range seed {
		s.stocks = append(s.stocks, &Stock{
			StockCode:     x.code,
			StockName:     x.name,
			CurrentPrice:  x.price,
			Open:          x.price,
			High:          x.price,
			Low:           x.price,
			PreviousClose: x.price,
			Volume:        rand.Int63n(2000000) + 100000,
			Timestamp:     now,
		})
	}
}

// tickPrices applies a small random walk so repeated polls see movement.
func (s *Server) tickPrices() {
	for {
		time.Sleep(3 * time.Second)
		s.mu.Lock()
		now := time.Now().Format(time.RFC3339)
		for _, st := range s.stocks {
			delta := st.CurrentPrice * (rand.Float64() - 0.5) * 0.01
			st.CurrentPrice = float64(int64(st.CurrentPrice + delta))
			if st.CurrentPrice > st.High {
				st.High = st.CurrentPrice
			}
			if st.CurrentPrice < st.Low {
				st.Low = st.CurrentPrice
			}
			st.Change = st.CurrentPrice - st.PreviousClose
			st.ChangeRate = st.Change / st.PreviousClose * 100
			st.Volume += rand.Int63n(10000)
			st.Timestamp = now
		}
		s.mu.Unlock()
	}
}

func main() {
	server := NewServer()
	go server.tickPrices()

	app := fiber.New(fiber.Config{
		AppName: "WhaleStream Mock Backend",
	})

	app.Use(logger.New())

	// Auth (bare responses)
	app.Post("/users", server.signup)
	app.Post("/auth/login", server.login)
	app.Post("/auth/reissue", server.reissue)

	// Everything under /api requires a valid access token
	api := app.Group("/api", server.requireToken)

	api.Get("/market-data", server.listStocks)
	api.Get("/market-data/:code", server.getStock)

	api.Post("/orders", server.createOrder)
	api.Get("/orders", server.listOrders)
	api.Delete("/orders/:id", server.cancelOrder)
	api.Get("/trades", server.listTrades)
	api.Get("/portfolio", server.getPortfolio)

	api.Post("/strategies/backtest", server.runBacktest)
	api.Get("/strategies/backtest/:id", server.getBacktest)
	api.Get("/strategies", server.listStrategies)
	api.Post("/strategies", server.createStrategy)
	api.Put("/strategies/:id", server.updateStrategy)
	api.Delete("/strategies/:id", server.deleteStrategy)
	api.Get("/indicators/:code", server.getIndicators)

	api.Get("/rankings", server.getRankings)
	api.Get("/portfolios/:id", server.getPortfolioDetail)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "service": "whalestream-mock"})
	})

	port := getenv("PORT", "8080")
	log.Printf("WhaleStream Mock Backend starting on port %s (access token TTL %s)", port, server.accessTTL)
	log.Fatal(app.Listen(":" + port))
}

// =============================================================================
// Auth
// =============================================================================

func (s *Server) issueToken(userID, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"typ": tokenType,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
		"jti": uuid.New().String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

func (s *Server) parseToken(raw, wantType string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != wantType {
		return "", fmt.Errorf("wrong token type")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("missing subject")
	}
	return sub, nil
}

func (s *Server) tokenPair(userID string) (fiber.Map, error) {
	access, err := s.issueToken(userID, "access", s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issueToken(userID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return fiber.Map{"accessToken": access, "refreshToken": refresh, "userId": userID}, nil
}

func (s *Server) signup(c *fiber.Ctx) error {
	var req struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"code": "BAD_REQUEST", "message": "Invalid request body"})
	}
	if req.UserID == "" || req.Password == "" || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"code": "VALIDATION", "message": "userId, password and name are required"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.UserID]; exists {
		return c.Status(409).JSON(fiber.Map{"code": "DUPLICATE_USER", "message": "User id already taken"})
	}
	s.users[req.UserID] = &User{UserID: req.UserID, Password: req.Password, Name: req.Name}
	return c.Status(201).JSON(fiber.Map{"userId": req.UserID})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"code": "BAD_REQUEST", "message": "Invalid request body"})
	}

	s.mu.RLock()
	user, ok := s.users[req.UserID]
	s.mu.RUnlock()
	if !ok || user.Password != req.Password {
		return c.Status(401).JSON(fiber.Map{"code": "INVALID_CREDENTIALS", "message": "Incorrect user id or password"})
	}

	pair, err := s.tokenPair(user.UserID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"code": "INTERNAL", "message": "Token issuance failed"})
	}
	return c.JSON(pair)
}

func (s *Server) reissue(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"code": "BAD_REQUEST", "message": "Invalid request body"})
	}

	userID, err := s.parseToken(req.RefreshToken, "refresh")
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"code": "INVALID_REFRESH_TOKEN", "message": "Refresh token is invalid or expired"})
	}

	pair, err := s.tokenPair(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"code": "INTERNAL", "message": "Token issuance failed"})
	}
	return c.JSON(pair)
}

func (s *Server) requireToken(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(401).JSON(fiber.Map{"code": "UNAUTHORIZED", "message": "Missing bearer token"})
	}
	userID, err := s.parseToken(strings.TrimPrefix(header, "Bearer "), "access")
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"code": "TOKEN_EXPIRED", "message": "Access token is invalid or expired"})
	}
	c.Locals("userID", userID)
	return c.Next()
}

func currentUser(c *fiber.Ctx) string {
	userID, _ := c.Locals("userID").(string)
	return userID
}

func data(v interface{}) fiber.Map {
	return fiber.Map{"data": v}
}

// =============================================================================
// Market data
// =============================================================================

func (s *Server) listStocks(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.JSON(data(s.stocks))
}

func (s *Server) getStock(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.stocks {
		if st.StockCode == c.Params("code") {
			return c.JSON(data(st))
		}
	}
	return c.Status(404).JSON(fiber.Map{"code": "NOT_FOUND", "message": "Unknown stock code"})
}

func (s *Server) findStock(code string) *Stock {
	for _, st := range s.stocks {
		if st.StockCode == code {
			return st
		}
	}
	return nil
}

// =============================================================================
// Orders, trades, portfolio
// =============================================================================

func (s *Server) portfolioFor(userID string) *Portfolio {
	p, ok := s.portfolios[userID]
	if !ok {
		p = &Portfolio{
			ID:          uuid.New().String(),
			UserID:      userID,
			CashBalance: initialCapital,
			TotalValue:  initialCapital,
			Holdings:    []*Holding{},
		}
		s.portfolios[userID] = p
	}
	return p
}

func (s *Server) revalue(p *Portfolio) {
	total := p.CashBalance
	for _, h := range p.Holdings {
		if st := s.findStock(h.StockCode); st != nil {
			h.CurrentPrice = st.CurrentPrice
		}
		h.MarketValue = float64(h.Quantity) * h.CurrentPrice
		cost := float64(h.Quantity) * h.AveragePrice
		h.ProfitLoss = h.MarketValue - cost
		if cost > 0 {
			h.ReturnRate = h.ProfitLoss / cost * 100
		}
		total += h.MarketValue
	}
	p.TotalValue = total
	p.ReturnRate = (total - initialCapital) / initialCapital * 100
}

func (s *Server) createOrder(c *fiber.Ctx) error {
	var req struct {
		StockCode   string   `json:"stockCode"`
		StockName   string   `json:"stockName"`
		OrderType   string   `json:"orderType"`
		OrderMethod string   `json:"orderMethod"`
		Quantity    int64    `json:"quantity"`
		Price       *float64 `json:"price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"code": "BAD_REQUEST", "message": "Invalid request body"})
	}
	if req.StockCode == "" || req.Quantity <= 0 {
		return c.Status(400).JSON(fiber.Map{"code": "VALIDATION", "message": "stockCode and a positive quantity are required"})
	}
	if req.OrderType != "BUY" && req.OrderType != "SELL" {
		return c.Status(400).JSON(fiber.Map{"code": "VALIDATION", "message": "orderType must be BUY or SELL"})
	}
	if req.OrderMethod == "LIMIT" && req.Price == nil {
		return c.Status(400).JSON(fiber.Map{"code": "VALIDATION", "message": "Limit orders require a price"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stock := s.findStock(req.StockCode)
	if stock == nil {
		return c.Status(404).JSON(fiber.Map{"code": "NOT_FOUND", "message": "Unknown stock code"})
	}

	userID := currentUser(c)
	now := time.Now().Format(time.RFC3339)
	order := &Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		StockCode:   stock.StockCode,
		StockName:   stock.StockName,
		OrderType:   req.OrderType,
		OrderMethod: req.OrderMethod,
		Quantity:    req.Quantity,
		Status:      "PENDING",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Price != nil {
		order.Price = *req.Price
	} else {
		order.Price = stock.CurrentPrice
	}

	// Market orders fill immediately at the current price; limit orders stay
	// pending forever, which is enough for a mock.
	if req.OrderMethod == "MARKET" {
		if err := s.fill(order, stock); err != nil {
			return c.Status(422).JSON(fiber.Map{"code": "REJECTED", "message": err.Error()})
		}
	}

	s.orders[order.ID] = order
	return c.Status(201).JSON(data(order))
}

func (s *Server) fill(order *Order, stock *Stock) error {
	p := s.portfolioFor(order.UserID)
	price := stock.CurrentPrice
	total := price * float64(order.Quantity)
	commission := float64(int64(total * 0.001))

	var holding *Holding
	for _, h := range p.Holdings {
		if h.StockCode == order.StockCode {
			holding = h
			break
		}
	}

	switch order.OrderType {
	case "BUY":
		if p.CashBalance < total+commission {
			return fmt.Errorf("Insufficient cash balance")
		}
		p.CashBalance -= total + commission
		if holding == nil {
			holding = &Holding{StockCode: order.StockCode, StockName: order.StockName}
			p.Holdings = append(p.Holdings, holding)
		}
		newQty := holding.Quantity + order.Quantity
		holding.AveragePrice = (holding.AveragePrice*float64(holding.Quantity) + total) / float64(newQty)
		holding.Quantity = newQty
	case "SELL":
		if holding == nil || holding.Quantity < order.Quantity {
			return fmt.Errorf("Insufficient holdings")
		}
		p.CashBalance += total - commission
		holding.Quantity -= order.Quantity
		if holding.Quantity == 0 {
			kept := p.Holdings[:0]
			for _, h := range p.Holdings {
				if h.StockCode != order.StockCode {
					kept = append(kept, h)
				}
			}
			p.Holdings = kept
		}
	}
	s.revalue(p)

	now := time.Now().Format(time.RFC3339)
	order.Status = "FILLED"
	order.FilledQuantity = order.Quantity
	order.FilledPrice = &price
	order.UpdatedAt = now

	s.trades = append(s.trades, &Trade{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		UserID:      order.UserID,
		StockCode:   order.StockCode,
		StockName:   order.StockName,
		OrderType:   order.OrderType,
		Quantity:    order.Quantity,
		Price:       price,
		TotalAmount: total,
		Commission:  commission,
		NetAmount:   total - commission,
		ExecutedAt:  now,
	})
	return nil
}

func (s *Server) listOrders(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID := currentUser(c)
	orders := []*Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt > orders[j].CreatedAt })
	return c.JSON(data(orders))
}

func (s *Server) cancelOrder(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[c.Params("id")]
	if !ok || order.UserID != currentUser(c) {
		return c.Status(404).JSON(fiber.Map{"code": "NOT_FOUND", "message": "Order not found"})
	}
	if order.Status != "PENDING" && order.Status != "PARTIALLY_FILLED" {
		return c.Status(409).JSON(fiber.Map{"code": "NOT_CANCELLABLE", "message": "Order can no longer be cancelled"})
	}
	order.Status = "CANCELLED"
	order.UpdatedAt = time.Now().Format(time.RFC3339)
	return c.JSON(data(order))
}

func (s *Server) listTrades(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID := currentUser(c)
	trades := []*Trade{}
	for _, t := range s.trades {
		if t.UserID == userID {
			trades = append(trades, t)
		}
	}
	return c.JSON(data(trades))
}

func (s *Server) getPortfolio(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.portfolioFor(currentUser(c))
	s.revalue(p)
	return c.JSON(data(p))
}

// =============================================================================
// Strategies, backtests, indicators
// =============================================================================

func (s *Server) listStrategies(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID := currentUser(c)
	strategies := []*Strategy{}
	for _, st := range s.strategies {
		if st.UserID == userID {
			strategies = append(strategies, st)
		}
	}
	sort.Slice(strategies, func(i, j int) bool { return strategies[i].CreatedAt < strategies[j].CreatedAt })
	return c.JSON(data(strategies))
}

func (s *Server) createStrategy(c *fiber.Ctx) error {
	var st Strategy
	if err := c.BodyParser(&st); err != nil {
		return c.Status(400).JSON(fiber.Map{"code": "BAD_REQUEST", "message": "Invalid request body"})
	}
	if st.Name == "" {
		return c.Status(400).JSON(fiber.Map{"code": "VALIDATION", "message": "Strategy name is required"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().Format(time.RFC3339)
	st.ID = uuid.New().String()
	st.UserID = currentUser(c)
	st.CreatedAt = now
	st.UpdatedAt = now
	s.strategies[st.ID] = &st
	return c.Status(201).JSON(data(&st))
}

func (s *Server) updateStrategy(c *fiber.Ctx) error {
	var in Strategy
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"code": "BAD_REQUEST", "message": "Invalid request body"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.strategies[c.Params("id")]
	if !ok || st.UserID != currentUser(c) {
		return c.Status(404).JSON(fiber.Map{"code": "NOT_FOUND", "message": "Strategy not found"})
	}
	st.Name = in.Name
	st.Description = in.Description
	st.Indicators = in.Indicators
	st.EntryConditions = in.EntryConditions
	st.ExitConditions = in.ExitConditions
	st.UpdatedAt = time.Now().Format(time.RFC3339)
	return c.JSON(data(st))
}

func (s *Server) deleteStrategy(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.strategies[c.Params("id")]
	if !ok || st.UserID != currentUser(c) {
		return c.Status(404).JSON(fiber.Map{"code": "NOT_FOUND", "message": "Strategy not found"})
	}
	delete(s.strategies, st.ID)
	return c.SendStatus(204)
}

func (s *Server) runBacktest(c *fiber.Ctx) error {
	var req struct {
		StrategyID     string  `json:"strategyId"`
		StockCode      string  `json:"stockCode"`
		StartDate      string  `json:"startDate"`
		EndDate        string  `json:"endDate"`
		InitialCapital float64 `json:"initialCapital"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"code": "BAD_REQUEST", "message": "Invalid request body"})
	}
	if req.InitialCapital <= 0 {
		req.InitialCapital = initialCapital
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	strategyName := "Unknown strategy"
	if st, ok := s.strategies[req.StrategyID]; ok {
		strategyName = st.Name
	}
	stockName := req.StockCode
	if st := s.findStock(req.StockCode); st != nil {
		stockName = st.StockName
	}

	// A made-up but internally consistent report.
	rate := rand.Float64()*40 - 10
	finalValue := req.InitialCapital * (1 + rate/100)
	total := rand.Intn(60) + 10
	wins := int(float64(total) * (0.4 + rand.Float64()*0.3))

	days := 30
	daily := make([]fiber.Map, 0, days)
	equity := make([]fiber.Map, 0, days)
	for i := 0; i < days; i++ {
		date := time.Now().AddDate(0, 0, i-days).Format("2006-01-02")
		cumulative := rate * float64(i+1) / float64(days)
		value := req.InitialCapital * (1 + cumulative/100)
		daily = append(daily, fiber.Map{
			"date":             date,
			"return":           rate / float64(days),
			"cumulativeReturn": cumulative,
			"portfolioValue":   value,
		})
		equity = append(equity, fiber.Map{"date": date, "value": value})
	}

	result := fiber.Map{
		"id":               uuid.New().String(),
		"strategyId":       req.StrategyID,
		"strategyName":     strategyName,
		"stockCode":        req.StockCode,
		"stockName":        stockName,
		"startDate":        req.StartDate,
		"endDate":          req.EndDate,
		"initialCapital":   req.InitialCapital,
		"finalValue":       finalValue,
		"totalReturn":      finalValue - req.InitialCapital,
		"totalReturnRate":  rate,
		"maxDrawdown":      -(rand.Float64() * 15),
		"sharpeRatio":      rand.Float64() * 3,
		"winRate":          float64(wins) / float64(total) * 100,
		"totalTrades":      total,
		"profitableTrades": wins,
		"losingTrades":     total - wins,
		"dailyReturns":     daily,
		"equityCurve":      equity,
	}
	s.backtests[result["id"].(string)] = result
	return c.JSON(data(result))
}

func (s *Server) getBacktest(c *fiber.Ctx) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.backtests[c.Params("id")]
	if !ok {
		return c.Status(404).JSON(fiber.Map{"code": "NOT_FOUND", "message": "Backtest not found"})
	}
	return c.JSON(data(result))
}

func (s *Server) getIndicators(c *fiber.Ctx) error {
	s.mu.RLock()
	stock := s.findStock(c.Params("code"))
	s.mu.RUnlock()
	if stock == nil {
		return c.Status(404).JSON(fiber.Map{"code": "NOT_FOUND", "message": "Unknown stock code"})
	}

	indicatorType := c.Query("type", "RSI")
	days := 30
	series := make([]fiber.Map, 0, days)
	for i := 0; i < days; i++ {
		date := time.Now().AddDate(0, 0, i-days).Format("2006-01-02")
		var value float64
		switch indicatorType {
		case "RSI":
			value = 30 + rand.Float64()*40
		case "MACD":
			value = rand.Float64()*10 - 5
		default:
			value = stock.CurrentPrice * (0.95 + rand.Float64()*0.1)
		}
		series = append(series, fiber.Map{
			"date":  date,
			"price": stock.CurrentPrice * (0.95 + rand.Float64()*0.1),
			"value": value,
		})
	}
	return c.JSON(data(series))
}

// =============================================================================
// Rankings
// =============================================================================

func (s *Server) getRankings(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := currentUser(c)
	type entry struct {
		PortfolioID   string  `json:"portfolioId"`
		Rank          int     `json:"rank"`
		Nickname      string  `json:"nickname"`
		PortfolioName string  `json:"portfolioName"`
		TotalReturn   float64 `json:"totalReturn"`
		TotalValue    float64 `json:"totalValue"`
		RankChange    int     `json:"rankChange"`
		IsMyRanking   bool    `json:"isMyRanking,omitempty"`
	}

	entries := []entry{}
	for uid := range s.users {
		p := s.portfolioFor(uid)
		s.revalue(p)
		entries = append(entries, entry{
			PortfolioID:   p.ID,
			Nickname:      uid,
			PortfolioName: uid + "'s portfolio",
			TotalReturn:   p.ReturnRate,
			TotalValue:    p.TotalValue,
			IsMyRanking:   uid == userID,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].TotalReturn > entries[j].TotalReturn })
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return c.JSON(data(fiber.Map{
		"rankingType":  c.Query("type", "all"),
		"snapshotDate": time.Now().Format("2006-01-02"),
		"totalCount":   len(entries),
		"rankings":     entries,
	}))
}

func (s *Server) getPortfolioDetail(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Params("id")
	for uid, p := range s.portfolios {
		if p.ID != id {
			continue
		}
		s.revalue(p)
		holdings := make([]fiber.Map, 0, len(p.Holdings))
		for _, h := range p.Holdings {
			holdings = append(holdings, fiber.Map{
				"stockCode":    h.StockCode,
				"stockName":    h.StockName,
				"quantity":     h.Quantity,
				"avgPrice":     h.AveragePrice,
				"currentPrice": h.CurrentPrice,
				"profit":       h.ProfitLoss,
				"profitRate":   h.ReturnRate,
			})
		}
		trades := []fiber.Map{}
		for _, t := range s.trades {
			if t.UserID != uid {
				continue
			}
			trades = append(trades, fiber.Map{
				"date":      t.ExecutedAt,
				"type":      t.OrderType,
				"stockName": t.StockName,
				"quantity":  t.Quantity,
				"price":     t.Price,
				"amount":    t.TotalAmount,
			})
		}
		return c.JSON(data(fiber.Map{
			"portfolioId":       p.ID,
			"portfolioName":     uid + "'s portfolio",
			"nickname":          uid,
			"currentRank":       1,
			"totalReturn":       p.ReturnRate,
			"totalReturnAmount": p.TotalValue - initialCapital,
			"initialCapital":    float64(initialCapital),
			"totalValue":        p.TotalValue,
			"currentCash":       p.CashBalance,
			"holdings":          holdings,
			"recentTrades":      trades,
		}))
	}
	return c.Status(404).JSON(fiber.Map{"code": "NOT_FOUND", "message": "Portfolio not found"})
}

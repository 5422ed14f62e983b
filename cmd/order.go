package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HaByeong/WhaleStream/internal/output"
	"github.com/HaByeong/WhaleStream/internal/trade"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Submit, cancel and list orders",
}

var orderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a buy or sell order",
	Long: `Submit an order. MARKET orders execute at the current price; LIMIT
orders require --price. Holdings and cash only change once the server
confirms the fill, so check 'whalestream portfolio' after submitting.`,
	RunE: runOrderCreate,
}

var orderCancelCmd = &cobra.Command{
	Use:   "cancel ORDER_ID",
	Short: "Request cancellation of a pending order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderCancel,
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your orders",
	RunE:  runOrderList,
}

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List your executed trades",
	RunE:  runTrades,
}

var (
	orderStockCode string
	orderStockName string
	orderType      string
	orderMethod    string
	orderQuantity  int64
	orderPrice     float64
)

func init() {
	orderCreateCmd.Flags().StringVar(&orderStockCode, "code", "", "stock code, e.g. 005930 (required)")
	orderCreateCmd.Flags().StringVar(&orderStockName, "name", "", "stock name (resolved from the market board if omitted)")
	orderCreateCmd.Flags().StringVar(&orderType, "type", "", "BUY or SELL (required)")
	orderCreateCmd.Flags().StringVar(&orderMethod, "method", "MARKET", "MARKET or LIMIT")
	orderCreateCmd.Flags().Int64Var(&orderQuantity, "qty", 0, "number of shares (required)")
	orderCreateCmd.Flags().Float64Var(&orderPrice, "price", 0, "limit price, LIMIT orders only")
	orderCreateCmd.MarkFlagRequired("code")
	orderCreateCmd.MarkFlagRequired("type")
	orderCreateCmd.MarkFlagRequired("qty")

	orderCmd.AddCommand(orderCreateCmd)
	orderCmd.AddCommand(orderCancelCmd)
	orderCmd.AddCommand(orderListCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(tradesCmd)
}

func runOrderCreate(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	orderType = strings.ToUpper(orderType)
	orderMethod = strings.ToUpper(orderMethod)
	if orderType != trade.OrderTypeBuy && orderType != trade.OrderTypeSell {
		output.Error("--type must be BUY or SELL.")
		return nil
	}
	if orderMethod != trade.OrderMethodMarket && orderMethod != trade.OrderMethodLimit {
		output.Error("--method must be MARKET or LIMIT.")
		return nil
	}
	if orderQuantity <= 0 {
		output.Error("--qty must be positive.")
		return nil
	}
	if orderMethod == trade.OrderMethodLimit && orderPrice <= 0 {
		output.Error("LIMIT orders require --price.")
		return nil
	}

	ctx := context.Background()

	name := orderStockName
	if name == "" {
		quote, err := svcs.trade.StockPrice(ctx, orderStockCode)
		if err != nil {
			printErr(err)
			return nil
		}
		name = quote.StockName
	}

	req := trade.OrderRequest{
		StockCode:   orderStockCode,
		StockName:   name,
		OrderType:   orderType,
		OrderMethod: orderMethod,
		Quantity:    orderQuantity,
	}
	if orderMethod == trade.OrderMethodLimit {
		price := orderPrice
		req.Price = &price
	}

	order, err := svcs.trade.CreateOrder(ctx, req)
	if err != nil {
		printErr(err)
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(order)
	}

	output.Success(fmt.Sprintf("Order submitted: %s %d x %s (%s)", order.OrderType, order.Quantity, order.StockName, order.OrderMethod))
	output.KeyValue([][]string{
		{"Order ID", order.ID},
		{"Status", output.FormatStatus(order.Status)},
	})
	return nil
}

func runOrderCancel(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	if err := svcs.trade.CancelOrder(context.Background(), args[0]); err != nil {
		printErr(err)
		return nil
	}
	output.Success("Cancellation requested.")
	return nil
}

func runOrderList(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	orders, err := svcs.trade.Orders(context.Background())
	if err != nil {
		printErr(err)
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(orders)
	}

	if len(orders) == 0 {
		output.Info("No orders.")
		return nil
	}

	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		filled := fmt.Sprintf("%d/%d", o.FilledQuantity, o.Quantity)
		price := output.Amount(o.Price)
		if o.FilledPrice != nil {
			price = output.Amount(*o.FilledPrice)
		}
		rows = append(rows, []string{
			o.ID,
			o.StockName,
			o.OrderType,
			o.OrderMethod,
			filled,
			price,
			output.FormatStatus(o.Status),
			o.CreatedAt,
		})
	}
	output.Table([]string{"ID", "Stock", "Type", "Method", "Filled", "Price", "Status", "Created"}, rows)
	return nil
}

func runTrades(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	trades, err := svcs.trade.Trades(context.Background())
	if err != nil {
		printErr(err)
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(trades)
	}

	if len(trades) == 0 {
		output.Info("No trades yet.")
		return nil
	}

	rows := make([][]string, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, []string{
			t.ExecutedAt,
			t.StockName,
			t.OrderType,
			strconv.FormatInt(t.Quantity, 10),
			output.Amount(t.Price),
			output.Amount(t.Commission),
			output.Amount(t.NetAmount),
		})
	}
	output.Table([]string{"Executed", "Stock", "Type", "Qty", "Price", "Commission", "Net"}, rows)
	return nil
}

package api

import (
	"net/http" // HTTP status codes

	"eventpay/internal/service" // Credit service

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Money amounts
)

// AddCreditsRequest is the optional body of POST /credits/add
type AddCreditsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// BalanceHandler returns the current user's credit balance
func BalanceHandler(credits *service.CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := mustUser(c)
		if !ok {
			return
		}
		balance, err := credits.Balance(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"credits": balance})
	}
}

// AddCreditsHandler tops up the current user's balance. The amount comes from
// ?amount= or the JSON body.
func AddCreditsHandler(credits *service.CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := mustUser(c)
		if !ok {
			return
		}
		var amount decimal.Decimal
		if raw := c.Query("amount"); raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				badRequest(c, "Invalid amount")
				return
			}
			amount = parsed
		} else {
			var req AddCreditsRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, "Invalid request")
				return
			}
			amount = req.Amount
		}
		balance, err := credits.Add(c.Request.Context(), user.ID, amount)
		if err != nil {
			respondError(c, err) // Non-positive amounts are a 400
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Credits added", "new_balance": balance})
	}
}

// CreditHistoryHandler lists the current user's credit transactions
func CreditHistoryHandler(credits *service.CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := mustUser(c)
		if !ok {
			return
		}
		txs, err := credits.History(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, txs)
	}
}

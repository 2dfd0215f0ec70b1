package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/selvacse6139/SK-Associate/pkg/emi"
)

// EMIQuote handles GET /api/emi. It mirrors the client-side calculator so
// quotes can be produced without loading the site.
func EMIQuote(c *gin.Context) {
	principal, err := strconv.ParseFloat(c.Query("principal"), 64)
	if err != nil || principal <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "principal must be a positive number"})
		return
	}

	annualRate, err := strconv.ParseFloat(c.Query("annualRate"), 64)
	if err != nil || annualRate < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "annualRate must be a non-negative number"})
		return
	}

	years, err := strconv.Atoi(c.Query("years"))
	if err != nil || years <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "years must be a positive integer"})
		return
	}

	quote := emi.Calculate(principal, annualRate, years)

	c.JSON(http.StatusOK, gin.H{
		"emi":           emi.Round2(quote.EMI),
		"totalPayment":  emi.Round2(quote.TotalPayment),
		"totalInterest": emi.Round2(quote.TotalInterest),
		"months":        quote.Months,
	})
}

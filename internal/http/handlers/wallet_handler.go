package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepkingdom/kingdom-api/internal/domain"
)

// WalletHandler handles HTTP requests for wallet reads
type WalletHandler struct {
	walletRepo domain.WalletRepository
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletRepo domain.WalletRepository) *WalletHandler {
	return &WalletHandler{walletRepo: walletRepo}
}

// WalletResponse represents the wallet balances response body
type WalletResponse struct {
	Coins    int64 `json:"coins" example:"120"`
	Crystals int64 `json:"crystals" example:"45"`
}

// GetWallet handles the wallet balances read
// @Summary Get wallet balances
// @Description Current coin and crystal balances derived from the ledger
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} WalletResponse
// @Failure 401 {object} ErrorResponse
// @Router /wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		return
	}

	balances, err := h.walletRepo.GetBalances(userID)
	if err != nil {
		respondError(c, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get balances", 500, err))
		return
	}

	c.JSON(http.StatusOK, WalletResponse{
		Coins:    balances[domain.FundTypeCoin],
		Crystals: balances[domain.FundTypeCrystal],
	})
}

package domain

// UpgradeInfo reports whether the user can advance to the next tier
type UpgradeInfo struct {
	CanUpgrade     bool     `json:"can_upgrade"`
	CurrentLevel   int      `json:"current_level"`
	NextLevel      *int     `json:"next_level,omitempty"`
	UpgradeCost    *int64   `json:"upgrade_cost,omitempty"`
	CostFundType   FundType `json:"cost_fund_type"`
	CurrentBalance int64    `json:"current_balance"`
	Reason         string   `json:"reason,omitempty"`
}

// UpgradeResult reports a completed tier advance
type UpgradeResult struct {
	Success    bool  `json:"success"`
	NewLevel   int   `json:"new_level"`
	CostPaid   int64 `json:"cost_paid"`
	NewBalance int64 `json:"new_balance"`
}

// ProgressionUseCase orchestrates upgrade-cost checks, wallet debits and
// tier-pointer advances along a building chain.
type ProgressionUseCase interface {
	GetCastleUpgradeInfo(userID int64) (*UpgradeInfo, error)
	UpgradeCastle(userID int64) (*UpgradeResult, error)
	GetVillageUpgradeInfo(userID int64, subject Subject) (*UpgradeInfo, error)
	UpgradeVillage(userID int64, subject Subject) (*UpgradeResult, error)
}

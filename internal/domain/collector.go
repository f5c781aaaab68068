package domain

import "time"

// TreasureStatus is the projected accrual state returned on status reads
type TreasureStatus struct {
	CurrentAmount     int64      `json:"current_amount"`
	Capacity          int64      `json:"capacity"`
	ProductionRate    int64      `json:"production_rate"`
	LastCollectDate   *time.Time `json:"last_collect_date,omitempty"`
	TimeToFullMinutes int64      `json:"time_to_full_minutes"`
	FundType          FundType   `json:"fund_type"`
}

// CastleStatus is the full castle view including the tap mini-game state
type CastleStatus struct {
	CastleID      int64          `json:"castle_id"`
	CastleTitle   string         `json:"castle_title"`
	Treasure      TreasureStatus `json:"treasure"`
	TapsRemaining int64          `json:"taps_remaining"`
	MaxTapsPerDay int64          `json:"max_taps_per_day"`
	CoinsPerTap   int64          `json:"coins_per_tap"`
}

// VillageStatus is the per-subject village view
type VillageStatus struct {
	VillageID    int64          `json:"village_id"`
	VillageTitle string         `json:"village_title"`
	Subject      Subject        `json:"subject"`
	Treasure     TreasureStatus `json:"treasure"`
}

// CollectResult reports a successful treasure collection
type CollectResult struct {
	CollectedAmount  int64    `json:"collected_amount"`
	FundType         FundType `json:"fund_type"`
	NewWalletBalance int64    `json:"new_wallet_balance"`
}

// TapResult reports a successful tap batch
type TapResult struct {
	CoinsCollected   int64 `json:"coins_collected"`
	TapsRemaining    int64 `json:"taps_remaining"`
	NewWalletBalance int64 `json:"new_wallet_balance"`
}

// CollectorUseCase orchestrates accrual projection, collection and wallet
// crediting for castles and villages, plus the castle tap mini-game.
type CollectorUseCase interface {
	GetCastleStatus(userID int64) (*CastleStatus, error)
	GetVillageStatus(userID int64, subject Subject) (*VillageStatus, error)
	GetAllVillageStatuses(userID int64) ([]*VillageStatus, error)
	CollectCastle(userID int64) (*CollectResult, error)
	CollectVillage(userID int64, subject Subject) (*CollectResult, error)
	Tap(userID int64, count int64) (*TapResult, error)
}

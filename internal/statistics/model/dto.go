// Package model provides data transfer objects for statistics module.
package model

// ManagerActivity counts one manager's committed transactions.
type ManagerActivity struct {
	ManagerID string `json:"manager_id"`
	Adds      int    `json:"adds"`
	Drops     int    `json:"drops"`
	Moves     int    `json:"moves"`
	Trades    int    `json:"trades"`
	Total     int    `json:"total"`
}

// ManagerActivityResponse represents response for manager activity statistics.
type ManagerActivityResponse struct {
	LeagueID string            `json:"league_id"`
	Managers []ManagerActivity `json:"managers"`
	Total    int               `json:"total"`
}

// TransactionStatistics summarizes a league's transaction log and open work.
type TransactionStatistics struct {
	TotalTransactions int `json:"total_transactions"`
	Adds              int `json:"adds"`
	Drops             int `json:"drops"`
	Moves             int `json:"moves"`
	TradedPlayers     int `json:"traded_players"`
	DistinctPlayers   int `json:"distinct_players"`
	PendingTrades     int `json:"pending_trades"`
	PendingClaims     int `json:"pending_claims"`
}

// TransactionStatisticsResponse represents response for transaction statistics.
type TransactionStatisticsResponse struct {
	LeagueID   string                `json:"league_id"`
	Statistics TransactionStatistics `json:"statistics"`
}

package models

import "time"

// LedgerSession is the handle that owns exactly one point ledger.
type LedgerSession struct {
	ID           string     `db:"id" json:"id"`
	OwnerID      string     `db:"owner_id" json:"owner_id,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	EndedAt      *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	LastActiveAt time.Time  `db:"-" json:"last_active_at"`
}

// Pagination describes a page of an ordered listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shared browse-only catalogs: recipes and games for family gatherings.

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	Description string    `json:"description"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Game struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Category    string    `gorm:"size:100" json:"category"`
	Description string    `json:"description"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type AffiliateLink struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ItemType     string    `gorm:"size:20;index:idx_affiliate_item" json:"itemType"` // recipe, game
	ItemID       uuid.UUID `gorm:"type:uuid;index:idx_affiliate_item" json:"itemId"`
	AffiliateURL string    `json:"affiliateUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (a *AffiliateLink) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

package services

import (
	"context"
	"encoding/json"
	"time"

	"familygather-backend/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogService serves the shared recipe and game catalogs. Listings are
// cached in Redis when a client is available; without one every read goes to
// the database.
type CatalogService struct {
	db    *gorm.DB
	cache *redis.Client
	log   *logrus.Logger
}

func NewCatalogService(db *gorm.DB, cache *redis.Client, log *logrus.Logger) *CatalogService {
	return &CatalogService{db: db, cache: cache, log: log}
}

func (s *CatalogService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if s.cachedList(ctx, "catalog:recipes", &recipes) {
		return recipes, nil
	}

	if err := s.db.Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, ErrInternal("Failed to list recipes", err)
	}

	s.storeList(ctx, "catalog:recipes", recipes)
	return recipes, nil
}

func (s *CatalogService) ListGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if s.cachedList(ctx, "catalog:games", &games) {
		return games, nil
	}

	if err := s.db.Order("name ASC").Find(&games).Error; err != nil {
		return nil, ErrInternal("Failed to list games", err)
	}

	s.storeList(ctx, "catalog:games", games)
	return games, nil
}

func (s *CatalogService) cachedList(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (s *CatalogService) storeList(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, catalogCacheTTL).Err(); err != nil {
		s.log.WithError(err).Debug("Failed to cache catalog listing")
	}
}

// Seed loads the sample catalog when the tables are empty.
func (s *CatalogService) Seed() error {
	var count int64
	if err := s.db.Model(&models.Recipe{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	recipes := []models.Recipe{
		{
			Name:        "Classic Lasagna",
			Tags:        []string{"Italian", "Pasta", "Main Course", "Family Favorite"},
			Description: "A hearty Italian dish perfect for large family gatherings. Layers of pasta, meat sauce, and cheese.",
			Link:        "https://www.example.com/lasagna",
		},
		{
			Name:        "BBQ Pulled Pork",
			Tags:        []string{"BBQ", "Meat", "Main Course", "Slow Cooker"},
			Description: "Tender pulled pork in a sweet and tangy BBQ sauce. Perfect for sandwiches and feeding a crowd.",
			Link:        "https://www.example.com/pulled-pork",
		},
		{
			Name:        "Summer Fruit Salad",
			Tags:        []string{"Fruit", "Dessert", "Healthy", "Quick"},
			Description: "A refreshing mix of seasonal fruits with a honey-lime dressing.",
			Link:        "https://www.example.com/fruit-salad",
		},
	}
	games := []models.Game{
		{
			Name:        "Family Trivia",
			Category:    "Trivia",
			Description: "A customizable trivia game where families can create questions about their shared memories and history.",
			Link:        "https://www.example.com/family-trivia",
		},
		{
			Name:        "Pictionary",
			Category:    "Drawing",
			Description: "The classic drawing and guessing game that's fun for all ages.",
			Link:        "https://www.example.com/pictionary",
		},
		{
			Name:        "Charades",
			Category:    "Acting",
			Description: "Act out words and phrases while others try to guess. No props needed!",
			Link:        "https://www.example.com/charades",
		},
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		affiliates := map[string]string{
			"Classic Lasagna": "https://www.amazon.com/lasagna-ingredients",
			"BBQ Pulled Pork": "https://www.amazon.com/bbq-ingredients",
			"Family Trivia":   "https://www.amazon.com/trivia-game",
			"Pictionary":      "https://www.amazon.com/pictionary",
		}

		for i := range recipes {
			if err := tx.Create(&recipes[i]).Error; err != nil {
				return err
			}
			if url, ok := affiliates[recipes[i].Name]; ok {
				link := models.AffiliateLink{ItemType: "recipe", ItemID: recipes[i].ID, AffiliateURL: url}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}
		for i := range games {
			if err := tx.Create(&games[i]).Error; err != nil {
				return err
			}
			if url, ok := affiliates[games[i].Name]; ok {
				link := models.AffiliateLink{ItemType: "game", ItemID: games[i].ID, AffiliateURL: url}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

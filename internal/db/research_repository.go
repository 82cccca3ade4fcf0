package db

import (
	"github.com/conectarapak/conectar/internal/models"
	"gorm.io/gorm"
)

// ResearchRepository is the durable side of the research library: the whole
// collection is read once at startup and rewritten on every mutation.
type ResearchRepository struct {
	database *gorm.DB
}

func NewResearchRepository(database *gorm.DB) *ResearchRepository {
	return &ResearchRepository{database: database}
}

func (repo *ResearchRepository) GetAll() ([]models.SavedResearch, error) {
	records := make([]models.SavedResearch, 0)
	if err := repo.database.Order("timestamp DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// PutAll replaces the stored collection with records in one transaction, so
// the overwrite either happens completely or not at all.
func (repo *ResearchRepository) PutAll(records []models.SavedResearch) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.SavedResearch{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

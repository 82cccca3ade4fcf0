package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Research *ResearchRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Research: NewResearchRepository(database),
	}
}

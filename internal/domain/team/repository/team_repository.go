package repository

import (
	"fanboard/internal/domain/team/model"

	"gorm.io/gorm"
)

// TeamRepository 接口定义
type TeamRepository interface {
	GetByID(id uint) (*model.Team, error)
	// GetByIDs 按ID批量查询，不存在的ID直接忽略
	GetByIDs(ids []uint) ([]model.Team, error)
	GetList(offset, limit int) ([]model.Team, int64, error)
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) GetByID(id uint) (*model.Team, error) {
	var team model.Team
	if err := r.db.Where("id = ?", id).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetByIDs(ids []uint) ([]model.Team, error) {
	var teams []model.Team
	if len(ids) == 0 {
		return teams, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) GetList(offset, limit int) ([]model.Team, int64, error) {
	var teams []model.Team
	var total int64

	if err := r.db.Model(&model.Team{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Order("name asc").Offset(offset).Limit(limit).Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

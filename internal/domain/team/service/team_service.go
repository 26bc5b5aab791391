package service

import (
	"errors"

	"fanboard/internal/domain/team/model"
	"fanboard/internal/domain/team/repository"

	"gorm.io/gorm"
)

// ErrTeamNotFound 球队不存在
var ErrTeamNotFound = errors.New("team not found")

// TeamService 球队服务接口
type TeamService interface {
	GetTeams(page, limit int) ([]model.Team, int64, error)
	GetTeam(id uint) (*model.Team, error)
	// ResolveTeams 把ID列表解析为存在的球队，未知ID静默跳过
	ResolveTeams(ids []uint) ([]model.Team, error)
}

type teamService struct {
	repo repository.TeamRepository
}

func NewTeamService(repo repository.TeamRepository) TeamService {
	return &teamService{repo: repo}
}

func (s *teamService) GetTeams(page, limit int) ([]model.Team, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetList(offset, limit)
}

func (s *teamService) GetTeam(id uint) (*model.Team, error) {
	team, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) ResolveTeams(ids []uint) ([]model.Team, error) {
	return s.repo.GetByIDs(ids)
}

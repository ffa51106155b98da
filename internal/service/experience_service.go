package service

import (
	"fmt"
	"strings"

	"github.com/portfolio/internal/catalog"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/repository"
	"gorm.io/gorm"
)

// ExperienceColumns 是经历条目可编辑的列
var ExperienceColumns = []string{"role", "period", "description", "is_currently"}

// ExperienceService 维护经历列表，按录入顺序展示
type ExperienceService struct {
	*ListSection[db.Experience]
}

// NewExperienceService 构造 ExperienceService
func NewExperienceService(gdb *gorm.DB) *ExperienceService {
	repo := repository.NewListRepository[db.Experience](gdb, "id ASC", ExperienceColumns)
	return NewExperienceServiceWithRepository(repo)
}

// NewExperienceServiceWithRepository 使用给定仓储构造，便于替换存储实现
func NewExperienceServiceWithRepository(repo repository.ListRepository[db.Experience]) *ExperienceService {
	return &ExperienceService{newListSection("experiences", repo, listHooks[db.Experience]{
		defaults:  catalog.Experiences,
		idOf:      func(m db.Experience) uint { return m.ID },
		normalize: normalizeExperience,
		validate:  validateExperience,
		detach: func(m db.Experience) db.Experience {
			m.Model = gorm.Model{}
			return m
		},
	})}
}

func normalizeExperience(m db.Experience) db.Experience {
	m.Role = strings.TrimSpace(m.Role)
	m.Period = strings.TrimSpace(m.Period)
	m.Description = strings.TrimSpace(m.Description)
	return m
}

func validateExperience(m db.Experience) error {
	if m.Role == "" {
		return fmt.Errorf("%w: role is required", ErrInvalidInput)
	}
	if m.Period == "" {
		return fmt.Errorf("%w: period is required", ErrInvalidInput)
	}
	if m.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	return nil
}

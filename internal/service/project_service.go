package service

import (
	"fmt"
	"strings"

	"github.com/portfolio/internal/catalog"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/repository"
	"gorm.io/gorm"
)

// ProjectColumns 是作品条目可编辑的列
var ProjectColumns = []string{"title", "description", "link", "image_url", "category", "is_download"}

// ProjectService 维护作品列表，最新创建的排在前面
// 同一批插入的记录创建时间相同，按主键升序保持批次顺序
type ProjectService struct {
	*ListSection[db.Project]
}

// NewProjectService 构造 ProjectService
func NewProjectService(gdb *gorm.DB) *ProjectService {
	repo := repository.NewListRepository[db.Project](gdb, "created_at DESC, id ASC", ProjectColumns)
	return NewProjectServiceWithRepository(repo)
}

// NewProjectServiceWithRepository 使用给定仓储构造
func NewProjectServiceWithRepository(repo repository.ListRepository[db.Project]) *ProjectService {
	return &ProjectService{newListSection("projects", repo, listHooks[db.Project]{
		defaults:  catalog.Projects,
		idOf:      func(m db.Project) uint { return m.ID },
		normalize: normalizeProject,
		validate:  validateProject,
		detach: func(m db.Project) db.Project {
			m.Model = gorm.Model{}
			return m
		},
	})}
}

func normalizeProject(m db.Project) db.Project {
	m.Title = strings.TrimSpace(m.Title)
	m.Description = strings.TrimSpace(m.Description)
	m.Link = strings.TrimSpace(m.Link)
	m.ImageURL = strings.TrimSpace(m.ImageURL)
	m.Category = strings.ToLower(strings.TrimSpace(m.Category))
	if m.Category == "" {
		m.Category = db.ProjectCategoryIT
	}
	return m
}

func validateProject(m db.Project) error {
	if m.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	switch m.Category {
	case db.ProjectCategoryIT, db.ProjectCategoryDesign:
	default:
		return fmt.Errorf("%w: category must be %q or %q", ErrInvalidInput, db.ProjectCategoryIT, db.ProjectCategoryDesign)
	}
	return nil
}

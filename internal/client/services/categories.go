package services

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

const pathCategories = "categories/"

// CategoryService lists default and personal categories and manages the
// personal ones.
type CategoryService interface {
	List(ctx context.Context, kind models.EntryKind) ([]models.Category, error)
	Create(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	base
}

func NewCategoryService(r Requester, log logging.Logger) CategoryService {
	return &categoryService{base: newBase(r, log)}
}

// List returns all categories, or only those of kind when it is set. The
// endpoint has no type filter, so it is applied here.
func (s *categoryService) List(ctx context.Context, kind models.EntryKind) ([]models.Category, error) {
	var all []models.Category
	if err := s.r.Get(ctx, pathCategories, nil, &all); err != nil {
		return nil, s.fail(ctx, "list categories", err)
	}
	if kind == "" {
		return all, nil
	}
	out := all[:0]
	for _, c := range all {
		if c.Type == kind {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *categoryService) Create(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var c models.Category
	if err := s.r.Post(ctx, pathCategories, in, &c); err != nil {
		return nil, s.fail(ctx, "create category", err)
	}
	return &c, nil
}

// Delete removes a personal category. Default categories answer 404.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, itemPath(pathCategories, id), nil); err != nil {
		return s.fail(ctx, "delete category", err)
	}
	return nil
}

// MatchCategory finds the category a typed name refers to: an exact
// case-insensitive match first, then the closest name within a small edit
// distance. ok is false when nothing is close enough.
func MatchCategory(cats []models.Category, name string) (models.Category, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return models.Category{}, false
	}

	type scored struct {
		c    models.Category
		dist int
	}
	var candidates []scored
	for _, c := range cats {
		have := strings.ToLower(c.Name)
		if have == want {
			return c, true
		}
		candidates = append(candidates, scored{c: c, dist: levenshtein.ComputeDistance(want, have)})
	}
	if len(candidates) == 0 {
		return models.Category{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	best := candidates[0]
	if best.dist > maxCategoryDistance(want) {
		return models.Category{}, false
	}
	return best.c, true
}

func maxCategoryDistance(s string) int {
	if n := len(s) / 3; n > 1 {
		return n
	}
	return 1
}

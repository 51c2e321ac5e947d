package usecase

import (
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/nutribase/backend/internal/domain"
)

// BuildCategoryTree nests a flat, parent-referencing category list into a forest.
//
// Categories whose parent is not in the list become roots. Siblings are ordered
// by SortOrder, keeping input order on ties. Each ID is placed at most once, so
// categories caught in a parent cycle are never reachable from a root and are
// dropped. The input slice is not modified.
func BuildCategoryTree(categories []domain.Category) []domain.CategoryNode {
	present := make(map[uuid.UUID]bool, len(categories))
	for _, c := range categories {
		present[c.ID] = true
	}

	var roots []domain.Category
	children := make(map[uuid.UUID][]domain.Category)
	for _, c := range categories {
		if c.ParentID == nil || !present[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	bySortOrder := func(list []domain.Category) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].SortOrder < list[j].SortOrder })
	}
	bySortOrder(roots)
	for _, list := range children {
		bySortOrder(list)
	}

	placed := make(map[uuid.UUID]bool, len(categories))
	var build func(c domain.Category) (domain.CategoryNode, bool)
	build = func(c domain.Category) (domain.CategoryNode, bool) {
		if placed[c.ID] {
			return domain.CategoryNode{}, false
		}
		placed[c.ID] = true

		node := domain.CategoryNode{
			Category:       c,
			Children:       []domain.CategoryNode{},
			TotalFoodCount: c.FoodCount,
		}
		for _, child := range children[c.ID] {
			childNode, ok := build(child)
			if !ok {
				continue
			}
			node.Children = append(node.Children, childNode)
			node.TotalFoodCount += childNode.TotalFoodCount
		}
		return node, true
	}

	tree := make([]domain.CategoryNode, 0, len(roots))
	for _, root := range roots {
		if node, ok := build(root); ok {
			tree = append(tree, node)
		}
	}

	if detached := len(present) - len(placed); detached > 0 {
		log.Printf("[Category] %d categories dropped from tree: parent references form a cycle", detached)
	}

	return tree
}

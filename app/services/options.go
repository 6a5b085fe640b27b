package services

import (
	"database/sql"
	"sort"

	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/models"
)

// OptionNode is one node of the nested campus→faculty→course tree.
type OptionNode struct {
	*models.OptionItem
	Children []*OptionNode `json:"children,omitempty"`
}

// OptionSet is the in-memory view of the active reference data: an id
// lookup plus the assembled tree and the flat provider list.
type OptionSet struct {
	byID      map[string]*models.OptionItem
	Campuses  []*OptionNode
	Providers []*models.OptionItem
}

// LoadOptionSet reads the active reference data in one query and builds
// the option set.
func LoadOptionSet(db *sql.DB) (*OptionSet, error) {
	items, err := database.GetActiveOptionItems(db)
	if err != nil {
		return nil, err
	}
	return BuildOptionSet(items), nil
}

// BuildOptionSet assembles the nested tree and provider list from the
// flat parent-referencing rows. Pure; no I/O.
func BuildOptionSet(items []*models.OptionItem) *OptionSet {
	set := &OptionSet{byID: make(map[string]*models.OptionItem, len(items))}
	nodes := make(map[string]*OptionNode, len(items))

	for _, item := range items {
		set.byID[item.ID] = item
		if item.Kind == models.OptionSupportProvider {
			set.Providers = append(set.Providers, item)
			continue
		}
		nodes[item.ID] = &OptionNode{OptionItem: item}
	}

	for _, node := range nodes {
		switch node.Kind {
		case models.OptionCampus:
			set.Campuses = append(set.Campuses, node)
		case models.OptionFaculty, models.OptionCourse:
			if node.ParentID == nil {
				continue // orphan, not reachable from the tree
			}
			if parent, ok := nodes[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
			}
		}
	}

	sortNodes(set.Campuses)
	for _, campus := range set.Campuses {
		sortNodes(campus.Children)
		for _, faculty := range campus.Children {
			sortNodes(faculty.Children)
		}
	}
	sort.Slice(set.Providers, func(i, j int) bool {
		if set.Providers[i].SortOrder != set.Providers[j].SortOrder {
			return set.Providers[i].SortOrder < set.Providers[j].SortOrder
		}
		return set.Providers[i].Label < set.Providers[j].Label
	})

	return set
}

func sortNodes(nodes []*OptionNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return nodes[i].Label < nodes[j].Label
	})
}

// Get returns the active item with the given id.
func (s *OptionSet) Get(id string) (*models.OptionItem, bool) {
	item, ok := s.byID[id]
	return item, ok
}

// ValidateCoursePath checks that the course's parent is the stated
// faculty and the faculty's parent is the stated campus. Each node must
// exist, be active and be of the right kind; the chain itself must hold
// even when every node individually exists.
func (s *OptionSet) ValidateCoursePath(campusID, facultyID, courseID string) *Error {
	campus, ok := s.byID[campusID]
	if !ok || campus.Kind != models.OptionCampus {
		return ConflictError(CodeInvalidPath, "unknown campus")
	}
	faculty, ok := s.byID[facultyID]
	if !ok || faculty.Kind != models.OptionFaculty {
		return ConflictError(CodeInvalidPath, "unknown faculty")
	}
	course, ok := s.byID[courseID]
	if !ok || course.Kind != models.OptionCourse {
		return ConflictError(CodeInvalidCourse, "unknown course")
	}

	if faculty.ParentID == nil || *faculty.ParentID != campus.ID {
		return ConflictError(CodeInvalidPath, "faculty does not belong to the stated campus")
	}
	if course.ParentID == nil || *course.ParentID != faculty.ID {
		return ConflictError(CodeInvalidCourse, "course does not belong to the stated faculty")
	}
	return nil
}

// ValidateSupportProviders checks membership of every selected id in the
// active provider set.
func (s *OptionSet) ValidateSupportProviders(ids []string) *Error {
	for _, id := range ids {
		item, ok := s.byID[id]
		if !ok || item.Kind != models.OptionSupportProvider {
			return ConflictError(CodeInvalidSupportProvider, "unknown support provider "+id)
		}
	}
	return nil
}

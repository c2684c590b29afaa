package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
	"gorm.io/gorm"
)

// Namespaces and model names addressable through the resolver. The set of
// resolvable kinds is closed and known at build time; polymorphic references
// are looked up in this table rather than through reflection.
const (
	NamespaceCatalog = "catalog"
	NamespaceNews    = "news"
	NamespaceQuizzes = "quizzes"

	ModelLandPlot        = "landplot"
	ModelGenericProperty = "genericproperty"
	ModelPropertyType    = "propertytype"
	ModelNewsArticle     = "newsarticle"
	ModelQuiz            = "quiz"
)

// entityKind describes one resolvable entity type: where its rows live,
// whether it carries a slug, and whether it carries a view counter.
type entityKind struct {
	namespace string
	model     string
	table     string
	hasSlug   bool
	hasViews  bool
	newEntity func() any
}

var entityKinds = []entityKind{
	{NamespaceCatalog, ModelLandPlot, "land_plots", true, true, func() any { return &models.LandPlot{} }},
	{NamespaceCatalog, ModelGenericProperty, "generic_properties", true, true, func() any { return &models.GenericProperty{} }},
	{NamespaceCatalog, ModelPropertyType, "property_types", true, false, func() any { return &models.PropertyType{} }},
	{NamespaceNews, ModelNewsArticle, "news_articles", false, true, func() any { return &models.NewsArticle{} }},
	{NamespaceQuizzes, ModelQuiz, "quizzes", true, false, func() any { return &models.Quiz{} }},
}

func lookupKind(namespace, model string) (entityKind, bool) {
	for _, kind := range entityKinds {
		if kind.namespace == namespace && kind.model == model {
			return kind, true
		}
	}
	return entityKind{}, false
}

// ResolvedEntity is the outcome of a successful resolution: the concrete
// kind and the primary key of the matched row.
type ResolvedEntity struct {
	Namespace string
	Model     string
	Table     string
	ID        uint64
}

// ResolveViewTarget resolves a (namespace, model, identifier) triple to an
// entity that carries a view counter.
//
// All-digit identifiers are always interpreted as primary keys, even when a
// slug happens to be all-digit too; otherwise the kind must expose a slug.
// Unregistered kinds, kinds without a view counter and identifiers that fit
// neither lookup are invalid requests; an unmatched identifier is not found.
func ResolveViewTarget(db *gorm.DB, namespace, model, identifier string) (*ResolvedEntity, error) {
	kind, ok := lookupKind(namespace, model)
	if !ok {
		return nil, types.NewInvalidRequestError(fmt.Sprintf("unknown content type: %s.%s", namespace, model))
	}
	if !kind.hasViews {
		return nil, types.NewInvalidRequestError(fmt.Sprintf("%s.%s has no view counter", namespace, model))
	}
	return resolveIdentifier(db, kind, identifier)
}

func resolveIdentifier(db *gorm.DB, kind entityKind, identifier string) (*ResolvedEntity, error) {
	var row struct{ ID uint64 }
	query := db.Table(kind.table).Select("id")

	if isAllDigits(identifier) {
		// All-digit identifiers are always primary keys; one that
		// overflows uint64 cannot match any row and never falls back
		// to a slug lookup.
		id, err := strconv.ParseUint(identifier, 10, 64)
		if err != nil {
			return nil, types.NewNotFoundError(
				fmt.Sprintf("%s '%s' not found", kind.model, identifier))
		}
		query = query.Where("id = ?", id)
	} else if kind.hasSlug {
		query = query.Where("slug = ?", identifier)
	} else {
		return nil, types.NewInvalidRequestError("unsupported identifier format")
	}

	if err := query.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(
				fmt.Sprintf("%s '%s' not found", kind.model, identifier))
		}
		return nil, err
	}

	return &ResolvedEntity{
		Namespace: kind.namespace,
		Model:     kind.model,
		Table:     kind.table,
		ID:        row.ID,
	}, nil
}

// entityExists reports whether the polymorphic triple points at a live row
// of the recorded kind. An unregistered kind is an invalid request, never a
// fallthrough to some other table.
func entityExists(db *gorm.DB, namespace, model string, objectID uint64) (bool, error) {
	kind, ok := lookupKind(namespace, model)
	if !ok {
		return false, types.NewInvalidRequestError(fmt.Sprintf("unknown content type: %s.%s", namespace, model))
	}

	var count int64
	if err := db.Table(kind.table).Where("id = ?", objectID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// fetchEntity loads the full row behind a triple, or nil when the owner is
// gone. The type tag is honored strictly: a recycled id in another table
// never resolves.
func fetchEntity(db *gorm.DB, namespace, model string, objectID uint64) (any, error) {
	kind, ok := lookupKind(namespace, model)
	if !ok {
		return nil, types.NewInvalidRequestError(fmt.Sprintf("unknown content type: %s.%s", namespace, model))
	}

	entity := kind.newEntity()
	err := db.First(entity, objectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package services

import (
	"testing"

	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
)

func TestResolveViewTargetNumericFirst(t *testing.T) {
	db := setupTestDB(t)
	pt := testPropertyType(t, db, "Дом", "{}")
	location := testLocation(t, db)

	first := createTestProperty(t, db, pt, location, "Первый", "{}")

	// A second row whose slug is all digits. Resolution of "<first.ID>"
	// must still hit the primary key, not this slug.
	decoy := models.GenericProperty{
		PropertyTypeID: pt.ID,
		LocationID:     location.ID,
		Title:          "Цифровой",
		Slug:           "1",
		Price:          first.Price,
		ListingStatus:  models.ListingStatusPublished,
		Attributes:     []byte("{}"),
	}
	if err := db.Create(&decoy).Error; err != nil {
		t.Fatalf("Failed to create decoy: %v", err)
	}

	target, err := ResolveViewTarget(db, NamespaceCatalog, ModelGenericProperty, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.ID != first.ID {
		t.Errorf("all-digit identifier must resolve by primary key: got id %d, want %d", target.ID, first.ID)
	}

	bySlug, err := ResolveViewTarget(db, NamespaceCatalog, ModelGenericProperty, first.Slug)
	if err != nil || bySlug.ID != first.ID {
		t.Fatalf("slug resolution failed: %v", err)
	}
}

func TestResolveViewTargetRejections(t *testing.T) {
	db := setupTestDB(t)

	_, err := ResolveViewTarget(db, "catalog", "spaceship", "1")
	if !types.IsKind(err, types.KindInvalidRequest) {
		t.Errorf("unknown kind: expected invalid request, got %v", err)
	}

	// Property types resolve for associations but carry no view counter.
	_, err = ResolveViewTarget(db, NamespaceCatalog, ModelPropertyType, "1")
	if !types.IsKind(err, types.KindInvalidRequest) {
		t.Errorf("no view counter: expected invalid request, got %v", err)
	}

	// News articles have no slug, so a non-numeric identifier cannot resolve.
	_, err = ResolveViewTarget(db, NamespaceNews, ModelNewsArticle, "some-slug")
	if !types.IsKind(err, types.KindInvalidRequest) {
		t.Errorf("slugless kind: expected invalid request, got %v", err)
	}

	_, err = ResolveViewTarget(db, NamespaceCatalog, ModelGenericProperty, "999")
	if !types.IsKind(err, types.KindNotFound) {
		t.Errorf("missing row: expected not found, got %v", err)
	}
}

func TestIncrementViewCount(t *testing.T) {
	db := setupTestDB(t)
	pt := testPropertyType(t, db, "Дом", "{}")
	location := testLocation(t, db)
	view := createTestProperty(t, db, pt, location, "Дом", "{}")

	for i := 0; i < 3; i++ {
		if err := IncrementViewCount(db, NamespaceCatalog, ModelGenericProperty, view.Slug); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var prop models.GenericProperty
	if err := db.First(&prop, view.ID).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prop.ViewCount != 3 {
		t.Errorf("expected view count 3, got %d", prop.ViewCount)
	}

	// The update never touches other columns.
	if prop.Title != view.Title {
		t.Errorf("title changed by view increment: %q", prop.Title)
	}
}

func TestRequestCountsZeroFilled(t *testing.T) {
	db := setupTestDB(t)

	if _, err := CreateRequest(db, RequestInput{
		Name: "Иван", Phone: "+79000000000", RequestType: models.RequestTypeContact,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byType, err := RequestsByType(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byType[models.RequestTypeContact] != 1 {
		t.Errorf("expected one contact request, got %d", byType[models.RequestTypeContact])
	}
	if count, ok := byType[models.RequestTypeQuiz]; !ok || count != 0 {
		t.Errorf("expected quiz zero-filled, got %v (present %v)", count, ok)
	}

	byStatus, err := RequestsByStatus(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byStatus[models.RequestStatusNew] != 1 {
		t.Errorf("expected one new request, got %d", byStatus[models.RequestStatusNew])
	}
	if count, ok := byStatus[models.RequestStatusRejected]; !ok || count != 0 {
		t.Errorf("expected rejected zero-filled, got %v (present %v)", count, ok)
	}
}

func TestResolveViewTargetOverlongNumericIdentifier(t *testing.T) {
	db := setupTestDB(t)
	pt := testPropertyType(t, db, "Дом", "{}")
	location := testLocation(t, db)

	// A slug that is all digits but too large for a primary key. The
	// identifier still resolves as a key, so it is not found rather than
	// falling back to this slug.
	decoy := models.GenericProperty{
		PropertyTypeID: pt.ID,
		LocationID:     location.ID,
		Title:          "Переполнение",
		Slug:           "111111111111111111111",
		Price:          *decPtr("1"),
		ListingStatus:  models.ListingStatusPublished,
		Attributes:     []byte("{}"),
	}
	if err := db.Create(&decoy).Error; err != nil {
		t.Fatalf("Failed to create decoy: %v", err)
	}

	_, err := ResolveViewTarget(db, NamespaceCatalog, ModelGenericProperty, decoy.Slug)
	if !types.IsKind(err, types.KindNotFound) {
		t.Errorf("overlong numeric identifier: expected not found, got %v", err)
	}
}

package services

import (
	"testing"

	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
)

func TestAttachMediaValidation(t *testing.T) {
	db := setupTestDB(t)

	_, err := AttachMedia(db, MediaInput{Namespace: NamespaceCatalog, ModelName: ModelLandPlot})
	if !types.IsKind(err, types.KindInvalidRequest) {
		t.Errorf("partial triple: expected invalid request, got %v", err)
	}

	_, err = AttachMedia(db, MediaInput{Namespace: "catalog", ModelName: "spaceship", ObjectID: 1})
	if !types.IsKind(err, types.KindInvalidRequest) {
		t.Errorf("unknown kind: expected invalid request, got %v", err)
	}

	_, err = AttachMedia(db, MediaInput{Namespace: NamespaceCatalog, ModelName: ModelLandPlot, ObjectID: 42})
	if !types.IsKind(err, types.KindNotFound) {
		t.Errorf("missing owner: expected not found, got %v", err)
	}
}

func TestMediaOrderingAndDefaults(t *testing.T) {
	db := setupTestDB(t)
	pt := testPropertyType(t, db, "Дом", "{}")
	location := testLocation(t, db)
	prop := createTestProperty(t, db, pt, location, "Дом", "{}")

	uploads := []MediaInput{
		{ObjectID: prop.ID, FileName: "second.jpg", SortOrder: 2},
		{ObjectID: prop.ID, FileName: "first.jpg", SortOrder: 1, IsMain: true},
		{ObjectID: prop.ID, FileName: "plan.pdf", SortOrder: 3, MediaType: models.MediaTypePlan},
	}
	for _, input := range uploads {
		input.Namespace = NamespaceCatalog
		input.ModelName = ModelGenericProperty
		media, err := AttachMedia(db, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if input.MediaType == "" && media.MediaType != models.MediaTypeImage {
			t.Errorf("expected image default, got %q", media.MediaType)
		}
	}

	list, err := ListMedia(db, NamespaceCatalog, ModelGenericProperty, prop.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 media files, got %d", len(list))
	}
	if list[0].FileName != "first.jpg" || list[2].FileName != "plan.pdf" {
		t.Errorf("sort order not honored: %q, %q, %q", list[0].FileName, list[1].FileName, list[2].FileName)
	}
	if !list[0].IsMain {
		t.Error("main flag lost")
	}
}

func TestResolveMediaOwnerGone(t *testing.T) {
	db := setupTestDB(t)
	pt := testPropertyType(t, db, "Дом", "{}")
	location := testLocation(t, db)
	prop := createTestProperty(t, db, pt, location, "Дом", "{}")

	media, err := AttachMedia(db, MediaInput{
		Namespace: NamespaceCatalog,
		ModelName: ModelGenericProperty,
		ObjectID:  prop.ID,
		FileName:  "photo.jpg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	owner, err := ResolveMediaOwner(db, media)
	if err != nil || owner == nil {
		t.Fatalf("expected live owner, got %v / %v", owner, err)
	}

	// Delete the owner under the media record's feet.
	if err := db.Delete(&models.GenericProperty{}, prop.ID).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	owner, err = ResolveMediaOwner(db, media)
	if err != nil {
		t.Fatalf("gone owner must not be an error: %v", err)
	}
	if owner != nil {
		t.Errorf("expected nil owner for deleted record, got %v", owner)
	}
}

func TestMediaTypeTagIsolation(t *testing.T) {
	db := setupTestDB(t)
	pt := testPropertyType(t, db, "Дом", "{}")
	location := testLocation(t, db)
	prop := createTestProperty(t, db, pt, location, "Дом", "{}")

	article := models.NewsArticle{Title: "Новость", Content: "Текст"}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := AttachMedia(db, MediaInput{
		Namespace: NamespaceNews,
		ModelName: ModelNewsArticle,
		ObjectID:  article.ID,
		FileName:  "cover.jpg",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same numeric id, different type tag: listings see nothing.
	list, err := ListMedia(db, NamespaceCatalog, ModelGenericProperty, prop.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("type tag leaked: %v", list)
	}
}

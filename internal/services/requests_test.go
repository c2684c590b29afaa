package services

import (
	"testing"

	"github.com/zemlex/estate-catalog/internal/models"
	"github.com/zemlex/estate-catalog/internal/types"
)

func TestCreateRequestTripleAllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	pt := testPropertyType(t, db, "Дом", "{}")
	location := testLocation(t, db)
	prop := createTestProperty(t, db, pt, location, "Дом", "{}")

	// No reference at all is fine.
	plain, err := CreateRequest(db, RequestInput{
		Name: "Анна", Phone: "+79001112233", RequestType: models.RequestTypeContact,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plain.Namespace != nil || plain.ObjectID != nil {
		t.Error("expected empty reference")
	}
	if plain.Status != models.RequestStatusNew {
		t.Errorf("expected status new, got %q", plain.Status)
	}

	// A partial triple is rejected before touching the store.
	ns := NamespaceCatalog
	_, err = CreateRequest(db, RequestInput{
		Name: "Анна", Phone: "+79001112233", RequestType: models.RequestTypeListing,
		Namespace: &ns,
	})
	if !types.IsKind(err, types.KindInvalidRequest) {
		t.Fatalf("partial triple: expected invalid request, got %v", err)
	}

	// A complete triple must point at a live row.
	model := ModelGenericProperty
	missing := uint64(999)
	missingFlex := types.FlexUint64(missing)
	_, err = CreateRequest(db, RequestInput{
		Name: "Анна", Phone: "+79001112233", RequestType: models.RequestTypeListing,
		Namespace: &ns, Model: &model, ObjectID: &missingFlex,
	})
	if !types.IsKind(err, types.KindNotFound) {
		t.Fatalf("dead reference: expected not found, got %v", err)
	}

	objectID := types.FlexUint64(prop.ID)
	linked, err := CreateRequest(db, RequestInput{
		Name: "Анна", Phone: "+79001112233", RequestType: models.RequestTypeListing,
		Namespace: &ns, Model: &model, ObjectID: &objectID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if linked.ObjectID == nil || *linked.ObjectID != prop.ID {
		t.Errorf("reference not stored: %+v", linked)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateRequest(db, RequestInput{Phone: "+7900", RequestType: models.RequestTypeContact})
	if !types.IsKind(err, types.KindValidation) {
		t.Errorf("missing name: expected validation error, got %v", err)
	}

	_, err = CreateRequest(db, RequestInput{Name: "А", Phone: "+7900", RequestType: "spam"})
	if !types.IsKind(err, types.KindValidation) {
		t.Errorf("bad type: expected validation error, got %v", err)
	}
}

func TestRequestWorkflowAndComments(t *testing.T) {
	db := setupTestDB(t)

	req, err := CreateRequest(db, RequestInput{
		Name: "Пётр", Phone: "+79005556677", RequestType: models.RequestTypeQuiz,
		QuizAnswers: []byte(`{"1": "Дом", "2": "до 5 млн"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := UpdateRequestStatus(db, req.ID, "unknown"); !types.IsKind(err, types.KindValidation) {
		t.Errorf("bad status: expected validation error, got %v", err)
	}

	updated, err := UpdateRequestStatus(db, req.ID, models.RequestStatusProcessing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.RequestStatusProcessing {
		t.Errorf("status not updated: %q", updated.Status)
	}

	if _, err := AddAdminComment(db, req.ID, "manager", "Перезвонить завтра"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := AddAdminComment(db, 999, "manager", "x"); !types.IsKind(err, types.KindNotFound) {
		t.Errorf("missing request: expected not found, got %v", err)
	}

	loaded, err := GetRequest(db, req.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded.AdminComments) != 1 || loaded.AdminComments[0].Comment != "Перезвонить завтра" {
		t.Errorf("comments not loaded: %+v", loaded.AdminComments)
	}
}

func TestResolveRequestOwnerGone(t *testing.T) {
	db := setupTestDB(t)
	pt := testPropertyType(t, db, "Дом", "{}")
	location := testLocation(t, db)
	prop := createTestProperty(t, db, pt, location, "Дом", "{}")

	ns := NamespaceCatalog
	model := ModelGenericProperty
	objectID := types.FlexUint64(prop.ID)
	req, err := CreateRequest(db, RequestInput{
		Name: "Анна", Phone: "+79001112233", RequestType: models.RequestTypeListing,
		Namespace: &ns, Model: &model, ObjectID: &objectID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := DeleteGenericProperty(db, prop.Slug); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	owner, err := ResolveRequestOwner(db, req)
	if err != nil {
		t.Fatalf("gone owner must not be an error: %v", err)
	}
	if owner != nil {
		t.Errorf("expected nil owner after deletion, got %v", owner)
	}
}

func TestListRequestsFilters(t *testing.T) {
	db := setupTestDB(t)

	for _, input := range []RequestInput{
		{Name: "Анна", Phone: "+79001", RequestType: models.RequestTypeContact},
		{Name: "Пётр", Phone: "+79002", RequestType: models.RequestTypeQuiz},
		{Name: "Мария", Phone: "+79003", RequestType: models.RequestTypeQuiz},
	} {
		if _, err := CreateRequest(db, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	_, total, err := ListRequests(db, ListRequestsQuery{RequestType: models.RequestTypeQuiz})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 quiz requests, got %d", total)
	}

	_, total, err = ListRequests(db, ListRequestsQuery{Search: "+79003"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Errorf("expected phone search to match one request, got %d", total)
	}
}

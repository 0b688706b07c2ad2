package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/rcsuite/console/contactimport"
	"github.com/rcsuite/console/models"
	"github.com/rcsuite/console/repository"
	"github.com/stretchr/testify/assert"
)

func rosterContact(id uint, number string) *models.Contact {
	return &models.Contact{ID: id, Number: number}
}

func TestDuplicateContactIDs_KeepsFirstOccurrence(t *testing.T) {
	contacts := []*models.Contact{
		rosterContact(1, "+919876543210"),
		rosterContact(2, "+919876543211"),
		rosterContact(3, "+919876543210"),
		rosterContact(4, "+919876543210"),
		rosterContact(5, "+919876543211"),
	}

	ids := duplicateContactIDs(contacts, contactimport.DefaultCountryPlan)
	assert.Equal(t, []uint{3, 4, 5}, ids)
}

func TestDuplicateContactIDs_NoDuplicates(t *testing.T) {
	contacts := []*models.Contact{
		rosterContact(1, "+919876543210"),
		rosterContact(2, "+919876543211"),
	}

	ids := duplicateContactIDs(contacts, contactimport.DefaultCountryPlan)
	assert.Empty(t, ids)
}

func TestDuplicateContactIDs_IgnoresPartialEdits(t *testing.T) {
	// Two records caught mid-edit can hold the same partial value. They are
	// distinct entries in the making, not duplicates of each other.
	contacts := []*models.Contact{
		rosterContact(1, "98765"),
		rosterContact(2, "98765"),
		rosterContact(3, "+919876543210"),
		rosterContact(4, "+919876543210"),
		rosterContact(5, ""),
		rosterContact(6, ""),
	}

	ids := duplicateContactIDs(contacts, contactimport.DefaultCountryPlan)
	assert.Equal(t, []uint{4}, ids)
}

func TestDuplicateContactIDs_PartialDoesNotShadowCanonical(t *testing.T) {
	// A partial value that happens to be a prefix of a canonical number must
	// not count as its first occurrence.
	contacts := []*models.Contact{
		rosterContact(1, "+9198765432"),
		rosterContact(2, "+919876543210"),
		rosterContact(3, "+919876543210"),
	}

	ids := duplicateContactIDs(contacts, contactimport.DefaultCountryPlan)
	assert.Equal(t, []uint{3}, ids)
}

// removalRepoStub covers the two calls the delayed-removal path makes.
type removalRepoStub struct {
	repository.ContactRepository
	contact *models.Contact
	deleted chan uint
}

func (s *removalRepoStub) ByID(ctx context.Context, id uint) (*models.Contact, error) {
	return s.contact, nil
}

func (s *removalRepoStub) Delete(ctx context.Context, id uint) error {
	s.deleted <- id
	return nil
}

func TestScheduleRemoval_DeletesUnchangedRecord(t *testing.T) {
	stub := &removalRepoStub{
		contact: rosterContact(12, "+919876543210"),
		deleted: make(chan uint, 1),
	}
	flow := &ContactFlowImpl{contactRepo: stub, removalDelay: time.Millisecond}

	flow.scheduleRemoval(12, "+919876543210")

	select {
	case id := <-stub.deleted:
		assert.Equal(t, uint(12), id)
	case <-time.After(2 * time.Second):
		t.Fatal("record was not removed after the delay")
	}
}

func TestScheduleRemoval_KeepsRecordEditedDuringDelay(t *testing.T) {
	// The user replaced the number before the delay fired. The re-check sees
	// a different stored number and leaves the record alone.
	stub := &removalRepoStub{
		contact: rosterContact(12, "+919876500000"),
		deleted: make(chan uint, 1),
	}
	flow := &ContactFlowImpl{contactRepo: stub, removalDelay: time.Millisecond}

	flow.scheduleRemoval(12, "+919876543210")

	select {
	case <-stub.deleted:
		t.Fatal("edited record must not be removed")
	case <-time.After(100 * time.Millisecond):
	}
}

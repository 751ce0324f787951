package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func contactTestItem(available bool) *Item {
	ownerID := uuid.New()

	return &Item{
		ID:          uuid.New(),
		UserID:      ownerID,
		IsAvailable: available,
		Owner: &User{
			ID: ownerID,
			Profile: &Profile{
				UserID:             ownerID,
				Phone:              "+12025550123",
				WhatsApp:           "+12025550123",
				Instagram:          "giver",
				ContactPreferences: DefaultContactPreferences(),
			},
		},
	}
}

func TestVisibleContacts_AuthenticatedViewerSeesAll(t *testing.T) {
	item := contactTestItem(true)
	viewer := uuid.New()

	card := VisibleContacts(&viewer, item)

	assert.Equal(t, "+12025550123", card.Phone)
	assert.Equal(t, "+12025550123", card.WhatsApp)
	assert.Equal(t, "giver", card.Instagram)
}

func TestVisibleContacts_AnonymousViewerSeesNothing(t *testing.T) {
	card := VisibleContacts(nil, contactTestItem(true))

	assert.True(t, card.Empty())
}

func TestVisibleContacts_OwnerSeesNothing(t *testing.T) {
	item := contactTestItem(true)

	card := VisibleContacts(&item.UserID, item)

	assert.True(t, card.Empty())
}

func TestVisibleContacts_ClaimedItemHidesContacts(t *testing.T) {
	item := contactTestItem(false)
	viewer := uuid.New()

	card := VisibleContacts(&viewer, item)

	assert.True(t, card.Empty())
}

func TestVisibleContacts_ChannelsGatedIndependently(t *testing.T) {
	item := contactTestItem(true)
	item.Owner.Profile.ContactPreferences = ContactPreferences{
		ShowPhone:     false,
		ShowWhatsApp:  true,
		ShowInstagram: false,
	}
	viewer := uuid.New()

	card := VisibleContacts(&viewer, item)

	assert.Empty(t, card.Phone)
	assert.Equal(t, "+12025550123", card.WhatsApp)
	assert.Empty(t, card.Instagram)
	assert.False(t, card.Empty())
}

func TestVisibleContacts_MissingProfileYieldsEmptyCard(t *testing.T) {
	item := contactTestItem(true)
	item.Owner = nil
	viewer := uuid.New()

	assert.True(t, VisibleContacts(&viewer, item).Empty())
}

func TestVisibleContacts_BlankChannelsStayBlank(t *testing.T) {
	item := contactTestItem(true)
	item.Owner.Profile.Phone = ""
	item.Owner.Profile.WhatsApp = ""
	item.Owner.Profile.Instagram = ""
	viewer := uuid.New()

	assert.True(t, VisibleContacts(&viewer, item).Empty())
}

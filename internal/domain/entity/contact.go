package entity

import "github.com/google/uuid"

// ContactCard is the set of contact channels revealed to a viewer of an item.
// An empty string means the channel is hidden for this viewer.
type ContactCard struct {
	Phone     string
	WhatsApp  string
	Instagram string
}

// Empty reports whether no channel is visible.
func (c ContactCard) Empty() bool {
	return c.Phone == "" && c.WhatsApp == "" && c.Instagram == ""
}

// VisibleContacts computes which of the owner's contact channels a viewer may
// see. A channel is shown only when all of the following hold: the viewer is
// authenticated, the viewer is not the owner, the item is still available,
// and the owner's preference flag for that channel is set. Channels are gated
// independently; failing one condition hides only the channels it affects.
func VisibleContacts(viewer *uuid.UUID, item *Item) ContactCard {
	if viewer == nil || item == nil || !item.IsAvailable {
		return ContactCard{}
	}
	if *viewer == item.UserID {
		return ContactCard{}
	}

	owner := item.Owner
	if owner == nil || owner.Profile == nil {
		return ContactCard{}
	}

	profile := owner.Profile
	prefs := profile.ContactPreferences

	var card ContactCard
	if prefs.ShowPhone {
		card.Phone = profile.Phone
	}
	if prefs.ShowWhatsApp {
		card.WhatsApp = profile.WhatsApp
	}
	if prefs.ShowInstagram {
		card.Instagram = profile.Instagram
	}

	return card
}

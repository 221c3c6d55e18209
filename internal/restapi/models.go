package restapi

import "github.com/vitorsousa/repcal/internal"

type eventPayload struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Location     string              `json:"location"`
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate"`
	RepublicID   int64               `json:"republicId"`
	RepublicName string              `json:"republicName"`
	CreatorID    string              `json:"creatorId"`
	CreatorName  string              `json:"creatorName"`
	Invitations  []invitationPayload `json:"invitations"`
	IsHappening  bool                `json:"isHappening"`
	IsFinished   bool                `json:"isFinished"`
	CreatedAt    string              `json:"createdAt"`
}

type invitationPayload struct {
	UserID         string  `json:"userId"`
	UserName       string  `json:"userName"`
	UserEmail      string  `json:"userEmail"`
	ProfilePicture *string `json:"userProfilePicture"`
	Status         string  `json:"status"`
}

// Convert builds the domain event. A missing or null invitation list
// on the wire becomes an empty one; nothing downstream checks for nil.
func (p eventPayload) Convert() *internal.Event {
	invs := make([]internal.Invitation, 0, len(p.Invitations))
	for _, inv := range p.Invitations {
		invs = append(invs, internal.Invitation{
			UserID:         inv.UserID,
			UserName:       inv.UserName,
			UserEmail:      inv.UserEmail,
			ProfilePicture: inv.ProfilePicture,
			Status:         internal.InvitationStatus(inv.Status),
		})
	}
	return &internal.Event{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		StartsAt:     p.StartDate,
		EndsAt:       p.EndDate,
		RepublicID:   p.RepublicID,
		RepublicName: p.RepublicName,
		CreatorID:    p.CreatorID,
		CreatorName:  p.CreatorName,
		Invitations:  invs,
		IsHappening:  p.IsHappening,
		IsFinished:   p.IsFinished,
		CreatedAt:    p.CreatedAt,
	}
}

type formPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	RepublicID  int64  `json:"republicId"`
}

func newFormPayload(form *internal.EventForm) formPayload {
	return formPayload{
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		StartDate:   form.StartsAt,
		EndDate:     form.EndsAt,
		RepublicID:  form.RepublicID,
	}
}

type invitePayload struct {
	UserIDs []string `json:"userIds"`
}

type respondPayload struct {
	Status string `json:"status"`
}

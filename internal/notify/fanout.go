// Package notify turns a single platform event into one notification row per
// interested recipient.
package notify

import (
	"fmt"

	"github.com/campuswall/backend/internal/models"
	"github.com/campuswall/backend/internal/repositories"
)

// GuestContact identifies an open request that has no registered requester,
// only a guest email. Guest contacts are handed back to the caller for email
// delivery; they never become in-app notifications.
type GuestContact struct {
	RequestID uint   `json:"request_id"`
	Email     string `json:"email"`
}

// MatchResult is the outcome of suggestion matching. A request appears in
// exactly one of the two lists, never both.
type MatchResult struct {
	Notified    []models.Notification `json:"notified"`
	GuestEmails []GuestContact        `json:"guest_emails"`
}

// Fanout creates notification rows for admin alerts and suggestion matches.
type Fanout struct {
	userRepository         repositories.UserRepository
	requestRepository      repositories.RequestRepository
	notificationRepository repositories.NotificationRepository
}

// NewFanout creates a new Fanout
func NewFanout(userRepo repositories.UserRepository, requestRepo repositories.RequestRepository, notifRepo repositories.NotificationRepository) *Fanout {
	return &Fanout{
		userRepository:         userRepo,
		requestRepository:      requestRepo,
		notificationRepository: notifRepo,
	}
}

// NotifyAdmins creates one identical notification per admin user in a single
// batch write and returns how many admins were notified. Zero admins is a
// no-op, not an error.
func (f *Fanout) NotifyAdmins(notifType, title, body, link string) (int, error) {
	admins, err := f.userRepository.GetAdmins()
	if err != nil {
		return 0, err
	}
	if len(admins) == 0 {
		return 0, nil
	}

	notifications := make([]models.Notification, 0, len(admins))
	for _, admin := range admins {
		notifications = append(notifications, models.Notification{
			RecipientID: admin.ID,
			Type:        notifType,
			Title:       title,
			Body:        body,
			Link:        link,
		})
	}

	if err := f.notificationRepository.CreateNotifications(notifications); err != nil {
		return 0, err
	}
	return len(admins), nil
}

// NotifyMatchingRequests finds every open item request in the listing's
// category and partitions the owners: registered requesters get an in-app
// notification (written as one batch after the enumeration completes), guest
// requests are returned as contacts for the email collaborator.
func (f *Fanout) NotifyMatchingRequests(listingID uint, listingTitle string, categoryID uint) (MatchResult, error) {
	requests, err := f.requestRepository.GetOpenByCategory(categoryID)
	if err != nil {
		return MatchResult{}, err
	}

	link := fmt.Sprintf("/marketplace/listings/%d", listingID)
	result := MatchResult{}
	for _, request := range requests {
		if request.HasRequester() {
			result.Notified = append(result.Notified, models.Notification{
				RecipientID: *request.RequesterID,
				Type:        models.NotificationSuggestionMatch,
				Title:       "A new listing matches your request",
				Body:        listingTitle,
				Link:        link,
			})
			continue
		}
		if request.GuestEmail != "" {
			result.GuestEmails = append(result.GuestEmails, GuestContact{
				RequestID: request.ID,
				Email:     request.GuestEmail,
			})
		}
	}

	if err := f.notificationRepository.CreateNotifications(result.Notified); err != nil {
		return MatchResult{}, err
	}
	return result, nil
}

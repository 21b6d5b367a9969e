package models

import (
	"errors"
	"strings"
	"time"
)

type RequestStatus string

const (
	RequestStatusNew       RequestStatus = "new"       // Submitted, nobody looked yet
	RequestStatusInReview  RequestStatus = "in_review" // An artisan is assessing it
	RequestStatusQuoted    RequestStatus = "quoted"    // Price sent to the customer
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusDeclined  RequestStatus = "declined"
)

var ErrInvalidRequestStatus = errors.New("invalid request status")

func ParseRequestStatus(status string) (RequestStatus, error) {
	switch s := RequestStatus(strings.ToLower(strings.TrimSpace(status))); s {
	case RequestStatusNew, RequestStatusInReview, RequestStatusQuoted,
		RequestStatusCompleted, RequestStatusDeclined:
		return s, nil
	default:
		return "", ErrInvalidRequestStatus
	}
}

// CustomBagRequest is a commission for a made-to-order bag.
type CustomBagRequest struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	BagType   string        `json:"bagType"`
	Size      string        `json:"size,omitempty"`
	Material  string        `json:"material,omitempty"`
	Color     string        `json:"color,omitempty"`
	Budget    string        `json:"budget,omitempty"`
	Details   string        `json:"details"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (r CustomBagRequest) Key() string { return r.ID }

// MissingFields lists the required fields left blank.
func (r CustomBagRequest) MissingFields() []string {
	return missing(map[string]string{
		"name":    r.Name,
		"email":   r.Email,
		"bagType": r.BagType,
		"details": r.Details,
	}, "name", "email", "bagType", "details")
}

// RepairRequest asks the atelier to restore an existing bag.
type RepairRequest struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Brand     string        `json:"brand,omitempty"`
	ItemType  string        `json:"itemType"`
	Issue     string        `json:"issue"`
	Details   string        `json:"details,omitempty"`
	Images    []string      `json:"images,omitempty"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (r RepairRequest) Key() string { return r.ID }

func (r RepairRequest) MissingFields() []string {
	return missing(map[string]string{
		"name":     r.Name,
		"email":    r.Email,
		"itemType": r.ItemType,
		"issue":    r.Issue,
	}, "name", "email", "itemType", "issue")
}

func missing(values map[string]string, order ...string) []string {
	var out []string
	for _, name := range order {
		if strings.TrimSpace(values[name]) == "" {
			out = append(out, name)
		}
	}
	return out
}

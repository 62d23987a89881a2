package domain

import (
	"fmt"
	"strings"
	"time"
)

type Announcement struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	Priority Priority  `json:"priority"`
}

func (a Announcement) Key() string { return a.ID }

func (a Announcement) Clone() Announcement { return a }

func NewAnnouncement(id, title, content string, priority Priority, now time.Time) (Announcement, error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return Announcement{}, fmt.Errorf("%w: announcement title and content are required", ErrInvalidInput)
	}
	if priority == "" {
		priority = PriorityMedium
	}
	return Announcement{ID: id, Title: title, Content: content, Date: now, Priority: priority}, nil
}

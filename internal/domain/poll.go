package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type PollStatus string

const (
	PollDraft  PollStatus = "draft"
	PollActive PollStatus = "active"
	PollEnded  PollStatus = "ended"
)

type PollCategory string

const (
	PollGeneral    PollCategory = "general"
	PollFood       PollCategory = "food"
	PollFacilities PollCategory = "facilities"
	PollEvents     PollCategory = "events"
	PollOther      PollCategory = "other"
)

// DefaultPollWindow is how long a new poll stays open after creation.
const DefaultPollWindow = 7 * 24 * time.Hour

type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type Vote struct {
	ResidentID string    `json:"resident_id"`
	OptionID   string    `json:"option_id"`
	Timestamp  time.Time `json:"timestamp"`
}

type Poll struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Options     []PollOption `json:"options"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	Status      PollStatus   `json:"status"`
	TotalVotes  int          `json:"total_votes"`
	Votes       []Vote       `json:"votes"`
	CreatedAt   time.Time    `json:"created_at"`
	Category    PollCategory `json:"category"`
}

func (p Poll) Key() string { return p.ID }

func (p Poll) Clone() Poll {
	c := p
	c.Options = slices.Clone(p.Options)
	c.Votes = slices.Clone(p.Votes)
	return c
}

// NewPoll builds a draft poll open for DefaultPollWindow from now.
func NewPoll(id, title, description string, category PollCategory, options []string, now time.Time) (Poll, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Poll{}, fmt.Errorf("%w: poll title is required", ErrInvalidInput)
	}
	if category == "" {
		category = PollGeneral
	}
	p := Poll{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(description),
		StartDate:   now,
		EndDate:     now.Add(DefaultPollWindow),
		Status:      PollDraft,
		CreatedAt:   now,
		Category:    category,
	}
	for _, text := range options {
		var err error
		if p, err = p.AddOption(text); err != nil {
			return Poll{}, err
		}
	}
	return p, nil
}

func (p Poll) option(id string) int {
	return slices.IndexFunc(p.Options, func(o PollOption) bool { return o.ID == id })
}

// AddOption appends an option with a unique, non-empty text. Only drafts can change options.
func (p Poll) AddOption(text string) (Poll, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return p, fmt.Errorf("%w: option text is required", ErrInvalidInput)
	}
	if p.Status != PollDraft {
		return p, fmt.Errorf("%w: options are fixed once a poll is published", ErrInvalidTransition)
	}
	for _, o := range p.Options {
		if strings.EqualFold(o.Text, text) {
			return p, fmt.Errorf("option %q: %w", text, ErrDuplicate)
		}
	}
	c := p.Clone()
	c.Options = append(c.Options, PollOption{ID: fmt.Sprintf("option-%d", len(p.Options)+1), Text: text})
	return c, nil
}

func (p Poll) Publish() (Poll, error) {
	if p.Status != PollDraft {
		return p, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, PollActive)
	}
	if len(p.Options) < 2 {
		return p, fmt.Errorf("%w: a poll needs at least two options", ErrInvalidInput)
	}
	c := p.Clone()
	c.Status = PollActive
	return c, nil
}

func (p Poll) Close() (Poll, error) {
	if p.Status != PollActive {
		return p, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, PollEnded)
	}
	c := p.Clone()
	c.Status = PollEnded
	return c, nil
}

// CastVote records residentID's choice. A resident holds at most one vote per
// poll; voting again moves the vote to the new option.
func (p Poll) CastVote(residentID, optionID string, now time.Time) (Poll, error) {
	if p.Status != PollActive {
		return p, ErrPollNotActive
	}
	oi := p.option(optionID)
	if oi < 0 {
		return p, fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
	}
	c := p.Clone()
	vi := slices.IndexFunc(c.Votes, func(v Vote) bool { return v.ResidentID == residentID })
	if vi >= 0 {
		if prev := c.option(c.Votes[vi].OptionID); prev >= 0 {
			c.Options[prev].Votes--
		}
		c.Votes[vi] = Vote{ResidentID: residentID, OptionID: optionID, Timestamp: now}
	} else {
		c.Votes = append(c.Votes, Vote{ResidentID: residentID, OptionID: optionID, Timestamp: now})
	}
	c.Options[oi].Votes++
	c.TotalVotes = len(c.Votes)
	return c, nil
}

func (p Poll) HasVoted(residentID string) bool {
	return slices.ContainsFunc(p.Votes, func(v Vote) bool { return v.ResidentID == residentID })
}

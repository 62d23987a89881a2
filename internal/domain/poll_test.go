package domain_test

import (
	"errors"
	"testing"
	"time"

	"hostel_portal/internal/domain"
)

var t0 = time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)

func activePoll(t *testing.T) domain.Poll {
	t.Helper()
	p, err := domain.NewPoll("poll-1", "Mess menu", "", domain.PollFood, []string{"Keep", "Change"}, t0)
	if err != nil {
		t.Fatalf("NewPoll: %v", err)
	}
	if p, err = p.Publish(); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	return p
}

func TestNewPoll_Defaults(t *testing.T) {
	p, err := domain.NewPoll("poll-1", " Title ", "desc", "", []string{"A"}, t0)
	if err != nil {
		t.Fatalf("NewPoll: %v", err)
	}
	if p.Status != domain.PollDraft || p.Category != domain.PollGeneral || p.Title != "Title" {
		t.Fatalf("unexpected poll: %+v", p)
	}
	if !p.EndDate.Equal(t0.Add(7 * 24 * time.Hour)) {
		t.Fatalf("unexpected end date %v", p.EndDate)
	}
}

func TestPoll_AddOption_Unique(t *testing.T) {
	p, _ := domain.NewPoll("poll-1", "T", "", "", []string{"Yes"}, t0)
	if _, err := p.AddOption("yes"); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	p2, err := p.AddOption("No")
	if err != nil {
		t.Fatalf("AddOption: %v", err)
	}
	if len(p.Options) != 1 || len(p2.Options) != 2 || p2.Options[1].ID != "option-2" {
		t.Fatalf("unexpected options: before=%v after=%v", p.Options, p2.Options)
	}
}

func TestPoll_StateMachine(t *testing.T) {
	p, _ := domain.NewPoll("poll-1", "T", "", "", []string{"A"}, t0)
	if _, err := p.Publish(); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("single-option publish should fail, got %v", err)
	}
	if _, err := p.Close(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("draft -> ended should fail, got %v", err)
	}

	p = activePoll(t)
	ended, err := p.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := ended.Publish(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("ended -> active should fail, got %v", err)
	}
	if _, err := ended.AddOption("late"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("options on ended poll should fail, got %v", err)
	}
}

func TestPoll_CastVote_OnePerResident(t *testing.T) {
	p := activePoll(t)

	p, err := p.CastVote("resident-1", "option-1", t0)
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	p, err = p.CastVote("resident-1", "option-2", t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("re-vote: %v", err)
	}
	p, _ = p.CastVote("resident-2", "option-2", t0)

	if p.TotalVotes != 2 || len(p.Votes) != 2 {
		t.Fatalf("expected 2 votes, got total=%d log=%d", p.TotalVotes, len(p.Votes))
	}
	if p.Options[0].Votes != 0 || p.Options[1].Votes != 2 {
		t.Fatalf("unexpected tallies: %+v", p.Options)
	}
	if !p.HasVoted("resident-1") || p.HasVoted("resident-3") {
		t.Fatalf("HasVoted mismatch")
	}
}

func TestPoll_CastVote_Rejections(t *testing.T) {
	draft, _ := domain.NewPoll("poll-1", "T", "", "", []string{"A", "B"}, t0)
	if _, err := draft.CastVote("r", "option-1", t0); !errors.Is(err, domain.ErrPollNotActive) {
		t.Fatalf("expected ErrPollNotActive, got %v", err)
	}
	p := activePoll(t)
	if _, err := p.CastVote("r", "option-9", t0); !errors.Is(err, domain.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
}

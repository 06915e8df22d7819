package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/pflow-xyz/gridrunner/action"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

func TestScriptedObservePlaysBackInOrder(t *testing.T) {
	obs := []worldmodel.Observation{{Tick: 1}, {Tick: 2}}
	s := NewScripted(obs)

	got1, err := s.Observe(context.Background())
	if err != nil || got1.Tick != 1 {
		t.Fatalf("first Observe = %+v,%v, want Tick=1,nil", got1, err)
	}
	got2, err := s.Observe(context.Background())
	if err != nil || got2.Tick != 2 {
		t.Fatalf("second Observe = %+v,%v, want Tick=2,nil", got2, err)
	}
	_, err = s.Observe(context.Background())
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted after the scripted observations run out, got %v", err)
	}
}

func TestScriptedActRecordsSentActions(t *testing.T) {
	s := NewScripted(nil)
	second := action.MoveEast
	if err := s.Act(context.Background(), action.MoveNorth, &second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Act(context.Background(), action.UseSouth, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Sent) != 2 {
		t.Fatalf("expected 2 recorded actions, got %d", len(s.Sent))
	}
	if s.Sent[0].A1 != action.MoveNorth || s.Sent[0].A2 == nil || *s.Sent[0].A2 != action.MoveEast {
		t.Fatalf("first sent action recorded incorrectly: %+v", s.Sent[0])
	}
	if s.Sent[1].A1 != action.UseSouth || s.Sent[1].A2 != nil {
		t.Fatalf("second sent action recorded incorrectly: %+v", s.Sent[1])
	}
}

func TestScriptedObserveHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewScripted([]worldmodel.Observation{{Tick: 1}})
	_, err := s.Observe(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

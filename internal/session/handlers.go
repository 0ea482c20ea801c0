package session

import (
	"encoding/json"
	"fmt"

	"mapedit/internal/mapstate"
)

// handlePlaceBlock broadcasts on success, sends a corrective RemoveBlock
// to the sender only when placement outright fails, and stays silent on
// Occupied (the client is just looking at a stale world).
func (s *Session) handlePlaceBlock(sender *client, payload string) error {
	var b mapstate.Block
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		return fmt.Errorf("decoding PlaceBlock payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch err := s.m.PlaceBlock(b); err {
	case nil:
		frame, encErr := serverPlaceBlock(payload)
		if encErr != nil {
			return encErr
		}
		s.broadcast(frame)
	case mapstate.Occupied:
		// Silent: the client's optimistic ghost is stale, not wrong.
	default:
		frame, encErr := serverRemoveBlock(payload)
		if encErr != nil {
			return encErr
		}
		s.sendTo(sender, frame)
	}
	return nil
}

func (s *Session) handleRemoveBlock(sender *client, payload string) error {
	var b mapstate.Block
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		return fmt.Errorf("decoding RemoveBlock payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.m.RemoveBlock(b) {
		return nil
	}
	frame, err := serverRemoveBlock(payload)
	if err != nil {
		return err
	}
	s.broadcast(frame)
	return nil
}

func (s *Session) handlePlaceGhostBlock(sender *client, payload string) error {
	var b mapstate.Block
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		return fmt.Errorf("decoding PlaceGhostBlock payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, count := s.m.PlaceGhostBlock(b)
	frame, err := serverSetGhostBlockCount(payload, count)
	if err != nil {
		return err
	}
	if ok {
		s.broadcast(frame)
	} else {
		s.sendTo(sender, frame)
	}
	return nil
}

func (s *Session) handleRemoveGhostBlock(sender *client, payload string) error {
	var b mapstate.Block
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		return fmt.Errorf("decoding RemoveGhostBlock payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, count := s.m.RemoveGhostBlock(b)
	if !ok {
		return nil
	}
	frame, err := serverSetGhostBlockCount(payload, count)
	if err != nil {
		return err
	}
	s.broadcast(frame)
	return nil
}

func (s *Session) handlePlaceFreeBlock(sender *client, payload string) error {
	var fb mapstate.FreeBlock
	if err := json.Unmarshal([]byte(payload), &fb); err != nil {
		return fmt.Errorf("decoding PlaceFreeBlock payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, count := s.m.PlaceFreeBlock(fb)
	frame, err := serverSetFreeBlockCount(payload, count)
	if err != nil {
		return err
	}
	if ok {
		s.broadcast(frame)
	} else {
		s.sendTo(sender, frame)
	}
	return nil
}

func (s *Session) handleRemoveFreeBlock(sender *client, payload string) error {
	var fb mapstate.FreeBlock
	if err := json.Unmarshal([]byte(payload), &fb); err != nil {
		return fmt.Errorf("decoding RemoveFreeBlock payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, count := s.m.RemoveFreeBlock(fb)
	if !ok {
		return nil
	}
	frame, err := serverSetFreeBlockCount(payload, count)
	if err != nil {
		return err
	}
	s.broadcast(frame)
	return nil
}

func (s *Session) handlePlaceItem(sender *client, payload string) error {
	var it mapstate.Item
	if err := json.Unmarshal([]byte(payload), &it); err != nil {
		return fmt.Errorf("decoding PlaceItem payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, count := s.m.PlaceItem(it)
	frame, err := serverSetItemCount(payload, count)
	if err != nil {
		return err
	}
	if ok {
		s.broadcast(frame)
	} else {
		s.sendTo(sender, frame)
	}
	return nil
}

func (s *Session) handleRemoveItem(sender *client, payload string) error {
	var it mapstate.Item
	if err := json.Unmarshal([]byte(payload), &it); err != nil {
		return fmt.Errorf("decoding RemoveItem payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, count := s.m.RemoveItem(it)
	if !ok {
		return nil
	}
	frame, err := serverSetItemCount(payload, count)
	if err != nil {
		return err
	}
	s.broadcast(frame)
	return nil
}

// Package journal provides a persistent append-only journal of encoded
// key-event packets, used for capture and replay debugging. Events are
// stored in their wire form and keyed by KSUID, so iteration follows
// creation time (KSUIDs sort by timestamp at second granularity).
package journal

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/skarsten/keywire/pkg/codec"
)

// ErrNotFound is returned when no event exists for the given id.
var ErrNotFound = errors.New("event not found")

// Journal is a pebble-backed log of encoded key events.
type Journal struct {
	db    *pebble.DB
	codec *codec.KeyEventCodec
}

// Open opens (or creates) a journal at the given path.
func Open(path string) (*Journal, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return &Journal{db: db, codec: codec.NewKeyEventCodec()}, nil
}

// Append encodes the event and stores the packet under a fresh KSUID.
func (j *Journal) Append(event *codec.KeyEvent) (ksuid.KSUID, error) {
	packet, err := j.codec.Encode(event)
	if err != nil {
		return ksuid.Nil, err
	}

	id := ksuid.New()
	if err := j.db.Set(id.Bytes(), packet, pebble.NoSync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to append event: %w", err)
	}
	return id, nil
}

// AppendPacket stores an already-encoded packet after validating it.
// The packet is decoded once so a corrupt buffer is rejected at append
// time rather than surfacing on replay.
func (j *Journal) AppendPacket(packet []byte) (ksuid.KSUID, error) {
	if _, err := j.codec.Decode(packet); err != nil {
		return ksuid.Nil, err
	}

	id := ksuid.New()
	stored := make([]byte, len(packet))
	copy(stored, packet)
	if err := j.db.Set(id.Bytes(), stored, pebble.NoSync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to append packet: %w", err)
	}
	return id, nil
}

// Get fetches and decodes the event stored under id.
func (j *Journal) Get(id ksuid.KSUID) (*codec.KeyEvent, error) {
	packet, closer, err := j.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read event: %w", err)
	}
	defer closer.Close()

	return j.codec.Decode(packet)
}

// Delete removes the event stored under id. Deleting a missing id is not
// an error.
func (j *Journal) Delete(id ksuid.KSUID) error {
	return j.db.Delete(id.Bytes(), pebble.NoSync)
}

// Replay invokes fn for every journaled event in id order. Iteration
// stops at the first error from fn or the first corrupt packet.
func (j *Journal) Replay(fn func(id ksuid.KSUID, event *codec.KeyEvent) error) error {
	iter, err := j.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("failed to open journal iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return fmt.Errorf("malformed journal key %x: %w", iter.Key(), err)
		}
		event, err := j.codec.Decode(iter.Value())
		if err != nil {
			return fmt.Errorf("journal entry %s: %w", id, err)
		}
		if err := fn(id, event); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Len returns the number of journaled events.
func (j *Journal) Len() (int, error) {
	iter, err := j.db.NewIter(nil)
	if err != nil {
		return 0, fmt.Errorf("failed to open journal iterator: %w", err)
	}
	defer iter.Close()

	count := 0
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}
	return count, iter.Error()
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

package journal

import (
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skarsten/keywire/pkg/codec"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()

	j, err := Open(filepath.Join(t.TempDir(), "journal"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, j.Close())
	})
	return j
}

func testEvent(timestamp int64, character string) *codec.KeyEvent {
	event := &codec.KeyEvent{
		Timestamp:   timestamp,
		Type:        codec.EventTypeDown,
		PhysicalKey: 0x70,
		LogicalKey:  0x61,
		DeviceType:  codec.DeviceTypeKeyboard,
	}
	if character != "" {
		event.Character = &character
	}
	return event
}

func TestJournal_AppendAndGet(t *testing.T) {
	j := openTestJournal(t)

	event := testEvent(1000, "a")
	id, err := j.Append(event)
	require.NoError(t, err)
	assert.NotEqual(t, ksuid.Nil, id)

	got, err := j.Get(id)
	require.NoError(t, err)
	assert.True(t, got.Equal(event), "journaled event should round-trip")
}

func TestJournal_AppendRejectsInvalidEvent(t *testing.T) {
	j := openTestJournal(t)

	event := testEvent(1000, "")
	event.Type = codec.EventType(99)

	_, err := j.Append(event)
	assert.ErrorIs(t, err, codec.ErrInvalidEnumValue)
}

func TestJournal_AppendPacket(t *testing.T) {
	j := openTestJournal(t)
	c := codec.NewKeyEventCodec()

	t.Run("valid packet", func(t *testing.T) {
		event := testEvent(2000, "é")
		packet, err := c.Encode(event)
		require.NoError(t, err)

		id, err := j.AppendPacket(packet)
		require.NoError(t, err)

		got, err := j.Get(id)
		require.NoError(t, err)
		assert.True(t, got.Equal(event))
	})

	t.Run("corrupt packet rejected at append", func(t *testing.T) {
		packet := make([]byte, codec.HeaderSize)
		binary.LittleEndian.PutUint64(packet[16:], 99) // unmapped type word

		_, err := j.AppendPacket(packet)
		assert.ErrorIs(t, err, codec.ErrInvalidEnumValue)
	})

	t.Run("truncated packet rejected at append", func(t *testing.T) {
		_, err := j.AppendPacket([]byte{0x01, 0x02})
		assert.ErrorIs(t, err, codec.ErrTruncatedBuffer)
	})
}

func TestJournal_GetMissing(t *testing.T) {
	j := openTestJournal(t)

	_, err := j.Get(ksuid.New())
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestJournal_Delete(t *testing.T) {
	j := openTestJournal(t)

	id, err := j.Append(testEvent(1, ""))
	require.NoError(t, err)

	require.NoError(t, j.Delete(id))

	_, err = j.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing id is not an error.
	assert.NoError(t, j.Delete(ksuid.New()))
}

func TestJournal_Replay(t *testing.T) {
	j := openTestJournal(t)

	events := map[string]*codec.KeyEvent{}
	for i := 0; i < 5; i++ {
		event := testEvent(int64(i*100), "")
		id, err := j.Append(event)
		require.NoError(t, err)
		events[id.String()] = event
	}

	seen := 0
	var lastID string
	err := j.Replay(func(id ksuid.KSUID, event *codec.KeyEvent) error {
		want, ok := events[id.String()]
		require.True(t, ok, "replayed unknown id %s", id)
		assert.True(t, event.Equal(want))
		assert.Greater(t, id.String(), lastID, "replay must visit ids in order")
		lastID = id.String()
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, len(events), seen)
}

func TestJournal_ReplayStopsOnCallbackError(t *testing.T) {
	j := openTestJournal(t)

	for i := 0; i < 3; i++ {
		_, err := j.Append(testEvent(int64(i), ""))
		require.NoError(t, err)
	}

	sentinel := errors.New("stop")
	calls := 0
	err := j.Replay(func(ksuid.KSUID, *codec.KeyEvent) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestJournal_Len(t *testing.T) {
	j := openTestJournal(t)

	n, err := j.Len()
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 0; i < 4; i++ {
		_, err := j.Append(testEvent(int64(i), ""))
		require.NoError(t, err)
	}

	n, err = j.Len()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

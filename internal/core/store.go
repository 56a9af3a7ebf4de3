package core

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/samber/lo"
)

const (
	codeMin   = 1000
	codeSpace = 9000 // "1000".."9999"

	maxCodeAttempts = 64
)

// CodeFunc proposes a room code. Proposals may collide; the store retries.
type CodeFunc func() string

// RandomCode draws a 4-digit code uniformly.
func RandomCode() string {
	return strconv.Itoa(codeMin + rand.IntN(codeSpace))
}

// Store maps room codes to rooms and keeps a reverse index from connection to
// the codes it is seated in. It is not safe for concurrent use; the hub owns it.
type Store struct {
	rooms   map[string]*Room
	byConn  map[*Conn][]string
	newCode CodeFunc
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithCodeFunc replaces the code generator.
func WithCodeFunc(f CodeFunc) StoreOption {
	return func(s *Store) {
		s.newCode = f
	}
}

// NewStore constructs an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		rooms:   make(map[string]*Room),
		byConn:  make(map[*Conn][]string),
		newCode: RandomCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new room with owner in the white slot.
func (s *Store) Create(private bool, owner *Conn) (*Room, error) {
	code, err := s.freeCode()
	if err != nil {
		return nil, err
	}
	room := NewRoom(code, owner, private)
	s.rooms[code] = room
	s.index(owner, code)
	return room, nil
}

func (s *Store) freeCode() (string, error) {
	if len(s.rooms) >= codeSpace {
		return "", ErrCodeSpaceExhausted
	}
	for range maxCodeAttempts {
		code := s.newCode()
		if _, taken := s.rooms[code]; !taken {
			return code, nil
		}
	}
	// Generator keeps colliding; walk the space for the first gap.
	for n := codeMin; n < codeMin+codeSpace; n++ {
		code := strconv.Itoa(n)
		if _, taken := s.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("scan %d codes: %w", codeSpace, ErrCodeSpaceExhausted)
}

// Get looks up a room by code.
func (s *Store) Get(code string) (*Room, bool) {
	room, ok := s.rooms[code]
	return room, ok
}

// Seat places c in the black slot of the room with code.
func (s *Store) Seat(code string, c *Conn) (*Room, error) {
	room, ok := s.rooms[code]
	switch {
	case !ok:
		return nil, ErrRoomNotFound
	case room.Black != nil:
		return room, ErrRoomFull
	case room.White == c:
		return room, ErrOwnRoom
	}
	room.Black = c
	s.index(c, code)
	return room, nil
}

// Remove deletes the room and drops it from both participants' index entries.
func (s *Store) Remove(code string) {
	room, ok := s.rooms[code]
	if !ok {
		return
	}
	delete(s.rooms, code)
	s.unindex(room.White, code)
	s.unindex(room.Black, code)
}

// RoomsOf returns the codes of rooms in which c holds a slot.
func (s *Store) RoomsOf(c *Conn) []string {
	return slices.Clone(s.byConn[c])
}

// Len counts registered rooms.
func (s *Store) Len() int {
	return len(s.rooms)
}

// ListJoinable returns public rooms still waiting for a second player, by code.
func (s *Store) ListJoinable() []RoomSummary {
	list := lo.FilterMap(lo.Values(s.rooms), func(r *Room, _ int) (RoomSummary, bool) {
		return r.Summary(), r.Joinable()
	})
	slices.SortFunc(list, func(a, b RoomSummary) int {
		return cmp.Compare(a.Code, b.Code)
	})
	return list
}

func (s *Store) index(c *Conn, code string) {
	if c == nil {
		return
	}
	s.byConn[c] = append(s.byConn[c], code)
}

func (s *Store) unindex(c *Conn, code string) {
	if c == nil {
		return
	}
	codes := lo.Without(s.byConn[c], code)
	if len(codes) == 0 {
		delete(s.byConn, c)
		return
	}
	s.byConn[c] = codes
}

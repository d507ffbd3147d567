package services

import (
	"sync"
	"time"

	"github.com/dlikecoding/Bingo-Game/game"
	"github.com/dlikecoding/Bingo-Game/models"
	"github.com/dlikecoding/Bingo-Game/store"
)

// --- fakeStore ---

// fakeStore is an in-memory store.Store. Errors are injected per
// method name through failOn, so the fail-fast paths can be driven
// without a database.
type fakeStore struct {
	mu     sync.Mutex
	failOn map[string]error

	nextRoomID uint
	nextCardID uint

	rooms       map[uint]*models.Room
	users       map[string]uint
	members     map[uint][]uint
	ready       map[[2]uint]*bool
	cards       map[uint]game.Card
	playerCards map[[2]uint]uint
	drawn       map[uint][]int
	marks       map[uint][]models.MarkedCell
	timers      map[uint]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		failOn:      make(map[string]error),
		rooms:       make(map[uint]*models.Room),
		users:       make(map[string]uint),
		members:     make(map[uint][]uint),
		ready:       make(map[[2]uint]*bool),
		cards:       make(map[uint]game.Card),
		playerCards: make(map[[2]uint]uint),
		drawn:       make(map[uint][]int),
		marks:       make(map[uint][]models.MarkedCell),
		timers:      make(map[uint]time.Time),
	}
}

func (f *fakeStore) fail(method string) error {
	return f.failOn[method]
}

func (f *fakeStore) addUser(username string) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uint(len(f.users) + 1)
	f.users[username] = id
	return id
}

func (f *fakeStore) CreateRoom(name, host string) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateRoom"); err != nil {
		return nil, err
	}
	f.nextRoomID++
	room := &models.Room{ID: f.nextRoomID, Name: name, Host: host}
	f.rooms[room.ID] = room
	return room, nil
}

func (f *fakeStore) RoomByID(roomID uint) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("RoomByID"); err != nil {
		return nil, err
	}
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *room
	return &cp, nil
}

func (f *fakeStore) RoomNameExists(name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("RoomNameExists"); err != nil {
		return false, err
	}
	for _, r := range f.rooms {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Rooms() ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("Rooms"); err != nil {
		return nil, err
	}
	out := make([]models.Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeStore) UpdateRoomStatus(roomID uint, inProgress bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("UpdateRoomStatus"); err != nil {
		return err
	}
	room, ok := f.rooms[roomID]
	if !ok {
		return store.ErrNotFound
	}
	room.Status = inProgress
	return nil
}

func (f *fakeStore) DeleteRoom(roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteRoom"); err != nil {
		return err
	}
	delete(f.rooms, roomID)
	delete(f.members, roomID)
	delete(f.drawn, roomID)
	delete(f.marks, roomID)
	delete(f.timers, roomID)
	for key := range f.ready {
		if key[1] == roomID {
			delete(f.ready, key)
		}
	}
	for key := range f.playerCards {
		if key[1] == roomID {
			delete(f.playerCards, key)
		}
	}
	return nil
}

func (f *fakeStore) UserIDByUsername(username string) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("UserIDByUsername"); err != nil {
		return 0, err
	}
	id, ok := f.users[username]
	if !ok {
		return 0, store.ErrNotFound
	}
	return id, nil
}

func (f *fakeStore) UsernameByID(userID uint) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("UsernameByID"); err != nil {
		return "", err
	}
	for name, id := range f.users {
		if id == userID {
			return name, nil
		}
	}
	return "", store.ErrNotFound
}

func (f *fakeStore) AddMember(userID, roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("AddMember"); err != nil {
		return err
	}
	f.members[roomID] = append(f.members[roomID], userID)
	return nil
}

func (f *fakeStore) RemoveMember(userID, roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("RemoveMember"); err != nil {
		return err
	}
	kept := f.members[roomID][:0]
	for _, id := range f.members[roomID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	f.members[roomID] = kept
	return nil
}

func (f *fakeStore) Members(roomID uint) ([]models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("Members"); err != nil {
		return nil, err
	}
	out := make([]models.Membership, 0, len(f.members[roomID]))
	for _, id := range f.members[roomID] {
		out = append(out, models.Membership{UserID: id, RoomID: roomID})
	}
	return out, nil
}

func (f *fakeStore) IsMember(userID, roomID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("IsMember"); err != nil {
		return false, err
	}
	for _, id := range f.members[roomID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) MembershipsForUser(userID uint) ([]models.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("MembershipsForUser"); err != nil {
		return nil, err
	}
	var out []models.Membership
	for roomID, ids := range f.members {
		for _, id := range ids {
			if id == userID {
				out = append(out, models.Membership{UserID: id, RoomID: roomID})
			}
		}
	}
	return out, nil
}

func (f *fakeStore) InsertReadyStatus(playerID, roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("InsertReadyStatus"); err != nil {
		return err
	}
	key := [2]uint{playerID, roomID}
	if _, ok := f.ready[key]; !ok {
		status := false
		f.ready[key] = &status
	}
	return nil
}

func (f *fakeStore) HasReadyStatus(playerID, roomID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("HasReadyStatus"); err != nil {
		return false, err
	}
	_, ok := f.ready[[2]uint{playerID, roomID}]
	return ok, nil
}

func (f *fakeStore) ReadyStatus(playerID, roomID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ReadyStatus"); err != nil {
		return false, err
	}
	status, ok := f.ready[[2]uint{playerID, roomID}]
	if !ok {
		return false, store.ErrNotFound
	}
	return *status, nil
}

func (f *fakeStore) SetReadyStatus(playerID, roomID uint, ready bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("SetReadyStatus"); err != nil {
		return err
	}
	status, ok := f.ready[[2]uint{playerID, roomID}]
	if !ok {
		return store.ErrNotFound
	}
	*status = ready
	return nil
}

func (f *fakeStore) ResetReadyStatuses(roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ResetReadyStatuses"); err != nil {
		return err
	}
	for key, status := range f.ready {
		if key[1] == roomID {
			*status = false
		}
	}
	return nil
}

func (f *fakeStore) DeleteReadyStatus(playerID, roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteReadyStatus"); err != nil {
		return err
	}
	delete(f.ready, [2]uint{playerID, roomID})
	return nil
}

func (f *fakeStore) ReadyStatuses(roomID uint) ([]models.ReadyStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ReadyStatuses"); err != nil {
		return nil, err
	}
	var out []models.ReadyStatus
	for key, status := range f.ready {
		if key[1] == roomID {
			out = append(out, models.ReadyStatus{PlayerID: key[0], RoomID: roomID, Status: *status})
		}
	}
	return out, nil
}

func (f *fakeStore) InsertCards(grids []game.Card) ([]models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("InsertCards"); err != nil {
		return nil, err
	}
	out := make([]models.Card, 0, len(grids))
	for _, grid := range grids {
		f.nextCardID++
		f.cards[f.nextCardID] = grid
		out = append(out, models.Card{ID: f.nextCardID})
	}
	return out, nil
}

func (f *fakeStore) AssignCard(playerID, cardID, roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("AssignCard"); err != nil {
		return err
	}
	f.playerCards[[2]uint{playerID, roomID}] = cardID
	return nil
}

func (f *fakeStore) CardByPlayer(playerID, roomID uint) (game.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CardByPlayer"); err != nil {
		return game.Card{}, err
	}
	cardID, ok := f.playerCards[[2]uint{playerID, roomID}]
	if !ok {
		return game.Card{}, store.ErrNotFound
	}
	return f.cards[cardID], nil
}

func (f *fakeStore) DeleteCards(roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteCards"); err != nil {
		return err
	}
	for key, cardID := range f.playerCards {
		if key[1] == roomID {
			delete(f.cards, cardID)
			delete(f.playerCards, key)
		}
	}
	return nil
}

func (f *fakeStore) AppendDrawnNumber(roomID uint, number int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("AppendDrawnNumber"); err != nil {
		return err
	}
	f.drawn[roomID] = append(f.drawn[roomID], number)
	return nil
}

func (f *fakeStore) DrawnNumbers(roomID uint) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DrawnNumbers"); err != nil {
		return nil, err
	}
	return append([]int(nil), f.drawn[roomID]...), nil
}

func (f *fakeStore) DeleteDrawnNumbers(roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteDrawnNumbers"); err != nil {
		return err
	}
	delete(f.drawn, roomID)
	return nil
}

func (f *fakeStore) InsertMarkedCell(userID, roomID uint, cellID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("InsertMarkedCell"); err != nil {
		return err
	}
	f.marks[roomID] = append(f.marks[roomID], models.MarkedCell{RoomID: roomID, UserID: userID, CellID: cellID})
	return nil
}

func (f *fakeStore) DeleteMarkedCell(userID, roomID uint, cellID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteMarkedCell"); err != nil {
		return err
	}
	kept := f.marks[roomID][:0]
	for _, m := range f.marks[roomID] {
		if m.UserID != userID || m.CellID != cellID {
			kept = append(kept, m)
		}
	}
	f.marks[roomID] = kept
	return nil
}

func (f *fakeStore) DeleteAllMarkedCells(roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteAllMarkedCells"); err != nil {
		return err
	}
	delete(f.marks, roomID)
	return nil
}

func (f *fakeStore) MarkedCells(roomID uint) ([]models.MarkedCell, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("MarkedCells"); err != nil {
		return nil, err
	}
	return append([]models.MarkedCell(nil), f.marks[roomID]...), nil
}

func (f *fakeStore) InsertStartTime(roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("InsertStartTime"); err != nil {
		return err
	}
	f.timers[roomID] = time.Now()
	return nil
}

func (f *fakeStore) DeleteStartTime(roomID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteStartTime"); err != nil {
		return err
	}
	delete(f.timers, roomID)
	return nil
}

func (f *fakeStore) StartTime(roomID uint) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("StartTime"); err != nil {
		return time.Time{}, err
	}
	t, ok := f.timers[roomID]
	if !ok {
		return time.Time{}, store.ErrNotFound
	}
	return t, nil
}

// --- recordingHub ---

type broadcastMsg struct {
	Group string
	Event string
	Data  any
}

// recordingHub captures every broadcast instead of fanning out.
type recordingHub struct {
	mu   sync.Mutex
	msgs []broadcastMsg
}

func (h *recordingHub) Broadcast(group, event string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, broadcastMsg{Group: group, Event: event, Data: data})
}

func (h *recordingHub) events(group string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, m := range h.msgs {
		if m.Group == group {
			out = append(out, m.Event)
		}
	}
	return out
}

func (h *recordingHub) last(event string) (broadcastMsg, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.msgs) - 1; i >= 0; i-- {
		if h.msgs[i].Event == event {
			return h.msgs[i], true
		}
	}
	return broadcastMsg{}, false
}

func (h *recordingHub) count(event string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, m := range h.msgs {
		if m.Event == event {
			n++
		}
	}
	return n
}

// --- fakeSender ---

// fakeSender stands in for a connected client.
type fakeSender struct {
	mu       sync.Mutex
	userID   uint
	username string
	sent     []broadcastMsg
}

func (f *fakeSender) Send(event string, data any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, broadcastMsg{Event: event, Data: data})
}

func (f *fakeSender) UserID() uint     { return f.userID }
func (f *fakeSender) Username() string { return f.username }

func (f *fakeSender) lastSent() (broadcastMsg, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return broadcastMsg{}, false
	}
	return f.sent[len(f.sent)-1], true
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

package services

import (
	"encoding/json"
	"time"

	"github.com/dlikecoding/Bingo-Game/game"
	"github.com/dlikecoding/Bingo-Game/store"
	"github.com/dlikecoding/Bingo-Game/utils/logger"
)

const (
	// MaxPlayers is the hard room capacity; a fifth join is rejected.
	MaxPlayers = 4
	// MinPlayers required to start a round.
	MinPlayers = 2

	// DefaultDrawInterval is the draw-loop tick period.
	DefaultDrawInterval = time.Second
)

// Coordinator is the per-room state machine. It validates client
// intents against room and session state, mutates the store and the
// session registry, and broadcasts resulting transitions to the room
// and the lobby.
//
// Failure policy: any store error inside a room-scoped handler is
// non-recoverable for that room. The room is deleted outright and
// every connected client is evicted to the lobby, rather than
// attempting a partial rollback. Each store call commits on its own,
// so there is no multi-statement transaction to roll back.
type Coordinator struct {
	store        store.Store
	registry     *game.Registry
	hub          Broadcaster
	drawInterval time.Duration
}

func NewCoordinator(st store.Store, reg *game.Registry, hub Broadcaster, drawInterval time.Duration) *Coordinator {
	if drawInterval <= 0 {
		drawInterval = DefaultDrawInterval
	}
	return &Coordinator{
		store:        st,
		registry:     reg,
		hub:          hub,
		drawInterval: drawInterval,
	}
}

// Dispatch decodes an inbound event into its typed payload and runs
// the matching handler. Unknown events and malformed payloads are
// rejected at this boundary and never reach a handler.
func (co *Coordinator) Dispatch(c Sender, event string, data json.RawMessage) {
	decode := func(v any) bool {
		if err := json.Unmarshal(data, v); err != nil {
			logger.Infof("[Coordinator] invalid %q payload from user %d: %v", event, c.UserID(), err)
			c.Send(EventError, ErrorBroadcast{Error: "invalid payload"})
			return false
		}
		return true
	}

	switch event {
	case EventChatMessage:
		var p ChatPayload
		if decode(&p) {
			co.hub.Broadcast(p.Room, EventChatMessage, p)
		}
	case EventCreateRoom:
		var p CreateRoomPayload
		if decode(&p) {
			co.HandleCreateRoom(c, p)
		}
	case EventPlayerReady:
		var p RoomUserPayload
		if decode(&p) {
			co.HandlePlayerReady(p)
		}
	case EventExitRoom:
		var p RoomUserPayload
		if decode(&p) {
			co.HandleExitRoom(p)
		}
	case EventKickingPlayer:
		var p RoomUserPayload
		if decode(&p) {
			co.HandleKickPlayer(c, p)
		}
	case EventDeleteRoom:
		var p RoomPayload
		if decode(&p) {
			co.hub.Broadcast(LobbyGroup, EventRoomDeleted, p)
		}
	case EventNewPlayer:
		var p NewPlayerPayload
		if decode(&p) {
			co.HandleNewPlayer(p)
		}
	case EventStartingGame:
		var p RoomPayload
		if decode(&p) {
			co.HandleStartingGame(c, p)
		}
	case EventGenerateNumber:
		var p RoomPayload
		if decode(&p) {
			co.HandleGenerateNumber(c, p)
		}
	case EventMarkedNumber:
		var p MarkPayload
		if decode(&p) {
			co.HandleMarkedNumber(p)
		}
	case EventCheckWon:
		var p CheckWonPayload
		if decode(&p) {
			co.HandleCheckWon(p)
		}
	case EventGameEnded:
		var p RoomPayload
		if decode(&p) {
			co.HandleGameEnded(p.RoomID)
		}
	default:
		logger.Infof("[Coordinator] unknown event %q from user %d", event, c.UserID())
	}
}

// -------------------- Room lifecycle --------------------

// HandleCreateRoom creates a room with its creator as host and first
// member. A duplicate name is a validation failure reported to the
// requester only.
func (co *Coordinator) HandleCreateRoom(c Sender, p CreateRoomPayload) {
	exists, err := co.store.RoomNameExists(p.RoomName)
	if err != nil {
		logger.Errorf("[Coordinator] create room %q: %v", p.RoomName, err)
		c.Send(EventError, ErrorBroadcast{Error: teardownMessage})
		return
	}
	if exists {
		c.Send(EventFailedCreateRoom, FailedCreateRoomPayload{
			Error: "This room name exist! Please use other room name",
			User:  p.User,
		})
		return
	}

	room, err := co.store.CreateRoom(p.RoomName, p.User)
	if err != nil {
		logger.Errorf("[Coordinator] create room %q: %v", p.RoomName, err)
		c.Send(EventError, ErrorBroadcast{Error: teardownMessage})
		return
	}

	userID, err := co.store.UserIDByUsername(p.User)
	if err != nil {
		co.teardown(room.ID, err)
		return
	}
	if err := co.store.AddMember(userID, room.ID); err != nil {
		co.teardown(room.ID, err)
		return
	}
	if err := co.store.InsertReadyStatus(userID, room.ID); err != nil {
		co.teardown(room.ID, err)
		return
	}

	co.hub.Broadcast(LobbyGroup, EventUpdateRoom, UpdateRoomPayload{
		RoomName: p.RoomName,
		User:     p.User,
		RoomID:   room.ID,
		Status:   false,
	})
}

// JoinRoom enforces the capacity and status preconditions for joining.
// A join from a user already present succeeds without a duplicate
// insert. Called from the HTTP surface.
func (co *Coordinator) JoinRoom(userID, roomID uint) error {
	room, err := co.store.RoomByID(roomID)
	if err != nil {
		if err == store.ErrNotFound {
			return ErrRoomNotFound
		}
		return err
	}
	if room.Status {
		return ErrGameInProgress
	}

	member, err := co.store.IsMember(userID, roomID)
	if err != nil {
		return err
	}
	if member {
		return nil // idempotent join
	}

	members, err := co.store.Members(roomID)
	if err != nil {
		return err
	}
	if len(members) >= MaxPlayers {
		return ErrRoomFull
	}

	return co.store.AddMember(userID, roomID)
}

// HandleNewPlayer announces a freshly joined player to the room.
func (co *Coordinator) HandleNewPlayer(p NewPlayerPayload) {
	userID, err := co.store.UserIDByUsername(p.User)
	if err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	co.hub.Broadcast(RoomGroup(p.RoomID), EventNewPlayer, NewPlayerBroadcast{
		Username: p.User,
		RoomID:   p.RoomID,
		UserID:   userID,
	})
}

// HandlePlayerReady toggles the caller's ready flag. A missing
// readiness row is a contract violation and tears the room down.
func (co *Coordinator) HandlePlayerReady(p RoomUserPayload) {
	current, err := co.store.ReadyStatus(p.UserID, p.RoomID)
	if err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	if err := co.store.SetReadyStatus(p.UserID, p.RoomID, !current); err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	co.hub.Broadcast(RoomGroup(p.RoomID), EventPlayerReady, ReadyBroadcast{
		UserID: p.UserID,
		Status: !current,
	})
}

// HandleExitRoom removes the caller's membership and ready status.
func (co *Coordinator) HandleExitRoom(p RoomUserPayload) {
	if err := co.store.RemoveMember(p.UserID, p.RoomID); err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	if err := co.store.DeleteReadyStatus(p.UserID, p.RoomID); err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	co.hub.Broadcast(RoomGroup(p.RoomID), EventPlayerExited, PlayerBroadcast{UserID: p.UserID})
}

// HandleKickPlayer removes the target from the room. Only the host may
// kick. The removal is authoritative server-side: membership and
// readiness go together, without waiting for the kicked client to
// exit on its own.
func (co *Coordinator) HandleKickPlayer(c Sender, p RoomUserPayload) {
	room, err := co.store.RoomByID(p.RoomID)
	if err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	if room.Host != c.Username() {
		c.Send(EventError, ErrorBroadcast{Error: ErrNotHost.Error()})
		return
	}

	if err := co.store.RemoveMember(p.UserID, p.RoomID); err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	if err := co.store.DeleteReadyStatus(p.UserID, p.RoomID); err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	co.hub.Broadcast(RoomGroup(p.RoomID), EventPlayerKicked, PlayerBroadcast{UserID: p.UserID})
}

// HostExit dissolves the room on the host's way out. Called from the
// HTTP surface; the lobby notice is relayed by the client's
// "delete room" event, as with the original flow.
func (co *Coordinator) HostExit(userID, roomID uint) error {
	if err := co.store.RemoveMember(userID, roomID); err != nil {
		return err
	}
	if err := co.store.DeleteReadyStatus(userID, roomID); err != nil {
		return err
	}
	co.registry.Remove(roomID)
	return co.store.DeleteRoom(roomID)
}

// -------------------- Round lifecycle --------------------

// HandleStartingGame is the websocket entry to StartGame; the caller
// must be the host.
func (co *Coordinator) HandleStartingGame(c Sender, p RoomPayload) {
	room, err := co.store.RoomByID(p.RoomID)
	if err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	if room.Host != c.Username() {
		c.Send(EventError, ErrorBroadcast{Error: ErrNotHost.Error()})
		return
	}
	if err := co.StartGame(p.RoomID); err != nil {
		switch err {
		case ErrBadPlayerCount, ErrRoomNotFound:
			c.Send(EventError, ErrorBroadcast{Error: err.Error()})
		default:
			// store failure: teardown already ran inside StartGame
		}
	}
}

// StartGame flips the room to in_progress and deals the round: stale
// cards, draw history and timer are purged, one fresh card is
// generated and assigned per member, the draw history is seeded with
// the 0 sentinel and the shared start time is recorded. Starting again
// on the same room behaves identically because the purge runs first.
func (co *Coordinator) StartGame(roomID uint) error {
	if _, err := co.store.RoomByID(roomID); err != nil {
		if err == store.ErrNotFound {
			return ErrRoomNotFound
		}
		co.teardown(roomID, err)
		return err
	}

	members, err := co.store.Members(roomID)
	if err != nil {
		co.teardown(roomID, err)
		return err
	}
	if len(members) < MinPlayers || len(members) > MaxPlayers {
		return ErrBadPlayerCount
	}

	// Stop any stale draw loop before touching persisted draw state.
	if session, ok := co.registry.Get(roomID); ok {
		session.StopDrawLoop()
		session.ClearPool()
	}

	steps := []func() error{
		func() error { return co.store.DeleteCards(roomID) },
		func() error { return co.store.DeleteStartTime(roomID) },
		func() error { return co.store.DeleteDrawnNumbers(roomID) },
		func() error { return co.store.UpdateRoomStatus(roomID, true) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			co.teardown(roomID, err)
			return err
		}
	}

	grids := make([]game.Card, len(members))
	for i := range grids {
		grids[i] = game.GenerateCard()
	}
	cards, err := co.store.InsertCards(grids)
	if err != nil {
		co.teardown(roomID, err)
		return err
	}
	for i, member := range members {
		if err := co.store.AssignCard(member.UserID, cards[i].ID, roomID); err != nil {
			co.teardown(roomID, err)
			return err
		}
	}

	if err := co.store.AppendDrawnNumber(roomID, game.FreeCell); err != nil {
		co.teardown(roomID, err)
		return err
	}
	if err := co.store.InsertStartTime(roomID); err != nil {
		co.teardown(roomID, err)
		return err
	}

	co.registry.Ensure(roomID)

	co.hub.Broadcast(LobbyGroup, EventUpdateStatusGame, StatusGameBroadcast{RoomID: roomID, Status: true})
	co.hub.Broadcast(RoomGroup(roomID), EventGameStarted, RoomPayload{RoomID: roomID})
	return nil
}

// HandleGenerateNumber starts the room's draw loop: one number per
// tick, persisted then broadcast, until the pool runs out. Only the
// host connection may trigger it, and a second trigger while a loop is
// live is a no-op (the session's pool is the single-writer guard).
func (co *Coordinator) HandleGenerateNumber(c Sender, p RoomPayload) {
	room, err := co.store.RoomByID(p.RoomID)
	if err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	if !room.Status {
		logger.Infof("[Coordinator] draw requested for room %d but no game in progress", p.RoomID)
		return
	}
	if room.Host != c.Username() {
		c.Send(EventError, ErrorBroadcast{Error: ErrNotHost.Error()})
		return
	}

	session := co.registry.Ensure(p.RoomID)
	if !session.HasPool() {
		// Rebuild from durable history so a restarted process never
		// draws the same number twice within a round.
		drawn, err := co.store.DrawnNumbers(p.RoomID)
		if err != nil {
			co.teardown(p.RoomID, err)
			return
		}
		session.SetPoolIfEmpty(game.RemainingPool(drawn))
	}

	roomID := p.RoomID
	started := session.StartDrawLoop(co.drawInterval, func(n int) bool {
		if err := co.store.AppendDrawnNumber(roomID, n); err != nil {
			// teardown stops the loop synchronously, so it must not
			// run on the loop's own goroutine.
			go co.teardown(roomID, err)
			return false
		}
		co.hub.Broadcast(RoomGroup(roomID), EventNumberGenerated, NumberBroadcast{Number: n})
		return true
	})
	if !started {
		logger.Debugf("[Coordinator] draw loop already live for room %d", roomID)
	}
}

// HandleMarkedNumber toggles a player's persisted mark on one cell and
// echoes the toggle to the whole room, the actor included.
func (co *Coordinator) HandleMarkedNumber(p MarkPayload) {
	var err error
	if p.IsMarked {
		err = co.store.DeleteMarkedCell(p.PlayerID, p.RoomID, p.CellID)
	} else {
		err = co.store.InsertMarkedCell(p.PlayerID, p.RoomID, p.CellID)
	}
	if err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	co.hub.Broadcast(RoomGroup(p.RoomID), EventUpdateCardMarked, p)
}

// HandleCheckWon evaluates the caller's card against the drawn
// history. The sentinel 0 in the history is harmless: it coincides
// with the free-cell value, which is always covered anyway.
func (co *Coordinator) HandleCheckWon(p CheckWonPayload) {
	card, err := co.store.CardByPlayer(p.UserID, p.RoomID)
	if err != nil {
		co.teardown(p.RoomID, err)
		return
	}
	drawn, err := co.store.DrawnNumbers(p.RoomID)
	if err != nil {
		co.teardown(p.RoomID, err)
		return
	}

	if game.CheckForWin(card, drawn) {
		co.hub.Broadcast(RoomGroup(p.RoomID), EventPlayerWon, WonBroadcast{
			RoomID:         p.RoomID,
			PlayerID:       p.UserID,
			PlayerUsername: p.UserName,
		})
	} else {
		co.hub.Broadcast(RoomGroup(p.RoomID), EventPlayerNotWon, WonBroadcast{
			RoomID:   p.RoomID,
			PlayerID: p.UserID,
		})
	}
}

// HandleGameEnded tears the round down and returns the room to
// waiting. The draw loop is stopped synchronously first, so no tick
// can re-insert a number into the history being cleared.
func (co *Coordinator) HandleGameEnded(roomID uint) {
	if session, ok := co.registry.Get(roomID); ok {
		session.StopDrawLoop()
		session.ClearPool()
	}

	steps := []func() error{
		func() error { return co.store.DeleteCards(roomID) },
		func() error { return co.store.DeleteStartTime(roomID) },
		func() error { return co.store.DeleteDrawnNumbers(roomID) },
		func() error { return co.store.AppendDrawnNumber(roomID, game.FreeCell) },
		func() error { return co.store.ResetReadyStatuses(roomID) },
		func() error { return co.store.DeleteAllMarkedCells(roomID) },
		func() error { return co.store.UpdateRoomStatus(roomID, false) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			co.teardown(roomID, err)
			return
		}
	}

	co.hub.Broadcast(LobbyGroup, EventUpdateStatusGame, StatusGameBroadcast{RoomID: roomID, Status: false})
	co.hub.Broadcast(RoomGroup(roomID), EventFinishedCleanup, RoomPayload{RoomID: roomID})
}

// -------------------- Failure handling --------------------

// teardown is the fail-fast escalation: delete the room and its
// dependent rows, discard the session, and evict every connected
// client with a generic notice. Clients never see the cause; it is
// logged here only.
func (co *Coordinator) teardown(roomID uint, cause error) {
	logger.Errorf("[Coordinator] tearing down room %d: %v", roomID, cause)

	co.registry.Remove(roomID)
	if err := co.store.DeleteRoom(roomID); err != nil {
		logger.Errorf("[Coordinator] delete room %d during teardown: %v", roomID, err)
	}

	co.hub.Broadcast(LobbyGroup, EventRoomDeleted, RoomPayload{RoomID: roomID})
	co.hub.Broadcast(RoomGroup(roomID), EventError, ErrorBroadcast{Error: teardownMessage})
}
